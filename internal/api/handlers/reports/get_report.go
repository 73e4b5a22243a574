package reports

import (
	"errors"
	"net/http"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github.com/sam247/disclosurely-sub001/internal/api"
	"github.com/sam247/disclosurely-sub001/internal/api/httperrors"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/crypto"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/report"
	"github.com/sam247/disclosurely-sub001/internal/types"
	"github.com/sam247/disclosurely-sub001/internal/util"
)

func GetReportRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Reports.GET("/:trackingId", getReportHandler(s))
}

func getReportHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		trackingID := c.Param("trackingId")
		if trackingID == "" {
			return httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Invalid request")
		}

		view, err := s.ReportService.GetByTrackingID(ctx, trackingID)
		if err != nil {
			switch {
			case errors.Is(err, report.ErrInvalidRequest):
				return httperrors.NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeGeneric, "Report not found")
			case errors.Is(err, crypto.ErrDecryption):
				// Already logged loudly in the service; keep the public
				// answer free of any crypto detail.
				return httperrors.NewHTTPErrorWithInternal(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Report could not be read", err)
			default:
				log.Error().Err(err).Msg("Failed to load report")
				return httperrors.NewHTTPErrorWithInternal(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Report could not be read", err)
			}
		}

		createdAt := strfmt.DateTime(view.CreatedAt)
		response := &types.GetReportResponse{
			TrackingID:  swag.String(view.TrackingID),
			Title:       swag.String(view.Title),
			Description: swag.String(view.Description),
			Type:        view.Type,
			Priority:    view.Priority,
			Tags:        view.Tags,
			PIIScan: &types.PIIScanMetadata{
				HasPII:      view.PIIScan.HasPII,
				HighCount:   int64(view.PIIScan.HighCount),
				MediumCount: int64(view.PIIScan.MediumCount),
				LowCount:    int64(view.PIIScan.LowCount),
				Categories:  view.PIIScan.Categories,
			},
			CreatedAt: &createdAt,
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
