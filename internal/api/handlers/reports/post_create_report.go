package reports

import (
	"errors"
	"net/http"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github.com/sam247/disclosurely-sub001/internal/api"
	"github.com/sam247/disclosurely-sub001/internal/api/httperrors"
	"github.com/sam247/disclosurely-sub001/internal/api/middleware"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/crypto"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/report"
	"github.com/sam247/disclosurely-sub001/internal/types"
	"github.com/sam247/disclosurely-sub001/internal/util"
)

func PostCreateReportRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Reports.POST("", postCreateReportHandler(s))
}

func postCreateReportHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostReportPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		result, err := s.ReportService.Submit(ctx, &report.SubmitRequest{
			OrgLinkToken:     *body.OrgLinkToken,
			ClientIdentifier: util.ClientIdentifier(c.Request()),
			Title:            *body.Title,
			Description:      *body.Description,
			Type:             body.Type,
			Priority:         body.Priority,
			Tags:             body.Tags,
		})
		if err != nil {
			var rateLimited *report.RateLimitedError
			switch {
			case errors.As(err, &rateLimited):
				middleware.SetRateLimitHeaders(c, rateLimited.Decision)
				c.Response().Header().Set("Retry-After", middleware.RetryAfterValue(rateLimited.Decision, s.Clock.Now()))
				return httperrors.NewHTTPError(http.StatusTooManyRequests, types.PublicHTTPErrorTypeGeneric, "Too many submissions, please try again later")
			case errors.Is(err, report.ErrInvalidRequest):
				// Identical answer for unknown and disabled link tokens.
				return httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Invalid request")
			case errors.Is(err, crypto.ErrConfiguration), errors.Is(err, report.ErrPersistence):
				return httperrors.NewHTTPErrorWithInternal(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Submission failed, please try again", err)
			default:
				log.Error().Err(err).Msg("Failed to submit report")
				return httperrors.NewHTTPErrorWithInternal(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Submission failed, please try again", err)
			}
		}

		createdAt := strfmt.DateTime(result.CreatedAt)
		response := &types.PostReportResponse{
			TrackingID: swag.String(result.TrackingID),
			Status:     swag.String(result.Status),
			CreatedAt:  &createdAt,
		}

		return util.ValidateAndReturn(c, http.StatusCreated, response)
	}
}
