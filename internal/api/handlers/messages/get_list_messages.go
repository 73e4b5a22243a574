package messages

import (
	"errors"
	"net/http"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github.com/sam247/disclosurely-sub001/internal/api"
	"github.com/sam247/disclosurely-sub001/internal/api/httperrors"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/crypto"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/message"
	"github.com/sam247/disclosurely-sub001/internal/types"
	"github.com/sam247/disclosurely-sub001/internal/util"
)

func GetListMessagesRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Messages.GET("", getListMessagesHandler(s))
}

func getListMessagesHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		trackingID := c.Param("trackingId")
		if trackingID == "" {
			return httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Invalid request")
		}

		items, err := s.MessageService.List(ctx, trackingID)
		if err != nil {
			switch {
			case errors.Is(err, message.ErrInvalidRequest):
				return httperrors.NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeGeneric, "Report not found")
			case errors.Is(err, crypto.ErrDecryption):
				return httperrors.NewHTTPErrorWithInternal(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Messages could not be read", err)
			default:
				log.Error().Err(err).Msg("Failed to list messages")
				return httperrors.NewHTTPErrorWithInternal(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Messages could not be read", err)
			}
		}

		response := &types.GetMessagesResponse{
			Messages: make([]*types.MessageItem, 0, len(items)),
			Total:    swag.Int64(int64(len(items))),
		}
		for _, item := range items {
			createdAt := strfmt.DateTime(item.CreatedAt)
			response.Messages = append(response.Messages, &types.MessageItem{
				ID:        swag.String(item.ID),
				Sender:    swag.String(item.Sender),
				Body:      swag.String(item.Body),
				CreatedAt: &createdAt,
			})
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
