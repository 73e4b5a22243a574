package messages

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
	"github.com/sam247/disclosurely-sub001/internal/disclosure/message"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/report"
	"github.com/sam247/disclosurely-sub001/internal/types"
	"github.com/sam247/disclosurely-sub001/internal/util"
)

func PostCreateMessageRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Messages.POST("", postCreateMessageHandler(s))
}

func postCreateMessageHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		trackingID := c.Param("trackingId")
		if trackingID == "" {
			return httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Invalid request")
		}

		var body types.PostMessagePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		sender := body.Sender
		if sender == "" {
			sender = types.MessageSenderReporter
		}

		item, err := s.MessageService.Send(ctx, &message.SendRequest{
			TrackingID: trackingID,
			Sender:     sender,
			Body:       *body.Body,
		})
		if err != nil {
			var rateLimited *report.RateLimitedError
			switch {
			case errors.As(err, &rateLimited):
				middleware.SetRateLimitHeaders(c, rateLimited.Decision)
				c.Response().Header().Set("Retry-After", middleware.RetryAfterValue(rateLimited.Decision, s.Clock.Now()))
				return httperrors.NewHTTPError(http.StatusTooManyRequests, types.PublicHTTPErrorTypeGeneric, "Too many messages, please try again later")
			case errors.Is(err, message.ErrInvalidRequest):
				return httperrors.NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeGeneric, "Report not found")
			case errors.Is(err, crypto.ErrConfiguration), errors.Is(err, report.ErrPersistence):
				return httperrors.NewHTTPErrorWithInternal(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Message could not be sent", err)
			default:
				log.Error().Err(err).Msg("Failed to send message")
				return httperrors.NewHTTPErrorWithInternal(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Message could not be sent", err)
			}
		}

		createdAt := strfmt.DateTime(item.CreatedAt)
		response := &types.MessageItem{
			ID:        swag.String(item.ID),
			Sender:    swag.String(item.Sender),
			Body:      swag.String(item.Body),
			CreatedAt: &createdAt,
		}

		return util.ValidateAndReturn(c, http.StatusCreated, response)
	}
}
