package agent

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"AgentsFood/internal/lib/api/response"
	"AgentsFood/internal/lib/sl"
)

// ComposeResponse runs one conversational turn for a dashboard test chat
// and returns the agent's reply without sending anything to WhatsApp.
func ComposeResponse(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.agent")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("compose response not available")
			render.JSON(w, r, response.Error("Compose response not available"))
			return
		}

		var req struct {
			EstablishmentID string `json:"establishment_id"`
			ChannelID       string `json:"channel_id"`
			Message         string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		if req.Message == "" {
			logger.Error("no message provided")
			render.JSON(w, r, response.Error("No message provided"))
			return
		}
		if req.EstablishmentID == "" {
			logger.Error("no establishment_id provided")
			render.JSON(w, r, response.Error("No establishment_id provided"))
			return
		}

		logger = logger.With(slog.Any("message", req.Message))

		resp, err := handler.ComposeResponse(r.Context(), req.EstablishmentID, req.ChannelID, req.Message)
		if err != nil {
			logger.Error("compose response", sl.Err(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Compose failed: %v", err)))
			return
		}
		logger.Debug("compose response")

		render.JSON(w, r, response.Ok(resp))
	}
}
