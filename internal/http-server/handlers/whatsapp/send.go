package whatsapp

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

// SendMsg lets an establishment operator push a message to a customer
// outside the automated flow.
func SendMsg(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.whatsapp")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("whatsapp send not available")
			render.JSON(w, r, response.Error("WhatsApp send not available"))
			return
		}

		var req struct {
			EstablishmentID string `json:"establishment_id"`
			To              string `json:"to"`
			Text            string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		if req.EstablishmentID == "" || req.To == "" || req.Text == "" {
			logger.Error("missing required fields")
			render.JSON(w, r, response.Error("establishment_id, to and text are required"))
			return
		}

		logger = logger.With(
			slog.String("establishment_id", req.EstablishmentID),
			slog.String("to", req.To),
		)

		if err := handler.SendManualMessage(r.Context(), req.EstablishmentID, req.To, req.Text); err != nil {
			logger.Error("manual send", sl.Err(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Send failed: %v", err)))
			return
		}
		logger.Debug("manual message sent")

		render.JSON(w, r, response.Ok(nil))
	}
}
