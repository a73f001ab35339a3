package whatsapp

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"AgentsFood/internal/lib/api/response"
	"AgentsFood/internal/lib/sl"
)

// Stats returns messaging totals for an establishment.
func Stats(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.whatsapp")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("whatsapp stats not available")
			render.JSON(w, r, response.Error("WhatsApp stats not available"))
			return
		}

		establishmentID := r.URL.Query().Get("establishment_id")
		if establishmentID == "" {
			logger.Error("no establishment_id provided")
			render.JSON(w, r, response.Error("establishment_id is required"))
			return
		}

		stats, err := handler.GetWhatsAppStats(r.Context(), establishmentID)
		if err != nil {
			logger.Error("collecting stats", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to collect stats"))
			return
		}
		logger.Debug("stats collected")

		render.JSON(w, r, response.Ok(stats))
	}
}
