package conversation

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"AgentsFood/internal/lib/api/response"
	"AgentsFood/internal/lib/sl"
)

// List returns a page of an establishment's conversations, most recent
// exchange first.
func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.conversation")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		establishmentID := r.URL.Query().Get("establishment_id")
		if establishmentID == "" {
			logger.Error("no establishment_id provided")
			render.JSON(w, r, response.Error("establishment_id is required"))
			return
		}

		page := 1
		limit := 20
		if p := r.URL.Query().Get("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v
			}
		}
		if l := r.URL.Query().Get("limit"); l != "" {
			if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
				limit = v
			}
		}

		result, err := handler.ListConversations(r.Context(), establishmentID, page, limit)
		if err != nil {
			logger.Error("listing conversations", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to list conversations"))
			return
		}
		logger.Debug("conversations listed", slog.Int64("total", result.Total))

		render.JSON(w, r, response.Ok(result))
	}
}
