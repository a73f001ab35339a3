package conversation

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"AgentsFood/internal/lib/api/response"
	"AgentsFood/internal/lib/sl"
)

// Messages returns the full message history of one conversation.
func Messages(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.conversation")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		conversationID := chi.URLParam(r, "id")
		establishmentID := r.URL.Query().Get("establishment_id")
		if conversationID == "" || establishmentID == "" {
			logger.Error("missing required parameters")
			render.JSON(w, r, response.Error("id and establishment_id are required"))
			return
		}

		logger = logger.With(slog.String("conversation_id", conversationID))

		history, err := handler.GetConversationLog(r.Context(), conversationID, establishmentID)
		if err != nil {
			logger.Error("loading conversation log", sl.Err(err))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Conversation not found"))
			return
		}
		logger.Debug("conversation log loaded", slog.Int("messages", len(history.Messages)))

		render.JSON(w, r, response.Ok(history))
	}
}
