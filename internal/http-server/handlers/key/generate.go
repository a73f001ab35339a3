package key

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"AgentsFood/internal/lib/api/response"
	"AgentsFood/internal/lib/sl"
)

type Core interface {
	GenerateApiKey(username string) (string, error)
}

// Generate issues a fresh API key bound to a username.
func Generate(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.key")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req struct {
			Username string `json:"username"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		if req.Username == "" {
			logger.Error("no username provided")
			render.JSON(w, r, response.Error("No username provided"))
			return
		}

		apiKey, err := handler.GenerateApiKey(req.Username)
		if err != nil {
			logger.Error("generate api key", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to generate key"))
			return
		}
		logger.With(slog.String("username", req.Username)).Debug("api key generated")

		render.JSON(w, r, response.Ok(map[string]string{"key": apiKey}))
	}
}
