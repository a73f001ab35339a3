package api

import (
	"AgentsFood/bot/whatsapp"
	"AgentsFood/internal/config"
	"AgentsFood/internal/http-server/handlers/agent"
	"AgentsFood/internal/http-server/handlers/conversation"
	"AgentsFood/internal/http-server/handlers/errors"
	"AgentsFood/internal/http-server/handlers/key"
	whatsapphandler "AgentsFood/internal/http-server/handlers/whatsapp"
	"AgentsFood/internal/http-server/middleware/authenticate"
	"AgentsFood/internal/http-server/middleware/timeout"
	"AgentsFood/internal/lib/sl"
	"AgentsFood/internal/ws"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net"
	"net/http"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	ws.Authenticator
	agent.Core
	conversation.Core
	whatsapphandler.Core
	key.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler, bot *whatsapp.WhatsAppBot, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	// Graph API webhook endpoints carry their own verification and
	// signature checks, so they bypass the api key middleware.
	if bot != nil {
		router.Get("/webhook", whatsapphandler.WebhookVerify(log, bot))
		router.Post("/webhook", whatsapphandler.WebhookHandler(log, bot))
	}

	if hub != nil {
		router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
			ws.ServeWs(hub, handler, log, w, r)
		})
	}

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(timeout.Timeout(5))
		v1.Use(render.SetContentType(render.ContentTypeJSON))
		v1.Use(authenticate.New(log, handler))

		v1.Route("/agent", func(r chi.Router) {
			r.Post("/response", agent.ComposeResponse(log, handler))
		})
		v1.Route("/conversations", func(r chi.Router) {
			r.Get("/", conversation.List(log, handler))
			r.Get("/{id}/messages", conversation.Messages(log, handler))
		})
		v1.Route("/whatsapp", func(r chi.Router) {
			r.Post("/send", whatsapphandler.SendMsg(log, handler))
			r.Get("/stats", whatsapphandler.Stats(log, handler))
		})
		v1.Route("/key", func(r chi.Router) {
			r.Post("/new", key.Generate(log, handler))
		})
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
