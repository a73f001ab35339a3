package main

import (
	"AgentsFood/ai/gpt"
	"AgentsFood/bot"
	"AgentsFood/bot/whatsapp"
	"AgentsFood/impl/core"
	"AgentsFood/internal/config"
	repository "AgentsFood/internal/database"
	"AgentsFood/internal/http-server/api"
	"AgentsFood/internal/lib/logger"
	"AgentsFood/internal/lib/sl"
	"AgentsFood/internal/service/agent"
	"AgentsFood/internal/service/conversation"
	"AgentsFood/internal/ws"
	"flag"
	"log/slog"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	// Initialize Telegram bot if enabled
	var tgBot *bot.TgBot
	if conf.Telegram.Enabled {
		var err error
		tgBot, err = bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", slog.String("error", err.Error()))
		} else {
			// Set up Telegram handler for the logger
			lg = logger.SetupTelegramHandler(lg, tgBot, slog.LevelWarn)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")

			// Start the bot in a goroutine
			go func() {
				if err := tgBot.Start(); err != nil {
					lg.Error("telegram bot error", slog.String("error", err.Error()))
				}
			}()
		}
	}

	lg.Info("starting agentsfood", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	handler := core.New(lg)
	handler.SetAuthKey(conf.Listen.ApiKey)

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}

	if db != nil {
		handler.SetRepository(db)
		conversations := conversation.NewService(db, lg)
		handler.SetConversations(conversations)

		engine := agent.NewEngine(conversations, lg)
		agentService := agent.NewService(db, db, engine, lg)

		assistant := gpt.NewAssistant(conf, lg)
		if assistant != nil {
			agentService.SetAssistant(assistant)
			lg.With(
				sl.Secret("openai_key", conf.OpenAI.ApiKey),
				slog.String("model", conf.OpenAI.Model),
			).Info("assistant initialized")
		}
		handler.SetAgent(agentService)

		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("user", conf.Mongo.User),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")
	}

	hub := ws.NewHub(lg)
	go hub.Run()
	handler.SetEventHub(hub)

	whatsBot := whatsapp.NewWhatsAppBot(conf.WhatsApp.AccessToken, conf.WhatsApp.VerifyToken, conf.WhatsApp.AppSecret, lg)
	whatsBot.SetPhoneNumberID(conf.WhatsApp.PhoneNumberID)
	whatsBot.SetHandler(handler)
	handler.SetTransport(whatsBot)

	if tgBot != nil {
		tgBot.SetStats(handler)
	}

	// *** blocking start with http server ***
	err = api.New(conf, lg, handler, whatsBot, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
