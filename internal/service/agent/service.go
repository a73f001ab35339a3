package agent

import (
	"AgentsFood/entity"
	"AgentsFood/internal/lib/sl"
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"
)

// MenuProvider loads establishments with their live menu, pre-filtered to
// active categories and available products.
type MenuProvider interface {
	GetEstablishment(ctx context.Context, id string) (*entity.Establishment, error)
}

// ConfigProvider loads the per-establishment agent configuration.
type ConfigProvider interface {
	GetAgentConfig(ctx context.Context, establishmentID string) (*entity.AgentConfig, error)
}

// Assistant is the optional LLM path. An error from Complete means the
// rule-based engine answers this turn instead.
type Assistant interface {
	Complete(ctx context.Context, systemPrompt, userMsg string, maxTokens int, temperature float32) (string, error)
	SystemPrompt(est *entity.Establishment, cfg *entity.AgentConfig) string
}

// Service runs one conversational turn: config gate, classification and
// response generation.
type Service struct {
	menu      MenuProvider
	configs   ConfigProvider
	engine    *Engine
	assistant Assistant
	validate  *validator.Validate
	log       *slog.Logger
}

func NewService(menu MenuProvider, configs ConfigProvider, engine *Engine, log *slog.Logger) *Service {
	return &Service{
		menu:     menu,
		configs:  configs,
		engine:   engine,
		validate: validator.New(),
		log:      log.With(sl.Module("agent")),
	}
}

// SetAssistant enables the LLM path.
func (s *Service) SetAssistant(assistant Assistant) {
	s.assistant = assistant
}

// GenerateResponse produces the outbound text for one inbound message on
// an already-loaded conversation. Missing establishment or inactive
// config short-circuit to a safe fallback without running the classifier.
func (s *Service) GenerateResponse(ctx context.Context, rawText string, conv *entity.Conversation) (string, error) {
	cfg, err := s.configs.GetAgentConfig(ctx, conv.EstablishmentID)
	if err != nil {
		return "", err
	}
	if cfg == nil || !cfg.Active {
		if cfg != nil && cfg.FallbackMessage != "" {
			return cfg.FallbackMessage, nil
		}
		return agentUnavailable, nil
	}
	if err := s.validate.Struct(cfg); err != nil {
		s.log.With(
			slog.String("establishment_id", conv.EstablishmentID),
			sl.Err(err),
		).Warn("agent config invalid, applying defaults")
		defaults := entity.DefaultAgentConfig(conv.EstablishmentID)
		defaults.WelcomeMessage = cfg.WelcomeMessage
		defaults.FallbackMessage = cfg.FallbackMessage
		defaults.Active = cfg.Active
		cfg = defaults
	}

	est, err := s.menu.GetEstablishment(ctx, conv.EstablishmentID)
	if err != nil {
		return "", err
	}
	if est == nil {
		if cfg.FallbackMessage != "" {
			return cfg.FallbackMessage, nil
		}
		return establishmentGone, nil
	}

	intent := Classify(rawText, est)

	s.log.With(
		slog.String("conversation_id", conv.ID),
		slog.String("intent", string(intent.Type)),
		slog.Float64("confidence", intent.Confidence),
	).Debug("message classified")

	// Messages the rule set cannot place go to the LLM when one is
	// configured; any failure there falls back to the rule-based reply.
	if intent.Type == entity.IntentOther && s.assistant != nil {
		text, err := s.askAssistant(ctx, rawText, est, cfg)
		if err == nil && text != "" {
			return text, nil
		}
		if err != nil {
			s.log.With(
				slog.String("conversation_id", conv.ID),
				sl.Err(err),
			).Warn("assistant failed, using rule-based reply")
		}
	}

	return s.engine.Respond(ctx, intent, est, cfg, conv)
}

func (s *Service) askAssistant(ctx context.Context, rawText string, est *entity.Establishment, cfg *entity.AgentConfig) (string, error) {
	maxTokens := cfg.MaxResponseLength
	if maxTokens <= 0 {
		maxTokens = 300
	}
	maxTokens = min(maxTokens, 500)

	temperature := float32(0.7)
	if cfg.Tone == entity.ToneProfessional {
		temperature = 0.3
	}

	return s.assistant.Complete(ctx, s.assistant.SystemPrompt(est, cfg), rawText, maxTokens, temperature)
}
