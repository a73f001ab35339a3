package entity

const (
	ToneFriendly     = "friendly"
	ToneProfessional = "professional"
	ToneCasual       = "casual"
)

// EnabledFeatures toggles what the agent is allowed to talk about.
type EnabledFeatures struct {
	Menu         bool `json:"menu" bson:"menu"`
	Prices       bool `json:"prices" bson:"prices"`
	Availability bool `json:"availability" bson:"availability"`
	Suggestions  bool `json:"suggestions" bson:"suggestions"`
}

// AgentConfig is the per-establishment agent behaviour, managed from the
// dashboard and read-only to the conversation engine.
type AgentConfig struct {
	EstablishmentID   string          `json:"establishment_id" bson:"establishment_id"`
	WelcomeMessage    string          `json:"welcome_message" bson:"welcome_message"`
	Tone              string          `json:"tone" bson:"tone" validate:"oneof=friendly professional casual"`
	MaxResponseLength int             `json:"max_response_length" bson:"max_response_length" validate:"gte=0,lte=4000"`
	CustomPrompt      string          `json:"custom_prompt,omitempty" bson:"custom_prompt,omitempty"`
	FallbackMessage   string          `json:"fallback_message,omitempty" bson:"fallback_message,omitempty"`
	EnabledFeatures   EnabledFeatures `json:"enabled_features" bson:"enabled_features"`
	Active            bool            `json:"active" bson:"active"`
}

// DefaultAgentConfig mirrors the dashboard creation defaults.
func DefaultAgentConfig(establishmentID string) *AgentConfig {
	return &AgentConfig{
		EstablishmentID:   establishmentID,
		Tone:              ToneFriendly,
		MaxResponseLength: 500,
		EnabledFeatures: EnabledFeatures{
			Menu:         true,
			Prices:       true,
			Availability: true,
			Suggestions:  true,
		},
		Active: true,
	}
}
