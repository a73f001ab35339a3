package entity

import "time"

// ConversationState tracks where the customer is in the dialogue.
type ConversationState string

const (
	StateGreeting        ConversationState = "greeting"
	StateBrowsingMenu    ConversationState = "browsing_menu"
	StateViewingCategory ConversationState = "viewing_category"
	StateOrdering        ConversationState = "ordering"
	StateConfirmingOrder ConversationState = "confirming_order"
	StateIdle            ConversationState = "idle"
)

// Valid reports whether s is one of the known conversation states.
func (s ConversationState) Valid() bool {
	switch s {
	case StateGreeting, StateBrowsingMenu, StateViewingCategory,
		StateOrdering, StateConfirmingOrder, StateIdle:
		return true
	}
	return false
}

// ConversationContext is the per-conversation dialogue state. It is stored
// as a typed document, not a free-form blob.
type ConversationContext struct {
	State               ConversationState `json:"state" bson:"state"`
	CurrentCategory     string            `json:"current_category,omitempty" bson:"current_category,omitempty"`
	LastInteractionTime time.Time         `json:"last_interaction_time" bson:"last_interaction_time"`
	GreetingShown       bool              `json:"greeting_shown" bson:"greeting_shown"`
	MenuShown           bool              `json:"menu_shown" bson:"menu_shown"`
}

// DefaultContext is the context a brand-new conversation starts with.
func DefaultContext(now time.Time) ConversationContext {
	return ConversationContext{
		State:               StateGreeting,
		LastInteractionTime: now,
	}
}

// ContextPatch is a partial update to a ConversationContext. Nil fields
// leave the current value untouched.
type ContextPatch struct {
	State           *ConversationState
	CurrentCategory *string
	GreetingShown   *bool
	MenuShown       *bool
}

// Merge applies the patch on top of c and stamps the interaction time.
func (c ConversationContext) Merge(p ContextPatch, now time.Time) ConversationContext {
	merged := c
	if p.State != nil {
		merged.State = *p.State
	}
	if p.CurrentCategory != nil {
		merged.CurrentCategory = *p.CurrentCategory
	}
	if p.GreetingShown != nil {
		merged.GreetingShown = *p.GreetingShown
	}
	if p.MenuShown != nil {
		merged.MenuShown = *p.MenuShown
	}
	merged.LastInteractionTime = now
	return merged
}

// Conversation is the ongoing interaction with one customer channel for
// one establishment. Exactly one record exists per
// {channel_id, establishment_id} pair.
type Conversation struct {
	ID              string              `json:"id" bson:"_id"`
	ChannelID       string              `json:"channel_id" bson:"channel_id"`
	EstablishmentID string              `json:"establishment_id" bson:"establishment_id"`
	CustomerPhone   string              `json:"customer_phone" bson:"customer_phone"`
	CustomerName    string              `json:"customer_name,omitempty" bson:"customer_name,omitempty"`
	Context         ConversationContext `json:"context" bson:"context"`
	CurrentOrder    *CurrentOrder       `json:"current_order,omitempty" bson:"current_order,omitempty"`
	LastMessageAt   time.Time           `json:"last_message_at" bson:"last_message_at"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
}
