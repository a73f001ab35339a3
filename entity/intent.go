package entity

// IntentType is the classified purpose of an inbound message.
type IntentType string

const (
	IntentGreeting       IntentType = "greeting"
	IntentMenuRequest    IntentType = "menu_request"
	IntentProductInquiry IntentType = "product_inquiry"
	IntentOrderItem      IntentType = "order_item"
	IntentContactInfo    IntentType = "contact_info"
	IntentOther          IntentType = "other"
)

// IntentEntities are the structured values extracted from the message text.
type IntentEntities struct {
	ProductName   string   `json:"product_name,omitempty"`
	CategoryName  string   `json:"category_name,omitempty"`
	Quantity      int      `json:"quantity,omitempty"`
	Modifications []string `json:"modifications,omitempty"`
}

// MessageIntent is the transient classification result for one inbound
// message. Confidence is informational only, nothing thresholds on it.
type MessageIntent struct {
	Type       IntentType     `json:"type"`
	Confidence float64        `json:"confidence"`
	Entities   IntentEntities `json:"entities"`
}

// StateForIntent is the transition table from intent to conversation
// state. The second return is false for intents that leave the state
// untouched (contact_info, other).
func StateForIntent(t IntentType) (ConversationState, bool) {
	switch t {
	case IntentGreeting:
		return StateGreeting, true
	case IntentMenuRequest:
		return StateBrowsingMenu, true
	case IntentProductInquiry:
		return StateViewingCategory, true
	case IntentOrderItem:
		return StateOrdering, true
	}
	return "", false
}
