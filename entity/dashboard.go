package entity

// ConversationPage is one page of an establishment's conversation list.
type ConversationPage struct {
	Conversations []Conversation `json:"conversations"`
	Page          int            `json:"page"`
	Limit         int            `json:"limit"`
	Total         int64          `json:"total"`
	Pages         int            `json:"pages"`
}

// ConversationLog is a conversation with its full message history.
type ConversationLog struct {
	Conversation *Conversation `json:"conversation"`
	Messages     []Message     `json:"messages"`
}

// WhatsAppStats summarizes messaging volume for the dashboard.
type WhatsAppStats struct {
	TotalConversations  int64 `json:"total_conversations"`
	ActiveConversations int64 `json:"active_conversations"`
	TotalMessages       int64 `json:"total_messages"`
}
