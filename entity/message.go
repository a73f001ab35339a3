package entity

import "time"

type MessageDirection string

const (
	DirectionInbound  MessageDirection = "INBOUND"
	DirectionOutbound MessageDirection = "OUTBOUND"
)

// Message is one append-only log entry of a conversation: one row per
// inbound message and one per outbound reply.
type Message struct {
	ID               string           `json:"id" bson:"_id"`
	ConversationID   string           `json:"conversation_id" bson:"conversation_id"`
	ChannelMessageID string           `json:"channel_message_id,omitempty" bson:"channel_message_id,omitempty"`
	Direction        MessageDirection `json:"direction" bson:"direction"`
	Content          string           `json:"content" bson:"content"`
	CreatedAt        time.Time        `json:"created_at" bson:"created_at"`
}
