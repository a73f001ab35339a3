package conversation

import (
	"context"

	"AgentsFood/entity"
)

type Core interface {
	ListConversations(ctx context.Context, establishmentID string, page, limit int) (*entity.ConversationPage, error)
	GetConversationLog(ctx context.Context, conversationID, establishmentID string) (*entity.ConversationLog, error)
}
