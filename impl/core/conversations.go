package core

import (
	"AgentsFood/entity"
	"context"
	"fmt"
	"math"
	"time"
)

// activeWindow bounds how old the last exchange may be for a conversation
// to count as active in the stats.
const activeWindow = 24 * time.Hour

func (c *Core) ListConversations(ctx context.Context, establishmentID string, page, limit int) (*entity.ConversationPage, error) {
	if c.repo == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	conversations, total, err := c.repo.ListConversations(ctx, establishmentID, page, limit)
	if err != nil {
		return nil, err
	}

	return &entity.ConversationPage{
		Conversations: conversations,
		Page:          page,
		Limit:         limit,
		Total:         total,
		Pages:         int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// GetConversationLog returns one conversation with its full message
// history, scoped to the establishment.
func (c *Core) GetConversationLog(ctx context.Context, conversationID, establishmentID string) (*entity.ConversationLog, error) {
	if c.repo == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	conv, err := c.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil || conv.EstablishmentID != establishmentID {
		return nil, fmt.Errorf("conversation not found")
	}

	messages, err := c.repo.GetMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	return &entity.ConversationLog{
		Conversation: conv,
		Messages:     messages,
	}, nil
}

func (c *Core) GetWhatsAppStats(ctx context.Context, establishmentID string) (*entity.WhatsAppStats, error) {
	if c.repo == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	total, err := c.repo.CountConversations(ctx, establishmentID, time.Time{})
	if err != nil {
		return nil, err
	}
	active, err := c.repo.CountConversations(ctx, establishmentID, time.Now().Add(-activeWindow))
	if err != nil {
		return nil, err
	}
	messages, err := c.repo.CountMessages(ctx, establishmentID)
	if err != nil {
		return nil, err
	}

	return &entity.WhatsAppStats{
		TotalConversations:  total,
		ActiveConversations: active,
		TotalMessages:       messages,
	}, nil
}

// StatsSummary renders cross-establishment totals for the admin bot.
func (c *Core) StatsSummary(ctx context.Context) (string, error) {
	stats, err := c.GetWhatsAppStats(ctx, "")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("**Conversations:** %d\n**Active (24h):** %d\n**Messages:** %d",
		stats.TotalConversations, stats.ActiveConversations, stats.TotalMessages), nil
}
