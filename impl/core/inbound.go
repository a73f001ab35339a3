package core

import (
	"AgentsFood/entity"
	"AgentsFood/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const errorResponse = "Desculpe, ocorreu um erro. Tente novamente em alguns instantes."

// HandleInbound runs one conversational turn and returns the reply for
// the transport to deliver. Every failure path resolves to a safe
// natural-language message; the customer never sees a raw error.
func (c *Core) HandleInbound(ctx context.Context, rawText, channelID, establishmentID, customerPhone, customerName string) string {
	key := establishmentID + "/" + channelID
	c.locker.Lock(key)
	defer c.locker.Unlock(key)

	logger := c.log.With(
		slog.String("channel_id", channelID),
		slog.String("establishment_id", establishmentID),
	)

	if c.conversations == nil || c.agent == nil {
		logger.Error("conversation pipeline not initialized")
		return errorResponse
	}

	conv, err := c.conversations.GetOrCreate(ctx, channelID, establishmentID, customerPhone, customerName)
	if err != nil {
		logger.Error("get or create conversation", sl.Err(err))
		return errorResponse
	}

	reply, err := c.agent.GenerateResponse(ctx, rawText, conv)
	if err != nil {
		logger.With(
			slog.String("conversation_id", conv.ID),
			sl.Err(err),
		).Error("generate response")
		reply = errorResponse
	}

	c.logExchange(ctx, conv.ID, rawText, reply)

	logger.With(
		slog.String("conversation_id", conv.ID),
		slog.String("reply", reply),
	).Debug("turn handled")

	return reply
}

// ComposeResponse runs the same pipeline for the dashboard's agent test
// box. A generation failure surfaces as an error here, not as the
// customer-facing apology.
func (c *Core) ComposeResponse(ctx context.Context, establishmentID, channelID, message string) (string, error) {
	if c.conversations == nil || c.agent == nil {
		return "", fmt.Errorf("agent not initialized")
	}
	if channelID == "" {
		channelID = "test"
	}

	conv, err := c.conversations.GetOrCreate(ctx, channelID, establishmentID, channelID, "")
	if err != nil {
		return "", err
	}

	reply, err := c.agent.GenerateResponse(ctx, message, conv)
	if err != nil {
		return "", err
	}

	c.logExchange(ctx, conv.ID, message, reply)

	return reply, nil
}

// RecordInbound logs a message that gets no agent reply, such as a media
// placeholder.
func (c *Core) RecordInbound(ctx context.Context, channelID, establishmentID, customerPhone, customerName, content string) {
	if c.conversations == nil {
		return
	}
	conv, err := c.conversations.GetOrCreate(ctx, channelID, establishmentID, customerPhone, customerName)
	if err != nil {
		c.log.With(
			slog.String("channel_id", channelID),
			sl.Err(err),
		).Error("record inbound")
		return
	}
	c.saveMessage(ctx, entity.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		Direction:      entity.DirectionInbound,
		Content:        content,
		CreatedAt:      time.Now(),
	})
}

// SendManualMessage pushes an operator-written message out through the
// transport and logs it on the conversation. Whether the 24h template
// window still allows free-form text is the operator's call, not checked
// here.
func (c *Core) SendManualMessage(ctx context.Context, establishmentID, to, text string) error {
	if c.transport == nil {
		return fmt.Errorf("transport not initialized")
	}

	if c.conversations == nil {
		return fmt.Errorf("conversation store not initialized")
	}

	if err := c.transport.SendMessage(to, text); err != nil {
		return err
	}

	conv, err := c.conversations.GetOrCreate(ctx, to, establishmentID, to, "")
	if err != nil {
		return err
	}
	c.saveMessage(ctx, entity.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		Direction:      entity.DirectionOutbound,
		Content:        text,
		CreatedAt:      time.Now(),
	})

	return nil
}

// ResolveEstablishmentID maps a webhook phone number id to the tenant.
func (c *Core) ResolveEstablishmentID(ctx context.Context, phoneNumberID string) (string, error) {
	if c.repo == nil {
		return "", fmt.Errorf("repository not initialized")
	}
	est, err := c.repo.GetEstablishmentByPhoneNumberID(ctx, phoneNumberID)
	if err != nil {
		return "", err
	}
	if est == nil {
		return "", fmt.Errorf("establishment not found for phone number id %s", phoneNumberID)
	}
	return est.ID, nil
}

// logExchange appends the inbound and outbound rows. Log failures stay
// local: the turn already succeeded.
func (c *Core) logExchange(ctx context.Context, conversationID, inbound, outbound string) {
	now := time.Now()
	c.saveMessage(ctx, entity.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Direction:      entity.DirectionInbound,
		Content:        inbound,
		CreatedAt:      now,
	})
	c.saveMessage(ctx, entity.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Direction:      entity.DirectionOutbound,
		Content:        outbound,
		CreatedAt:      now,
	})
}

func (c *Core) saveMessage(ctx context.Context, message entity.Message) {
	if c.repo != nil {
		if err := c.repo.SaveMessage(ctx, message); err != nil {
			c.log.With(
				slog.String("conversation_id", message.ConversationID),
				sl.Err(err),
			).Error("save message")
			return
		}
	}
	if c.hub != nil {
		c.hub.BroadcastMessage(message)
	}
}
