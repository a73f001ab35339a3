package conversation

import (
	"AgentsFood/entity"
	"AgentsFood/internal/lib/sl"
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence needed by the conversation service.
type Repository interface {
	GetConversationByChannel(ctx context.Context, channelID, establishmentID string) (*entity.Conversation, error)
	GetConversation(ctx context.Context, id string) (*entity.Conversation, error)
	InsertConversation(ctx context.Context, conv *entity.Conversation) error
	SaveContext(ctx context.Context, id string, context entity.ConversationContext, lastMessageAt time.Time) error
	SaveCurrentOrder(ctx context.Context, id string, order *entity.CurrentOrder) error
	SaveCustomerName(ctx context.Context, id, name string) error
}

// Service owns conversation records: lazy creation, context merges and the
// in-progress order.
type Service struct {
	repo Repository
	now  func() time.Time
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		log:  log.With(sl.Module("conversation")),
	}
}

// SetNow replaces the clock. Tests pin it to a fixed instant.
func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}

// GetOrCreate returns the single conversation for a
// {channelID, establishmentID} pair, creating it on first contact. A
// fresher customer name from the channel profile is stored on the way.
func (s *Service) GetOrCreate(ctx context.Context, channelID, establishmentID, customerPhone, customerName string) (*entity.Conversation, error) {
	conv, err := s.repo.GetConversationByChannel(ctx, channelID, establishmentID)
	if err != nil {
		return nil, err
	}

	if conv != nil {
		if customerName != "" && conv.CustomerName != customerName {
			if err := s.repo.SaveCustomerName(ctx, conv.ID, customerName); err != nil {
				s.log.With(
					slog.String("conversation_id", conv.ID),
					sl.Err(err),
				).Warn("update customer name")
			} else {
				conv.CustomerName = customerName
			}
		}
		return conv, nil
	}

	now := s.now()
	conv = &entity.Conversation{
		ID:              uuid.NewString(),
		ChannelID:       channelID,
		EstablishmentID: establishmentID,
		CustomerPhone:   customerPhone,
		CustomerName:    customerName,
		Context:         entity.DefaultContext(now),
		LastMessageAt:   now,
		CreatedAt:       now,
	}

	if err := s.repo.InsertConversation(ctx, conv); err != nil {
		return nil, err
	}

	s.log.With(
		slog.String("conversation_id", conv.ID),
		slog.String("channel_id", channelID),
		slog.String("establishment_id", establishmentID),
	).Debug("conversation created")

	return conv, nil
}

// UpdateContext merges the patch into the stored context, stamping the
// interaction time and last_message_at. A missing conversation returns
// nil, nil so callers can treat it as a no-op.
func (s *Service) UpdateContext(ctx context.Context, conversationID string, patch entity.ContextPatch) (*entity.Conversation, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, nil
	}

	now := s.now()
	merged := conv.Context.Merge(patch, now)

	if err := s.repo.SaveContext(ctx, conversationID, merged, now); err != nil {
		return nil, err
	}

	conv.Context = merged
	conv.LastMessageAt = now
	return conv, nil
}

// IsRecentInteraction reports whether the last exchange happened within
// the threshold, by wall clock.
func IsRecentInteraction(c entity.ConversationContext, threshold time.Duration, now time.Time) bool {
	return now.Sub(c.LastInteractionTime) < threshold
}
