package conversation

import (
	"AgentsFood/entity"
	"context"
	"log/slog"
)

// AddToOrder puts a product snapshot into the conversation's cart,
// merging with an existing line when the modifications match exactly. The
// whole order is persisted back with its recomputed total. A missing
// conversation returns nil, nil.
func (s *Service) AddToOrder(ctx context.Context, conversationID string, product entity.Product, quantity int, modifications []string) (*entity.CurrentOrder, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, nil
	}

	if quantity < 1 {
		quantity = 1
	}

	order := conv.CurrentOrder
	if order == nil {
		order = &entity.CurrentOrder{}
	}

	order.Add(entity.OrderItem{
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      quantity,
		Price:         product.Price,
		Modifications: modifications,
	})

	if err := s.repo.SaveCurrentOrder(ctx, conversationID, order); err != nil {
		return nil, err
	}

	s.log.With(
		slog.String("conversation_id", conversationID),
		slog.String("product_id", product.ID),
		slog.Int("quantity", quantity),
		slog.Float64("total", order.TotalValue),
	).Debug("order updated")

	return order, nil
}

// ClearOrder drops the conversation's cart.
func (s *Service) ClearOrder(ctx context.Context, conversationID string) error {
	return s.repo.SaveCurrentOrder(ctx, conversationID, nil)
}
