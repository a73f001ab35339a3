package whatsapp

import (
	"context"

	"AgentsFood/entity"
)

type Core interface {
	SendManualMessage(ctx context.Context, establishmentID, to, text string) error
	GetWhatsAppStats(ctx context.Context, establishmentID string) (*entity.WhatsAppStats, error)
}
