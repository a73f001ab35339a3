package agent

import "context"

type Core interface {
	ComposeResponse(ctx context.Context, establishmentID, channelID, message string) (string, error)
}
