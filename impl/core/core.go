package core

import (
	"AgentsFood/entity"
	"AgentsFood/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"time"
)

type Repository interface {
	CheckApiKey(key string) (string, error)
	GenerateApiKey(username string) (string, error)

	GetEstablishmentByPhoneNumberID(ctx context.Context, phoneNumberID string) (*entity.Establishment, error)

	SaveMessage(ctx context.Context, message entity.Message) error
	GetMessages(ctx context.Context, conversationID string) ([]entity.Message, error)
	CountMessages(ctx context.Context, establishmentID string) (int64, error)

	GetConversation(ctx context.Context, id string) (*entity.Conversation, error)
	ListConversations(ctx context.Context, establishmentID string, page, limit int) ([]entity.Conversation, int64, error)
	CountConversations(ctx context.Context, establishmentID string, since time.Time) (int64, error)
}

type Conversations interface {
	GetOrCreate(ctx context.Context, channelID, establishmentID, customerPhone, customerName string) (*entity.Conversation, error)
}

type Agent interface {
	GenerateResponse(ctx context.Context, rawText string, conv *entity.Conversation) (string, error)
}

// Transport delivers outbound text to the customer's channel.
type Transport interface {
	SendMessage(recipientPhone, text string) error
}

// EventHub pushes conversation events to connected dashboard clients.
type EventHub interface {
	BroadcastMessage(message entity.Message)
}

type Core struct {
	repo          Repository
	conversations Conversations
	agent         Agent
	transport     Transport
	hub           EventHub
	locker        *ChannelLocker
	authKey       string
	log           *slog.Logger
}

func New(log *slog.Logger) *Core {
	return &Core{
		locker: NewChannelLocker(),
		log:    log.With(sl.Module("core")),
	}
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetConversations(conversations Conversations) {
	c.conversations = conversations
}

func (c *Core) SetAgent(agent Agent) {
	c.agent = agent
}

func (c *Core) SetTransport(transport Transport) {
	c.transport = transport
}

func (c *Core) SetEventHub(hub EventHub) {
	c.hub = hub
}

func (c *Core) SetAuthKey(key string) {
	c.authKey = key
}

// CheckApiKey resolves a Bearer key to a username. The configured listen
// key always maps to admin; everything else goes through the store.
func (c *Core) CheckApiKey(key string) (string, error) {
	if c.authKey != "" && key == c.authKey {
		return "admin", nil
	}
	if c.repo == nil {
		return "", fmt.Errorf("repository not initialized")
	}
	return c.repo.CheckApiKey(key)
}

// ValidateToken satisfies the websocket authenticator.
func (c *Core) ValidateToken(token string) (string, error) {
	return c.CheckApiKey(token)
}

func (c *Core) GenerateApiKey(username string) (string, error) {
	if c.repo == nil {
		return "", fmt.Errorf("repository not initialized")
	}
	return c.repo.GenerateApiKey(username)
}
