package core

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AgentsFood/entity"
)

type repoMock struct {
	messages      []entity.Message
	saveErr       error
	establishment *entity.Establishment
	conversations []entity.Conversation
	keyErr        error
}

func (r *repoMock) CheckApiKey(string) (string, error) {
	if r.keyErr != nil {
		return "", r.keyErr
	}
	return "dashboard", nil
}

func (r *repoMock) GenerateApiKey(string) (string, error) { return "new-key", nil }

func (r *repoMock) GetEstablishmentByPhoneNumberID(_ context.Context, phoneNumberID string) (*entity.Establishment, error) {
	if r.establishment != nil && r.establishment.WhatsAppPhoneNumberID == phoneNumberID {
		return r.establishment, nil
	}
	return nil, nil
}

func (r *repoMock) SaveMessage(_ context.Context, message entity.Message) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.messages = append(r.messages, message)
	return nil
}

func (r *repoMock) GetMessages(_ context.Context, conversationID string) ([]entity.Message, error) {
	var out []entity.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *repoMock) CountMessages(context.Context, string) (int64, error) {
	return int64(len(r.messages)), nil
}

func (r *repoMock) GetConversation(_ context.Context, id string) (*entity.Conversation, error) {
	for i := range r.conversations {
		if r.conversations[i].ID == id {
			return &r.conversations[i], nil
		}
	}
	return nil, nil
}

func (r *repoMock) ListConversations(_ context.Context, _ string, page, limit int) ([]entity.Conversation, int64, error) {
	return r.conversations, int64(len(r.conversations)), nil
}

func (r *repoMock) CountConversations(context.Context, string, time.Time) (int64, error) {
	return int64(len(r.conversations)), nil
}

type conversationsStub struct {
	conv *entity.Conversation
	err  error
}

func (s *conversationsStub) GetOrCreate(context.Context, string, string, string, string) (*entity.Conversation, error) {
	return s.conv, s.err
}

type agentStub struct {
	reply string
	err   error
}

func (a *agentStub) GenerateResponse(context.Context, string, *entity.Conversation) (string, error) {
	return a.reply, a.err
}

type transportStub struct {
	sent []string
	err  error
}

func (t *transportStub) SendMessage(_, text string) error {
	if t.err != nil {
		return t.err
	}
	t.sent = append(t.sent, text)
	return nil
}

type hubStub struct {
	events []entity.Message
}

func (h *hubStub) BroadcastMessage(message entity.Message) {
	h.events = append(h.events, message)
}

func testCore(repo *repoMock, conversations *conversationsStub, agent *agentStub) (*Core, *hubStub) {
	hub := &hubStub{}
	c := New(slog.New(slog.DiscardHandler))
	c.SetRepository(repo)
	c.SetConversations(conversations)
	c.SetAgent(agent)
	c.SetEventHub(hub)
	return c, hub
}

func testConv() *entity.Conversation {
	return &entity.Conversation{ID: "conv-1", ChannelID: "5511999999999", EstablishmentID: "est-1"}
}

func TestHandleInboundLogsExchange(t *testing.T) {
	repo := &repoMock{}
	c, hub := testCore(repo, &conversationsStub{conv: testConv()}, &agentStub{reply: "Olá!"})

	reply := c.HandleInbound(context.Background(), "Oi", "5511999999999", "est-1", "5511999999999", "Maria")

	assert.Equal(t, "Olá!", reply)

	require.Len(t, repo.messages, 2)
	assert.Equal(t, entity.DirectionInbound, repo.messages[0].Direction)
	assert.Equal(t, "Oi", repo.messages[0].Content)
	assert.Equal(t, entity.DirectionOutbound, repo.messages[1].Direction)
	assert.Equal(t, "Olá!", repo.messages[1].Content)
	assert.Equal(t, "conv-1", repo.messages[0].ConversationID)

	assert.Len(t, hub.events, 2)
}

func TestHandleInboundAgentErrorYieldsApology(t *testing.T) {
	repo := &repoMock{}
	c, _ := testCore(repo, &conversationsStub{conv: testConv()}, &agentStub{err: errors.New("boom")})

	reply := c.HandleInbound(context.Background(), "Oi", "5511999999999", "est-1", "5511999999999", "")

	assert.Equal(t, errorResponse, reply)

	// The apology is still logged as the outbound side of the exchange.
	require.Len(t, repo.messages, 2)
	assert.Equal(t, errorResponse, repo.messages[1].Content)
}

func TestHandleInboundConversationErrorYieldsApology(t *testing.T) {
	repo := &repoMock{}
	c, _ := testCore(repo, &conversationsStub{err: errors.New("mongo down")}, &agentStub{reply: "ok"})

	reply := c.HandleInbound(context.Background(), "Oi", "5511999999999", "est-1", "5511999999999", "")

	assert.Equal(t, errorResponse, reply)
	assert.Empty(t, repo.messages)
}

func TestHandleInboundMessageLogFailureDoesNotBreakTurn(t *testing.T) {
	repo := &repoMock{saveErr: errors.New("disk full")}
	c, hub := testCore(repo, &conversationsStub{conv: testConv()}, &agentStub{reply: "Olá!"})

	reply := c.HandleInbound(context.Background(), "Oi", "5511999999999", "est-1", "5511999999999", "")

	assert.Equal(t, "Olá!", reply)
	assert.Empty(t, hub.events)
}

func TestComposeResponseDefaultsChannel(t *testing.T) {
	repo := &repoMock{}
	c, _ := testCore(repo, &conversationsStub{conv: testConv()}, &agentStub{reply: "resposta"})

	reply, err := c.ComposeResponse(context.Background(), "est-1", "", "mensagem")
	require.NoError(t, err)

	assert.Equal(t, "resposta", reply)
	assert.Len(t, repo.messages, 2)
}

func TestComposeResponseSurfacesAgentError(t *testing.T) {
	c, _ := testCore(&repoMock{}, &conversationsStub{conv: testConv()}, &agentStub{err: errors.New("boom")})

	_, err := c.ComposeResponse(context.Background(), "est-1", "test", "mensagem")
	assert.Error(t, err)
}

func TestRecordInboundSavesPlaceholder(t *testing.T) {
	repo := &repoMock{}
	c, hub := testCore(repo, &conversationsStub{conv: testConv()}, &agentStub{})

	c.RecordInbound(context.Background(), "5511999999999", "est-1", "5511999999999", "", "[Imagem enviada]")

	require.Len(t, repo.messages, 1)
	assert.Equal(t, entity.DirectionInbound, repo.messages[0].Direction)
	assert.Equal(t, "[Imagem enviada]", repo.messages[0].Content)
	assert.Len(t, hub.events, 1)
}

func TestSendManualMessageSendsAndLogs(t *testing.T) {
	repo := &repoMock{}
	transport := &transportStub{}
	c, _ := testCore(repo, &conversationsStub{conv: testConv()}, &agentStub{})
	c.SetTransport(transport)

	err := c.SendManualMessage(context.Background(), "est-1", "5511999999999", "Seu pedido saiu para entrega!")
	require.NoError(t, err)

	require.Len(t, transport.sent, 1)
	require.Len(t, repo.messages, 1)
	assert.Equal(t, entity.DirectionOutbound, repo.messages[0].Direction)
}

func TestSendManualMessageTransportErrorSkipsLog(t *testing.T) {
	repo := &repoMock{}
	transport := &transportStub{err: errors.New("graph api 403")}
	c, _ := testCore(repo, &conversationsStub{conv: testConv()}, &agentStub{})
	c.SetTransport(transport)

	err := c.SendManualMessage(context.Background(), "est-1", "5511999999999", "texto")
	assert.Error(t, err)
	assert.Empty(t, repo.messages)
}

func TestResolveEstablishmentID(t *testing.T) {
	repo := &repoMock{establishment: &entity.Establishment{ID: "est-1", WhatsAppPhoneNumberID: "123456"}}
	c, _ := testCore(repo, &conversationsStub{}, &agentStub{})

	id, err := c.ResolveEstablishmentID(context.Background(), "123456")
	require.NoError(t, err)
	assert.Equal(t, "est-1", id)

	_, err = c.ResolveEstablishmentID(context.Background(), "999999")
	assert.Error(t, err)
}

func TestCheckApiKeyPrefersListenKey(t *testing.T) {
	c, _ := testCore(&repoMock{keyErr: errors.New("not found")}, &conversationsStub{}, &agentStub{})
	c.SetAuthKey("master-key")

	username, err := c.CheckApiKey("master-key")
	require.NoError(t, err)
	assert.Equal(t, "admin", username)

	_, err = c.CheckApiKey("wrong")
	assert.Error(t, err)
}

func TestGetConversationLogScopedToEstablishment(t *testing.T) {
	repo := &repoMock{
		conversations: []entity.Conversation{{ID: "conv-1", EstablishmentID: "est-1"}},
		messages: []entity.Message{
			{ID: "m1", ConversationID: "conv-1", Direction: entity.DirectionInbound, Content: "Oi"},
		},
	}
	c, _ := testCore(repo, &conversationsStub{}, &agentStub{})

	history, err := c.GetConversationLog(context.Background(), "conv-1", "est-1")
	require.NoError(t, err)
	assert.Len(t, history.Messages, 1)

	_, err = c.GetConversationLog(context.Background(), "conv-1", "est-2")
	assert.Error(t, err)
}

func TestListConversationsClampsPaging(t *testing.T) {
	repo := &repoMock{conversations: []entity.Conversation{{ID: "conv-1"}, {ID: "conv-2"}}}
	c, _ := testCore(repo, &conversationsStub{}, &agentStub{})

	page, err := c.ListConversations(context.Background(), "est-1", 0, 500)
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Limit)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 1, page.Pages)
}
