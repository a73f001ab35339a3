package agent

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AgentsFood/entity"
)

var testTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// conversationsMock records the context patches and order additions the
// engine asks for.
type conversationsMock struct {
	conv    *entity.Conversation
	patches []entity.ContextPatch
	added   []entity.OrderItem
}

func (m *conversationsMock) UpdateContext(_ context.Context, _ string, patch entity.ContextPatch) (*entity.Conversation, error) {
	m.patches = append(m.patches, patch)
	// The real service hands back a fresh record; the caller's copy
	// keeps the pre-update context.
	updated := *m.conv
	updated.Context = m.conv.Context.Merge(patch, testTime)
	return &updated, nil
}

func (m *conversationsMock) AddToOrder(_ context.Context, _ string, product entity.Product, quantity int, modifications []string) (*entity.CurrentOrder, error) {
	item := entity.OrderItem{
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      quantity,
		Price:         product.Price,
		Modifications: modifications,
	}
	m.added = append(m.added, item)
	if m.conv.CurrentOrder == nil {
		m.conv.CurrentOrder = &entity.CurrentOrder{}
	}
	m.conv.CurrentOrder.Add(item)
	return m.conv.CurrentOrder, nil
}

func testEstablishment() *entity.Establishment {
	return &entity.Establishment{
		ID:   "est-1",
		Name: "Lanchonete do Zé",
		Categories: []entity.Category{
			{ID: "c1", Name: "Lanches", Active: true},
		},
		Products: []entity.Product{
			{ID: "p1", CategoryID: "c1", Name: "X-Burger", Price: 15.90, Available: true},
			{ID: "p2", CategoryID: "c1", Name: "X-Salada", Price: 17.50, Available: true},
			{ID: "p3", CategoryID: "c1", Name: "X-Bacon", Price: 19.90, Available: true},
		},
	}
}

func testEngine(conv *entity.Conversation) (*Engine, *conversationsMock) {
	mock := &conversationsMock{conv: conv}
	engine := NewEngine(mock, slog.New(slog.DiscardHandler))
	engine.SetPick(func(int) int { return 0 })
	engine.SetNow(func() time.Time { return testTime })
	return engine, mock
}

func newConversation() *entity.Conversation {
	return &entity.Conversation{
		ID:              "conv-1",
		ChannelID:       "5511999999999",
		EstablishmentID: "est-1",
		Context:         entity.DefaultContext(testTime.Add(-time.Hour)),
	}
}

func TestFirstGreetingUsesWelcomeMessage(t *testing.T) {
	est := testEstablishment()
	cfg := entity.DefaultAgentConfig(est.ID)
	cfg.WelcomeMessage = "Bem-vindo ao {establishment}!"
	conv := newConversation()
	engine, mock := testEngine(conv)

	intent := Classify("Oi", est)
	require.Equal(t, entity.IntentGreeting, intent.Type)

	reply, err := engine.Respond(context.Background(), intent, est, cfg, conv)
	require.NoError(t, err)

	assert.Equal(t, "Bem-vindo ao Lanchonete do Zé! "+menuPromptVariations[0], reply)

	require.Len(t, mock.patches, 1)
	require.NotNil(t, mock.patches[0].State)
	assert.Equal(t, entity.StateGreeting, *mock.patches[0].State)
	require.NotNil(t, mock.patches[0].GreetingShown)
	assert.True(t, *mock.patches[0].GreetingShown)
}

func TestReturningGreetingWelcomesBack(t *testing.T) {
	est := testEstablishment()
	cfg := entity.DefaultAgentConfig(est.ID)
	cfg.WelcomeMessage = "Bem-vindo ao {establishment}!"
	conv := newConversation()
	conv.Context.GreetingShown = true
	conv.Context.LastInteractionTime = testTime.Add(-5 * time.Minute)
	engine, _ := testEngine(conv)

	reply, err := engine.Respond(context.Background(), Classify("Oi", est), est, cfg, conv)
	require.NoError(t, err)

	assert.Equal(t, welcomeBackVariations[0]+menuPromptSuffix, reply)
	assert.NotContains(t, reply, "Bem-vindo ao")
}

func TestStaleGreetingFallsBackToWelcomeMessage(t *testing.T) {
	est := testEstablishment()
	cfg := entity.DefaultAgentConfig(est.ID)
	cfg.WelcomeMessage = "Bem-vindo ao {establishment}!"
	conv := newConversation()
	conv.Context.GreetingShown = true
	conv.Context.LastInteractionTime = testTime.Add(-2 * time.Hour)
	engine, _ := testEngine(conv)

	reply, err := engine.Respond(context.Background(), Classify("Oi", est), est, cfg, conv)
	require.NoError(t, err)

	assert.Contains(t, reply, "Bem-vindo ao Lanchonete do Zé!")
}

func TestMenuSingleCategoryListsProducts(t *testing.T) {
	est := testEstablishment()
	cfg := entity.DefaultAgentConfig(est.ID)
	cfg.MaxResponseLength = 1000
	conv := newConversation()
	engine, mock := testEngine(conv)

	reply, err := engine.Respond(context.Background(), Classify("cardápio", est), est, cfg, conv)
	require.NoError(t, err)

	assert.Contains(t, reply, "X-Burger")
	assert.Contains(t, reply, "R$ 15.90")
	assert.Contains(t, reply, "X-Salada")
	assert.Contains(t, reply, "X-Bacon")
	assert.NotContains(t, reply, "Escolha uma categoria")

	require.Len(t, mock.patches, 1)
	require.NotNil(t, mock.patches[0].State)
	assert.Equal(t, entity.StateBrowsingMenu, *mock.patches[0].State)
	require.NotNil(t, mock.patches[0].MenuShown)
	assert.True(t, *mock.patches[0].MenuShown)
}

func TestMenuMultipleCategoriesPromptsForChoice(t *testing.T) {
	est := testEstablishment()
	est.Categories = append(est.Categories, entity.Category{ID: "c2", Name: "Bebidas", Active: true})
	cfg := entity.DefaultAgentConfig(est.ID)
	conv := newConversation()
	engine, _ := testEngine(conv)

	reply, err := engine.Respond(context.Background(), Classify("menu", est), est, cfg, conv)
	require.NoError(t, err)

	assert.Contains(t, reply, "Escolha uma categoria")
	assert.Contains(t, reply, "Lanches")
	assert.Contains(t, reply, "Bebidas")
}

func TestMenuTruncatesAtConfiguredLength(t *testing.T) {
	est := testEstablishment()
	cfg := entity.DefaultAgentConfig(est.ID)
	cfg.MaxResponseLength = 40
	conv := newConversation()
	engine, _ := testEngine(conv)

	reply, err := engine.Respond(context.Background(), Classify("cardápio", est), est, cfg, conv)
	require.NoError(t, err)

	assert.Equal(t, 40, len([]rune(reply)))
}

func TestProductInquiryShowsDetails(t *testing.T) {
	est := testEstablishment()
	est.Products[0].Description = "Pão, hambúrguer e queijo"
	cfg := entity.DefaultAgentConfig(est.ID)
	conv := newConversation()
	engine, mock := testEngine(conv)

	reply, err := engine.Respond(context.Background(), Classify("me fala do x-burger", est), est, cfg, conv)
	require.NoError(t, err)

	assert.Contains(t, reply, "X-Burger")
	assert.Contains(t, reply, "R$ 15.90")
	assert.Contains(t, reply, "Pão, hambúrguer e queijo")
	assert.Contains(t, reply, inquiryPromptVariations[0])

	require.Len(t, mock.patches, 1)
	assert.Equal(t, entity.StateViewingCategory, *mock.patches[0].State)
}

func TestOrderItemAddsAndStatesLineValue(t *testing.T) {
	est := testEstablishment()
	cfg := entity.DefaultAgentConfig(est.ID)
	conv := newConversation()
	engine, mock := testEngine(conv)

	intent := Classify("quero 2x x-burger", est)
	require.Equal(t, entity.IntentOrderItem, intent.Type)

	reply, err := engine.Respond(context.Background(), intent, est, cfg, conv)
	require.NoError(t, err)

	require.Len(t, mock.added, 1)
	assert.Equal(t, "p1", mock.added[0].ProductID)
	assert.Equal(t, 2, mock.added[0].Quantity)
	assert.InDelta(t, 15.90, mock.added[0].Price, 1e-9)

	assert.Contains(t, reply, "2x X-Burger")
	assert.Contains(t, reply, "R$ 31.80")
	assert.Contains(t, reply, continueVariations[0])

	require.Len(t, mock.patches, 1)
	assert.Equal(t, entity.StateOrdering, *mock.patches[0].State)
}

func TestOrderItemWithModifications(t *testing.T) {
	est := testEstablishment()
	cfg := entity.DefaultAgentConfig(est.ID)
	conv := newConversation()
	engine, mock := testEngine(conv)

	reply, err := engine.Respond(context.Background(), Classify("quero x-salada sem cebola", est), est, cfg, conv)
	require.NoError(t, err)

	require.Len(t, mock.added, 1)
	assert.Equal(t, []string{"sem cebola"}, mock.added[0].Modifications)
	assert.Contains(t, reply, "Observações: sem cebola")
}

func TestOrderUnknownProductLeavesOrderUntouched(t *testing.T) {
	est := testEstablishment()
	cfg := entity.DefaultAgentConfig(est.ID)
	conv := newConversation()
	engine, mock := testEngine(conv)

	reply, err := engine.Respond(context.Background(), Classify("quero um hamburguer de unicornio", est), est, cfg, conv)
	require.NoError(t, err)

	assert.Contains(t, reply, "não temos \"hamburguer de unicornio\" disponível")
	assert.Empty(t, mock.added)
	assert.Empty(t, mock.patches)
	assert.Nil(t, conv.CurrentOrder)
}

func TestContactInfoReply(t *testing.T) {
	est := testEstablishment()
	est.Phone = "(11) 3333-4444"
	est.Address = "Rua das Flores, 10"
	cfg := entity.DefaultAgentConfig(est.ID)
	conv := newConversation()
	engine, mock := testEngine(conv)

	reply, err := engine.Respond(context.Background(), Classify("qual o telefone?", est), est, cfg, conv)
	require.NoError(t, err)

	assert.Contains(t, reply, "(11) 3333-4444")
	assert.Contains(t, reply, "Rua das Flores, 10")
	assert.Empty(t, mock.patches)
}

func TestGeneralFallbackPrefersConfiguredMessage(t *testing.T) {
	est := testEstablishment()
	cfg := entity.DefaultAgentConfig(est.ID)
	cfg.FallbackMessage = "Só atendemos pelo cardápio digital."
	conv := newConversation()
	engine, _ := testEngine(conv)

	reply, err := engine.Respond(context.Background(), Classify("xyzzy", est), est, cfg, conv)
	require.NoError(t, err)

	assert.Equal(t, "Só atendemos pelo cardápio digital."+menuPromptSuffix, reply)
}

func TestGeneralFallbackSkipsBlankConfiguredMessage(t *testing.T) {
	est := testEstablishment()
	cfg := entity.DefaultAgentConfig(est.ID)
	conv := newConversation()
	engine, _ := testEngine(conv)

	reply, err := engine.Respond(context.Background(), Classify("xyzzy", est), est, cfg, conv)
	require.NoError(t, err)

	assert.Equal(t, fallbackVariations[0]+menuPromptSuffix, reply)
}
