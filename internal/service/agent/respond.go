package agent

import (
	"AgentsFood/entity"
	"AgentsFood/internal/lib/sl"
	"AgentsFood/internal/service/conversation"
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"
)

// recentWindow is how long a conversation counts as warm for the
// "welcome back" greeting.
const recentWindow = 30 * time.Minute

const defaultMenuLength = 1000

// Conversations is the slice of the conversation service the responder
// needs: context transitions and the cart.
type Conversations interface {
	UpdateContext(ctx context.Context, conversationID string, patch entity.ContextPatch) (*entity.Conversation, error)
	AddToOrder(ctx context.Context, conversationID string, product entity.Product, quantity int, modifications []string) (*entity.CurrentOrder, error)
}

// Engine turns a classified intent into the outbound reply, persisting the
// matching context transition before returning the text.
type Engine struct {
	conversations Conversations
	pick          func(n int) int
	now           func() time.Time
	log           *slog.Logger
}

func NewEngine(conversations Conversations, log *slog.Logger) *Engine {
	return &Engine{
		conversations: conversations,
		pick:          rand.IntN,
		now:           time.Now,
		log:           log.With(sl.Module("agent.engine")),
	}
}

// SetPick replaces the phrase picker. Tests pin it to a constant index.
func (e *Engine) SetPick(pick func(n int) int) {
	e.pick = pick
}

// SetNow replaces the clock.
func (e *Engine) SetNow(now func() time.Time) {
	e.now = now
}

// Respond dispatches the intent to its handler. The returned error is a
// turn-level failure (persistence broke); conversational misses like an
// unknown product resolve to a reply, never an error.
func (e *Engine) Respond(ctx context.Context, intent entity.MessageIntent, est *entity.Establishment, cfg *entity.AgentConfig, conv *entity.Conversation) (string, error) {
	switch intent.Type {
	case entity.IntentGreeting:
		return e.handleGreeting(ctx, est, cfg, conv)
	case entity.IntentMenuRequest:
		return e.handleMenuRequest(ctx, est, cfg, conv)
	case entity.IntentProductInquiry:
		return e.handleProductInquiry(ctx, intent.Entities.ProductName, est, conv)
	case entity.IntentOrderItem:
		return e.handleOrderItem(ctx, intent.Entities, est, conv)
	case entity.IntentContactInfo:
		return e.handleContactInfo(est), nil
	default:
		return e.handleGeneral(cfg), nil
	}
}

func (e *Engine) handleGreeting(ctx context.Context, est *entity.Establishment, cfg *entity.AgentConfig, conv *entity.Conversation) (string, error) {
	state, _ := entity.StateForIntent(entity.IntentGreeting)
	shown := true
	if _, err := e.conversations.UpdateContext(ctx, conv.ID, entity.ContextPatch{
		State:         &state,
		GreetingShown: &shown,
	}); err != nil {
		return "", err
	}

	// Recency is judged against the context as it was before this turn.
	if conv.Context.GreetingShown && conversation.IsRecentInteraction(conv.Context, recentWindow, e.now()) {
		return e.randomVariation(welcomeBackVariations) + menuPromptSuffix, nil
	}

	greeting := cfg.WelcomeMessage
	if strings.TrimSpace(greeting) == "" {
		greeting = e.randomVariation(greetingVariations)
	}
	greeting = strings.ReplaceAll(greeting, "{establishment}", est.Name)
	greeting = strings.ReplaceAll(greeting, "{name}", "")

	return greeting + " " + e.randomVariation(menuPromptVariations), nil
}

func (e *Engine) handleMenuRequest(ctx context.Context, est *entity.Establishment, cfg *entity.AgentConfig, conv *entity.Conversation) (string, error) {
	state, _ := entity.StateForIntent(entity.IntentMenuRequest)
	shown := true
	if _, err := e.conversations.UpdateContext(ctx, conv.ID, entity.ContextPatch{
		State:     &state,
		MenuShown: &shown,
	}); err != nil {
		return "", err
	}

	categories := est.ActiveCategories()
	if len(categories) == 0 {
		return noProductsReply, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ **Cardápio %s**\n\n", est.Name)

	if len(categories) == 1 {
		products := est.AvailableProductsIn(categories[0].ID)
		if len(products) > 8 {
			products = products[:8]
		}

		fmt.Fprintf(&b, "**%s:**\n", categories[0].Name)
		for _, product := range products {
			fmt.Fprintf(&b, "🔹 **%s** - R$ %.2f\n", product.Name, product.Price)
			if product.Description != "" {
				fmt.Fprintf(&b, "   %s\n", product.Description)
			}
		}
	} else {
		b.WriteString("Escolha uma categoria:\n\n")
		for i, category := range categories {
			count := len(est.AvailableProductsIn(category.ID))
			fmt.Fprintf(&b, "%d. **%s** (%d itens)\n", i+1, category.Name, count)
			if category.Description != "" {
				fmt.Fprintf(&b, "   %s\n", category.Description)
			}
		}
		b.WriteString("\nDigite o número ou nome da categoria que deseja ver! 📋")
	}

	limit := cfg.MaxResponseLength
	if limit <= 0 {
		limit = defaultMenuLength
	}
	return truncate(b.String(), limit), nil
}

func (e *Engine) handleProductInquiry(ctx context.Context, productName string, est *entity.Establishment, conv *entity.Conversation) (string, error) {
	if productName == "" {
		return askProductInquiry, nil
	}

	product := findAvailable(est.Products, productName)
	if product == nil {
		return fmt.Sprintf("Não encontrei \"%s\" em nosso cardápio. Gostaria de ver nossos produtos disponíveis? 📋", productName), nil
	}

	state, _ := entity.StateForIntent(entity.IntentProductInquiry)
	if _, err := e.conversations.UpdateContext(ctx, conv.ID, entity.ContextPatch{State: &state}); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔹 **%s** - R$ %.2f\n", product.Name, product.Price)
	if product.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", product.Description)
	}

	return b.String() + e.randomVariation(inquiryPromptVariations), nil
}

func (e *Engine) handleOrderItem(ctx context.Context, entities entity.IntentEntities, est *entity.Establishment, conv *entity.Conversation) (string, error) {
	if entities.ProductName == "" {
		return askProductForOrder, nil
	}

	quantity := entities.Quantity
	if quantity < 1 {
		quantity = 1
	}

	product := findAvailable(est.Products, entities.ProductName)
	if product == nil {
		return fmt.Sprintf("Desculpe, não temos \"%s\" disponível. Gostaria de ver nosso cardápio? 📋", entities.ProductName), nil
	}

	if _, err := e.conversations.AddToOrder(ctx, conv.ID, *product, quantity, entities.Modifications); err != nil {
		return "", err
	}

	state, _ := entity.StateForIntent(entity.IntentOrderItem)
	if _, err := e.conversations.UpdateContext(ctx, conv.ID, entity.ContextPatch{State: &state}); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Adicionei **%dx %s** ao seu pedido!\n", quantity, product.Name)
	if len(entities.Modifications) > 0 {
		fmt.Fprintf(&b, "Observações: %s\n", strings.Join(entities.Modifications, ", "))
	}
	fmt.Fprintf(&b, "Valor: R$ %.2f\n\n", product.Price*float64(quantity))

	return b.String() + e.randomVariation(continueVariations), nil
}

func (e *Engine) handleContactInfo(est *entity.Establishment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📞 **Contato - %s**\n\n", est.Name)

	if est.Phone != "" {
		fmt.Fprintf(&b, "📱 Telefone: %s\n", est.Phone)
	}
	if est.Address != "" {
		fmt.Fprintf(&b, "📍 Endereço: %s\n", est.Address)
	}
	if est.Phone == "" && est.Address == "" {
		b.WriteString(noContactInfo)
	}

	return b.String()
}

func (e *Engine) handleGeneral(cfg *entity.AgentConfig) string {
	pool := append([]string{cfg.FallbackMessage}, fallbackVariations...)
	return e.randomVariation(pool) + menuPromptSuffix
}

// randomVariation picks one non-blank phrase from the pool.
func (e *Engine) randomVariation(pool []string) string {
	valid := pool[:0:0]
	for _, phrase := range pool {
		if strings.TrimSpace(phrase) != "" {
			valid = append(valid, phrase)
		}
	}
	if len(valid) == 0 {
		return helpFallback
	}
	return valid[e.pick(len(valid))]
}

// findAvailable applies the engine's lookup rule: first available product
// whose lowercased name contains the asked name.
func findAvailable(products []entity.Product, name string) *entity.Product {
	needle := strings.ToLower(name)
	for i := range products {
		if products[i].Available && strings.Contains(strings.ToLower(products[i].Name), needle) {
			return &products[i]
		}
	}
	return nil
}

// truncate hard-cuts the reply at limit characters, not word-aware.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
