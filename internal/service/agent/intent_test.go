package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AgentsFood/entity"
)

func menuFixture() *entity.Establishment {
	return &entity.Establishment{
		ID:   "est-1",
		Name: "Lanchonete do Zé",
		Products: []entity.Product{
			{ID: "p1", Name: "X-Burger", Price: 15.90, Available: true},
			{ID: "p2", Name: "X-Salada", Price: 17.50, Available: true},
			{ID: "p3", Name: "Coca-Cola", Price: 6.00, Available: true},
		},
	}
}

func TestNormalizeStripsAccents(t *testing.T) {
	assert.Equal(t, "ola, qual o cardapio?", Normalize("Olá, qual o cardápio?"))
	assert.Equal(t, "acai com granola", Normalize("Açaí com granola"))
}

func TestClassifyAccentedAndPlainAgree(t *testing.T) {
	est := menuFixture()

	accented := Classify("Olá, qual o cardápio?", est)
	plain := Classify("ola qual o cardapio", est)

	assert.Equal(t, accented.Type, plain.Type)
	assert.Equal(t, entity.IntentGreeting, accented.Type)
}

func TestClassifyGreetingWinsOverMenu(t *testing.T) {
	est := menuFixture()

	intent := Classify("Oi, cardápio?", est)

	assert.Equal(t, entity.IntentGreeting, intent.Type)
	assert.Equal(t, 0.9, intent.Confidence)
}

func TestClassifyMenuWinsOverOrderKeyword(t *testing.T) {
	est := menuFixture()

	intent := Classify("quero ver o cardápio", est)

	assert.Equal(t, entity.IntentMenuRequest, intent.Type)
}

func TestClassifyProductInquiry(t *testing.T) {
	est := menuFixture()

	intent := Classify("me fala do x-burger", est)

	require.Equal(t, entity.IntentProductInquiry, intent.Type)
	assert.Equal(t, "X-Burger", intent.Entities.ProductName)
}

func TestClassifyProductFirstMatchInMenuOrder(t *testing.T) {
	// The lookup takes the first product in menu order whose name appears
	// in the message, even when a longer name fits better.
	est := &entity.Establishment{
		Products: []entity.Product{
			{ID: "p1", Name: "Burger", Available: true},
			{ID: "p2", Name: "X-Burger", Available: true},
		},
	}

	intent := Classify("me fala do x-burger", est)

	require.Equal(t, entity.IntentProductInquiry, intent.Type)
	assert.Equal(t, "Burger", intent.Entities.ProductName)
}

func TestClassifyOrderWithQuantity(t *testing.T) {
	est := menuFixture()

	intent := Classify("quero 2x x-burger", est)

	require.Equal(t, entity.IntentOrderItem, intent.Type)
	assert.Equal(t, "X-Burger", intent.Entities.ProductName)
	assert.Equal(t, 2, intent.Entities.Quantity)
	assert.Empty(t, intent.Entities.Modifications)
}

func TestClassifyOrderUnitQuantity(t *testing.T) {
	est := menuFixture()

	intent := Classify("queria 3 unidades de coca-cola", est)

	require.Equal(t, entity.IntentOrderItem, intent.Type)
	assert.Equal(t, 3, intent.Entities.Quantity)
}

func TestClassifyOrderDefaultsQuantityToOne(t *testing.T) {
	est := menuFixture()

	intent := Classify("quero x-salada", est)

	require.Equal(t, entity.IntentOrderItem, intent.Type)
	assert.Equal(t, 1, intent.Entities.Quantity)
}

func TestClassifyOrderModifications(t *testing.T) {
	est := menuFixture()

	intent := Classify("quero x-salada sem cebola", est)
	require.Equal(t, entity.IntentOrderItem, intent.Type)
	assert.Equal(t, []string{"sem cebola"}, intent.Entities.Modifications)

	intent = Classify("pode ser um x-burger com bacon", est)
	require.Equal(t, entity.IntentOrderItem, intent.Type)
	assert.Equal(t, []string{"com bacon"}, intent.Entities.Modifications)
}

func TestClassifyOrderUnknownProductKeepsAskedName(t *testing.T) {
	est := menuFixture()

	intent := Classify("quero um hamburguer de unicornio", est)

	require.Equal(t, entity.IntentOrderItem, intent.Type)
	assert.Equal(t, "hamburguer de unicornio", intent.Entities.ProductName)
}

func TestClassifyContactInfo(t *testing.T) {
	est := menuFixture()

	intent := Classify("qual o endereço de vocês?", est)

	assert.Equal(t, entity.IntentContactInfo, intent.Type)
}

func TestClassifyOther(t *testing.T) {
	est := menuFixture()

	intent := Classify("asdf qwerty", est)

	assert.Equal(t, entity.IntentOther, intent.Type)
	assert.Equal(t, 0.5, intent.Confidence)
}
