package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentOrderMergesSameProductAndModifications(t *testing.T) {
	order := &CurrentOrder{}

	order.Add(OrderItem{ProductID: "P1", ProductName: "X-Burger", Quantity: 1, Price: 15.90})
	order.Add(OrderItem{ProductID: "P1", ProductName: "X-Burger", Quantity: 1, Price: 15.90})

	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	order.Add(OrderItem{ProductID: "P1", ProductName: "X-Burger", Quantity: 1, Price: 15.90, Modifications: []string{"sem cebola"}})

	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 1, order.Items[1].Quantity)
}

func TestCurrentOrderModificationOrderMatters(t *testing.T) {
	order := &CurrentOrder{}

	order.Add(OrderItem{ProductID: "P1", Quantity: 1, Price: 10, Modifications: []string{"sem cebola", "com bacon"}})
	order.Add(OrderItem{ProductID: "P1", Quantity: 1, Price: 10, Modifications: []string{"com bacon", "sem cebola"}})

	assert.Len(t, order.Items, 2)
}

func TestCurrentOrderTotalRecomputed(t *testing.T) {
	order := &CurrentOrder{}

	items := []OrderItem{
		{ProductID: "P1", Quantity: 2, Price: 15.90},
		{ProductID: "P2", Quantity: 1, Price: 8.50},
		{ProductID: "P1", Quantity: 3, Price: 15.90},
		{ProductID: "P3", Quantity: 1, Price: 12.00, Modifications: []string{"sem gelo"}},
	}

	for _, item := range items {
		order.Add(item)

		expected := 0.0
		for _, line := range order.Items {
			expected += line.Price * float64(line.Quantity)
		}
		assert.InDelta(t, expected, order.TotalValue, 1e-9)
	}

	// A poisoned stored total is overwritten on the next add.
	order.TotalValue = 999
	order.Add(OrderItem{ProductID: "P2", Quantity: 1, Price: 8.50})

	expected := 0.0
	for _, line := range order.Items {
		expected += line.Price * float64(line.Quantity)
	}
	assert.InDelta(t, expected, order.TotalValue, 1e-9)
}
