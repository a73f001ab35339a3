package entity

// OrderItem is one line of an in-progress order. ProductName and Price are
// snapshots taken when the line is added.
type OrderItem struct {
	ProductID     string   `json:"product_id" bson:"product_id"`
	ProductName   string   `json:"product_name" bson:"product_name"`
	Quantity      int      `json:"quantity" bson:"quantity"`
	Price         float64  `json:"price" bson:"price"`
	Modifications []string `json:"modifications,omitempty" bson:"modifications,omitempty"`
	Notes         string   `json:"notes,omitempty" bson:"notes,omitempty"`
}

// CurrentOrder is the customer's unconfirmed cart inside a conversation.
type CurrentOrder struct {
	Items      []OrderItem `json:"items" bson:"items"`
	TotalValue float64     `json:"total_value" bson:"total_value"`
	Notes      string      `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Add merges the item into the order. A line with the same product and the
// exact same modifications list (order-sensitive) has its quantity bumped;
// anything else becomes a new line. The total is always recomputed from
// the lines, never trusted from input.
func (o *CurrentOrder) Add(item OrderItem) {
	merged := false
	for i := range o.Items {
		if o.Items[i].ProductID == item.ProductID && sameModifications(o.Items[i].Modifications, item.Modifications) {
			o.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		o.Items = append(o.Items, item)
	}
	o.recomputeTotal()
}

func (o *CurrentOrder) recomputeTotal() {
	total := 0.0
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	o.TotalValue = total
}

func sameModifications(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
