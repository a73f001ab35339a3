package entity

// Establishment is a tenant: one restaurant with its menu and WhatsApp number.
// Categories and Products are loaded pre-filtered (active categories,
// available products) and ordered by display order.
type Establishment struct {
	ID                    string     `json:"id" bson:"_id"`
	Name                  string     `json:"name" bson:"name"`
	Description           string     `json:"description,omitempty" bson:"description,omitempty"`
	Phone                 string     `json:"phone,omitempty" bson:"phone,omitempty"`
	Address               string     `json:"address,omitempty" bson:"address,omitempty"`
	WhatsAppPhoneNumberID string     `json:"whatsapp_phone_number_id,omitempty" bson:"whatsapp_phone_number_id,omitempty"`
	Categories            []Category `json:"categories" bson:"-"`
	Products              []Product  `json:"products" bson:"-"`
}

type Category struct {
	ID              string `json:"id" bson:"_id"`
	EstablishmentID string `json:"establishment_id" bson:"establishment_id"`
	Name            string `json:"name" bson:"name"`
	Description     string `json:"description,omitempty" bson:"description,omitempty"`
	Active          bool   `json:"active" bson:"active"`
	DisplayOrder    int    `json:"display_order" bson:"display_order"`
}

type Product struct {
	ID              string  `json:"id" bson:"_id"`
	EstablishmentID string  `json:"establishment_id" bson:"establishment_id"`
	CategoryID      string  `json:"category_id" bson:"category_id"`
	Name            string  `json:"name" bson:"name"`
	Description     string  `json:"description,omitempty" bson:"description,omitempty"`
	Price           float64 `json:"price" bson:"price"`
	Available       bool    `json:"available" bson:"available"`
	DisplayOrder    int     `json:"display_order" bson:"display_order"`
}

// ActiveCategories returns the categories flagged active, in load order.
func (e *Establishment) ActiveCategories() []Category {
	var active []Category
	for _, c := range e.Categories {
		if c.Active {
			active = append(active, c)
		}
	}
	return active
}

// AvailableProductsIn returns the available products of one category,
// in load order.
func (e *Establishment) AvailableProductsIn(categoryID string) []Product {
	var products []Product
	for _, p := range e.Products {
		if p.Available && p.CategoryID == categoryID {
			products = append(products, p)
		}
	}
	return products
}
