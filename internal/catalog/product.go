package catalog

import "github.com/shopspring/decimal"

// Product is one catalog record. Values are copied into cart lines at add
// time, so nothing downstream holds a reference into the catalog.
type Product struct {
	ID          int             `json:"id" validate:"gt=0"`
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category" validate:"required"`
	Image       string          `json:"image"`
	Featured    bool            `json:"featured"`
	InStock     bool            `json:"inStock"`
	Rating      float64         `json:"rating" validate:"gte=0,lte=5"`
	Reviews     int             `json:"reviews" validate:"gte=0"`
}
