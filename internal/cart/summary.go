package cart

import "github.com/shopspring/decimal"

// Pricing holds the storefront's order-summary rules.
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	TaxRate               decimal.Decimal
}

// DefaultPricing is free shipping above 100, otherwise 9.99, with 8% tax.
func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: decimal.NewFromInt(100),
		ShippingFee:           decimal.RequireFromString("9.99"),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

// Summary is the checkout breakdown derived from the cart.
type Summary struct {
	ItemCount             int             `json:"item_count"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	Shipping              decimal.Decimal `json:"shipping"`
	FreeShipping          bool            `json:"free_shipping"`
	FreeShippingRemaining decimal.Decimal `json:"free_shipping_remaining"`
	Tax                   decimal.Decimal `json:"tax"`
	Total                 decimal.Decimal `json:"total"`
}

// Summarize applies pricing to a subtotal. Shipping is waived only when the
// subtotal is strictly above the threshold; tax is rounded to cents.
func Summarize(subtotal decimal.Decimal, itemCount int, p Pricing) Summary {
	shipping := p.ShippingFee
	free := subtotal.GreaterThan(p.FreeShippingThreshold)
	if free {
		shipping = decimal.Zero
	}

	remaining := decimal.Zero
	if !free && subtotal.LessThan(p.FreeShippingThreshold) {
		remaining = p.FreeShippingThreshold.Sub(subtotal)
	}

	tax := subtotal.Mul(p.TaxRate).Round(2)

	return Summary{
		ItemCount:             itemCount,
		Subtotal:              subtotal,
		Shipping:              shipping,
		FreeShipping:          free,
		FreeShippingRemaining: remaining,
		Tax:                   tax,
		Total:                 subtotal.Add(shipping).Add(tax),
	}
}

// Summary prices the current cart.
func (s *Store) Summary(p Pricing) Summary {
	snap := s.Snapshot()
	return Summarize(snap.Total, snap.Count, p)
}
