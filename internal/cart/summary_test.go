package cart

import (
	"context"
	"testing"

	"github.com/angelmondragon/shopnex/pkg/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummarizeChargesShippingBelowThreshold(t *testing.T) {
	got := Summarize(dec("40"), 2, DefaultPricing())

	assert.True(t, got.Shipping.Equal(dec("9.99")), "shipping %s", got.Shipping)
	assert.False(t, got.FreeShipping)
	assert.True(t, got.FreeShippingRemaining.Equal(dec("60")), "remaining %s", got.FreeShippingRemaining)
	assert.True(t, got.Tax.Equal(dec("3.2")), "tax %s", got.Tax)
	assert.True(t, got.Total.Equal(dec("53.19")), "total %s", got.Total)
	assert.Equal(t, 2, got.ItemCount)
}

func TestSummarizeThresholdIsExclusive(t *testing.T) {
	got := Summarize(dec("100"), 1, DefaultPricing())

	assert.False(t, got.FreeShipping)
	assert.True(t, got.Shipping.Equal(dec("9.99")))
	assert.True(t, got.FreeShippingRemaining.IsZero())
}

func TestSummarizeFreeShippingAboveThreshold(t *testing.T) {
	got := Summarize(dec("199.99"), 1, DefaultPricing())

	assert.True(t, got.FreeShipping)
	assert.True(t, got.Shipping.IsZero())
	assert.True(t, got.FreeShippingRemaining.IsZero())
	assert.True(t, got.Tax.Equal(dec("16")), "tax %s", got.Tax)
	assert.True(t, got.Total.Equal(dec("215.99")), "total %s", got.Total)
}

func TestStoreSummaryUsesCurrentCart(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemory(0))
	s.AddToCart(ctx, product(1, "10"))
	s.AddToCart(ctx, product(2, "5"))
	s.AddToCart(ctx, product(1, "10"))

	got := s.Summary(DefaultPricing())
	assert.True(t, got.Subtotal.Equal(dec("25")))
	assert.Equal(t, 3, got.ItemCount)
	assert.True(t, got.Tax.Equal(dec("2")))
	assert.True(t, got.Total.Equal(dec("36.99")))
}
