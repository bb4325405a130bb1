package controllers

import (
	"context"

	"github.com/angelmondragon/shopnex/internal/cart"
	"github.com/angelmondragon/shopnex/internal/catalog"
)

// CartStore is the surface of *cart.Store the handlers use.
type CartStore interface {
	AddToCart(ctx context.Context, product catalog.Product) cart.Snapshot
	RemoveFromCart(ctx context.Context, productID int) cart.Snapshot
	UpdateQuantity(ctx context.Context, productID, quantity int) cart.Snapshot
	ClearCart(ctx context.Context) cart.Snapshot
	Snapshot() cart.Snapshot
	Summary(p cart.Pricing) cart.Summary
	Subscribe(fn cart.Listener) func()
}

// ProductCatalog is the read-only surface of *catalog.Catalog.
type ProductCatalog interface {
	List() []catalog.Product
	Get(id int) (catalog.Product, bool)
	Featured() []catalog.Product
	ByCategory(category string) []catalog.Product
	Related(id, limit int) []catalog.Product
	Categories() []string
}
