package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

//go:embed data/products.json
var defaultProducts []byte

var validate = validator.New()

// Catalog is the read-only product list. It is loaded once and never mutated;
// every accessor returns copies.
type Catalog struct {
	products []Product
	byID     map[int]int
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultProducts))
}

// LoadFile reads a JSON product array from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %q: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a JSON product array.
func Load(r io.Reader) (*Catalog, error) {
	var products []Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	byID := make(map[int]int, len(products))
	for i, p := range products {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("product at index %d: %w", i, err)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("product %d: price must not be negative", p.ID)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		byID[p.ID] = i
	}

	return &Catalog{products: products, byID: byID}, nil
}

// List returns every product in catalog order.
func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get looks a product up by id.
func (c *Catalog) Get(id int) (Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

func (c *Catalog) Featured() []Product {
	return c.filter(func(p Product) bool { return p.Featured })
}

// ByCategory matches categories case-insensitively.
func (c *Catalog) ByCategory(category string) []Product {
	category = strings.TrimSpace(category)
	return c.filter(func(p Product) bool { return strings.EqualFold(p.Category, category) })
}

// Related returns up to limit other products from the same category.
func (c *Catalog) Related(id, limit int) []Product {
	product, ok := c.Get(id)
	if !ok || limit <= 0 {
		return []Product{}
	}
	out := make([]Product, 0, limit)
	for _, p := range c.products {
		if p.ID == id || p.Category != product.Category {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Categories lists distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range c.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

func (c *Catalog) filter(keep func(Product) bool) []Product {
	out := []Product{}
	for _, p := range c.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
