package cart

import (
	"github.com/angelmondragon/shopnex/internal/catalog"
	"github.com/shopspring/decimal"
)

// Line is a product snapshot plus the purchase quantity. The product fields
// are captured when the product is first added and are not refreshed by
// later adds, so a catalog price change does not reach an existing line.
type Line struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Subtotal is price × quantity for the line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Snapshot is an immutable view of the cart with its derived aggregates.
type Snapshot struct {
	Lines []Line          `json:"lines"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func newSnapshot(lines []Line) Snapshot {
	return Snapshot{
		Lines: lines,
		Total: totalOf(lines),
		Count: countOf(lines),
	}
}

func totalOf(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func countOf(lines []Line) int {
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
