package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// UnknownSKU is the sentinel used when a line item carries neither a SKU
// code nor a variant identifier.
const UnknownSKU = "unknown"

// Order is a commerce-platform order after boundary validation. All fields
// are plain values; malformed upstream data is defaulted before an Order is
// constructed.
type Order struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"` // human order number, e.g. "#1042"
	CreatedAt           time.Time       `json:"created_at"`
	TotalPrice          decimal.Decimal `json:"total_price"`
	LandingSite         string          `json:"landing_site"`
	PaymentGatewayNames []string        `json:"payment_gateway_names"`
	LineItems           []LineItem      `json:"line_items"`
}

// Reference returns the order number as the logistics provider reports it,
// without the leading display symbol.
func (o *Order) Reference() string {
	return strings.TrimPrefix(strings.TrimSpace(o.Name), "#")
}

// LineItem is a single purchased position of an order.
type LineItem struct {
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns price multiplied by quantity.
func (li *LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// ItemsTotal sums line item subtotals. Returns 1 when the order has no line
// items or the sum is not positive, so proportional splits never divide by
// zero.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.LineItems {
		total = total.Add(o.LineItems[i].Subtotal())
	}
	if !total.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return total
}
