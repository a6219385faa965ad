package shopify

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skupulse/skupulse-manager/internal/entity"
)

// Platform payloads are loosely typed; every field is validated or defaulted
// here so nothing malformed reaches the pipeline.

type ordersResponse struct {
	Orders []order `json:"orders"`
}

type order struct {
	ID                  int64      `json:"id"`
	Name                string     `json:"name"`
	CreatedAt           string     `json:"created_at"`
	TotalPrice          string     `json:"total_price"`
	LandingSite         string     `json:"landing_site"`
	Gateway             string     `json:"gateway"`
	PaymentGatewayNames []string   `json:"payment_gateway_names"`
	LineItems           []lineItem `json:"line_items"`
}

type lineItem struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	SKU       string `json:"sku"`
	VariantID int64  `json:"variant_id"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
}

func (o *order) toEntity() entity.Order {
	gateways := o.PaymentGatewayNames
	if len(gateways) == 0 && o.Gateway != "" {
		gateways = []string{o.Gateway}
	}

	items := make([]entity.LineItem, 0, len(o.LineItems))
	for i := range o.LineItems {
		items = append(items, o.LineItems[i].toEntity())
	}

	return entity.Order{
		ID:                  o.ID,
		Name:                o.Name,
		CreatedAt:           parseTime(o.CreatedAt),
		TotalPrice:          parseAmount(o.TotalPrice),
		LandingSite:         o.LandingSite,
		PaymentGatewayNames: gateways,
		LineItems:           items,
	}
}

func (li *lineItem) toEntity() entity.LineItem {
	name := li.Name
	if name == "" {
		name = li.Title
	}

	sku := li.SKU
	if sku == "" && li.VariantID != 0 {
		sku = strconv.FormatInt(li.VariantID, 10)
	}
	if sku == "" {
		sku = entity.UnknownSKU
	}

	return entity.LineItem{
		Name:     name,
		SKU:      sku,
		Price:    parseAmount(li.Price),
		Quantity: li.Quantity,
	}
}

// parseAmount treats a missing or non-numeric price as zero.
func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
