package analytics

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/skupulse/skupulse-manager/internal/entity"
)

// MatchAdSpend joins campaign spend onto SKU metrics by name prefix: a
// campaign contributes to every SKU whose normalized product name starts
// with the lower-cased campaign name. A product matching several campaigns
// sums their spend; that many-to-one tolerance is deliberate.
//
// CAC is spend divided by the product's attributed order count, zero when
// nothing was attributed. Mutates skus in place.
func MatchAdSpend(skus []entity.SkuMetrics, spend map[string]decimal.Decimal) {
	for i := range skus {
		sku := &skus[i]
		for campaign, amount := range spend {
			name := strings.ToLower(strings.TrimSpace(campaign))
			if name == "" || !strings.HasPrefix(sku.Product, name) {
				continue
			}
			sku.AdSpend = sku.AdSpend.Add(amount)
		}
		if sku.AttributedOrders > 0 {
			sku.CAC = sku.AdSpend.Div(decimal.NewFromInt(int64(sku.AttributedOrders)))
		}
	}
}
