package analytics

import (
	"net/url"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"
	"github.com/skupulse/skupulse-manager/internal/entity"
)

// revenueShareThreshold is the fraction of order item revenue one product
// must exceed for a multi-item order to be attributed to it.
var revenueShareThreshold = decimal.NewFromFloat(0.5)

// NormalizeProductName lowercases a product name and strips trademark/dash
// decoration: everything from the first "™" or en-dash onward is dropped.
func NormalizeProductName(name string) string {
	s := strings.ToLower(name)
	if i := strings.Index(s, "™"); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, "–"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// Attribute assigns an order to a single product key. The heuristic, in
// strict priority order:
//
//  1. utm_campaign on the landing-page URL: the substring before the first
//     underscore, lower-cased and trimmed. Parse failures fall through.
//  2. A single line item: its normalized product name.
//  3. Multiple line items: the normalized-name bucket holding more than half
//     of the order's item revenue, if one exists.
//
// Returns ok=false when no step produces a product; callers must treat that
// as a first-class outcome, not an error.
func Attribute(o *entity.Order) (string, bool) {
	if key, ok := attributeFromLanding(o.LandingSite); ok {
		return key, true
	}

	switch len(o.LineItems) {
	case 0:
		return "", false
	case 1:
		if key := NormalizeProductName(o.LineItems[0].Name); key != "" {
			return key, true
		}
		return "", false
	}

	return attributeFromRevenue(o.LineItems)
}

func attributeFromLanding(landing string) (string, bool) {
	if landing == "" || !govalidator.IsRequestURI(landing) && !govalidator.IsURL(landing) {
		return "", false
	}
	u, err := url.Parse(landing)
	if err != nil {
		return "", false
	}
	campaign := u.Query().Get("utm_campaign")
	if campaign == "" {
		return "", false
	}
	key := strings.TrimSpace(strings.ToLower(strings.SplitN(campaign, "_", 2)[0]))
	if key == "" {
		return "", false
	}
	return key, true
}

func attributeFromRevenue(items []entity.LineItem) (string, bool) {
	buckets := make(map[string]decimal.Decimal, len(items))
	total := decimal.Zero
	for i := range items {
		sub := items[i].Subtotal()
		key := NormalizeProductName(items[i].Name)
		buckets[key] = buckets[key].Add(sub)
		total = total.Add(sub)
	}
	if !total.IsPositive() {
		return "", false
	}
	threshold := total.Mul(revenueShareThreshold)
	for key, revenue := range buckets {
		if key != "" && revenue.GreaterThan(threshold) {
			return key, true
		}
	}
	return "", false
}
