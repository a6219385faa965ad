package analytics

import (
	"github.com/shopspring/decimal"
	"github.com/skupulse/skupulse-manager/internal/entity"
)

var hundred = decimal.NewFromInt(100)

// ProductRates are the forward-looking estimates for one product, derived
// from its historical cohorts.
type ProductRates struct {
	RTO    decimal.Decimal `json:"rto"`
	Cancel decimal.Decimal `json:"cancel"`
}

type rateCounters struct {
	rtoTotal        int
	rtoNotDelivered int
	cancelTotal     int
	cancelCancelled int
}

// PredictiveRates computes per-product predictive RTO and cancellation
// percentages from the historical order batch.
//
// A COD order whose shipment has a real pickup date inside the RTO window
// joins the RTO cohort; it counts as at-risk while its shipment is not yet
// delivered. Any order created inside the cancellation window joins the
// cancellation cohort; it counts when its shipment was cancelled. Both rates
// default to 0 when the cohort is empty. Repeated order ids within the batch
// are counted once.
func PredictiveRates(orders []entity.Order, shipments map[string]entity.ShipmentRecord, w DayWindow) map[string]ProductRates {
	counters := make(map[string]*rateCounters)
	seen := make(seenSet, len(orders))

	for i := range orders {
		o := &orders[i]
		if !seen.add(o.ID) {
			continue
		}
		product, ok := Attribute(o)
		if !ok {
			continue
		}

		rec, tracked := shipments[o.Reference()]

		if IsCOD(o) && tracked && rec.PickupAt.Valid && w.InRTOWindow(rec.PickupAt.Time) {
			c := counterFor(counters, product)
			c.rtoTotal++
			if rec.Status != entity.ShipmentDelivered {
				c.rtoNotDelivered++
			}
		}

		if w.InCancelWindow(o.CreatedAt) {
			c := counterFor(counters, product)
			c.cancelTotal++
			if tracked && rec.IsCancelled() {
				c.cancelCancelled++
			}
		}
	}

	rates := make(map[string]ProductRates, len(counters))
	for product, c := range counters {
		rates[product] = ProductRates{
			RTO:    percentage(c.rtoNotDelivered, c.rtoTotal),
			Cancel: percentage(c.cancelCancelled, c.cancelTotal),
		}
	}
	return rates
}

func counterFor(m map[string]*rateCounters, product string) *rateCounters {
	c, ok := m[product]
	if !ok {
		c = &rateCounters{}
		m[product] = c
	}
	return c
}

func percentage(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return hundred.Mul(decimal.NewFromInt(int64(part))).Div(decimal.NewFromInt(int64(total)))
}
