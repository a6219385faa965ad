package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/skupulse/skupulse-manager/internal/entity"
)

// Aggregator folds target-day orders into per-SKU buckets. Revenue is split
// across line items proportionally to their share of the order's item
// revenue, so the SKU splits of one order always sum to the order total.
// Order counts and shipment outcomes are tracked per order, not per line
// item, via seen-order sets.
type Aggregator struct {
	window    DayWindow
	shipments map[string]entity.ShipmentRecord
	rates     map[string]ProductRates

	buckets       map[string]*skuBucket
	seenOrders    seenSet
	productOrders map[string]int

	codOrders      int
	prepaidOrders  int
	codRevenue     decimal.Decimal
	prepaidRevenue decimal.Decimal
	manualReview   int
}

type skuBucket struct {
	sku     string
	product string

	totalRevenue   decimal.Decimal
	codRevenue     decimal.Decimal
	prepaidRevenue decimal.Decimal

	codOrders     int
	prepaidOrders int
	cod           entity.OutcomeCounts
	prepaid       entity.OutcomeCounts

	seenCOD     seenSet
	seenPrepaid seenSet
}

// NewAggregator builds an aggregator over a snapshot of shipment states and
// precomputed predictive rates. Either map may be empty.
func NewAggregator(w DayWindow, shipments map[string]entity.ShipmentRecord, rates map[string]ProductRates) *Aggregator {
	if shipments == nil {
		shipments = map[string]entity.ShipmentRecord{}
	}
	if rates == nil {
		rates = map[string]ProductRates{}
	}
	return &Aggregator{
		window:        w,
		shipments:     shipments,
		rates:         rates,
		buckets:       make(map[string]*skuBucket),
		seenOrders:    make(seenSet),
		productOrders: make(map[string]int),
	}
}

// Add folds one target-day order into the rollup. Repeated ids within the
// batch are ignored.
func (a *Aggregator) Add(o *entity.Order) {
	if !a.seenOrders.add(o.ID) {
		return
	}

	cod := IsCOD(o)
	if cod {
		a.codOrders++
		a.codRevenue = a.codRevenue.Add(o.TotalPrice)
	} else {
		a.prepaidOrders++
		a.prepaidRevenue = a.prepaidRevenue.Add(o.TotalPrice)
	}

	if product, ok := Attribute(o); ok {
		a.productOrders[product]++
	} else {
		a.manualReview++
	}

	outcome := a.outcomeOf(o)
	itemsTotal := o.ItemsTotal()

	for i := range o.LineItems {
		item := &o.LineItems[i]
		b := a.bucketFor(item)

		revenue := o.TotalPrice.Mul(item.Subtotal()).Div(itemsTotal)
		b.totalRevenue = b.totalRevenue.Add(revenue)
		if cod {
			b.codRevenue = b.codRevenue.Add(revenue)
			if b.seenCOD.add(o.ID) {
				b.codOrders++
				bump(&b.cod, outcome)
			}
		} else {
			b.prepaidRevenue = b.prepaidRevenue.Add(revenue)
			if b.seenPrepaid.add(o.ID) {
				b.prepaidOrders++
				bump(&b.prepaid, outcome)
			}
		}
	}
}

func (a *Aggregator) bucketFor(item *entity.LineItem) *skuBucket {
	sku := item.SKU
	if sku == "" {
		sku = entity.UnknownSKU
	}
	b, ok := a.buckets[sku]
	if !ok {
		b = &skuBucket{
			sku:         sku,
			product:     NormalizeProductName(item.Name),
			seenCOD:     make(seenSet),
			seenPrepaid: make(seenSet),
		}
		a.buckets[sku] = b
	}
	return b
}

func (a *Aggregator) outcomeOf(o *entity.Order) entity.ShipmentStatus {
	rec, ok := a.shipments[o.Reference()]
	if !ok {
		return entity.ShipmentUnknown
	}
	return rec.Status
}

func bump(c *entity.OutcomeCounts, status entity.ShipmentStatus) {
	switch status {
	case entity.ShipmentDelivered:
		c.Delivered++
	case entity.ShipmentRTO:
		c.RTO++
	case entity.ShipmentCancelled:
		c.Cancelled++
	case entity.ShipmentInTransit:
		c.InTransit++
	default:
		c.Unknown++
	}
}

// Summary is the finished rollup for the target day.
type Summary struct {
	TotalCODOrders     int
	TotalPrepaidOrders int
	CODRevenue         decimal.Decimal
	PrepaidRevenue     decimal.Decimal
	ManualReviewCount  int
	SKUs               []entity.SkuMetrics
}

// Summarize flattens the buckets into SKU metrics sorted by revenue,
// decorating each with its product's predictive rates. Products without a
// historical cohort get zero rates.
func (a *Aggregator) Summarize() Summary {
	skus := make([]entity.SkuMetrics, 0, len(a.buckets))
	for _, b := range a.buckets {
		rates := a.rates[b.product]
		skus = append(skus, entity.SkuMetrics{
			SKU:                 b.sku,
			Product:             b.product,
			TotalRevenue:        b.totalRevenue,
			CODRevenue:          b.codRevenue,
			PrepaidRevenue:      b.prepaidRevenue,
			CODOrders:           b.codOrders,
			PrepaidOrders:       b.prepaidOrders,
			TotalOrders:         b.codOrders + b.prepaidOrders,
			COD:                 b.cod,
			Prepaid:             b.prepaid,
			AttributedOrders:    a.productOrders[b.product],
			PredictedRTORate:    rates.RTO,
			PredictedCancelRate: rates.Cancel,
		})
	}

	sort.Slice(skus, func(i, j int) bool {
		if !skus[i].TotalRevenue.Equal(skus[j].TotalRevenue) {
			return skus[i].TotalRevenue.GreaterThan(skus[j].TotalRevenue)
		}
		return skus[i].SKU < skus[j].SKU
	})

	return Summary{
		TotalCODOrders:     a.codOrders,
		TotalPrepaidOrders: a.prepaidOrders,
		CODRevenue:         a.codRevenue,
		PrepaidRevenue:     a.prepaidRevenue,
		ManualReviewCount:  a.manualReview,
		SKUs:               skus,
	}
}
