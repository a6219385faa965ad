package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OutcomeCounts breaks orders of one payment class down by their current
// shipment outcome. Each order is counted at most once per class.
type OutcomeCounts struct {
	Delivered int `json:"delivered"`
	RTO       int `json:"rto"`
	Cancelled int `json:"cancelled"`
	InTransit int `json:"in_transit"`
	Unknown   int `json:"unknown"`
}

// SkuMetrics is the per-SKU rollup for the target day.
type SkuMetrics struct {
	SKU     string `json:"sku"`
	Product string `json:"product"` // normalized product key

	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	CODRevenue     decimal.Decimal `json:"cod_revenue"`
	PrepaidRevenue decimal.Decimal `json:"prepaid_revenue"`

	CODOrders     int `json:"cod_orders"`
	PrepaidOrders int `json:"prepaid_orders"`
	TotalOrders   int `json:"total_orders"`

	COD     OutcomeCounts `json:"cod_outcomes"`
	Prepaid OutcomeCounts `json:"prepaid_outcomes"`

	AdSpend          decimal.Decimal `json:"ad_spend"`
	AttributedOrders int             `json:"attributed_orders"`
	CAC              decimal.Decimal `json:"cac"`

	PredictedRTORate    decimal.Decimal `json:"predicted_rto_rate"`
	PredictedCancelRate decimal.Decimal `json:"predicted_cancel_rate"`
}

// Report is the complete analytics result for one target day. It is either
// returned whole or not at all; a missing order feed fails the computation
// instead of producing a partial report.
type Report struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"` // target calendar date, YYYY-MM-DD
	GeneratedAt time.Time `json:"generated_at"`

	TotalCODOrders     int             `json:"total_cod_orders"`
	TotalPrepaidOrders int             `json:"total_prepaid_orders"`
	CODRevenue         decimal.Decimal `json:"cod_revenue"`
	PrepaidRevenue     decimal.Decimal `json:"prepaid_revenue"`

	// ManualReviewCount is the number of target-day orders the attribution
	// heuristic could not assign to a single product.
	ManualReviewCount int `json:"manual_review_count"`

	SKUs []SkuMetrics `json:"skus"`
}
