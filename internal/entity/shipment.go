package entity

import (
	"database/sql"
	"strings"
)

// ShipmentStatus is the coarse shipment state the pipeline works with,
// derived from whichever representation the logistics provider returns.
type ShipmentStatus string

const (
	ShipmentDelivered ShipmentStatus = "delivered"
	ShipmentCancelled ShipmentStatus = "cancelled"
	ShipmentRTO       ShipmentStatus = "rto"
	ShipmentInTransit ShipmentStatus = "in_transit"
	ShipmentPending   ShipmentStatus = "pending"
	ShipmentUnknown   ShipmentStatus = "unknown"
)

// statusByCode maps provider status codes to coarse statuses. Codes follow
// the courier tracking API: 6 shipped, 7 delivered, 8 canceled, 9 RTO
// initiated, 10 RTO delivered, 14 RTO acknowledged, 15 pickup rescheduled,
// 17 out for delivery, 18 in transit, 19 out for pickup, 20 pickup
// exception, 21 undelivered, 42 picked up.
var statusByCode = map[int]ShipmentStatus{
	6:  ShipmentInTransit,
	7:  ShipmentDelivered,
	8:  ShipmentCancelled,
	9:  ShipmentRTO,
	10: ShipmentRTO,
	14: ShipmentRTO,
	15: ShipmentPending,
	17: ShipmentInTransit,
	18: ShipmentInTransit,
	19: ShipmentPending,
	20: ShipmentPending,
	21: ShipmentInTransit,
	42: ShipmentInTransit,
}

// StatusFromCode classifies a provider status code.
func StatusFromCode(code int) ShipmentStatus {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return ShipmentUnknown
}

// StatusFromText classifies a free-text provider status.
func StatusFromText(status string) ShipmentStatus {
	s := strings.ToUpper(strings.TrimSpace(status))
	switch {
	case s == "":
		return ShipmentUnknown
	case strings.Contains(s, "RTO"):
		return ShipmentRTO
	case s == "DELIVERED":
		return ShipmentDelivered
	case strings.Contains(s, "CANCEL"):
		return ShipmentCancelled
	case s == "SHIPPED" || s == "IN TRANSIT" || s == "OUT FOR DELIVERY" ||
		s == "UNDELIVERED" || s == "PICKED UP" || s == "REACHED AT DESTINATION HUB":
		return ShipmentInTransit
	case s == "NEW" || s == "PICKUP SCHEDULED" || s == "OUT FOR PICKUP" ||
		s == "PICKUP RESCHEDULED" || s == "PICKUP EXCEPTION":
		return ShipmentPending
	default:
		return ShipmentUnknown
	}
}

// ShipmentRecord is the current shipment state for one order, snapshotted at
// pipeline-invocation time. Metrics computed for a historical date can drift
// if the pipeline reruns later, since the provider only exposes live state.
type ShipmentRecord struct {
	OrderReference string         `json:"order_reference"`
	Status         ShipmentStatus `json:"status"`
	RawStatusCode  int            `json:"raw_status_code"`
	PickupAt       sql.NullTime   `json:"pickup_at"`
}

// IsCancelled reports whether the shipment was cancelled, checking both the
// derived coarse status and the raw provider code.
func (r *ShipmentRecord) IsCancelled() bool {
	return r.Status == ShipmentCancelled || StatusFromCode(r.RawStatusCode) == ShipmentCancelled
}
