package shiprocket

import (
	"database/sql"
	"time"

	"github.com/skupulse/skupulse-manager/internal/entity"
)

const (
	pickupLayout = "2006-01-02 15:04:05"
	// pickupUnset is the provider's sentinel for "not picked up yet".
	pickupUnset = "0000-00-00 00:00:00"
)

// pickupLocation interprets naive provider timestamps; the courier reports
// in Indian local time.
var pickupLocation = loadPickupLocation()

func loadPickupLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}

type shipmentsResponse struct {
	Data []shipmentRow `json:"data"`
}

type shipmentRow struct {
	ChannelOrderID string `json:"channel_order_id"`
	CurrentStatus  string `json:"current_status"`
	StatusCode     int    `json:"shipment_status"`
	PickedUpDate   string `json:"picked_up_date"`
}

func (r *shipmentRow) toEntity() entity.ShipmentRecord {
	status := entity.StatusFromCode(r.StatusCode)
	if status == entity.ShipmentUnknown {
		status = entity.StatusFromText(r.CurrentStatus)
	}

	return entity.ShipmentRecord{
		OrderReference: r.ChannelOrderID,
		Status:         status,
		RawStatusCode:  r.StatusCode,
		PickupAt:       parsePickup(r.PickedUpDate),
	}
}

func parsePickup(s string) sql.NullTime {
	if s == "" || s == pickupUnset {
		return sql.NullTime{}
	}
	t, err := time.ParseInLocation(pickupLayout, s, pickupLocation)
	if err != nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
