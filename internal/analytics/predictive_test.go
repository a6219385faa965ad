package analytics

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skupulse/skupulse-manager/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 24, 12, 0, 0, 0, reportLocation)

func codOrder(id int64, name string, product string, created time.Time) entity.Order {
	return entity.Order{
		ID:                  id,
		Name:                name,
		CreatedAt:           created,
		TotalPrice:          decimal.NewFromInt(500),
		PaymentGatewayNames: []string{"Cash on Delivery (COD)"},
		LineItems:           []entity.LineItem{item(product, 500, 1)},
	}
}

func prepaidOrder(id int64, name string, product string, created time.Time) entity.Order {
	o := codOrder(id, name, product, created)
	o.PaymentGatewayNames = []string{"Razorpay"}
	return o
}

func pickedUp(ref string, status entity.ShipmentStatus, pickup time.Time) entity.ShipmentRecord {
	return entity.ShipmentRecord{
		OrderReference: ref,
		Status:         status,
		PickupAt:       sql.NullTime{Time: pickup, Valid: true},
	}
}

func TestPredictiveRTORate(t *testing.T) {
	w := ResolveDay(DayToday, testNow)
	pickup := time.Date(2026, 8, 12, 14, 0, 0, 0, reportLocation) // inside RTO window
	outsideWindow := time.Date(2026, 8, 20, 14, 0, 0, 0, reportLocation)
	oldCreated := time.Date(2026, 8, 1, 10, 0, 0, 0, reportLocation) // outside cancel window

	var orders []entity.Order
	shipments := map[string]entity.ShipmentRecord{}

	// Ten COD orders picked up in the window, three not yet delivered.
	for i := 0; i < 10; i++ {
		ref := fmt.Sprintf("10%02d", i)
		orders = append(orders, codOrder(int64(i+1), "#"+ref, "Widget", oldCreated))
		status := entity.ShipmentDelivered
		if i < 3 {
			status = entity.ShipmentInTransit
		}
		shipments[ref] = pickedUp(ref, status, pickup)
	}

	// Prepaid order in the window does not join the cohort.
	orders = append(orders, prepaidOrder(50, "#1050", "Widget", oldCreated))
	shipments["1050"] = pickedUp("1050", entity.ShipmentInTransit, pickup)

	// COD order picked up outside the window does not join either.
	orders = append(orders, codOrder(51, "#1051", "Widget", oldCreated))
	shipments["1051"] = pickedUp("1051", entity.ShipmentInTransit, outsideWindow)

	// COD order with the pickup sentinel is skipped.
	orders = append(orders, codOrder(52, "#1052", "Widget", oldCreated))
	shipments["1052"] = entity.ShipmentRecord{OrderReference: "1052", Status: entity.ShipmentPending}

	rates := PredictiveRates(orders, shipments, w)

	widget, ok := rates["widget"]
	require.True(t, ok)
	assert.True(t, widget.RTO.Equal(decimal.NewFromInt(30)), "want 30, got %s", widget.RTO)
}

func TestPredictiveCancelRate(t *testing.T) {
	w := ResolveDay(DayToday, testNow)
	created := time.Date(2026, 8, 20, 10, 0, 0, 0, reportLocation) // inside cancel window

	var orders []entity.Order
	shipments := map[string]entity.ShipmentRecord{}

	for i := 0; i < 4; i++ {
		ref := fmt.Sprintf("20%02d", i)
		orders = append(orders, prepaidOrder(int64(100+i), "#"+ref, "Gadget", created))
		status := entity.ShipmentInTransit
		if i < 2 {
			status = entity.ShipmentCancelled
		}
		shipments[ref] = entity.ShipmentRecord{OrderReference: ref, Status: status}
	}

	rates := PredictiveRates(orders, shipments, w)

	gadget, ok := rates["gadget"]
	require.True(t, ok)
	assert.True(t, gadget.Cancel.Equal(decimal.NewFromInt(50)), "want 50, got %s", gadget.Cancel)
	// No RTO cohort for this product.
	assert.True(t, gadget.RTO.IsZero())
}

func TestPredictiveCancelDetectedByRawCode(t *testing.T) {
	w := ResolveDay(DayToday, testNow)
	created := time.Date(2026, 8, 20, 10, 0, 0, 0, reportLocation)

	orders := []entity.Order{prepaidOrder(1, "#3001", "Gadget", created)}
	shipments := map[string]entity.ShipmentRecord{
		// Coarse status missing, provider code says cancelled.
		"3001": {OrderReference: "3001", Status: entity.ShipmentUnknown, RawStatusCode: 8},
	}

	rates := PredictiveRates(orders, shipments, w)
	assert.True(t, rates["gadget"].Cancel.Equal(decimal.NewFromInt(100)))
}

func TestPredictiveEmptyCohortsDefaultToZero(t *testing.T) {
	w := ResolveDay(DayToday, testNow)

	rates := PredictiveRates(nil, nil, w)
	assert.Empty(t, rates)

	// An attributed order outside every window yields zero rates, not NaN.
	created := time.Date(2026, 8, 24, 10, 0, 0, 0, reportLocation) // target day itself
	orders := []entity.Order{codOrder(1, "#4001", "Widget", created)}
	rates = PredictiveRates(orders, map[string]entity.ShipmentRecord{}, w)
	assert.True(t, rates["widget"].RTO.IsZero())
	assert.True(t, rates["widget"].Cancel.IsZero())
}

func TestPredictiveIgnoresDuplicateOrderIDs(t *testing.T) {
	w := ResolveDay(DayToday, testNow)
	created := time.Date(2026, 8, 20, 10, 0, 0, 0, reportLocation)

	cancelled := prepaidOrder(1, "#2001", "Gadget", created)
	kept := prepaidOrder(2, "#2002", "Gadget", created)
	shipments := map[string]entity.ShipmentRecord{
		"2001": {OrderReference: "2001", Status: entity.ShipmentCancelled},
		"2002": {OrderReference: "2002", Status: entity.ShipmentInTransit},
	}

	// The cancelled order appears twice in the batch; it must only count
	// once in the cohort.
	rates := PredictiveRates([]entity.Order{cancelled, kept, cancelled}, shipments, w)

	gadget, ok := rates["gadget"]
	require.True(t, ok)
	assert.True(t, gadget.Cancel.Equal(decimal.NewFromInt(50)), "want 50, got %s", gadget.Cancel)
}

func TestPredictiveSkipsUnattributedOrders(t *testing.T) {
	w := ResolveDay(DayToday, testNow)
	created := time.Date(2026, 8, 20, 10, 0, 0, 0, reportLocation)

	o := entity.Order{
		ID:        1,
		Name:      "#5001",
		CreatedAt: created,
		LineItems: []entity.LineItem{item("Alpha", 50, 1), item("Beta", 50, 1)},
	}

	rates := PredictiveRates([]entity.Order{o}, nil, w)
	assert.Empty(t, rates)
}
