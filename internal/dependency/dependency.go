package dependency

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skupulse/skupulse-manager/internal/entity"
)

//go:generate mockery --with-expecter --case underscore --all --output=./mocks
type (
	// OrderSource supplies the most recent batch of orders of any status.
	// The pipeline does not paginate or filter by status itself.
	OrderSource interface {
		Orders(ctx context.Context) ([]entity.Order, error)
	}

	// ShipmentSource supplies current shipment states for orders whose
	// activity falls inside [from, to].
	ShipmentSource interface {
		Shipments(ctx context.Context, from, to time.Time) ([]entity.ShipmentRecord, error)
	}

	// AdSpendSource supplies total spend per campaign display name for a
	// date range.
	AdSpendSource interface {
		CampaignSpend(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error)
	}

	// TokenProvider yields a valid provider session token, refreshing it
	// internally when expired.
	TokenProvider interface {
		Token(ctx context.Context) (string, error)
	}

	// Reporter produces the per-SKU report consumed by the API surface.
	Reporter interface {
		SkuReport(ctx context.Context, day string) (*entity.Report, error)
	}
)
