package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skupulse/skupulse-manager/internal/dependency"
	"github.com/skupulse/skupulse-manager/internal/entity"
	"golang.org/x/sync/errgroup"
)

// Config toggles the optional pipeline stages.
type Config struct {
	DisablePredictive bool `mapstructure:"disable_predictive"`
	DisableAdSpend    bool `mapstructure:"disable_ad_spend"`
}

// Service runs the reconciliation pipeline: fetch the three feeds, compute
// predictive rates over the historical batch, roll the target day up per
// SKU, and decorate with ad spend. One invocation processes one batch; the
// service itself holds no mutable state.
type Service struct {
	orders    dependency.OrderSource
	shipments dependency.ShipmentSource
	adSpend   dependency.AdSpendSource

	withPredictive bool
	withAdSpend    bool
}

// Option configures optional stages.
type Option func(*Service)

// WithoutPredictiveRates drops the predictive stage; SKU rows carry zero
// rates.
func WithoutPredictiveRates() Option {
	return func(s *Service) { s.withPredictive = false }
}

// WithoutAdSpend drops the ad-spend join; SKU rows carry zero spend and CAC.
func WithoutAdSpend() Option {
	return func(s *Service) { s.withAdSpend = false }
}

// New builds the pipeline over its three feed sources.
func New(orders dependency.OrderSource, shipments dependency.ShipmentSource, adSpend dependency.AdSpendSource, opts ...Option) *Service {
	s := &Service{
		orders:         orders,
		shipments:      shipments,
		adSpend:        adSpend,
		withPredictive: true,
		withAdSpend:    true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SkuReport computes the per-SKU report for the selected day.
//
// The order feed is mandatory: its failure fails the whole computation.
// Shipment and ad-spend feeds degrade to empty maps so a provider outage
// never blocks the report. Shipment state is a snapshot taken now.
func (s *Service) SkuReport(ctx context.Context, day string) (*entity.Report, error) {
	sel, err := ParseDaySelector(day)
	if err != nil {
		return nil, err
	}
	w := ResolveDay(sel, time.Now())

	var (
		orders    []entity.Order
		shipments map[string]entity.ShipmentRecord
		spend     map[string]decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orders.Orders(gctx)
		if err != nil {
			return fmt.Errorf("fetching orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		recs, err := s.shipments.Shipments(gctx, w.RTOFrom, w.Target)
		if err != nil {
			slog.Default().WarnContext(gctx, "shipment feed unavailable, statuses degrade to unknown",
				slog.String("error", err.Error()))
			return nil
		}
		shipments = indexShipments(recs)
		return nil
	})
	g.Go(func() error {
		if !s.withAdSpend {
			return nil
		}
		sp, err := s.adSpend.CampaignSpend(gctx, w.CancelFrom, w.Target)
		if err != nil {
			slog.Default().WarnContext(gctx, "ad spend feed unavailable, spend degrades to zero",
				slog.String("error", err.Error()))
			return nil
		}
		spend = sp
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var rates map[string]ProductRates
	if s.withPredictive {
		rates = PredictiveRates(orders, shipments, w)
	}

	agg := NewAggregator(w, shipments, rates)
	for i := range orders {
		if w.IsTargetDay(orders[i].CreatedAt) {
			agg.Add(&orders[i])
		}
	}
	sum := agg.Summarize()

	if s.withAdSpend && len(spend) > 0 {
		MatchAdSpend(sum.SKUs, spend)
	}

	return &entity.Report{
		ID:                 uuid.New().String(),
		Date:               w.TargetDate(),
		GeneratedAt:        time.Now().UTC(),
		TotalCODOrders:     sum.TotalCODOrders,
		TotalPrepaidOrders: sum.TotalPrepaidOrders,
		CODRevenue:         sum.CODRevenue,
		PrepaidRevenue:     sum.PrepaidRevenue,
		ManualReviewCount:  sum.ManualReviewCount,
		SKUs:               sum.SKUs,
	}, nil
}

// indexShipments keys records by the normalized order reference so lookups
// via Order.Reference() match providers that echo the display symbol back.
func indexShipments(recs []entity.ShipmentRecord) map[string]entity.ShipmentRecord {
	m := make(map[string]entity.ShipmentRecord, len(recs))
	for _, rec := range recs {
		ref := strings.TrimPrefix(strings.TrimSpace(rec.OrderReference), "#")
		if ref == "" {
			continue
		}
		m[ref] = rec
	}
	return m
}
