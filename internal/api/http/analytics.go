package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"log/slog"

	"github.com/go-chi/render"
	"github.com/skupulse/skupulse-manager/internal/analytics"
	"github.com/skupulse/skupulse-manager/internal/dependency"
)

// handleSkuMetrics serves GET /api/analytics/sku-metrics?day=today|yesterday.
func handleSkuMetrics(reporter dependency.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day := strings.ToLower(r.URL.Query().Get("day"))

		report, err := reporter.SkuReport(r.Context(), day)
		if err != nil {
			if errors.Is(err, analytics.ErrUnknownDaySelector) {
				render.Render(w, r, ErrInvalidRequest(err))
				return
			}
			slog.Default().ErrorContext(r.Context(), "sku report failed",
				slog.String("error", err.Error()))
			render.Render(w, r, ErrInternalServerError(err))
			return
		}

		render.Render(w, r, NewReportResponse(report))
	}
}
