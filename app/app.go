// Package app wires the feed clients, the analytics pipeline and the API
// server together.
package app

import (
	"context"

	"log/slog"

	"github.com/skupulse/skupulse-manager/config"
	"github.com/skupulse/skupulse-manager/internal/analytics"
	httpapi "github.com/skupulse/skupulse-manager/internal/api/http"
	"github.com/skupulse/skupulse-manager/internal/auth/jwt"
	"github.com/skupulse/skupulse-manager/internal/metaads"
	"github.com/skupulse/skupulse-manager/internal/shiprocket"
	"github.com/skupulse/skupulse-manager/internal/shopify"
)

// App is the main application.
type App struct {
	hs *httpapi.Server
	c  *config.Config
}

// New returns a new instance of App.
func New(c *config.Config) *App {
	return &App{c: c}
}

// Start starts the app.
func (a *App) Start(ctx context.Context) error {
	slog.Default().InfoContext(ctx, "starting sku analytics service")

	var opts []analytics.Option
	if a.c.Analytics.DisablePredictive {
		opts = append(opts, analytics.WithoutPredictiveRates())
	}
	if a.c.Analytics.DisableAdSpend {
		opts = append(opts, analytics.WithoutAdSpend())
	}

	svc := analytics.New(
		shopify.New(&a.c.Shopify),
		shiprocket.New(&a.c.Shiprocket),
		metaads.New(&a.c.MetaAds),
		opts...,
	)

	a.hs = httpapi.New(&a.c.HTTP)
	if err := a.hs.Start(ctx, svc, jwt.NewAuth(a.c.Auth.Secret)); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("error", err.Error()))
		return err
	}

	return nil
}

// Stop stops the application and waits for the server to exit.
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		a.hs.Stop(ctx)
	}
}

// Done returns a channel that is closed after the application has exited.
func (a *App) Done() <-chan struct{} {
	if a.hs == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return a.hs.Done()
}
