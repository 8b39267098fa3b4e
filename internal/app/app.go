// Package app wires the storefront client together for the CLI and the
// HTTP facade.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/checkout"
	"github.com/your-org/storefront-client/internal/domain/product"
	"github.com/your-org/storefront-client/internal/domain/session"
	"github.com/your-org/storefront-client/internal/gateway"
	"github.com/your-org/storefront-client/internal/infrastructure/database/postgres"
	"github.com/your-org/storefront-client/internal/infrastructure/database/redis"
	"github.com/your-org/storefront-client/internal/infrastructure/kv"
	httpserver "github.com/your-org/storefront-client/internal/interfaces/http"
	"github.com/your-org/storefront-client/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-client/internal/interfaces/http/routes"
	"github.com/your-org/storefront-client/internal/pkg/metrics"
)

// App is one session context: its storage, token store, gateway and cart
type App struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	Storage  kv.Store
	Tokens   *session.TokenStore
	API      *api.Client
	Gateway  *gateway.Gateway
	Sessions *session.Service
	Cart     *cart.Store
	Checkout *checkout.Service

	health  httpserver.HealthChecker
	closers []func() error
}

// Options customise New
type Options struct {
	// Storage overrides the configured driver, used by tests
	Storage kv.Store
	// Navigator receives the forced navigation of a disabled account
	Navigator gateway.Navigator
}

// New builds the session context and loads the cart
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger, opts Options) (*App, error) {
	a := &App{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}
	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.Metrics = metrics.NewMetrics(a.Registry)

	store := opts.Storage
	if store == nil {
		var err error
		store, err = a.openStorage(ctx)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
	}
	a.Storage = store
	a.closers = append(a.closers, store.Close)

	navigator := opts.Navigator
	if navigator == nil {
		navigator = gateway.NavigatorFunc(func(_ context.Context, path string) {
			logger.WithField("path", path).Warn("Account disabled, session returned to home")
		})
	}

	a.Tokens = session.NewTokenStore(store, logger)
	a.API = api.New(cfg.API.BaseURL, cfg.API.RefreshPath, cfg.API.RequestTimeout).
		WithAdminBaseURL(cfg.API.AdminBaseURL)
	a.Gateway = gateway.New(a.Tokens, a.API, logger, gateway.Options{
		HomePath:  cfg.App.HomePath,
		Timeout:   cfg.API.RequestTimeout,
		Navigator: navigator,
		Metrics:   a.Metrics,
	})
	a.Sessions = session.NewService(a.Tokens, a.API, logger)
	a.Cart = cart.NewStore(store, a.Tokens, logger, a.Metrics)
	a.Checkout = checkout.NewService(a.Cart, a.Gateway, a.API, logger)

	a.Cart.Start(ctx)
	a.closers = append(a.closers, func() error {
		a.Cart.Close()
		return nil
	})

	return a, nil
}

func (a *App) openStorage(ctx context.Context) (kv.Store, error) {
	switch a.Config.Storage.Driver {
	case config.StorageMemory:
		a.Logger.Warn("Using in-memory session storage; the cart is lost on exit")
		return kv.NewMemory(), nil

	case config.StorageRedis:
		client, err := redis.NewConnection(a.Config, a.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		a.health = client.Health

		store, err := redis.NewStore(ctx, client.GetClient(), a.Config.Storage.Namespace, a.Config.Redis.ChangeChannel, a.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open Redis session storage: %w", err)
		}
		return store, nil

	case config.StoragePostgres:
		db, err := postgres.NewConnection(a.Config, a.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		a.health = db.Health

		if err := postgres.NewMigration(db.GetDB(), a.Logger).RunAutoMigrations(); err != nil {
			return nil, err
		}
		return postgres.NewStore(db.GetDB(), a.Config.Storage.Namespace), nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", a.Config.Storage.Driver)
}

// Server builds the local HTTP facade over this session context
func (a *App) Server() *httpserver.Server {
	home := a.Config.App.HomePath

	return httpserver.NewServer(a.Config, a.Logger, httpserver.Dependencies{
		Handlers: routes.Handlers{
			Auth:     handlers.NewAuthHandler(a.Sessions, a.API, home),
			Profile:  handlers.NewUserProfileHandler(a.Gateway, a.API, home),
			Cart:     handlers.NewCartHandler(a.Cart, a.API, home),
			Checkout: handlers.NewCheckoutHandler(a.Checkout, home),
			Products: handlers.NewProductHandler(a.API, a.Gateway, home),
			Reviews:  handlers.NewReviewHandler(a.Gateway, a.API, home),
			Orders:   handlers.NewOrderHandler(a.Gateway, a.API, home),
			Shop:     handlers.NewShopHandler(a.Gateway, a.API, home),
			Seller:   handlers.NewSellerProductHandler(a.Gateway, a.API, product.ScopeSeller, home),
			Private:  handlers.NewSellerProductHandler(a.Gateway, a.API, product.ScopePrivate, home),
			Admin:    handlers.NewUserAdminHandler(a.Gateway, a.API, home),
		},
		Tokens:   a.Tokens,
		Gatherer: a.Registry,
		Health:   a.health,
	})
}

// Close releases everything New opened, last opened first
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
