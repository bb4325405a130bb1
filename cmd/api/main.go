package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/shopnex/api/routes"
	"github.com/angelmondragon/shopnex/internal/cart"
	"github.com/angelmondragon/shopnex/internal/catalog"
	"github.com/angelmondragon/shopnex/pkg/config"
	"github.com/angelmondragon/shopnex/pkg/instance"
	"github.com/angelmondragon/shopnex/pkg/logger"
	"github.com/angelmondragon/shopnex/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	backend, err := openStorage(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, backend.Close())
	}()

	products, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	store := cart.NewStore(ctx, cart.StoreParams{
		Storage:  backend.storage,
		SlotName: cfg.Storage.SlotName,
		Logger:   logg,
		Metrics:  metrics.NewCartMetrics(reg),
	})

	addr := ":" + cfg.App.Port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"backend":  cfg.Storage.Backend,
		"slot":     cfg.Storage.SlotName,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			Store:    store,
			Catalog:  products,
			Pricing:  pricingFromConfig(cfg.Pricing),
			Storage:  backend.pinger,
			Registry: reg,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		// request contexts end with the process context so event streams
		// return before Shutdown starts waiting on them
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func loadCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	if cfg.Path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(cfg.Path)
}

func pricingFromConfig(cfg config.PricingConfig) cart.Pricing {
	return cart.Pricing{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		ShippingFee:           cfg.ShippingFee,
		TaxRate:               cfg.TaxRate,
	}
}
