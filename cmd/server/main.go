package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/splitmate/internal/config"
	"github.com/mmynk/splitmate/internal/events"
	"github.com/mmynk/splitmate/internal/jobs"
	"github.com/mmynk/splitmate/internal/metrics"
	"github.com/mmynk/splitmate/internal/middleware"
	"github.com/mmynk/splitmate/internal/service"
	"github.com/mmynk/splitmate/internal/storage/sqlite"
	"github.com/mmynk/splitmate/pkg/api"
	"github.com/mmynk/splitmate/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	var publisher events.Publisher = events.Nop{}
	if cfg.EventsEnabled() {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return fmt.Errorf("initialize event publisher: %w", err)
		}
		publisher = amqpPublisher
		slog.Info("Publishing ledger events", "exchange", cfg.AMQPExchange)
	} else {
		slog.Info("AMQP_URL not set, ledger events disabled")
	}
	defer publisher.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	svcOpts := []service.Option{service.WithPublisher(publisher), service.WithMetrics(m)}
	ledgerSvc := service.NewLedgerService(store, svcOpts...)
	balanceSvc := service.NewBalanceService(store, cfg.DistinguishedFriendID, svcOpts...)

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(m),
	)

	mux := http.NewServeMux()
	mux.Handle(api.NewLedgerServiceHandler(ledgerSvc, interceptors))
	mux.Handle(api.NewBalanceServiceHandler(balanceSvc, interceptors))
	mux.Handle("/metrics", middleware.AccessLog(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	mux.Handle("/healthz", middleware.AccessLog(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})))

	// h2c serves HTTP/2 without TLS, which Connect and gRPC clients need.
	handler := h2c.NewHandler(middleware.RequestID(middleware.CORS(mux)), &http2.Server{})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	scheduler := jobs.NewScheduler()
	if cfg.BalanceRefreshSchedule != "" {
		if err := scheduler.AddBalanceRefresh(ctx, cfg.BalanceRefreshSchedule, balanceSvc); err != nil {
			return fmt.Errorf("schedule balance refresh: %w", err)
		}
	}
	scheduler.Start()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down", "timeout", cfg.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		scheduler.Stop(shutdownCtx)
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("Server stopped gracefully")
	return nil
}
