package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hayasaka-dev/resale-ledger/internal/services"
)

// Config holds application configuration, loaded from RESALE_* env vars.
type Config struct {
	Addr          string `envconfig:"ADDR" default:":8080"`
	Environment   string `envconfig:"ENVIRONMENT" default:"development"`
	SpreadsheetID string `envconfig:"SPREADSHEET_ID"`
	SheetName     string `envconfig:"SHEET_NAME" default:"products"`
	Channels      string `envconfig:"CHANNELS" default:"mercari,yahoo_auction,ebay,other"`

	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load configuration from environment variables
	var cfg Config
	if err := envconfig.Process("RESALE", &cfg); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Logger
	logger, err := newLogger(cfg.Environment)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting resale ledger",
		zap.String("addr", cfg.Addr),
		zap.String("environment", cfg.Environment),
		zap.String("sheet", cfg.SheetName),
	)

	// 3. Initialize service dependencies (DI container)
	opts, err := services.NewServiceOptions(ctx, services.Params{
		SpreadsheetID: cfg.SpreadsheetID,
		SheetName:     cfg.SheetName,
		Channels:      splitChannels(cfg.Channels),
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("initialize services: %w", err)
	}

	// 4. HTTP server
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	opts.Handler.Register(engine)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// 5. Serve until signalled, then drain in-flight requests
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func splitChannels(csv string) []string {
	var out []string
	for _, c := range strings.Split(csv, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
