// Command docgate runs the document management demo server. All
// authorization decisions are delegated to a remote policy decision point;
// the server itself holds no policy rules.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/permitio/docgate"
	"github.com/permitio/docgate/api"
	"github.com/permitio/docgate/decision"
	"github.com/permitio/docgate/docs"
	"github.com/permitio/docgate/pdp"
	"github.com/permitio/docgate/store/memory"
)

type serverConfig struct {
	Addr  string         `yaml:"addr"`
	PDP   pdpConfig      `yaml:"pdp"`
	Guard docgate.Config `yaml:"guard"`
}

type pdpConfig struct {
	Address string `yaml:"address"`
	Token   string `yaml:"token"`
}

func loadConfig(path string) (serverConfig, error) {
	cfg := serverConfig{
		Addr:  ":4000",
		PDP:   pdpConfig{Address: "http://localhost:7766"},
		Guard: docgate.DefaultConfig(),
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	if v := os.Getenv("DOCGATE_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("DOCGATE_PDP_ADDRESS"); v != "" {
		cfg.PDP.Address = v
	}
	if v := os.Getenv("DOCGATE_PDP_TOKEN"); v != "" {
		cfg.PDP.Token = v
	}
	return cfg, nil
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	st := memory.NewSeeded()

	var pdpOpts []pdp.HTTPOption
	if cfg.PDP.Token != "" {
		pdpOpts = append(pdpOpts, pdp.WithToken(cfg.PDP.Token))
	}
	client := pdp.NewHTTP(cfg.PDP.Address, pdpOpts...)

	guard, err := docgate.NewGuard(
		docgate.WithClient(client),
		docgate.WithConfig(cfg.Guard),
		docgate.WithLogger(logger),
		docgate.WithHook(decision.NewRecorder(st, logger)),
	)
	if err != nil {
		return err
	}

	svc := docs.NewService(guard, st, docs.WithLogger(logger))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.New(svc, nil).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("docgate listening", "addr", cfg.Addr, "pdp", cfg.PDP.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := guard.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("stop guard: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("docgate failed", "error", err)
		os.Exit(1)
	}
}
