package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dako7777777/rental-bidding-tool/internal/adapters/metrics"
	"github.com/dako7777777/rental-bidding-tool/internal/application/common"
	"github.com/dako7777777/rental-bidding-tool/internal/application/recommendation"
	"github.com/dako7777777/rental-bidding-tool/internal/application/recommendation/commands"
	"github.com/dako7777777/rental-bidding-tool/internal/infrastructure/config"
	"github.com/dako7777777/rental-bidding-tool/internal/infrastructure/logging"
)

// app is the wiring shared by the commands that run searches
type app struct {
	cfg      *config.Config
	mediator common.Mediator
	logger   zerolog.Logger
	closer   io.Closer
	metrics  bool
	stderr   io.Writer
}

// newApp loads configuration and wires logging, metrics and the mediator
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		mediator: common.NewMediator(),
		logger:   logger,
		closer:   closer,
		metrics:  cfg.Metrics.Enabled || dumpMetrics,
		stderr:   cmd.ErrOrStderr(),
	}

	a.mediator.Use(common.LoggingMiddleware())
	if a.metrics {
		if err := a.initMetrics(); err != nil {
			_ = closer.Close()
			return nil, err
		}
	}

	generator := recommendation.NewGenerator(cfg.Search.Tuning(), recommendation.Options{
		Tolerance: cfg.Strategy.Tolerance,
		Increment: cfg.Strategy.Increment,
		Parallel:  cfg.Strategy.Parallel,
	}, nil)
	if err := commands.RegisterHandlers(a.mediator, generator); err != nil {
		_ = closer.Close()
		return nil, err
	}

	return a, nil
}

func (a *app) initMetrics() error {
	metrics.InitRegistry()

	searchCollector := metrics.NewSearchMetricsCollector()
	if err := searchCollector.Register(); err != nil {
		return fmt.Errorf("failed to register search metrics: %w", err)
	}
	metrics.SetGlobalSearchCollector(searchCollector)

	requestCollector := metrics.NewRequestMetricsCollector()
	if err := requestCollector.Register(); err != nil {
		return fmt.Errorf("failed to register request metrics: %w", err)
	}
	a.mediator.Use(metrics.PrometheusMiddleware(requestCollector))
	return nil
}

// context returns ctx carrying the app logger
func (a *app) context(ctx context.Context) context.Context {
	return common.WithLogger(ctx, a.logger)
}

// close dumps metrics when requested and releases the log output
func (a *app) close() error {
	if a.metrics {
		if dumpMetrics || a.cfg.Metrics.Dump {
			if err := metrics.WriteText(a.stderr); err != nil {
				a.logger.Warn().Err(err).Msg("failed to write metrics")
			}
		}
		metrics.ResetRegistry()
	}
	return a.closer.Close()
}
