package root

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"carpick/internal/config"
	"carpick/internal/displayer"
	"carpick/internal/metrics"
	"carpick/internal/registry"
	"carpick/internal/registry/mock"
	"carpick/internal/registry/vpic"
	"carpick/pkg/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func Run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	if err := log.InitLogger(cfg.Debug, cfg.LogOutputs()...); err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(reg)
	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, reg); err != nil {
				log.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	provider := newProvider(cfg, m)

	if cfg.NoTUI {
		return runHeadless(ctx, cmd.OutOrStdout(), provider, m, queries{
			manufacturer: cfg.Manufacturer,
			make:         cfg.Make,
			model:        cfg.Model,
		})
	}

	d := displayer.New(ctx, provider, m)
	return d.Run()
}

func newProvider(cfg config.Config, m *metrics.Metrics) registry.Provider {
	if cfg.Mock {
		log.Info("using mock registry")
		return mock.New(300*time.Millisecond, 400*time.Millisecond)
	}

	log.Info("using vPIC registry",
		zap.String("base_url", cfg.BaseURL),
		zap.Float64("rate", cfg.Rate),
		zap.Duration("cache_ttl", cfg.CacheTTL),
	)
	return vpic.New(vpic.Config{
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.Timeout,
		Rate:     cfg.Rate,
		Burst:    cfg.Burst,
		CacheTTL: cfg.CacheTTL,
		Metrics:  m,
	})
}
