// Command crossvalidate scores every rating system against a directory of
// pre-partitioned game files, holding each part out in turn.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"flag"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/ratelab/internal/adapters/gamestore"
	"github.com/okian/ratelab/internal/config"
	"github.com/okian/ratelab/internal/domain/baseline"
	"github.com/okian/ratelab/internal/domain/crossval"
	"github.com/okian/ratelab/internal/domain/eval"
	"github.com/okian/ratelab/internal/domain/plackett"
	"github.com/okian/ratelab/internal/domain/wenglin"
	"github.com/okian/ratelab/pkg/logger"
	"github.com/okian/ratelab/pkg/metrics"
)

const metricsReadTimeout = 5 * time.Second

func main() {
	partsDir := flag.String("parts", "", "Directory containing partitioned game files")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address while running")
	flag.Parse()

	if *partsDir == "" {
		os.Stderr.WriteString("usage: crossvalidate -parts <dir>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.Error(err))
	}
	if *metricsAddr == "" {
		*metricsAddr = cfg.MetricsAddr
	}
	if *metricsAddr != "" {
		go serveMetrics(ctx, *metricsAddr, log)
	}

	folds, err := loadFolds(ctx, *partsDir, log)
	if err != nil {
		log.Error(ctx, "loading partitions failed", logger.Error(err))
		os.Exit(1)
	}
	total := 0
	for _, f := range folds {
		total += len(f)
	}
	log.Info(ctx, "loaded partitions", logger.Int("games", total),
		logger.Int("parts", len(folds)))

	validator := crossval.New(
		crossval.WithLogger(log),
		crossval.WithEvaluator(eval.New(eval.WithLogger(log))),
		crossval.WithSystem(plackett.New(
			plackett.WithTolerance(cfg.Tolerance),
			plackett.WithObserver(plackett.MetricsObserver{}),
			plackett.WithLogger(log),
		)),
		crossval.WithSystem(wenglin.NewBradleyTerry(
			wenglin.WithPrior(cfg.PriorMu, cfg.PriorSigma),
			wenglin.WithFloor(cfg.SigmaFloor),
		)),
		crossval.WithSystem(wenglin.NewPlackettLuce(
			wenglin.WithPrior(cfg.PriorMu, cfg.PriorSigma),
			wenglin.WithFloor(cfg.SigmaFloor),
		)),
		crossval.WithSystem(baseline.New(
			baseline.WithPrior(cfg.PriorMu, cfg.PriorSigma),
		)),
	)

	reports, err := validator.Run(ctx, folds)
	if err != nil {
		log.Error(ctx, "cross-validation failed", logger.Error(err))
		os.Exit(1)
	}
	for _, r := range reports {
		fmt.Printf("Prediction error for %-17s %.2f%% (%.2f%%)\n",
			r.System, r.Mean*100, r.StdDev*100)
	}
}

// loadFolds reads every .json file in dir as one immutable fold, in file
// name order.
func loadFolds(ctx context.Context, dir string, log logger.Logger) ([]crossval.Fold, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	store := gamestore.New(gamestore.WithLogger(log))
	folds := make([]crossval.Fold, 0, len(names))
	for _, name := range names {
		games, err := store.Load(ctx, filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		folds = append(folds, crossval.Fold(games))
	}
	return folds, nil
}

func serveMetrics(ctx context.Context, addr string, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadTimeout,
	}
	log.Info(ctx, "serving metrics", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Warn(ctx, "metrics server failed", logger.Error(err))
	}
}
