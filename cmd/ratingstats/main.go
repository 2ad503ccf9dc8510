// Command ratingstats measures how well a previously written rating file
// predicts a set of games: probability calibration (RMSE) and
// relative-order error. The rating kind must be stated explicitly.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/okian/ratelab/internal/adapters/gamestore"
	"github.com/okian/ratelab/internal/adapters/ratingfile"
	"github.com/okian/ratelab/internal/config"
	"github.com/okian/ratelab/internal/domain/eval"
	"github.com/okian/ratelab/internal/domain/rating"
	"github.com/okian/ratelab/pkg/logger"
)

func main() {
	ratingsPath := flag.String("ratings", "", "File with ratings of players")
	kind := flag.String("kind", "", "Type of ratings: pl, wl or openskill")
	noError := flag.Bool("no-error", false, "Filter out games that had bot errors")
	removeSuspect := flag.Bool("remove-suspect", false, "Filter out suspect games based on workerID")
	numGames := flag.Int("num-games", 0, "Limit the number of games used (positive for first, negative for last)")
	flag.Parse()

	if *ratingsPath == "" || *kind == "" || flag.NArg() == 0 {
		os.Stderr.WriteString("usage: ratingstats -ratings <file> -kind pl|wl|openskill game-file.json ...\n")
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

	table, err := loadTable(*ratingsPath, *kind, cfg.PriorSigma/2)
	if err != nil {
		log.Error(ctx, "loading ratings failed", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "loaded ratings", logger.Int("players", table.Len()),
		logger.String("kind", string(table.Kind())))

	store := gamestore.New(gamestore.WithLogger(log))
	games, err := store.Load(ctx, flag.Args()...)
	if err != nil {
		log.Error(ctx, "loading games failed", logger.Error(err))
		os.Exit(1)
	}
	if *noError {
		games = gamestore.WithoutErrorGames(games)
		log.Info(ctx, "filtered out error games", logger.Int("remaining", len(games)))
	}
	if *removeSuspect {
		games = gamestore.WithoutSuspectGames(games, cfg.WorkerCutoff)
		log.Info(ctx, "filtered out suspect games", logger.Int("remaining", len(games)))
	}
	games = gamestore.Limit(games, *numGames)
	results := gamestore.Results(games, nil)

	evaluator := eval.New(eval.WithLogger(log))
	rmse := evaluator.RMSE(ctx, results, table)
	fmt.Printf("Given ratings RMSE %f\n", rmse.Value)
	order := evaluator.OrderError(ctx, results, table)
	fmt.Printf("Given ratings incorrectly ordered %.2f%% results\n", order.Value*100)
	if rmse.Missed > 0 || order.Missed > 0 {
		fmt.Printf("Could not make a prediction for %d pairs.\n", order.Missed)
	}
}

func loadTable(path, kind string, beta float64) (rating.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch kind {
	case "pl":
		return ratingfile.ReadStrength(f)
	case "wl":
		return ratingfile.ReadGaussian(f, rating.KindLogistic, beta)
	case "openskill":
		return ratingfile.ReadGaussian(f, rating.KindNormal, beta)
	default:
		return nil, fmt.Errorf("unknown rating kind %q", kind)
	}
}
