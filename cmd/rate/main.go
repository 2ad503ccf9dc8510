// Command rate trains one rating system on game data files and writes or
// displays the resulting table.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/okian/ratelab/internal/adapters/gamestore"
	"github.com/okian/ratelab/internal/adapters/ratingfile"
	"github.com/okian/ratelab/internal/config"
	"github.com/okian/ratelab/internal/domain/baseline"
	"github.com/okian/ratelab/internal/domain/plackett"
	"github.com/okian/ratelab/internal/domain/rating"
	"github.com/okian/ratelab/internal/domain/wenglin"
	"github.com/okian/ratelab/pkg/logger"
	"github.com/okian/ratelab/pkg/metrics"
)

// listFlag collects repeatable string flags.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	var exclude listFlag
	system := flag.String("system", "pl", "Rating system: pl, wl-bt, wl-pl or openskill")
	tolerance := flag.Float64("tolerance", 0, "Override the convergence tolerance")
	backendName := flag.String("backend", "", "Override the sweep backend: scalar or dense")
	anchor := flag.Bool("anchor", false, "Add a player with a win and loss against every other player")
	noError := flag.Bool("no-error", false, "Filter out games that had bot errors")
	removeSuspect := flag.Bool("remove-suspect", false, "Filter out suspect games based on workerID")
	numGames := flag.Int("num-games", 0, "Limit the number of games used (positive for first, negative for last)")
	display := flag.Int("display", -1, "Limit display of ratings to top N (0 for all)")
	outFile := flag.String("o", "", "If specified, write the full ratings to the given filename")
	flag.Var(&exclude, "exclude", "Exclude player (repeatable)")
	flag.Parse()

	if flag.NArg() == 0 {
		os.Stderr.WriteString("usage: rate [options] game-file.json ...\n")
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
	if *tolerance > 0 {
		cfg.Tolerance = *tolerance
	}
	if *backendName != "" {
		cfg.Backend = *backendName
	}
	if *display >= 0 {
		cfg.DisplayLimit = *display
	}

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
	results := gamestore.Results(games, exclude)
	if len(exclude) > 0 {
		log.Info(ctx, "excluded players", logger.String("players", exclude.String()),
			logger.Int("remaining_games", len(results)))
	}

	sys, err := buildSystem(cfg, *system, *anchor, log)
	if err != nil {
		log.Error(ctx, "unknown rating system", logger.Error(err))
		os.Exit(2)
	}

	table, err := sys.Train(ctx, results)
	if err != nil {
		log.Error(ctx, "training failed", logger.Error(err))
		os.Exit(1)
	}
	metrics.UpdateTotalPlayers(table.Len())

	if st, ok := table.(*rating.StrengthTable); ok {
		table = st.Normalize()
	}

	if *outFile != "" {
		if err := writeTable(*outFile, table); err != nil {
			log.Error(ctx, "writing ratings failed", logger.Error(err))
			os.Exit(1)
		}
		log.Info(ctx, "wrote ratings", logger.String("path", *outFile),
			logger.Int("players", table.Len()))
	}

	printTable(table, cfg.DisplayLimit)
}

func buildSystem(cfg *config.Config, name string, anchor bool, log logger.Logger) (rating.System, error) {
	switch name {
	case "pl":
		backend := plackett.NewDenseBackend()
		if cfg.Backend == "scalar" {
			backend = plackett.NewScalarBackend()
		}
		return plackett.New(
			plackett.WithTolerance(cfg.Tolerance),
			plackett.WithBackend(backend),
			plackett.WithAnchor(anchor),
			plackett.WithObserver(plackett.MultiObserver{
				plackett.LogObserver{Log: log},
				plackett.MetricsObserver{},
			}),
			plackett.WithLogger(log),
		), nil
	case "wl-bt", "wl-pl":
		opts := []wenglin.Option{
			wenglin.WithPrior(cfg.PriorMu, cfg.PriorSigma),
			wenglin.WithFloor(cfg.SigmaFloor),
			wenglin.WithProgress(cfg.ProgressEvery, func(rated int) {
				log.Info(context.Background(), "rated games", logger.Int("count", rated))
			}),
			wenglin.WithLogger(log),
		}
		if name == "wl-pl" {
			return wenglin.NewPlackettLuce(opts...), nil
		}
		return wenglin.NewBradleyTerry(opts...), nil
	case "openskill":
		return baseline.New(
			baseline.WithPrior(cfg.PriorMu, cfg.PriorSigma),
			baseline.WithLogger(log),
		), nil
	default:
		return nil, fmt.Errorf("no rating system named %q", name)
	}
}

func writeTable(path string, table rating.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if st, ok := table.(*rating.StrengthTable); ok {
		return ratingfile.WriteStrength(f, st)
	}
	return ratingfile.WriteGaussian(f, table.(*rating.GaussianTable))
}

func printTable(table rating.Table, limit int) {
	players := table.Players()
	if gt, ok := table.(*rating.GaussianTable); ok {
		printGaussian(gt, limit)
		return
	}
	byScoreDesc(table, players)
	if limit > 0 && limit < len(players) {
		players = players[:limit]
	}
	for i, p := range players {
		fmt.Printf("%d: %.4f - %s\n", i+1, table.Score(p), p)
	}
}

func printGaussian(table *rating.GaussianTable, limit int) {
	players := table.Players()
	byScoreDesc(table, players)
	if limit > 0 && limit < len(players) {
		players = players[:limit]
	}
	if len(players) == 0 {
		return
	}
	rwidth := int(math.Floor(math.Log10(float64(len(players))))) + 1
	pwidth := 0
	for _, p := range players {
		if len(p) > pwidth {
			pwidth = len(p)
		}
	}
	for i, p := range players {
		g, _ := table.Rating(p)
		fmt.Printf("%*d: %*s %.2f (%.2f, %.2f)\n", rwidth, i+1, pwidth, p,
			g.Score(), g.Mu, g.Sigma)
	}
}

func byScoreDesc(table rating.Table, players []string) {
	sort.SliceStable(players, func(i, j int) bool {
		si, sj := table.Score(players[i]), table.Score(players[j])
		if si != sj {
			return si > sj
		}
		return players[i] < players[j]
	})
}
