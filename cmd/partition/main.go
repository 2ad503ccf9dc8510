// Command partition splits game files into disjoint parts for
// cross-validation, shuffling first so parts are unbiased samples.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/ratelab/internal/adapters/gamestore"
	"github.com/okian/ratelab/internal/config"
	"github.com/okian/ratelab/internal/domain/crossval"
	"github.com/okian/ratelab/pkg/logger"
)

const partFilePermission = 0o600

func main() {
	outDir := flag.String("o", "", "Directory name for output files")
	numParts := flag.Int("n", 0, "Number of parts to split games into")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Shuffle seed; fix for reproducible splits")
	flag.Parse()

	if *outDir == "" || flag.NArg() == 0 {
		os.Stderr.WriteString("usage: partition -o <dir> [options] game-file.json ...\n")
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
	if *numParts <= 0 {
		*numParts = cfg.Folds
	}

	store := gamestore.New(gamestore.WithLogger(log))
	games, err := store.Load(ctx, flag.Args()...)
	if err != nil {
		log.Error(ctx, "loading games failed", logger.Error(err))
		os.Exit(1)
	}

	folds := crossval.Partition(games, *numParts, *seed)

	if err := os.MkdirAll(*outDir, 0o750); err != nil {
		log.Error(ctx, "creating output directory failed", logger.Error(err))
		os.Exit(1)
	}
	width := int(math.Ceil(math.Log10(float64(*numParts))))
	if width < 1 {
		width = 1
	}
	for i, fold := range folds {
		name := fmt.Sprintf("part-%0*d.json", width, i)
		path := filepath.Join(*outDir, name)
		data, err := json.MarshalIndent(fold, "", "  ")
		if err != nil {
			log.Error(ctx, "encoding part failed", logger.Error(err))
			os.Exit(1)
		}
		if err := os.WriteFile(path, data, partFilePermission); err != nil {
			log.Error(ctx, "writing part failed", logger.Error(err))
			os.Exit(1)
		}
		log.Info(ctx, "wrote part", logger.Int("games", len(fold)),
			logger.String("path", path))
	}
}
