package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"garagehub/internal/loader"
	"garagehub/pkg/utils"
)

func main() {
	cfg := utils.MustLoad()
	utils.SetupLogging(cfg.Log)

	var (
		src = flag.String("src", cfg.Catalog.Source, "catalog URL or path")
		out = flag.String("out", "data/cars.csv", "output CSV path")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	source := loader.NewSource(*src, cfg.Catalog.Timeout.Duration)
	data, err := source.Fetch(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("source", source.Name()).Msg("fetch failed")
	}
	cars, err := loader.Decode(data, loader.DecodeOptions{})
	if err != nil {
		log.Fatal().Err(err).Msg("decode failed")
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatal().Err(err).Msg("create output dir failed")
	}
	f, err := os.Create(*out)
	if err != nil {
		log.Fatal().Err(err).Msg("create csv failed")
	}
	defer f.Close()

	if err := loader.WriteCSV(f, cars); err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}
	log.Info().Int("cars", len(cars)).Str("out", *out).Msg("exported")
}
