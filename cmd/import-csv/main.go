package main

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"garagehub/internal/loader"
	"garagehub/pkg/utils"
)

func main() {
	var (
		in  = flag.String("in", "data/cars.csv", "input CSV path")
		out = flag.String("out", "data/cars.json", "output catalog JSON path")
	)
	flag.Parse()
	utils.SetupLogging(utils.LogConfig{Level: "info", Pretty: true})

	f, err := os.Open(*in)
	if err != nil {
		log.Fatal().Err(err).Msg("open csv failed")
	}
	defer f.Close()

	cars, err := loader.ReadCSV(f)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	data, err := json.MarshalIndent(cars, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("encode failed")
	}
	// the written document must load like any other catalog
	if _, err := loader.Decode(data, loader.DecodeOptions{}); err != nil {
		log.Fatal().Err(err).Msg("imported catalog does not decode")
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatal().Err(err).Msg("create output dir failed")
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatal().Err(err).Msg("write failed")
	}
	log.Info().Int("cars", len(cars)).Str("in", *in).Str("out", *out).Msg("imported")
}
