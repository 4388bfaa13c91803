package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"sigs.k8s.io/yaml"

	"garagehub/internal/loader"
	"garagehub/pkg/utils"
)

// sources is a repeatable -src flag.
type sources []string

func (s *sources) String() string     { return strings.Join(*s, ",") }
func (s *sources) Set(v string) error { *s = append(*s, v); return nil }

func main() {
	var srcs sources
	flag.Var(&srcs, "src", "catalog URL or path; repeat to merge several documents")
	outPath := flag.String("out", "data/cars.json", "output path (.json, .yaml or .yml)")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	cfg := utils.MustLoad()
	utils.SetupLogging(cfg.Log)
	if len(srcs) == 0 {
		srcs = sources{cfg.Catalog.Source}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	list := make([]loader.Source, 0, len(srcs))
	for _, s := range srcs {
		list = append(list, loader.NewSource(s, cfg.Catalog.Timeout.Duration))
	}
	cars, err := loader.Merge(ctx, loader.DecodeOptions{QuantityCap: cfg.Catalog.QuantityCap}, list...)
	if err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}

	data, err := json.MarshalIndent(cars, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("encode failed")
	}
	if loader.IsYAML(*outPath) {
		if data, err = yaml.JSONToYAML(data); err != nil {
			log.Fatal().Err(err).Msg("encode yaml failed")
		}
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatal().Err(err).Msg("create output dir failed")
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		log.Fatal().Err(err).Msg("write failed")
	}
	log.Info().Int("cars", len(cars)).Int("sources", len(srcs)).Str("out", *outPath).Msg("mirror written")
}
