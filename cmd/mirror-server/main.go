package main

import (
	"errors"
	"flag"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"garagehub/internal/mirror"
	"garagehub/pkg/utils"
)

func main() {
	cfg := utils.MustLoad()
	utils.SetupLogging(cfg.Log)

	// serves the catalog file at GET /cars.json
	path := flag.String("file", "data/cars.json", "catalog file (JSON or YAML)")
	images := flag.String("images", "", "image directory served at /images")
	addr := flag.String("addr", cfg.Server.MirrorAddr, "listen address")
	flag.Parse()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mirror.New(*path, *images, middleware.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info().Str("addr", *addr).Str("file", *path).Msg("mirror-server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("mirror-server stopped")
	}
}
