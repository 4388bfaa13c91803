package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"garagehub/internal/garage"
	hubsync "garagehub/internal/sync"
	"garagehub/pkg/utils"
)

func main() {
	cfg := utils.MustLoad()
	utils.SetupLogging(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := hubsync.NewHub()
	app := garage.NewApp(cfg, hub)

	// Bind TCP sync first so binding errors show up before the first load.
	tcpSrv := hubsync.NewServer(cfg.Server.TCPAddr, hub)
	if err := tcpSrv.Listen(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Server.TCPAddr).Msg("tcp sync listen failed")
	}

	// The view server starts even when the first load fails; /ready reports it.
	if snap, err := app.Loader.Load(ctx); err != nil {
		log.Error().Err(err).Str("source", app.Source.Name()).Msg("initial catalog load failed")
	} else {
		log.Info().Str("snapshot", snap.ID).Int("items", snap.Len()).Msg("catalog loaded")
	}

	watcher, err := app.Watcher()
	if err != nil {
		log.Fatal().Err(err).Msg("catalog watcher failed")
	}
	if watcher != nil {
		if err := watcher.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("catalog watcher failed")
		}
		defer watcher.Stop()
	}

	router := garage.NewRouter(app.Handler(), hub)
	httpSrv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           garage.WithCORS(router, cfg.Server.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(tcpSrv.Run)

	g.Go(func() error {
		log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("HTTP view server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return app.Background(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown error")
		}
		if err := tcpSrv.Close(); err != nil {
			log.Error().Err(err).Msg("tcp shutdown error")
		}
		hub.Close()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server error")
	}
	log.Info().Msg("servers stopped")
}
