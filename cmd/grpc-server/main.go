package main

import (
	"context"
	"net"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"

	"garagehub/internal/garage"
	"garagehub/internal/grpcserver"
	"garagehub/pkg/grpc/garagepb"
	"garagehub/pkg/utils"
)

func main() {
	cfg := utils.MustLoad()
	utils.SetupLogging(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := garage.NewApp(cfg, nil)
	if snap, err := app.Loader.Load(ctx); err != nil {
		log.Error().Err(err).Str("source", app.Source.Name()).Msg("initial catalog load failed")
	} else {
		log.Info().Str("snapshot", snap.ID).Int("items", snap.Len()).Msg("catalog loaded")
	}
	go func() {
		_ = app.Background(ctx)
	}()

	listener, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Server.GRPCAddr).Msg("grpc listen failed")
	}

	grpcServer := grpc.NewServer()
	garagepb.RegisterCatalogServiceServer(grpcServer, grpcserver.NewServer(app.Views, app.Loader))

	go func() {
		<-ctx.Done()
		log.Info().Msg("stopping gRPC server")
		grpcServer.GracefulStop()
	}()

	log.Info().Str("addr", cfg.Server.GRPCAddr).Msg("gRPC server listening")
	if err := grpcServer.Serve(listener); err != nil {
		log.Fatal().Err(err).Msg("grpc server stopped")
	}
}
