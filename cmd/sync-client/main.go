package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	hubsync "garagehub/internal/sync"
	"garagehub/pkg/utils"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:7070", "TCP sync server address")
	pretty := flag.Bool("pretty", true, "pretty print JSON events")
	retry := flag.Duration("retry", time.Second, "reconnect delay")
	flag.Parse()

	utils.SetupLogging(utils.LogConfig{Level: "info", Pretty: true})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := hubsync.Follow(ctx, *addr, *retry, func(line []byte) {
		if *pretty {
			fmt.Println(hubsync.Pretty(line))
			return
		}
		fmt.Println(string(line))
	})
	if err != nil {
		log.Fatal().Err(err).Msg("sync client stopped")
	}
}
