package main

import (
	"context"
	"fmt"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	hubsync "garagehub/internal/sync"
)

var (
	syncAddr   string
	syncPretty bool
	wsURL      string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Follow catalog reload events over TCP",
}

var syncListenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Print reload events until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		addr := syncAddr
		if addr == "" {
			addr = cfg.Server.TCPAddr
		}
		return hubsync.Follow(ctx, addr, time.Second, func(line []byte) {
			if syncPretty {
				fmt.Println(hubsync.Pretty(line))
				return
			}
			fmt.Println(string(line))
		})
	},
}

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Follow catalog reload events over WebSocket",
}

var notifySubscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Print WebSocket reload events until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := wsURL
		if endpoint == "" {
			var err error
			endpoint, err = websocketURL(apiURL, "/ws")
			if err != nil {
				return fmt.Errorf("ws url: %w", err)
			}
		}
		return runWebSocket(endpoint)
	},
}

func init() {
	syncListenCmd.Flags().StringVar(&syncAddr, "addr", "", "TCP sync server address (default: server.tcp_addr)")
	syncListenCmd.Flags().BoolVar(&syncPretty, "pretty", true, "pretty print JSON events")
	notifySubscribeCmd.Flags().StringVar(&wsURL, "ws", "", "WebSocket URL (defaults to /ws on the API host)")
}

func runWebSocket(endpoint string) error {
	conn, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Info().Str("component", "notify").Str("url", endpoint).Msg("connected")
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		fmt.Println(hubsync.Pretty(msg))
	}
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}
