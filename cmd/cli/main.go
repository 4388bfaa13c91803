package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"garagehub/pkg/utils"
)

var (
	apiURL  string
	timeout time.Duration
	verbose bool

	cfg    utils.Config
	client *http.Client
)

var rootCmd = &cobra.Command{
	Use:   "garage",
	Short: "Browse a die-cast car collection",
	Long: `garage talks to a running view server (search, show, home, ...) or
browses the catalog locally (browse, hero).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := utils.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		if verbose {
			cfg.Log.Level = "debug"
		}
		utils.SetupLogging(cfg.Log)

		if apiURL == "" {
			apiURL = cfg.Server.PublicURL
		}
		client = &http.Client{Timeout: timeout}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "view server base URL (default: server.public_url)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "HTTP timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(searchCmd, showCmd, shareCmd, homeCmd, exchangeCmd, filtersCmd, giftsCmd)
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogStatusCmd, catalogRefreshCmd)

	rootCmd.AddCommand(browseCmd, heroCmd)

	rootCmd.AddCommand(syncCmd, notifyCmd)
	syncCmd.AddCommand(syncListenCmd)
	notifyCmd.AddCommand(notifySubscribeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
