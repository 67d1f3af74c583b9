package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rustyeddy/nodesim/config"
	"github.com/rustyeddy/nodesim/internal/web"
	"github.com/rustyeddy/nodesim/journal"
	"github.com/rustyeddy/nodesim/logger"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser projection table",
	Long: `Serve the input form and the paged projection table over HTTP.

Rows are streamed in batches over a websocket as the table is scrolled.
When a config file is given, every run is also recorded to its journal.

Examples:
  nodesim serve
  nodesim serve --addr :9090 --config projection.yaml`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr    string
	serveConfig  string
	serveMaxRuns int
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVarP(&serveConfig, "config", "f", "", "config file whose journal records served runs")
	serveCmd.Flags().IntVar(&serveMaxRuns, "max-runs", web.DefaultMaxRuns, "runs kept in memory")
}

func runServe(cmd *cobra.Command, args []string) error {
	j := journal.Discard
	if serveConfig != "" {
		cfg, err := config.LoadFromFile(serveConfig)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := configureLogger(cmd, cfg.Log); err != nil {
			return err
		}
		j, err = journal.Open(cfg.Journal)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
	}
	defer j.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := web.New(
		web.WithJournal(j),
		web.WithMaxRuns(serveMaxRuns),
		web.WithLogger(logger.Get()),
	)
	return srv.ListenAndServe(ctx, serveAddr)
}
