package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/benefitsim/internal/api"
	"github.com/rgehrsitz/benefitsim/internal/store/sqlite"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulator over HTTP",
	Long: `Start the JSON API. Runs posted with "save": true are recorded in the
database given by --db; without it the run history endpoints answer 503.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogPath, _ := cmd.Flags().GetString("catalog")
		engine, err := newEngine(cmd, catalogPath)
		if err != nil {
			return err
		}

		var store *sqlite.Store
		if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
			store, err = sqlite.New(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()
		}

		cfg := api.DefaultConfig()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		if origins, _ := cmd.Flags().GetStringSlice("cors-origin"); len(origins) > 0 {
			cfg.CORSOrigins = origins
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "Serving %d programs on %s\n", engine.Catalog.Len(), cfg.Addr)
		return api.ListenAndServe(ctx, api.NewHandler(engine, store), cfg)
	},
}

func init() {
	serveCmd.Flags().String("addr", api.DefaultConfig().Addr, "Listen address")
	serveCmd.Flags().String("db", "", "SQLite database for recorded runs")
	serveCmd.Flags().StringSlice("cors-origin", nil, "Allowed CORS origins (default: local dev origins)")

	rootCmd.AddCommand(serveCmd)
}
