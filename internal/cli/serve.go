// internal/cli/serve.go
package codsim

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/codsim/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveHTTP = func(ctx context.Context, cfg server.Config) error {
	srv, err := server.New(cfg)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}

// serveCmd represents the 'serve' command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser dashboard",
	Long:  `The 'serve' command starts the HTTP dashboard: a parameter form, results, comparison table and chart in the browser, plus a JSON, CSV and PNG API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func runServe(ctx context.Context) error {
	cfg := GetConfig()
	defaults, err := cfg.DefaultRequest()
	if err != nil {
		return err
	}
	return serveHTTP(ctx, server.Config{
		Addr:         cfg.ListenAddr(),
		AllowOrigins: cfg.CORSOrigins(),
		Simulator:    newSimulator(cfg.Seed),
		Defaults:     defaults,
	})
}

func init() {
	serveCmd.Flags().String("host", "", "interface to listen on (default 127.0.0.1)")
	serveCmd.Flags().Int("port", 0, "port to listen on (default 8501)")
	_ = viper.BindPFlag("host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}
