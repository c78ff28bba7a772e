package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"taxdesk/internal/stubserver"
)

var (
	serveAddr     string
	serveDB       string
	serveSeed     bool
	serveFailRate float64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local stub record store for demos and development",
	Long: `Runs a sqlite-backed stand-in for the remote record store on the same
REST surface the client expects. --fail-rate injects write failures so the
client's optimistic rollback path can be exercised locally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := stubserver.OpenDB(serveDB)
		if err != nil {
			return err
		}
		defer db.Close()

		if serveSeed {
			if err := db.Seed(); err != nil {
				return err
			}
		}

		srv := stubserver.NewServer(stubserver.Config{
			ListenAddr: serveAddr,
			FailRate:   serveFailRate,
		}, db)
		if err := srv.Start(); err != nil {
			return err
		}
		slog.Info("stub server listening", "addr", serveAddr, "db", serveDB, "fail_rate", serveFailRate)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8340", "listen address")
	serveCmd.Flags().StringVar(&serveDB, "db", "taxdesk-stub.db", "sqlite database path (\":memory:\" for ephemeral)")
	serveCmd.Flags().BoolVar(&serveSeed, "seed", true, "seed demo data when empty")
	serveCmd.Flags().Float64Var(&serveFailRate, "fail-rate", 0, "fraction of writes to fail (0..1)")
	rootCmd.AddCommand(serveCmd)
}
