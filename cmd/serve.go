package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/warehouse-sim/warehouse-sim/server"
	sim "github.com/warehouse-sim/warehouse-sim/sim"
)

var listenAddr string

// serveCmd runs the simulation in real time behind the renderer bridge:
// snapshot broadcasts and UI commands over WebSocket, Prometheus metrics
// over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the simulation in real time with the WebSocket/metrics bridge",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg := buildConfig()
		catalog := buildCatalog()

		s := sim.NewSimulator(catalog, seed)
		state, err := s.NewInitialState(cfg)
		if err != nil {
			logrus.Fatalf("unable to initialize simulation: %v", err)
		}

		runner := sim.NewRunner(s, state)
		srv := server.New(runner)

		ctx := context.Background()
		go func() {
			if err := runner.Run(ctx); err != nil && err != context.Canceled {
				logrus.Fatalf("simulation loop: %v", err)
			}
		}()

		logrus.Infof("Serving on %s (ws: /ws, metrics: /metrics)", listenAddr)
		if err := srv.ListenAndServe(listenAddr); err != nil {
			logrus.Fatalf("server: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", ":8080", "HTTP listen address")
	rootCmd.AddCommand(serveCmd)
}
