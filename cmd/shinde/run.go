package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Siasom1/shinde-chain/node"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func (c *cli) runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a Shinde node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			n := node.NewNode(cfg, nil)
			if err := n.Start(ctx); err != nil {
				return err
			}

			<-ctx.Done()

			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return n.Stop(stopCtx)
		},
	}

	cmd.Flags().Int("rpc-port", 9933, "JSON-RPC port")
	cmd.Flags().Bool("telemetry", true, "Connect to the telemetry endpoints of the chain spec")
	_ = c.v.BindPFlag(node.KeyRPCPort, cmd.Flags().Lookup("rpc-port"))
	_ = c.v.BindPFlag(node.KeyTelemetryEnabled, cmd.Flags().Lookup("telemetry"))
	return cmd
}
