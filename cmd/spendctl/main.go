package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/carson-networks/spend-tracker/internal/apiclient"
	"github.com/carson-networks/spend-tracker/internal/logging"
)

type rootOptions struct {
	server   string
	timeout  time.Duration
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "spendctl",
		Short: "Record spending from plain sentences",
		Long: `spendctl talks to a running spend-tracker server. Describe what you bought
in your own words and the assistant turns it into transactions.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.server, "server", envOr("SPENDCTL_SERVER", "http://localhost:9446"), "spend-tracker server URL")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 90*time.Second, "request timeout, including the model call")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(newChatCmd(opts))
	cmd.AddCommand(newRecordCmd(opts))
	cmd.AddCommand(newParseCmd(opts))
	return cmd
}

func (o *rootOptions) client() *apiclient.Client {
	return apiclient.New(o.server, o.timeout)
}

func (o *rootOptions) logger() (*logrus.Logger, error) {
	logger := logging.SetupLogging()
	if err := logging.ApplyLevel(logger, o.logLevel); err != nil {
		return nil, err
	}
	return logger, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}
