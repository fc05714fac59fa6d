package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mjdusa/etcher/internal/app"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "etcher: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:           "etcher",
		Short:         "Flash OS images to drives from the terminal",
		Long:          "etcher drives a local flashing daemon: pick an image, pick targets, flash.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file (default: ~/.config/etcher/config.toml)")
	cmd.Flags().IntVar(&opts.PollEvery, "poll", 0, "daemon poll interval in seconds (optional, defaults to 1s)")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	return cmd
}
