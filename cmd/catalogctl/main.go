package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"catalogctl/internal/client"
	"catalogctl/internal/config"
	"catalogctl/internal/notify"
	"catalogctl/internal/session"
	"catalogctl/internal/store"
)

var cfg *config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := &cobra.Command{
		Use:   "catalogctl",
		Short: "catalogctl — admin client for the product catalog backend",
		Long:  "Catalogctl manages the catalog's products and their dependent records: organizations, persons, addresses, and locations, with bulk import and a relationship graph.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
	}

	rootCmd.AddCommand(
		loginCmd(),
		signupCmd(),
		logoutCmd(),
		whoamiCmd(),
		approveCmd(),
		listCmd(),
		getCmd(),
		createCmd(),
		updateCmd(),
		deleteCmd(),
		importCmd(),
		historyCmd(),
		queryCmd(),
		watchCmd(),
		graphCmd(),
		mcpCmd(),
	)

	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil && cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func newNotifier() notify.Notifier {
	return notify.NewConsole(os.Stderr)
}

// newGate restores the persisted session; commands that require a signed-in
// user check the gate themselves.
func newGate(notifier notify.Notifier, logger *slog.Logger) (*session.Gate, error) {
	gate := session.NewGate(cfg.Session.Path, notifier, logger)
	if err := gate.Restore(); err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	return gate, nil
}

func newClient(gate *session.Gate, notifier notify.Notifier, logger *slog.Logger) *client.Client {
	return client.New(cfg.Server.BaseURL, cfg.Server.Timeout, gate, notifier, logger)
}

func newRegistry(c *client.Client, gate *session.Gate, notifier notify.Notifier, logger *slog.Logger) *store.Registry {
	return store.NewRegistry(c, gate, notifier, logger)
}

// requireUser fails fast when no session is present.
func requireUser(gate *session.Gate) error {
	if gate.User() == nil {
		return fmt.Errorf("not signed in, run \"catalogctl login\" first")
	}
	return nil
}
