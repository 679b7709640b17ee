package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"catalogctl/internal/cache"
	"catalogctl/internal/poller"
	"catalogctl/internal/store"
)

// snapshotLoader refreshes the registry and mirrors the result into the
// offline cache. A failed refresh skips the snapshot so the cache keeps the
// last good data.
type snapshotLoader struct {
	reg *store.Registry
	db  *sql.DB
}

func (s *snapshotLoader) LoadAll(ctx context.Context) error {
	if err := s.reg.LoadAll(ctx); err != nil {
		return err
	}
	return cache.Snapshot(ctx, s.db, s.reg)
}

func watchCmd() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the backend and keep the offline cache fresh",
		Long:  "Refreshes every collection on the configured interval until interrupted. Each successful refresh also snapshots the collections into the offline cache unless --no-cache is set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			notifier := newNotifier()

			gate, err := newGate(notifier, logger)
			if err != nil {
				return err
			}
			if err := requireUser(gate); err != nil {
				return err
			}
			api := newClient(gate, notifier, logger)
			reg := newRegistry(api, gate, notifier, logger)

			loader := poller.Loader(reg)
			if !noCache {
				db, err := cache.Open(cfg.Cache.Path)
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()
				loader = &snapshotLoader{reg: reg, db: db}
			}

			ref := poller.New(cfg.Poll.Interval, loader, logger)
			ref.Start(cmd.Context())
			fmt.Printf("watching, refreshing every %s (ctrl-c to stop)\n", cfg.Poll.Interval)

			<-cmd.Context().Done()
			ref.Stop()
			fmt.Println("stopped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "do not snapshot refreshed collections to the offline cache")
	return cmd
}
