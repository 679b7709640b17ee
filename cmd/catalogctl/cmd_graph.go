package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"catalogctl/internal/graph"
)

var errNeo4jNotConfigured = errors.New("neo4j.uri is not configured")

func graphCmd() *cobra.Command {
	var (
		asJSON bool
		sync   bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show the relationship graph",
		Long:  "Builds the reference graph over all loaded collections, marking edges whose target record is missing. With --sync, the graph is also mirrored into the configured Neo4j database.",
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

			if err := reg.LoadAll(cmd.Context()); err != nil {
				return err
			}
			g := graph.Build(reg)

			if sync {
				if cfg.Neo4j.URI == "" {
					return errNeo4jNotConfigured
				}
				syncer, err := graph.NewSyncer(cmd.Context(), cfg.Neo4j.URI, cfg.Neo4j.Username, cfg.Neo4j.Password, cfg.Neo4j.Database, logger)
				if err != nil {
					return err
				}
				defer func() { _ = syncer.Close(cmd.Context()) }()
				if err := syncer.Sync(cmd.Context(), g); err != nil {
					return err
				}
			}

			if asJSON {
				return g.RenderJSON(os.Stdout)
			}
			return g.RenderText(os.Stdout)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "render as JSON")
	cmd.Flags().BoolVar(&sync, "sync", false, "mirror the graph into Neo4j")
	return cmd
}
