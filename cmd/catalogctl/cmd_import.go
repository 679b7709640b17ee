package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"catalogctl/internal/importer"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Bulk-import products from a JSON file",
		Long:  "Imports a JSON array of products with nested owner and manufacturer payloads. Every record is validated locally first; a single invalid record aborts the whole batch. The backend commits the batch atomically and records the outcome in the import history.",
		Args:  cobra.ExactArgs(1),
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
			userID, err := gate.UserID()
			if err != nil {
				return err
			}
			api := newClient(gate, notifier, logger)

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			batch, err := importer.Parse(f)
			if err != nil {
				return err
			}

			im := importer.New(api, notifier, logger)
			return im.Import(cmd.Context(), batch, userID)
		},
	}
	return cmd
}
