package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func getCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <entity> <id>",
		Short: "Fetch one record by id",
		Long:  "Fetches one record as JSON. Entities: " + entityNames + ".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			notifier := newNotifier()

			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[1])
			}

			gate, err := newGate(notifier, logger)
			if err != nil {
				return err
			}
			if err := requireUser(gate); err != nil {
				return err
			}
			api := newClient(gate, notifier, logger)
			reg := newRegistry(api, gate, notifier, logger)

			var (
				item  any
				found bool
			)
			switch args[0] {
			case "locations":
				if err := reg.Locations.Load(cmd.Context()); err != nil {
					return err
				}
				item, found = reg.Locations.Find(id)
			case "addresses":
				if err := reg.Addresses.Load(cmd.Context()); err != nil {
					return err
				}
				item, found = reg.Addresses.Find(id)
			case "organizations":
				if err := reg.Organizations.Load(cmd.Context()); err != nil {
					return err
				}
				item, found = reg.Organizations.Find(id)
			case "persons":
				if err := reg.Persons.Load(cmd.Context()); err != nil {
					return err
				}
				item, found = reg.Persons.Find(id)
			case "products":
				if err := reg.Products.Load(cmd.Context()); err != nil {
					return err
				}
				item, found = reg.Products.Find(id)
			default:
				return fmt.Errorf("unknown entity %q, expected one of: %s", args[0], entityNames)
			}
			if !found {
				return fmt.Errorf("%s %d not found", args[0], id)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(item)
		},
	}
	return cmd
}
