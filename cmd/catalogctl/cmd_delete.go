package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"catalogctl/internal/graph"
)

func deleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:       "delete <entity> <id>",
		Short:     "Delete a record",
		Long:      "Deletes one record. Without --force, the relationship graph is checked first and the delete is refused locally when other records still reference it.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"locations", "addresses", "organizations", "persons", "products"},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			notifier := newNotifier()

			id, err := parseID(args[1])
			if err != nil {
				return err
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

			var kind graph.Kind
			switch args[0] {
			case "locations":
				kind = graph.KindLocation
			case "addresses":
				kind = graph.KindAddress
			case "organizations":
				kind = graph.KindOrganization
			case "persons":
				kind = graph.KindPerson
			case "products":
				kind = graph.KindProduct
			default:
				return fmt.Errorf("unknown entity %q, expected one of: %s", args[0], entityNames)
			}

			if !force {
				if err := reg.LoadAll(cmd.Context()); err != nil {
					return err
				}
				incoming := graph.Build(reg).Incoming(kind, id)
				if len(incoming) > 0 {
					for _, e := range incoming {
						fmt.Printf("referenced by %s/%d (%s)\n", e.FromKind, e.FromID, e.Relation)
					}
					return fmt.Errorf("%s %d is still referenced by %d record(s), re-run with --force to let the backend decide", args[0], id, len(incoming))
				}
			}

			switch kind {
			case graph.KindLocation:
				err = reg.Locations.Delete(cmd.Context(), id)
			case graph.KindAddress:
				err = reg.Addresses.Delete(cmd.Context(), id)
			case graph.KindOrganization:
				err = reg.Organizations.Delete(cmd.Context(), id)
			case graph.KindPerson:
				err = reg.Persons.Delete(cmd.Context(), id)
			case graph.KindProduct:
				err = reg.Products.Delete(cmd.Context(), id)
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s %d deleted\n", args[0], id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip the local reference check")
	return cmd
}
