package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"catalogctl/internal/cache"
	"catalogctl/internal/models"
)

func listCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:       "list <entity>",
		Short:     "List a collection",
		Long:      "Lists one collection: locations, addresses, organizations, persons, or products. With --offline, reads the last cached snapshot instead of the backend.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"locations", "addresses", "organizations", "persons", "products"},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			notifier := newNotifier()
			entity := args[0]

			if offline {
				return listOffline(cmd.Context(), entity)
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

			switch entity {
			case "locations":
				if err := reg.Locations.Load(cmd.Context()); err != nil {
					return err
				}
				printLocations(reg.Locations.Items())
			case "addresses":
				if err := reg.Addresses.Load(cmd.Context()); err != nil {
					return err
				}
				printAddresses(reg.Addresses.Items())
			case "organizations":
				if err := reg.Organizations.Load(cmd.Context()); err != nil {
					return err
				}
				printOrganizations(reg.Organizations.Items())
			case "persons":
				if err := reg.Persons.Load(cmd.Context()); err != nil {
					return err
				}
				printPersons(reg.Persons.Items())
			case "products":
				if err := reg.Products.Load(cmd.Context()); err != nil {
					return err
				}
				printProducts(reg.Products.Items())
			default:
				return fmt.Errorf("unknown entity %q", entity)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "read the cached snapshot instead of the backend")
	return cmd
}

func listOffline(ctx context.Context, entity string) error {
	db, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	switch entity {
	case "locations":
		items, err := cache.LoadCollection[models.Location](ctx, db, cache.EntityLocations)
		if err != nil {
			return err
		}
		printLocations(items)
	case "addresses":
		items, err := cache.LoadCollection[models.Address](ctx, db, cache.EntityAddresses)
		if err != nil {
			return err
		}
		printAddresses(items)
	case "organizations":
		items, err := cache.LoadCollection[models.Organization](ctx, db, cache.EntityOrganizations)
		if err != nil {
			return err
		}
		printOrganizations(items)
	case "persons":
		items, err := cache.LoadCollection[models.Person](ctx, db, cache.EntityPersons)
		if err != nil {
			return err
		}
		printPersons(items)
	case "products":
		items, err := cache.LoadCollection[models.Product](ctx, db, cache.EntityProducts)
		if err != nil {
			return err
		}
		printProducts(items)
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}
	return nil
}

func printLocations(items []models.Location) {
	for _, l := range items {
		fmt.Printf("%d\t(%g, %g, %g)\n", l.ID, l.X, l.Y, l.Z)
	}
	if len(items) == 0 {
		fmt.Println("no locations")
	}
}

func printAddresses(items []models.Address) {
	for _, a := range items {
		zip := "-"
		if a.ZipCode != nil {
			zip = *a.ZipCode
		}
		town := "-"
		if a.Town != nil {
			town = fmt.Sprintf("location %d", a.Town.ID)
		}
		fmt.Printf("%d\t%s\t%s\n", a.ID, zip, town)
	}
	if len(items) == 0 {
		fmt.Println("no addresses")
	}
}

func printOrganizations(items []models.Organization) {
	for _, o := range items {
		turnover := "-"
		if o.AnnualTurnover != nil {
			turnover = o.AnnualTurnover.String()
		}
		fmt.Printf("%d\t%s\temployees=%d\tturnover=%s\n", o.ID, o.Name, o.EmployeesCount, turnover)
	}
	if len(items) == 0 {
		fmt.Println("no organizations")
	}
}

func printPersons(items []models.Person) {
	for _, p := range items {
		birthday := "-"
		if p.Birthday != nil {
			birthday = p.Birthday.Format(time.DateOnly)
		}
		fmt.Printf("%d\t%s\t%s\t%s\tborn %s\n", p.ID, p.Name, p.HairColor, p.Nationality, birthday)
	}
	if len(items) == 0 {
		fmt.Println("no persons")
	}
}

func printProducts(items []models.Product) {
	for _, p := range items {
		owner := "-"
		if p.Owner != nil {
			owner = p.Owner.Name
		}
		mfr := "-"
		if p.Manufacturer != nil {
			mfr = p.Manufacturer.Name
		}
		fmt.Printf("%d\t%s\t%s\tprice=%s\trating=%g\towner=%s\tmanufacturer=%s\n",
			p.ID, p.Name, p.PartNumber, p.Price.String(), p.Rating, owner, mfr)
	}
	if len(items) == 0 {
		fmt.Println("no products")
	}
}

// entityNames is the canonical spelling used across commands.
var entityNames = strings.Join([]string{"locations", "addresses", "organizations", "persons", "products"}, ", ")
