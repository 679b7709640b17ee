package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"catalogctl/internal/compose"
	"catalogctl/internal/models"
)

// Update commands prefill the write payload from the current record, then
// apply only the flags the caller set. The backend still replaces the whole
// record, so an omitted optional field stays what it was, not what another
// session wrote in the meantime.

func updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a record",
	}
	cmd.AddCommand(
		updateLocationCmd(),
		updateAddressCmd(),
		updatePersonCmd(),
		updateOrganizationCmd(),
		updateProductCmd(),
	)
	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func updateLocationCmd() *cobra.Command {
	var x, y, z float64

	cmd := &cobra.Command{
		Use:   "location <id>",
		Short: "Update a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			notifier := newNotifier()

			id, err := parseID(args[0])
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

			if err := reg.Locations.Load(cmd.Context()); err != nil {
				return err
			}
			current, ok := reg.Locations.Find(id)
			if !ok {
				return fmt.Errorf("location %d not found", id)
			}

			w := models.LocationWrite{X: current.X, Y: current.Y, Z: current.Z, CreatedBy: current.CreatedBy}
			if cmd.Flags().Changed("x") {
				w.X = x
			}
			if cmd.Flags().Changed("y") {
				w.Y = y
			}
			if cmd.Flags().Changed("z") {
				w.Z = z
			}

			if _, err := reg.Locations.Update(cmd.Context(), id, w); err != nil {
				return err
			}
			fmt.Printf("location %d updated\n", id)
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "x coordinate")
	cmd.Flags().Float64Var(&y, "y", 0, "y coordinate")
	cmd.Flags().Float64Var(&z, "z", 0, "z coordinate")
	return cmd
}

func updateAddressCmd() *cobra.Command {
	var (
		zip  string
		town string
	)

	cmd := &cobra.Command{
		Use:   "address <id>",
		Short: "Update an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			notifier := newNotifier()

			id, err := parseID(args[0])
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

			if err := reg.Addresses.Load(cmd.Context()); err != nil {
				return err
			}
			current, ok := reg.Addresses.Find(id)
			if !ok {
				return fmt.Errorf("address %d not found", id)
			}

			townRef := compose.LocationRef{}
			switch {
			case cmd.Flags().Changed("town"):
				townRef, err = parseLocationRef(town)
				if err != nil {
					return err
				}
			case current.Town != nil:
				townRef = compose.LinkLocation(current.Town.ID)
			default:
				return fmt.Errorf("address %d has no town, --town is required", id)
			}

			zipPtr := current.ZipCode
			if cmd.Flags().Changed("zip") {
				zipPtr = nil
				if zip != "" {
					zipPtr = &zip
				}
			}

			w, vio := compose.Address(zipPtr, townRef, current.CreatedBy)
			if len(vio) > 0 {
				return vio
			}

			if _, err := reg.Addresses.Update(cmd.Context(), id, w); err != nil {
				return err
			}
			fmt.Printf("address %d updated\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&zip, "zip", "", "zip code, empty clears it")
	cmd.Flags().StringVar(&town, "town", "", "town: an existing location id, or x,y,z")
	return cmd
}

func updatePersonCmd() *cobra.Command {
	var (
		name        string
		birthday    string
		hairColor   string
		eyeColor    string
		nationality string
		location    string
	)

	cmd := &cobra.Command{
		Use:   "person <id>",
		Short: "Update a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			notifier := newNotifier()

			id, err := parseID(args[0])
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

			if err := reg.Persons.Load(cmd.Context()); err != nil {
				return err
			}
			current, ok := reg.Persons.Find(id)
			if !ok {
				return fmt.Errorf("person %d not found", id)
			}

			w := models.PersonWrite{
				Name:        current.Name,
				Birthday:    current.Birthday,
				HairColor:   current.HairColor,
				EyeColor:    current.EyeColor,
				Nationality: current.Nationality,
				CreatedBy:   current.CreatedBy,
			}
			if cmd.Flags().Changed("name") {
				w.Name = name
			}
			if cmd.Flags().Changed("birthday") {
				w.Birthday = nil
				if birthday != "" {
					t, err := time.Parse(time.DateOnly, birthday)
					if err != nil {
						return fmt.Errorf("invalid birthday %q, expected YYYY-MM-DD", birthday)
					}
					w.Birthday = &t
				}
			}
			if cmd.Flags().Changed("hair-color") {
				w.HairColor = models.Color(hairColor)
			}
			if cmd.Flags().Changed("eye-color") {
				w.EyeColor = nil
				if eyeColor != "" {
					c := models.Color(eyeColor)
					w.EyeColor = &c
				}
			}
			if cmd.Flags().Changed("nationality") {
				w.Nationality = models.Country(nationality)
			}

			locationRef := compose.LocationRef{}
			switch {
			case cmd.Flags().Changed("location"):
				locationRef, err = parseLocationRef(location)
				if err != nil {
					return err
				}
			case current.Location != nil:
				locationRef = compose.LinkLocation(current.Location.ID)
			default:
				return fmt.Errorf("person %d has no location, --location is required", id)
			}

			w, vio := compose.Person(w, locationRef)
			if len(vio) > 0 {
				return vio
			}

			if _, err := reg.Persons.Update(cmd.Context(), id, w); err != nil {
				return err
			}
			fmt.Printf("person %d updated\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "person name")
	cmd.Flags().StringVar(&birthday, "birthday", "", "birthday, YYYY-MM-DD, empty clears it")
	cmd.Flags().StringVar(&hairColor, "hair-color", "", "hair color")
	cmd.Flags().StringVar(&eyeColor, "eye-color", "", "eye color, empty clears it")
	cmd.Flags().StringVar(&nationality, "nationality", "", "nationality")
	cmd.Flags().StringVar(&location, "location", "", "location: an existing location id, or x,y,z")
	return cmd
}

func updateOrganizationCmd() *cobra.Command {
	var (
		name      string
		fullName  string
		employees int64
		turnover  string
		rating    float64
		official  string
		postal    string
	)

	cmd := &cobra.Command{
		Use:   "organization <id>",
		Short: "Update an organization",
		Long:  "Updates an organization. Untouched address slots stay linked to the record's current addresses.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			notifier := newNotifier()

			id, err := parseID(args[0])
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

			if err := reg.Organizations.Load(cmd.Context()); err != nil {
				return err
			}
			current, ok := reg.Organizations.Find(id)
			if !ok {
				return fmt.Errorf("organization %d not found", id)
			}

			w := models.OrganizationWrite{
				Name:           current.Name,
				FullName:       current.FullName,
				EmployeesCount: current.EmployeesCount,
				AnnualTurnover: current.AnnualTurnover,
				Rating:         current.Rating,
				CreatedBy:      current.CreatedBy,
			}
			if cmd.Flags().Changed("name") {
				w.Name = name
			}
			if cmd.Flags().Changed("full-name") {
				w.FullName = nil
				if fullName != "" {
					w.FullName = &fullName
				}
			}
			if cmd.Flags().Changed("employees") {
				w.EmployeesCount = employees
			}
			if cmd.Flags().Changed("turnover") {
				w.AnnualTurnover = nil
				if turnover != "" {
					d, err := decimal.NewFromString(turnover)
					if err != nil {
						return fmt.Errorf("invalid turnover %q", turnover)
					}
					w.AnnualTurnover = &d
				}
			}
			if cmd.Flags().Changed("rating") {
				w.Rating = &rating
			}

			officialRef, postalRef := compose.EditOrganizationDefaults(*current)
			if cmd.Flags().Changed("official-address") {
				officialRef = nil
				if official != "" {
					ref, err := parseAddressRef(official)
					if err != nil {
						return err
					}
					officialRef = &ref
				}
			}
			if cmd.Flags().Changed("postal-address") {
				postalRef = nil
				if postal != "" {
					ref, err := parseAddressRef(postal)
					if err != nil {
						return err
					}
					postalRef = &ref
				}
			}

			w, vio := compose.Organization(w, officialRef, postalRef)
			if len(vio) > 0 {
				return vio
			}

			if _, err := reg.Organizations.Update(cmd.Context(), id, w); err != nil {
				return err
			}
			fmt.Printf("organization %d updated\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "organization name")
	cmd.Flags().StringVar(&fullName, "full-name", "", "full legal name, empty clears it")
	cmd.Flags().Int64Var(&employees, "employees", 0, "employee count")
	cmd.Flags().StringVar(&turnover, "turnover", "", "annual turnover, empty clears it")
	cmd.Flags().Float64Var(&rating, "rating", 0, "rating")
	cmd.Flags().StringVar(&official, "official-address", "", "official address: an id, or zip@town, empty clears it")
	cmd.Flags().StringVar(&postal, "postal-address", "", "postal address: an id, or zip@town, empty clears it")
	return cmd
}

func updateProductCmd() *cobra.Command {
	var (
		name            string
		coordX          float64
		coordY          float64
		unit            string
		price           string
		manufactureCost string
		rating          float64
		partNumber      string
		manufacturerID  int64
		ownerID         int64
	)

	cmd := &cobra.Command{
		Use:   "product <id>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			notifier := newNotifier()

			id, err := parseID(args[0])
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

			if err := reg.Products.Load(cmd.Context()); err != nil {
				return err
			}
			current, ok := reg.Products.Find(id)
			if !ok {
				return fmt.Errorf("product %d not found", id)
			}

			w := models.ProductWrite{
				Name:            current.Name,
				Coordinates:     current.Coordinates,
				UnitOfMeasure:   current.UnitOfMeasure,
				Manufacturer:    current.Manufacturer,
				Price:           current.Price,
				ManufactureCost: current.ManufactureCost,
				Rating:          current.Rating,
				PartNumber:      current.PartNumber,
				Owner:           current.Owner,
				CreatedBy:       current.CreatedBy,
			}
			if cmd.Flags().Changed("name") {
				w.Name = name
			}
			if cmd.Flags().Changed("coord-x") {
				w.Coordinates.X = coordX
			}
			if cmd.Flags().Changed("coord-y") {
				w.Coordinates.Y = coordY
			}
			if cmd.Flags().Changed("unit") {
				w.UnitOfMeasure = models.UnitOfMeasure(unit)
			}
			if cmd.Flags().Changed("price") {
				d, err := decimal.NewFromString(price)
				if err != nil {
					return fmt.Errorf("invalid price %q", price)
				}
				w.Price = d
			}
			if cmd.Flags().Changed("manufacture-cost") {
				w.ManufactureCost = nil
				if manufactureCost != "" {
					d, err := decimal.NewFromString(manufactureCost)
					if err != nil {
						return fmt.Errorf("invalid manufacture cost %q", manufactureCost)
					}
					w.ManufactureCost = &d
				}
			}
			if cmd.Flags().Changed("rating") {
				w.Rating = rating
			}
			if cmd.Flags().Changed("part-number") {
				w.PartNumber = partNumber
			}
			if cmd.Flags().Changed("manufacturer") {
				if err := reg.Organizations.Load(cmd.Context()); err != nil {
					return err
				}
				manufacturer, ok := reg.Organizations.Find(manufacturerID)
				if !ok {
					return fmt.Errorf("organization %d not found", manufacturerID)
				}
				w.Manufacturer = manufacturer
			}
			if cmd.Flags().Changed("owner") {
				if err := reg.Persons.Load(cmd.Context()); err != nil {
					return err
				}
				owner, ok := reg.Persons.Find(ownerID)
				if !ok {
					return fmt.Errorf("person %d not found", ownerID)
				}
				w.Owner = owner
			}

			if _, err := reg.Products.Update(cmd.Context(), id, w); err != nil {
				return err
			}
			fmt.Printf("product %d updated\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().Float64Var(&coordX, "coord-x", 0, "x coordinate")
	cmd.Flags().Float64Var(&coordY, "coord-y", 0, "y coordinate")
	cmd.Flags().StringVar(&unit, "unit", "", "unit of measure")
	cmd.Flags().StringVar(&price, "price", "", "price")
	cmd.Flags().StringVar(&manufactureCost, "manufacture-cost", "", "manufacture cost, empty clears it")
	cmd.Flags().Float64Var(&rating, "rating", 0, "rating")
	cmd.Flags().StringVar(&partNumber, "part-number", "", "part number")
	cmd.Flags().Int64Var(&manufacturerID, "manufacturer", 0, "manufacturer organization id")
	cmd.Flags().Int64Var(&ownerID, "owner", 0, "owner person id")
	return cmd
}
