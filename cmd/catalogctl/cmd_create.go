package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"catalogctl/internal/compose"
	"catalogctl/internal/models"
)

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a record",
	}
	cmd.AddCommand(
		createLocationCmd(),
		createAddressCmd(),
		createPersonCmd(),
		createOrganizationCmd(),
		createProductCmd(),
	)
	return cmd
}

// parseLocationRef reads a location slot value: a bare id links an existing
// location, an "x,y,z" triple creates a new one inline.
func parseLocationRef(value string) (compose.LocationRef, error) {
	if strings.Contains(value, ",") {
		parts := strings.Split(value, ",")
		if len(parts) != 3 {
			return compose.LocationRef{}, fmt.Errorf("location %q: expected x,y,z", value)
		}
		coords := make([]float64, 3)
		for i, part := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return compose.LocationRef{}, fmt.Errorf("location %q: %w", value, err)
			}
			coords[i] = f
		}
		return compose.CreateLocation(models.LocationWrite{X: coords[0], Y: coords[1], Z: coords[2]}), nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return compose.LocationRef{}, fmt.Errorf("location %q: expected an id or x,y,z", value)
	}
	return compose.LinkLocation(id), nil
}

// parseAddressRef reads an address slot: a bare id links, "zip@town" creates
// an address inline with its own town slot (id or x,y,z triple).
func parseAddressRef(value string) (compose.AddressRef, error) {
	if at := strings.Index(value, "@"); at >= 0 {
		zip := value[:at]
		town, err := parseLocationRef(value[at+1:])
		if err != nil {
			return compose.AddressRef{}, err
		}
		var zipPtr *string
		if zip != "" {
			zipPtr = &zip
		}
		return compose.CreateAddress(zipPtr, town), nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return compose.AddressRef{}, fmt.Errorf("address %q: expected an id or zip@town", value)
	}
	return compose.LinkAddress(id), nil
}

func createLocationCmd() *cobra.Command {
	var x, y, z float64

	cmd := &cobra.Command{
		Use:   "location",
		Short: "Create a location",
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
			reg := newRegistry(api, gate, notifier, logger)

			created, err := reg.Locations.Create(cmd.Context(), models.LocationWrite{
				X: x, Y: y, Z: z, CreatedBy: userID,
			})
			if err != nil {
				return err
			}
			fmt.Printf("location %d created\n", created.ID)
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "x coordinate")
	cmd.Flags().Float64Var(&y, "y", 0, "y coordinate")
	cmd.Flags().Float64Var(&z, "z", 0, "z coordinate")
	return cmd
}

func createAddressCmd() *cobra.Command {
	var (
		zip  string
		town string
	)

	cmd := &cobra.Command{
		Use:   "address",
		Short: "Create an address",
		Long:  "Creates an address. --town takes an existing location id, or x,y,z to create a new location with it.",
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
			reg := newRegistry(api, gate, notifier, logger)

			townRef, err := parseLocationRef(town)
			if err != nil {
				return err
			}
			var zipPtr *string
			if zip != "" {
				zipPtr = &zip
			}
			w, vio := compose.Address(zipPtr, townRef, userID)
			if len(vio) > 0 {
				return vio
			}

			created, err := reg.Addresses.Create(cmd.Context(), w)
			if err != nil {
				return err
			}
			fmt.Printf("address %d created\n", created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&zip, "zip", "", "zip code")
	cmd.Flags().StringVar(&town, "town", "", "town: an existing location id, or x,y,z")
	_ = cmd.MarkFlagRequired("town")
	return cmd
}

func createPersonCmd() *cobra.Command {
	var (
		name        string
		birthday    string
		hairColor   string
		eyeColor    string
		nationality string
		location    string
	)

	cmd := &cobra.Command{
		Use:   "person",
		Short: "Create a person",
		Long:  "Creates a person. --location takes an existing location id, or x,y,z to create a new location with them.",
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
			reg := newRegistry(api, gate, notifier, logger)

			locationRef, err := parseLocationRef(location)
			if err != nil {
				return err
			}

			w := models.PersonWrite{
				Name:        name,
				HairColor:   models.Color(hairColor),
				Nationality: models.Country(nationality),
				CreatedBy:   userID,
			}
			if birthday != "" {
				t, err := time.Parse(time.DateOnly, birthday)
				if err != nil {
					return fmt.Errorf("invalid birthday %q, expected YYYY-MM-DD", birthday)
				}
				w.Birthday = &t
			}
			if eyeColor != "" {
				c := models.Color(eyeColor)
				w.EyeColor = &c
			}

			w, vio := compose.Person(w, locationRef)
			if len(vio) > 0 {
				return vio
			}

			created, err := reg.Persons.Create(cmd.Context(), w)
			if err != nil {
				return err
			}
			fmt.Printf("person %d created\n", created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "person name")
	cmd.Flags().StringVar(&birthday, "birthday", "", "birthday, YYYY-MM-DD")
	cmd.Flags().StringVar(&hairColor, "hair-color", "", "hair color")
	cmd.Flags().StringVar(&eyeColor, "eye-color", "", "eye color")
	cmd.Flags().StringVar(&nationality, "nationality", "", "nationality")
	cmd.Flags().StringVar(&location, "location", "", "location: an existing location id, or x,y,z")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("location")
	return cmd
}

func createOrganizationCmd() *cobra.Command {
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
		Use:   "organization",
		Short: "Create an organization",
		Long:  "Creates an organization. Address slots take an existing address id, or zip@town to create one inline (town is a location id or x,y,z).",
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
			reg := newRegistry(api, gate, notifier, logger)

			w := models.OrganizationWrite{
				Name:           name,
				EmployeesCount: employees,
				CreatedBy:      userID,
			}
			if fullName != "" {
				w.FullName = &fullName
			}
			if turnover != "" {
				d, err := decimal.NewFromString(turnover)
				if err != nil {
					return fmt.Errorf("invalid turnover %q", turnover)
				}
				w.AnnualTurnover = &d
			}
			if cmd.Flags().Changed("rating") {
				w.Rating = &rating
			}

			var officialRef, postalRef *compose.AddressRef
			if official != "" {
				ref, err := parseAddressRef(official)
				if err != nil {
					return err
				}
				officialRef = &ref
			}
			if postal != "" {
				ref, err := parseAddressRef(postal)
				if err != nil {
					return err
				}
				postalRef = &ref
			}

			w, vio := compose.Organization(w, officialRef, postalRef)
			if len(vio) > 0 {
				return vio
			}

			created, err := reg.Organizations.Create(cmd.Context(), w)
			if err != nil {
				return err
			}
			fmt.Printf("organization %d created\n", created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "organization name")
	cmd.Flags().StringVar(&fullName, "full-name", "", "full legal name")
	cmd.Flags().Int64Var(&employees, "employees", 0, "employee count")
	cmd.Flags().StringVar(&turnover, "turnover", "", "annual turnover")
	cmd.Flags().Float64Var(&rating, "rating", 0, "rating")
	cmd.Flags().StringVar(&official, "official-address", "", "official address: an id, or zip@town")
	cmd.Flags().StringVar(&postal, "postal-address", "", "postal address: an id, or zip@town")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func createProductCmd() *cobra.Command {
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
		Use:   "product",
		Short: "Create a product",
		Long:  "Creates a product. Manufacturer and owner are ids of already-existing records; both are resolved against the loaded collections before anything is sent.",
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
			reg := newRegistry(api, gate, notifier, logger)

			if err := reg.Organizations.Load(cmd.Context()); err != nil {
				return err
			}
			if err := reg.Persons.Load(cmd.Context()); err != nil {
				return err
			}

			manufacturer, ok := reg.Organizations.Find(manufacturerID)
			if !ok {
				return fmt.Errorf("organization %d not found", manufacturerID)
			}
			owner, ok := reg.Persons.Find(ownerID)
			if !ok {
				return fmt.Errorf("person %d not found", ownerID)
			}

			priceDec, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("invalid price %q", price)
			}

			w := models.ProductWrite{
				Name:          name,
				Coordinates:   models.Coordinates{X: coordX, Y: coordY},
				UnitOfMeasure: models.UnitOfMeasure(unit),
				Manufacturer:  manufacturer,
				Price:         priceDec,
				Rating:        rating,
				PartNumber:    partNumber,
				Owner:         owner,
				CreatedBy:     userID,
			}
			if manufactureCost != "" {
				d, err := decimal.NewFromString(manufactureCost)
				if err != nil {
					return fmt.Errorf("invalid manufacture cost %q", manufactureCost)
				}
				w.ManufactureCost = &d
			}

			created, err := reg.Products.Create(cmd.Context(), w)
			if err != nil {
				return err
			}
			fmt.Printf("product %d created\n", created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().Float64Var(&coordX, "coord-x", 0, "x coordinate")
	cmd.Flags().Float64Var(&coordY, "coord-y", 0, "y coordinate")
	cmd.Flags().StringVar(&unit, "unit", "", "unit of measure")
	cmd.Flags().StringVar(&price, "price", "", "price")
	cmd.Flags().StringVar(&manufactureCost, "manufacture-cost", "", "manufacture cost")
	cmd.Flags().Float64Var(&rating, "rating", 0, "rating")
	cmd.Flags().StringVar(&partNumber, "part-number", "", "part number")
	cmd.Flags().Int64Var(&manufacturerID, "manufacturer", 0, "manufacturer organization id")
	cmd.Flags().Int64Var(&ownerID, "owner", 0, "owner person id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("part-number")
	_ = cmd.MarkFlagRequired("manufacturer")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}
