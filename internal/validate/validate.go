// Package validate holds the per-entity rule sets applied before every
// create and update call. Validators accumulate violations across all
// fields in one pass instead of stopping at the first failure, so a single
// submission reports everything that is wrong with it. No I/O happens here.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"catalogctl/internal/models"
)

const (
	// MinCoordinateX is the exclusive lower bound for x coordinates.
	MinCoordinateX = -947

	// MaxCoordinateY is the inclusive upper bound for y coordinates.
	MaxCoordinateY = 903

	// MinPartNumberLen is the minimum length of a product part number.
	MinPartNumberLen = 15

	// MinPasswordLen is the minimum length of an account password.
	MinPasswordLen = 6
)

// Violation is a single field-level rule failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations is an ordered list of rule failures. A nil or empty list
// means the payload is valid.
type Violations []Violation

// Error joins all violations into one consolidated message.
func (v Violations) Error() string {
	parts := make([]string, len(v))
	for i, violation := range v {
		parts[i] = violation.Field + ": " + violation.Message
	}
	return strings.Join(parts, "; ")
}

// collector accumulates violations under an optional field-path prefix.
type collector struct {
	prefix     string
	violations Violations
}

func (c *collector) add(field, message string) {
	if c.prefix != "" {
		field = c.prefix + "." + field
	}
	c.violations = append(c.violations, Violation{Field: field, Message: message})
}

func (c *collector) nested(prefix string) *collector {
	if c.prefix != "" {
		prefix = c.prefix + "." + prefix
	}
	return &collector{prefix: prefix}
}

func (c *collector) merge(other *collector) {
	c.violations = append(c.violations, other.violations...)
}

func (c *collector) result() Violations {
	if len(c.violations) == 0 {
		return nil
	}
	return c.violations
}

// Location checks a location write payload. The bounds use the exact
// operators of the backend contract: x strictly greater than -947,
// y at most 903, z unconstrained.
func Location(w models.LocationWrite) Violations {
	c := &collector{}
	locationInto(c, w)
	return c.result()
}

func locationInto(c *collector, w models.LocationWrite) {
	if !(w.X > MinCoordinateX) {
		c.add("x", fmt.Sprintf("must be greater than %d", MinCoordinateX))
	}
	if !(w.Y <= MaxCoordinateY) {
		c.add("y", fmt.Sprintf("must not be greater than %d", MaxCoordinateY))
	}
}

// Address checks an address write payload. Zip code and town are both
// optional; an embedded town, when present, must reference a persisted
// location, and an inline new town must satisfy the location bounds.
func Address(w models.AddressWrite) Violations {
	c := &collector{}
	addressInto(c, w)
	return c.result()
}

func addressInto(c *collector, w models.AddressWrite) {
	if w.Town != nil && w.Town.ID == 0 {
		c.add("town.id", "required")
	}
	if w.CreateTown != nil {
		town := c.nested("createTown")
		locationInto(town, *w.CreateTown)
		c.merge(town)
	}
}

// Organization checks an organization write payload.
func Organization(w models.OrganizationWrite) Violations {
	c := &collector{}
	organizationInto(c, w)
	return c.result()
}

func organizationInto(c *collector, w models.OrganizationWrite) {
	if w.Name == "" {
		c.add("name", "required")
	}
	if !(w.EmployeesCount > 0) {
		c.add("employeesCount", "must be greater than 0")
	}
	if w.AnnualTurnover != nil && !w.AnnualTurnover.GreaterThan(decimal.Zero) {
		c.add("annualTurnover", "must be greater than 0")
	}
	if w.Rating != nil && !(*w.Rating > 0) {
		c.add("rating", "must be greater than 0")
	}
	if w.CreateOfficialAddress != nil {
		addr := c.nested("createOfficialAddress")
		addressInto(addr, *w.CreateOfficialAddress)
		c.merge(addr)
	}
	if w.CreatePostalAddress != nil {
		addr := c.nested("createPostalAddress")
		addressInto(addr, *w.CreatePostalAddress)
		c.merge(addr)
	}
}

// Person checks a person write payload. Unlike Address and Organization,
// the location slot may never be absent entirely.
func Person(w models.PersonWrite) Violations {
	c := &collector{}
	personInto(c, w)
	return c.result()
}

func personInto(c *collector, w models.PersonWrite) {
	if w.Name == "" {
		c.add("name", "required")
	}
	switch {
	case w.HairColor == "":
		c.add("hairColor", "required")
	case !w.HairColor.IsValid():
		c.add("hairColor", fmt.Sprintf("must be one of %v", models.ValidColors))
	}
	if w.EyeColor != nil && !w.EyeColor.IsValid() {
		c.add("eyeColor", fmt.Sprintf("must be one of %v", models.ValidColors))
	}
	switch {
	case w.Nationality == "":
		c.add("nationality", "required")
	case !w.Nationality.IsValid():
		c.add("nationality", fmt.Sprintf("must be one of %v", models.ValidCountries))
	}
	if w.Location == nil {
		c.add("location", "required")
	}
	if w.CreateLocation != nil {
		loc := c.nested("createLocation")
		locationInto(loc, *w.CreateLocation)
		c.merge(loc)
	}
}

// Product checks a product write payload. Manufacturer and owner must be
// already-persisted records selected from loaded collections.
func Product(w models.ProductWrite) Violations {
	c := &collector{}
	productCommonInto(c, w.Name, w.Coordinates, w.UnitOfMeasure, w.Price, w.Rating, w.PartNumber)
	switch {
	case w.Manufacturer == nil:
		c.add("manufacturer", "required")
	case w.Manufacturer.ID == 0:
		c.add("manufacturer.id", "required")
	}
	if w.Manufacturer != nil && w.Manufacturer.Name == "" {
		c.add("manufacturer.name", "required")
	}
	switch {
	case w.Owner == nil:
		c.add("owner", "required")
	case w.Owner.ID == 0:
		c.add("owner.id", "required")
	}
	if w.Owner != nil && w.Owner.Name == "" {
		c.add("owner.name", "required")
	}
	return c.result()
}

// ImportProduct checks one record of a bulk import batch: the product
// fields plus the nested owner and manufacturer payloads, each against its
// own schema, with violations accumulated under dotted prefixes.
func ImportProduct(p models.ProductImport) Violations {
	c := &collector{}
	productCommonInto(c, p.Name, p.Coordinates, p.UnitOfMeasure, p.Price, p.Rating, p.PartNumber)
	if p.Owner == nil {
		c.add("owner", "required")
	} else {
		owner := c.nested("owner")
		personInto(owner, *p.Owner)
		c.merge(owner)
	}
	if p.Manufacturer == nil {
		c.add("manufacturer", "required")
	} else {
		mfr := c.nested("manufacturer")
		organizationInto(mfr, *p.Manufacturer)
		c.merge(mfr)
	}
	return c.result()
}

func productCommonInto(c *collector, name string, coords models.Coordinates, unit models.UnitOfMeasure, price decimal.Decimal, rating float64, partNumber string) {
	if name == "" {
		c.add("name", "required")
	}
	if !(coords.X > MinCoordinateX) {
		c.add("coordinates.x", fmt.Sprintf("must be greater than %d", MinCoordinateX))
	}
	if !(coords.Y <= MaxCoordinateY) {
		c.add("coordinates.y", fmt.Sprintf("must not be greater than %d", MaxCoordinateY))
	}
	switch {
	case unit == "":
		c.add("unitOfMeasure", "required")
	case !unit.IsValid():
		c.add("unitOfMeasure", fmt.Sprintf("must be one of %v", models.ValidUnitsOfMeasure))
	}
	if !price.GreaterThan(decimal.Zero) {
		c.add("price", "must be greater than 0")
	}
	if !(rating > 0) {
		c.add("rating", "must be greater than 0")
	}
	if utf8.RuneCountInString(partNumber) < MinPartNumberLen {
		c.add("partNumber", fmt.Sprintf("must contain at least %d characters", MinPartNumberLen))
	}
}

// SignIn checks the sign-in input before it leaves the client.
func SignIn(username, password string) Violations {
	c := &collector{}
	credentialsInto(c, username, password)
	return c.result()
}

// SignUp checks the sign-up input, including the requested role.
func SignUp(username, password string, role models.Role) Violations {
	c := &collector{}
	credentialsInto(c, username, password)
	if !role.IsValid() {
		c.add("role", fmt.Sprintf("must be one of %v", models.ValidRoles))
	}
	return c.result()
}

func credentialsInto(c *collector, username, password string) {
	if username == "" {
		c.add("username", "required")
	}
	if utf8.RuneCountInString(password) < MinPasswordLen {
		c.add("password", fmt.Sprintf("must contain at least %d characters", MinPasswordLen))
	}
}
