package models

// UnitOfMeasure is the unit a product quantity is expressed in.
type UnitOfMeasure string

const (
	UnitKilograms    UnitOfMeasure = "KILOGRAMS"
	UnitCentimeters  UnitOfMeasure = "CENTIMETERS"
	UnitSquareMeters UnitOfMeasure = "SQUARE_METERS"
	UnitLiters       UnitOfMeasure = "LITERS"
)

// ValidUnitsOfMeasure is the set of all valid units.
var ValidUnitsOfMeasure = []UnitOfMeasure{
	UnitKilograms,
	UnitCentimeters,
	UnitSquareMeters,
	UnitLiters,
}

// IsValid returns true if the unit is recognized.
func (u UnitOfMeasure) IsValid() bool {
	for _, v := range ValidUnitsOfMeasure {
		if u == v {
			return true
		}
	}
	return false
}

// Color is the closed enumeration used for hair and eye color.
type Color string

const (
	ColorRed    Color = "RED"
	ColorOrange Color = "ORANGE"
	ColorGreen  Color = "GREEN"
	ColorWhite  Color = "WHITE"
	ColorBrown  Color = "BROWN"
)

// ValidColors is the set of all valid colors.
var ValidColors = []Color{
	ColorRed,
	ColorOrange,
	ColorGreen,
	ColorWhite,
	ColorBrown,
}

// IsValid returns true if the color is recognized.
func (c Color) IsValid() bool {
	for _, v := range ValidColors {
		if c == v {
			return true
		}
	}
	return false
}

// Country is the closed enumeration for a person's nationality.
type Country string

const (
	CountryRussia     Country = "RUSSIA"
	CountryIndia      Country = "INDIA"
	CountryVatican    Country = "VATICAN"
	CountrySouthKorea Country = "SOUTH_KOREA"
)

// ValidCountries is the set of all valid countries.
var ValidCountries = []Country{
	CountryRussia,
	CountryIndia,
	CountryVatican,
	CountrySouthKorea,
}

// IsValid returns true if the country is recognized.
func (c Country) IsValid() bool {
	for _, v := range ValidCountries {
		if c == v {
			return true
		}
	}
	return false
}

// Role is a user's access role.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ValidRoles is the set of all valid roles.
var ValidRoles = []Role{RoleUser, RoleAdmin}

// IsValid returns true if the role is recognized.
func (r Role) IsValid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// ImportStatus is the outcome recorded for a bulk import run.
type ImportStatus string

const (
	ImportSuccess ImportStatus = "SUCCESS"
	ImportError   ImportStatus = "ERROR"
)
