package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Write payloads are the request bodies for create and update calls.
// They carry no id of their own; for dependent slots they carry the
// create<Dependent>/link<Dependent>Id pair the backend understands.
// Exactly one of the pair must be set per slot; the compose package is
// the only producer of these pairs.

// LocationWrite is the body for creating or updating a Location.
type LocationWrite struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	CreatedBy int64   `json:"createdBy,omitempty"`
}

// AddressWrite is the body for creating or updating an Address.
type AddressWrite struct {
	ZipCode    *string        `json:"zipCode,omitempty"`
	Town       *Location      `json:"town,omitempty"`
	CreateTown *LocationWrite `json:"createTown,omitempty"`
	LinkTownID *int64         `json:"linkTownId,omitempty"`
	CreatedBy  int64          `json:"createdBy,omitempty"`
}

// PersonWrite is the body for creating or updating a Person.
type PersonWrite struct {
	Name           string         `json:"name"`
	Birthday       *time.Time     `json:"birthday,omitempty"`
	HairColor      Color          `json:"hairColor"`
	EyeColor       *Color         `json:"eyeColor,omitempty"`
	Nationality    Country        `json:"nationality"`
	Location       *Location      `json:"location"`
	CreateLocation *LocationWrite `json:"createLocation,omitempty"`
	LinkLocationID *int64         `json:"linkLocationId,omitempty"`
	CreatedBy      int64          `json:"createdBy,omitempty"`
}

// OrganizationWrite is the body for creating or updating an Organization.
type OrganizationWrite struct {
	Name                  string           `json:"name"`
	FullName              *string          `json:"fullName,omitempty"`
	EmployeesCount        int64            `json:"employeesCount"`
	AnnualTurnover        *decimal.Decimal `json:"annualTurnover,omitempty"`
	Rating                *float64         `json:"rating,omitempty"`
	OfficialAddress       *Address         `json:"officialAddress,omitempty"`
	PostalAddress         *Address         `json:"postalAddress,omitempty"`
	CreateOfficialAddress *AddressWrite    `json:"createOfficialAddress,omitempty"`
	LinkOfficialAddressID *int64           `json:"linkOfficialAddressId,omitempty"`
	CreatePostalAddress   *AddressWrite    `json:"createPostalAddress,omitempty"`
	LinkPostalAddressID   *int64           `json:"linkPostalAddressId,omitempty"`
	CreatedBy             int64            `json:"createdBy,omitempty"`
}

// ProductWrite is the body for creating or updating a Product. Manufacturer
// and owner are full objects selected from already-loaded collections.
type ProductWrite struct {
	Name            string           `json:"name"`
	Coordinates     Coordinates      `json:"coordinates"`
	CreationDate    *time.Time       `json:"creationDate,omitempty"`
	UnitOfMeasure   UnitOfMeasure    `json:"unitOfMeasure"`
	Manufacturer    *Organization    `json:"manufacturer"`
	Price           decimal.Decimal  `json:"price"`
	ManufactureCost *decimal.Decimal `json:"manufactureCost,omitempty"`
	Rating          float64          `json:"rating"`
	PartNumber      string           `json:"partNumber"`
	Owner           *Person          `json:"owner"`
	CreatedBy       int64            `json:"createdBy,omitempty"`
}

// ProductImport is one record of a bulk import batch. Unlike ProductWrite,
// owner and manufacturer are nested write payloads: the backend creates them
// together with the product in one transaction.
type ProductImport struct {
	Name            string             `json:"name"`
	Coordinates     Coordinates        `json:"coordinates"`
	CreationDate    *time.Time         `json:"creationDate,omitempty"`
	UnitOfMeasure   UnitOfMeasure      `json:"unitOfMeasure"`
	Manufacturer    *OrganizationWrite `json:"manufacturer"`
	Price           decimal.Decimal    `json:"price"`
	ManufactureCost *decimal.Decimal   `json:"manufactureCost,omitempty"`
	Rating          float64            `json:"rating"`
	PartNumber      string             `json:"partNumber"`
	Owner           *PersonWrite       `json:"owner"`
	CreatedBy       int64              `json:"createdBy,omitempty"`
}
