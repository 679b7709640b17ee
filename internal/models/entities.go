// Package models defines the five catalog record types, their write payloads,
// and the session/audit types shared by every layer of the client.
//
// Identifiers are positive integers assigned by the backend; ID 0 means
// "not yet persisted". Cross-entity links are plain ids resolved against the
// owning store's collection at the moment of use.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend speaks bare JSON numbers for money fields.
	decimal.MarshalJSONWithoutQuotes = true
}

// Coordinates is the embedded x/y pair on a product.
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Location is the leaf entity of the reference graph; nothing points out of it.
type Location struct {
	ID        int64   `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	CreatedBy int64   `json:"createdBy,omitempty"`
}

// EntityID returns the server-assigned identifier.
func (l Location) EntityID() int64 { return l.ID }

// Address references a Location through its optional town.
type Address struct {
	ID        int64     `json:"id"`
	ZipCode   *string   `json:"zipCode,omitempty"`
	Town      *Location `json:"town,omitempty"`
	CreatedBy int64     `json:"createdBy,omitempty"`
}

// EntityID returns the server-assigned identifier.
func (a Address) EntityID() int64 { return a.ID }

// Organization references up to two Addresses.
type Organization struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	FullName        *string          `json:"fullName,omitempty"`
	OfficialAddress *Address         `json:"officialAddress,omitempty"`
	PostalAddress   *Address         `json:"postalAddress,omitempty"`
	AnnualTurnover  *decimal.Decimal `json:"annualTurnover,omitempty"`
	EmployeesCount  int64            `json:"employeesCount"`
	Rating          *float64         `json:"rating,omitempty"`
	CreatedBy       int64            `json:"createdBy,omitempty"`
}

// EntityID returns the server-assigned identifier.
func (o Organization) EntityID() int64 { return o.ID }

// Person always carries a Location; only the source of it (link or create)
// is a choice.
type Person struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Birthday    *time.Time `json:"birthday,omitempty"`
	HairColor   Color      `json:"hairColor"`
	EyeColor    *Color     `json:"eyeColor,omitempty"`
	Nationality Country    `json:"nationality"`
	Location    *Location  `json:"location"`
	CreatedBy   int64      `json:"createdBy,omitempty"`
}

// EntityID returns the server-assigned identifier.
func (p Person) EntityID() int64 { return p.ID }

// Product references an Organization (manufacturer) and a Person (owner).
// Both must already exist; there is no inline-create option for them.
type Product struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	Coordinates     Coordinates      `json:"coordinates"`
	CreationDate    time.Time        `json:"creationDate"`
	UnitOfMeasure   UnitOfMeasure    `json:"unitOfMeasure"`
	Manufacturer    *Organization    `json:"manufacturer"`
	Price           decimal.Decimal  `json:"price"`
	ManufactureCost *decimal.Decimal `json:"manufactureCost,omitempty"`
	Rating          float64          `json:"rating"`
	PartNumber      string           `json:"partNumber"`
	Owner           *Person          `json:"owner"`
	CreatedBy       int64            `json:"createdBy,omitempty"`
}

// EntityID returns the server-assigned identifier.
func (p Product) EntityID() int64 { return p.ID }

// User is the authenticated session identity. The JWT rides along so the
// session can be persisted and restored as one object.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Approved bool   `json:"approved"`
	JWT      string `json:"jwt"`
}

// ImportHistory is an append-only audit record; the client only reads it.
type ImportHistory struct {
	ID           int64        `json:"id"`
	UserID       int64        `json:"userId"`
	Status       ImportStatus `json:"status"`
	SuccessCount int64        `json:"successCount"`
	Timestamp    time.Time    `json:"timestamp"`
}

// EntityID returns the server-assigned identifier.
func (h ImportHistory) EntityID() int64 { return h.ID }
