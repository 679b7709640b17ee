package compose

import (
	"fmt"

	"catalogctl/internal/models"
	"catalogctl/internal/validate"
)

// Mode selects how a dependent slot is filled: by creating a fresh record
// inline or by linking an existing one by id.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeLink   Mode = "link"
)

// LocationRef is one town/location slot of a parent payload. In link mode
// only ID is meaningful, in create mode only Fields.
type LocationRef struct {
	Mode   Mode
	ID     int64
	Fields models.LocationWrite
}

// LinkLocation references an existing location by id.
func LinkLocation(id int64) LocationRef {
	return LocationRef{Mode: ModeLink, ID: id}
}

// CreateLocation carries the fields of a location to create inline.
func CreateLocation(w models.LocationWrite) LocationRef {
	return LocationRef{Mode: ModeCreate, Fields: w}
}

func (r LocationRef) validate(prefix string) validate.Violations {
	switch r.Mode {
	case ModeLink:
		if r.ID <= 0 {
			return validate.Violations{{Field: prefix, Message: "link mode requires an existing id"}}
		}
		return nil
	case ModeCreate:
		vio := validate.Location(r.Fields)
		for i := range vio {
			vio[i].Field = prefix + "." + vio[i].Field
		}
		return vio
	default:
		return validate.Violations{{Field: prefix, Message: fmt.Sprintf("unknown mode %q", r.Mode)}}
	}
}

// AddressRef is one address slot of a parent payload.
type AddressRef struct {
	Mode    Mode
	ID      int64
	ZipCode *string
	Town    LocationRef
}

// LinkAddress references an existing address by id.
func LinkAddress(id int64) AddressRef {
	return AddressRef{Mode: ModeLink, ID: id}
}

// CreateAddress carries an address to create inline, with its own town slot.
func CreateAddress(zipCode *string, town LocationRef) AddressRef {
	return AddressRef{Mode: ModeCreate, ZipCode: zipCode, Town: town}
}

func (r AddressRef) validate(prefix string) validate.Violations {
	switch r.Mode {
	case ModeLink:
		if r.ID <= 0 {
			return validate.Violations{{Field: prefix, Message: "link mode requires an existing id"}}
		}
		return nil
	case ModeCreate:
		return r.Town.validate(prefix + ".town")
	default:
		return validate.Violations{{Field: prefix, Message: fmt.Sprintf("unknown mode %q", r.Mode)}}
	}
}

// Link-mode slots still carry a stub object with the linked id so the
// backend's binder resolves the relation; numeric fields stay zero.
func locationStub(id int64) *models.Location {
	return &models.Location{ID: id}
}

// Address builds an AddressWrite from a zip code and a town slot.
func Address(zipCode *string, town LocationRef, createdBy int64) (models.AddressWrite, validate.Violations) {
	if vio := town.validate("town"); len(vio) > 0 {
		return models.AddressWrite{}, vio
	}
	w := models.AddressWrite{ZipCode: zipCode, CreatedBy: createdBy}
	if town.Mode == ModeLink {
		id := town.ID
		w.Town = locationStub(id)
		w.LinkTownID = &id
	} else {
		fields := town.Fields
		w.CreateTown = &fields
	}
	return w, nil
}

// Person builds a PersonWrite from scalar fields and a location slot.
func Person(w models.PersonWrite, location LocationRef) (models.PersonWrite, validate.Violations) {
	vio := location.validate("location")
	if len(vio) > 0 {
		return models.PersonWrite{}, vio
	}
	w.Location, w.CreateLocation, w.LinkLocationID = nil, nil, nil
	if location.Mode == ModeLink {
		id := location.ID
		w.Location = locationStub(id)
		w.LinkLocationID = &id
	} else {
		fields := location.Fields
		w.Location = &models.Location{X: fields.X, Y: fields.Y, Z: fields.Z}
		w.CreateLocation = &fields
	}
	if vio := validate.Person(w); len(vio) > 0 {
		return models.PersonWrite{}, vio
	}
	return w, nil
}

// Organization builds an OrganizationWrite from scalar fields and two
// address slots. A nil ref leaves that slot empty.
func Organization(w models.OrganizationWrite, official, postal *AddressRef) (models.OrganizationWrite, validate.Violations) {
	var vio validate.Violations
	if official != nil {
		vio = append(vio, official.validate("officialAddress")...)
	}
	if postal != nil {
		vio = append(vio, postal.validate("postalAddress")...)
	}
	if len(vio) > 0 {
		return models.OrganizationWrite{}, vio
	}

	w.OfficialAddress, w.CreateOfficialAddress, w.LinkOfficialAddressID = nil, nil, nil
	w.PostalAddress, w.CreatePostalAddress, w.LinkPostalAddressID = nil, nil, nil
	if official != nil {
		applyAddressSlot(*official, &w.OfficialAddress, &w.CreateOfficialAddress, &w.LinkOfficialAddressID, w.CreatedBy)
	}
	if postal != nil {
		applyAddressSlot(*postal, &w.PostalAddress, &w.CreatePostalAddress, &w.LinkPostalAddressID, w.CreatedBy)
	}
	if vio := validate.Organization(w); len(vio) > 0 {
		return models.OrganizationWrite{}, vio
	}
	return w, nil
}

func applyAddressSlot(ref AddressRef, obj **models.Address, create **models.AddressWrite, linkID **int64, createdBy int64) {
	if ref.Mode == ModeLink {
		id := ref.ID
		*obj = &models.Address{ID: id}
		*linkID = &id
		return
	}
	nested, _ := Address(ref.ZipCode, ref.Town, createdBy)
	*create = &nested
}

// EditOrganizationDefaults returns link-mode refs prefilled with an
// organization's current address ids, so an edit that touches neither slot
// keeps both relations unchanged. Nil is returned for an empty slot.
func EditOrganizationDefaults(org models.Organization) (official, postal *AddressRef) {
	if org.OfficialAddress != nil {
		ref := LinkAddress(org.OfficialAddress.ID)
		official = &ref
	}
	if org.PostalAddress != nil {
		ref := LinkAddress(org.PostalAddress.ID)
		postal = &ref
	}
	return official, postal
}
