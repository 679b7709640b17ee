package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogctl/internal/models"
)

func TestAddressLinkMode(t *testing.T) {
	zip := "190000"
	w, vio := Address(&zip, LinkLocation(7), 42)
	require.Empty(t, vio)

	require.NotNil(t, w.LinkTownID)
	assert.Equal(t, int64(7), *w.LinkTownID)
	assert.Nil(t, w.CreateTown)
	require.NotNil(t, w.Town)
	assert.Equal(t, int64(7), w.Town.ID)
	assert.Zero(t, w.Town.X)
	assert.Zero(t, w.Town.Y)
	assert.Zero(t, w.Town.Z)
	assert.Equal(t, int64(42), w.CreatedBy)
}

func TestAddressCreateMode(t *testing.T) {
	w, vio := Address(nil, CreateLocation(models.LocationWrite{X: 1, Y: 2, Z: 3}), 42)
	require.Empty(t, vio)

	assert.Nil(t, w.LinkTownID)
	assert.Nil(t, w.Town)
	require.NotNil(t, w.CreateTown)
	assert.Equal(t, 1.0, w.CreateTown.X)
}

func TestLinkWithoutIDBlocked(t *testing.T) {
	_, vio := Address(nil, LinkLocation(0), 42)
	require.Len(t, vio, 1)
	assert.Equal(t, "town", vio[0].Field)
}

func TestCreateModeValidatesInlineFields(t *testing.T) {
	_, vio := Address(nil, CreateLocation(models.LocationWrite{X: -1000, Y: 2000}), 42)
	require.Len(t, vio, 2)
	assert.Equal(t, "town.x", vio[0].Field)
	assert.Equal(t, "town.y", vio[1].Field)
}

func TestPersonLinkMode(t *testing.T) {
	w, vio := Person(models.PersonWrite{
		Name:        "Ivan",
		HairColor:   models.ColorBrown,
		Nationality: models.CountryRussia,
		CreatedBy:   42,
	}, LinkLocation(9))
	require.Empty(t, vio)

	require.NotNil(t, w.LinkLocationID)
	assert.Equal(t, int64(9), *w.LinkLocationID)
	assert.Nil(t, w.CreateLocation)
	require.NotNil(t, w.Location)
	assert.Equal(t, int64(9), w.Location.ID)
}

func TestPersonCreateMode(t *testing.T) {
	w, vio := Person(models.PersonWrite{
		Name:        "Ivan",
		HairColor:   models.ColorBrown,
		Nationality: models.CountryRussia,
	}, CreateLocation(models.LocationWrite{X: 5, Y: 6, Z: 7}))
	require.Empty(t, vio)

	assert.Nil(t, w.LinkLocationID)
	require.NotNil(t, w.CreateLocation)
	assert.Equal(t, 5.0, w.CreateLocation.X)
	require.NotNil(t, w.Location)
	assert.Equal(t, 5.0, w.Location.X)
	assert.Zero(t, w.Location.ID)
}

func TestPersonInvalidFieldsBlocked(t *testing.T) {
	_, vio := Person(models.PersonWrite{
		HairColor:   models.ColorBrown,
		Nationality: models.CountryRussia,
	}, LinkLocation(9))
	require.Len(t, vio, 1)
	assert.Equal(t, "name", vio[0].Field)
}

func TestOrganizationExactlyOneKeyPerSlot(t *testing.T) {
	official := LinkAddress(3)
	zip := "190000"
	postal := CreateAddress(&zip, LinkLocation(4))

	w, vio := Organization(models.OrganizationWrite{
		Name:           "Org",
		EmployeesCount: 5,
		CreatedBy:      42,
	}, &official, &postal)
	require.Empty(t, vio)

	require.NotNil(t, w.LinkOfficialAddressID)
	assert.Equal(t, int64(3), *w.LinkOfficialAddressID)
	assert.Nil(t, w.CreateOfficialAddress)

	assert.Nil(t, w.LinkPostalAddressID)
	require.NotNil(t, w.CreatePostalAddress)
	require.NotNil(t, w.CreatePostalAddress.LinkTownID)
	assert.Equal(t, int64(4), *w.CreatePostalAddress.LinkTownID)
	assert.Equal(t, int64(42), w.CreatePostalAddress.CreatedBy)
}

func TestOrganizationEmptySlots(t *testing.T) {
	w, vio := Organization(models.OrganizationWrite{
		Name:           "Org",
		EmployeesCount: 5,
	}, nil, nil)
	require.Empty(t, vio)

	assert.Nil(t, w.OfficialAddress)
	assert.Nil(t, w.CreateOfficialAddress)
	assert.Nil(t, w.LinkOfficialAddressID)
	assert.Nil(t, w.PostalAddress)
	assert.Nil(t, w.CreatePostalAddress)
	assert.Nil(t, w.LinkPostalAddressID)
}

func TestOrganizationNestedViolationsPrefixed(t *testing.T) {
	bad := CreateAddress(nil, CreateLocation(models.LocationWrite{X: -1000}))
	_, vio := Organization(models.OrganizationWrite{
		Name:           "Org",
		EmployeesCount: 5,
	}, &bad, nil)
	require.Len(t, vio, 1)
	assert.Equal(t, "officialAddress.town.x", vio[0].Field)
}

func TestEditOrganizationDefaults(t *testing.T) {
	org := models.Organization{
		ID:              1,
		Name:            "Org",
		OfficialAddress: &models.Address{ID: 11},
	}
	official, postal := EditOrganizationDefaults(org)

	require.NotNil(t, official)
	assert.Equal(t, ModeLink, official.Mode)
	assert.Equal(t, int64(11), official.ID)
	assert.Nil(t, postal)
}

func TestUnknownModeBlocked(t *testing.T) {
	ref := LocationRef{Mode: "replace", ID: 1}
	_, vio := Address(nil, ref, 42)
	require.Len(t, vio, 1)
	assert.Contains(t, vio[0].Message, "unknown mode")
}
