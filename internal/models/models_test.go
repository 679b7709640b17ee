package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumIsValid(t *testing.T) {
	for _, u := range ValidUnitsOfMeasure {
		assert.True(t, u.IsValid(), u)
	}
	assert.False(t, UnitOfMeasure("FURLONGS").IsValid())
	assert.False(t, UnitOfMeasure("").IsValid())

	for _, c := range ValidColors {
		assert.True(t, c.IsValid(), c)
	}
	assert.False(t, Color("BLUE").IsValid())
	assert.False(t, Color("red").IsValid())

	for _, c := range ValidCountries {
		assert.True(t, c.IsValid(), c)
	}
	assert.False(t, Country("FRANCE").IsValid())

	for _, r := range ValidRoles {
		assert.True(t, r.IsValid(), r)
	}
	assert.False(t, Role("ROOT").IsValid())
}

func TestDecimalFieldsMarshalWithoutQuotes(t *testing.T) {
	p := Product{
		ID:            1,
		Name:          "valve",
		UnitOfMeasure: UnitKilograms,
		Price:         decimal.RequireFromString("199.99"),
		Rating:        4,
		PartNumber:    "VLV-2024-000015X",
	}
	body, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"price":199.99`)
}

func TestOptionalFieldsOmitted(t *testing.T) {
	body, err := json.Marshal(Address{ID: 7})
	require.NoError(t, err)
	assert.NotContains(t, string(body), "zipCode")
	assert.NotContains(t, string(body), "town")
	assert.NotContains(t, string(body), "createdBy")
}
