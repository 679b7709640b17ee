package importer

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogctl/internal/models"
	"catalogctl/internal/notify"
	"catalogctl/internal/validate"
)

type fakeBulkAPI struct {
	batches [][]models.ProductImport
	err     error
}

func (f *fakeBulkAPI) ImportProducts(_ context.Context, batch []models.ProductImport) error {
	f.batches = append(f.batches, batch)
	return f.err
}

func validRecord() models.ProductImport {
	town := models.LocationWrite{X: 1, Y: 2, Z: 3}
	zip := "190000"
	return models.ProductImport{
		Name:          "industrial valve",
		Coordinates:   models.Coordinates{X: 10, Y: 20},
		UnitOfMeasure: models.UnitKilograms,
		Price:         decimal.NewFromInt(100),
		Rating:        4.5,
		PartNumber:    "VLV-2024-0001-STD",
		Owner: &models.PersonWrite{
			Name:           "Ivan",
			HairColor:      models.ColorBrown,
			Nationality:    models.CountryRussia,
			Location:       &models.Location{X: 1, Y: 2, Z: 3},
			CreateLocation: &town,
		},
		Manufacturer: &models.OrganizationWrite{
			Name:           "Valve Works",
			EmployeesCount: 12,
			CreateOfficialAddress: &models.AddressWrite{
				ZipCode:    &zip,
				CreateTown: &town,
			},
			CreatePostalAddress: &models.AddressWrite{
				CreateTown: &town,
			},
		},
	}
}

func TestParse(t *testing.T) {
	in := `[{
		"name": "industrial valve",
		"coordinates": {"x": 10, "y": 20},
		"unitOfMeasure": "KILOGRAMS",
		"price": 100,
		"rating": 4.5,
		"partNumber": "VLV-2024-0001-STD",
		"owner": {
			"name": "Ivan",
			"hairColor": "BROWN",
			"nationality": "RUSSIA",
			"location": {"id": 0, "x": 1, "y": 2, "z": 3},
			"createLocation": {"x": 1, "y": 2, "z": 3}
		},
		"manufacturer": {
			"name": "Valve Works",
			"employeesCount": 12
		}
	}]`

	batch, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "industrial valve", batch[0].Name)
	require.NotNil(t, batch[0].Owner)
	assert.Equal(t, models.ColorBrown, batch[0].Owner.HairColor)
	assert.True(t, batch[0].Price.Equal(decimal.NewFromInt(100)))
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader(`[{"name": "x", "bogus": true}]`))
	require.Error(t, err)
}

func TestStampRecursion(t *testing.T) {
	batch := []models.ProductImport{validRecord()}
	Stamp(batch, 42)

	p := batch[0]
	assert.Equal(t, int64(42), p.CreatedBy)
	assert.Equal(t, int64(42), p.Owner.CreatedBy)
	assert.Equal(t, int64(42), p.Owner.CreateLocation.CreatedBy)
	assert.Equal(t, int64(42), p.Manufacturer.CreatedBy)
	assert.Equal(t, int64(42), p.Manufacturer.CreateOfficialAddress.CreatedBy)
	assert.Equal(t, int64(42), p.Manufacturer.CreateOfficialAddress.CreateTown.CreatedBy)
	assert.Equal(t, int64(42), p.Manufacturer.CreatePostalAddress.CreatedBy)
}

func TestValidateBatchPositionPrefixes(t *testing.T) {
	good := validRecord()
	bad := validRecord()
	bad.Owner.Name = ""

	vio := ValidateBatch([]models.ProductImport{good, bad})
	require.Len(t, vio, 1)
	assert.Equal(t, "products[1].owner.name", vio[0].Field)
}

func TestImportSubmitsWholeBatchOnce(t *testing.T) {
	api := &fakeBulkAPI{}
	rec := notify.NewRecorder()
	im := New(api, rec, slog.Default())

	batch := []models.ProductImport{validRecord(), validRecord()}
	require.NoError(t, im.Import(context.Background(), batch, 42))

	require.Len(t, api.batches, 1)
	assert.Len(t, api.batches[0], 2)
	assert.Equal(t, int64(42), api.batches[0][0].CreatedBy)
	assert.Equal(t, notify.Notice{Level: "success", Message: "imported 2 products"}, rec.Last())
}

func TestImportOneInvalidRecordAbortsBatch(t *testing.T) {
	api := &fakeBulkAPI{}
	rec := notify.NewRecorder()
	im := New(api, rec, slog.Default())

	good := validRecord()
	bad := validRecord()
	bad.PartNumber = "short"

	err := im.Import(context.Background(), []models.ProductImport{good, bad}, 42)
	require.Error(t, err)

	var vio validate.Violations
	require.ErrorAs(t, err, &vio)
	assert.Equal(t, "products[1].partNumber", vio[0].Field)

	assert.Empty(t, api.batches)
	assert.Equal(t, "error", rec.Last().Level)
	assert.Contains(t, rec.Last().Message, "import aborted")
}

func TestImportBackendFailure(t *testing.T) {
	api := &fakeBulkAPI{err: errors.New("transaction rolled back")}
	im := New(api, notify.NewRecorder(), slog.Default())

	err := im.Import(context.Background(), []models.ProductImport{validRecord()}, 42)
	require.Error(t, err)
	assert.Len(t, api.batches, 1)
}

func TestImportEmptyBatch(t *testing.T) {
	api := &fakeBulkAPI{}
	rec := notify.NewRecorder()
	im := New(api, rec, slog.Default())

	require.NoError(t, im.Import(context.Background(), nil, 42))
	assert.Empty(t, api.batches)
	assert.Equal(t, "warn", rec.Last().Level)
}
