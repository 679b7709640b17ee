package graph

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogctl/internal/models"
	"catalogctl/internal/notify"
	"catalogctl/internal/store"
)

// staticBackend serves a fixed collection; writes are never used here.
type staticBackend[E store.Entity, W any] struct {
	items []E
}

func (s staticBackend[E, W]) FetchAll(context.Context) ([]E, error) { return s.items, nil }

func (s staticBackend[E, W]) Create(context.Context, W) (*E, error) {
	return nil, errors.New("read-only")
}

func (s staticBackend[E, W]) Update(context.Context, int64, W) (*E, error) {
	return nil, errors.New("read-only")
}

func (s staticBackend[E, W]) Delete(context.Context, int64) error {
	return errors.New("read-only")
}

func loadedRegistry(t *testing.T) *store.Registry {
	t.Helper()
	rec := notify.NewRecorder()
	logger := slog.Default()

	town := models.Location{ID: 1, X: 10, Y: 20, Z: 30}
	zip := "190000"
	addr := models.Address{ID: 2, ZipCode: &zip, Town: &town}
	org := models.Organization{ID: 3, Name: "Valve Works", OfficialAddress: &addr}
	person := models.Person{ID: 4, Name: "Ivan", Location: &town}
	product := models.Product{ID: 5, Name: "valve", Manufacturer: &org, Owner: &person}

	reg := &store.Registry{
		Locations: store.New[models.Location, models.LocationWrite](
			"location", staticBackend[models.Location, models.LocationWrite]{items: []models.Location{town}}, nil, rec, logger),
		Addresses: store.New[models.Address, models.AddressWrite](
			"address", staticBackend[models.Address, models.AddressWrite]{items: []models.Address{addr}}, nil, rec, logger),
		Organizations: store.New[models.Organization, models.OrganizationWrite](
			"organization", staticBackend[models.Organization, models.OrganizationWrite]{items: []models.Organization{org}}, nil, rec, logger),
		Persons: store.New[models.Person, models.PersonWrite](
			"person", staticBackend[models.Person, models.PersonWrite]{items: []models.Person{person}}, nil, rec, logger),
		Products: store.New[models.Product, models.ProductWrite](
			"product", staticBackend[models.Product, models.ProductWrite]{items: []models.Product{product}}, nil, rec, logger),
	}

	ctx := context.Background()
	require.NoError(t, reg.Locations.Load(ctx))
	require.NoError(t, reg.Addresses.Load(ctx))
	require.NoError(t, reg.Organizations.Load(ctx))
	require.NoError(t, reg.Persons.Load(ctx))
	require.NoError(t, reg.Products.Load(ctx))
	return reg
}

func TestBuildNodesAndEdges(t *testing.T) {
	g := Build(loadedRegistry(t))

	assert.Len(t, g.Nodes, 5)
	require.Len(t, g.Edges, 4)

	relations := make(map[string]Edge)
	for _, e := range g.Edges {
		relations[e.Relation] = e
	}
	assert.Equal(t, KindLocation, relations["town"].ToKind)
	assert.Equal(t, KindAddress, relations["officialAddress"].ToKind)
	assert.Equal(t, KindOrganization, relations["manufacturer"].ToKind)
	assert.Equal(t, KindPerson, relations["owner"].ToKind)

	for _, e := range g.Edges {
		assert.False(t, e.Dangling, e.Relation)
	}
}

func TestDanglingReferenceDetected(t *testing.T) {
	reg := loadedRegistry(t)

	// Point the person at a location no store holds.
	rec := notify.NewRecorder()
	ghost := models.Person{ID: 4, Name: "Ivan", Location: &models.Location{ID: 999}}
	reg.Persons = store.New[models.Person, models.PersonWrite](
		"person", staticBackend[models.Person, models.PersonWrite]{items: []models.Person{ghost}}, nil, rec, slog.Default())
	require.NoError(t, reg.Persons.Load(context.Background()))

	g := Build(reg)
	dangling := g.Dangling()
	require.Len(t, dangling, 1)
	assert.Equal(t, "location", dangling[0].Relation)
	assert.Equal(t, int64(999), dangling[0].ToID)
}

func TestIncoming(t *testing.T) {
	g := Build(loadedRegistry(t))

	incoming := g.Incoming(KindLocation, 1)
	require.Len(t, incoming, 2)

	assert.Empty(t, g.Incoming(KindProduct, 5))
}

func TestRenderText(t *testing.T) {
	g := Build(loadedRegistry(t))

	var buf bytes.Buffer
	require.NoError(t, g.RenderText(&buf))

	out := buf.String()
	assert.Contains(t, out, "Product/5 valve")
	assert.Contains(t, out, "manufacturer -> Organization/3")
	assert.NotContains(t, out, "(missing)")
}

func TestRenderJSON(t *testing.T) {
	g := Build(loadedRegistry(t))

	var buf bytes.Buffer
	require.NoError(t, g.RenderJSON(&buf))
	assert.Contains(t, buf.String(), `"relation": "owner"`)
}

func TestRelationTypeMapping(t *testing.T) {
	assert.Equal(t, "OFFICIAL_ADDRESS", relationType("officialAddress"))
	assert.Equal(t, "OWNER", relationType("owner"))
	assert.Equal(t, "RELATED_TO", relationType("somethingElse"))
}
