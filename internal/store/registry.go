package store

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"catalogctl/internal/client"
	"catalogctl/internal/models"
	"catalogctl/internal/notify"
	"catalogctl/internal/session"
	"catalogctl/internal/validate"
)

// Thin adapters binding each collection's REST calls to the Backend shape.

type locationAPI struct{ c *client.Client }

func (a locationAPI) FetchAll(ctx context.Context) ([]models.Location, error) {
	return a.c.Locations(ctx)
}

func (a locationAPI) Create(ctx context.Context, w models.LocationWrite) (*models.Location, error) {
	return a.c.CreateLocation(ctx, w)
}

func (a locationAPI) Update(ctx context.Context, id int64, w models.LocationWrite) (*models.Location, error) {
	return a.c.UpdateLocation(ctx, id, w)
}

func (a locationAPI) Delete(ctx context.Context, id int64) error {
	return a.c.DeleteLocation(ctx, id)
}

type addressAPI struct{ c *client.Client }

func (a addressAPI) FetchAll(ctx context.Context) ([]models.Address, error) {
	return a.c.Addresses(ctx)
}

func (a addressAPI) Create(ctx context.Context, w models.AddressWrite) (*models.Address, error) {
	return a.c.CreateAddress(ctx, w)
}

func (a addressAPI) Update(ctx context.Context, id int64, w models.AddressWrite) (*models.Address, error) {
	return a.c.UpdateAddress(ctx, id, w)
}

func (a addressAPI) Delete(ctx context.Context, id int64) error {
	return a.c.DeleteAddress(ctx, id)
}

type organizationAPI struct{ c *client.Client }

func (a organizationAPI) FetchAll(ctx context.Context) ([]models.Organization, error) {
	return a.c.Organizations(ctx)
}

func (a organizationAPI) Create(ctx context.Context, w models.OrganizationWrite) (*models.Organization, error) {
	return a.c.CreateOrganization(ctx, w)
}

func (a organizationAPI) Update(ctx context.Context, id int64, w models.OrganizationWrite) (*models.Organization, error) {
	return a.c.UpdateOrganization(ctx, id, w)
}

func (a organizationAPI) Delete(ctx context.Context, id int64) error {
	return a.c.DeleteOrganization(ctx, id)
}

type personAPI struct{ c *client.Client }

func (a personAPI) FetchAll(ctx context.Context) ([]models.Person, error) {
	return a.c.Persons(ctx)
}

func (a personAPI) Create(ctx context.Context, w models.PersonWrite) (*models.Person, error) {
	return a.c.CreatePerson(ctx, w)
}

func (a personAPI) Update(ctx context.Context, id int64, w models.PersonWrite) (*models.Person, error) {
	return a.c.UpdatePerson(ctx, id, w)
}

func (a personAPI) Delete(ctx context.Context, id int64) error {
	return a.c.DeletePerson(ctx, id)
}

type productAPI struct{ c *client.Client }

func (a productAPI) FetchAll(ctx context.Context) ([]models.Product, error) {
	return a.c.Products(ctx)
}

func (a productAPI) Create(ctx context.Context, w models.ProductWrite) (*models.Product, error) {
	return a.c.CreateProduct(ctx, w)
}

func (a productAPI) Update(ctx context.Context, id int64, w models.ProductWrite) (*models.Product, error) {
	return a.c.UpdateProduct(ctx, id, w)
}

func (a productAPI) Delete(ctx context.Context, id int64) error {
	return a.c.DeleteProduct(ctx, id)
}

// Registry bundles every collection store behind one handle. Commands and
// the poller hold a Registry rather than five separate stores.
type Registry struct {
	Locations     *Store[models.Location, models.LocationWrite]
	Addresses     *Store[models.Address, models.AddressWrite]
	Organizations *Store[models.Organization, models.OrganizationWrite]
	Persons       *Store[models.Person, models.PersonWrite]
	Products      *Store[models.Product, models.ProductWrite]
	History       *HistoryStore
}

// NewRegistry wires all stores over the shared REST client.
func NewRegistry(c *client.Client, gate *session.Gate, notifier notify.Notifier, logger *slog.Logger) *Registry {
	return &Registry{
		Locations:     New("location", locationAPI{c}, validate.Location, notifier, logger),
		Addresses:     New("address", addressAPI{c}, validate.Address, notifier, logger),
		Organizations: New("organization", organizationAPI{c}, validate.Organization, notifier, logger),
		Persons:       New("person", personAPI{c}, validate.Person, notifier, logger),
		Products:      New("product", productAPI{c}, validate.Product, notifier, logger),
		History:       NewHistoryStore(c, gate, notifier, logger),
	}
}

// LoadAll refreshes every store concurrently. Each store that fails keeps
// its previous collection and records its own error; LoadAll reports the
// first failure so callers can surface that something went stale.
func (r *Registry) LoadAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.Locations.Load(ctx) })
	g.Go(func() error { return r.Addresses.Load(ctx) })
	g.Go(func() error { return r.Organizations.Load(ctx) })
	g.Go(func() error { return r.Persons.Load(ctx) })
	g.Go(func() error { return r.Products.Load(ctx) })
	g.Go(func() error { return r.History.Load(ctx) })
	return g.Wait()
}
