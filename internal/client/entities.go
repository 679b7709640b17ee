package client

import (
	"context"
	"fmt"

	"catalogctl/internal/models"
)

// Collection fetches and CRUD calls, one block per record type. Create and
// update return the server's record: the server is the source of truth for
// the assigned id and any server-computed fields.

func (c *Client) Locations(ctx context.Context) ([]models.Location, error) {
	var out []models.Location
	if err := c.get(ctx, "/locations", nil, &out); err != nil {
		return nil, fmt.Errorf("fetching locations: %w", err)
	}
	return out, nil
}

func (c *Client) CreateLocation(ctx context.Context, w models.LocationWrite) (*models.Location, error) {
	var out models.Location
	if err := c.post(ctx, "/locations", w, &out); err != nil {
		return nil, fmt.Errorf("creating location: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdateLocation(ctx context.Context, id int64, w models.LocationWrite) (*models.Location, error) {
	var out models.Location
	if err := c.put(ctx, fmt.Sprintf("/locations/%d", id), nil, w, &out); err != nil {
		return nil, fmt.Errorf("updating location %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) DeleteLocation(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/locations/%d", id)); err != nil {
		return fmt.Errorf("deleting location %d: %w", id, err)
	}
	return nil
}

func (c *Client) Addresses(ctx context.Context) ([]models.Address, error) {
	var out []models.Address
	if err := c.get(ctx, "/addresses", nil, &out); err != nil {
		return nil, fmt.Errorf("fetching addresses: %w", err)
	}
	return out, nil
}

func (c *Client) CreateAddress(ctx context.Context, w models.AddressWrite) (*models.Address, error) {
	var out models.Address
	if err := c.post(ctx, "/addresses", w, &out); err != nil {
		return nil, fmt.Errorf("creating address: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdateAddress(ctx context.Context, id int64, w models.AddressWrite) (*models.Address, error) {
	var out models.Address
	if err := c.put(ctx, fmt.Sprintf("/addresses/%d", id), nil, w, &out); err != nil {
		return nil, fmt.Errorf("updating address %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) DeleteAddress(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/addresses/%d", id)); err != nil {
		return fmt.Errorf("deleting address %d: %w", id, err)
	}
	return nil
}

func (c *Client) Organizations(ctx context.Context) ([]models.Organization, error) {
	var out []models.Organization
	if err := c.get(ctx, "/organizations", nil, &out); err != nil {
		return nil, fmt.Errorf("fetching organizations: %w", err)
	}
	return out, nil
}

func (c *Client) CreateOrganization(ctx context.Context, w models.OrganizationWrite) (*models.Organization, error) {
	var out models.Organization
	if err := c.post(ctx, "/organizations", w, &out); err != nil {
		return nil, fmt.Errorf("creating organization: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdateOrganization(ctx context.Context, id int64, w models.OrganizationWrite) (*models.Organization, error) {
	var out models.Organization
	if err := c.put(ctx, fmt.Sprintf("/organizations/%d", id), nil, w, &out); err != nil {
		return nil, fmt.Errorf("updating organization %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) DeleteOrganization(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/organizations/%d", id)); err != nil {
		return fmt.Errorf("deleting organization %d: %w", id, err)
	}
	return nil
}

func (c *Client) Persons(ctx context.Context) ([]models.Person, error) {
	var out []models.Person
	if err := c.get(ctx, "/persons", nil, &out); err != nil {
		return nil, fmt.Errorf("fetching persons: %w", err)
	}
	return out, nil
}

func (c *Client) CreatePerson(ctx context.Context, w models.PersonWrite) (*models.Person, error) {
	var out models.Person
	if err := c.post(ctx, "/persons", w, &out); err != nil {
		return nil, fmt.Errorf("creating person: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdatePerson(ctx context.Context, id int64, w models.PersonWrite) (*models.Person, error) {
	var out models.Person
	if err := c.put(ctx, fmt.Sprintf("/persons/%d", id), nil, w, &out); err != nil {
		return nil, fmt.Errorf("updating person %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) DeletePerson(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/persons/%d", id)); err != nil {
		return fmt.Errorf("deleting person %d: %w", id, err)
	}
	return nil
}

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.get(ctx, "/products", nil, &out); err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, w models.ProductWrite) (*models.Product, error) {
	var out models.Product
	if err := c.post(ctx, "/products", w, &out); err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, w models.ProductWrite) (*models.Product, error) {
	var out models.Product
	if err := c.put(ctx, fmt.Sprintf("/products/%d", id), nil, w, &out); err != nil {
		return nil, fmt.Errorf("updating product %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/products/%d", id)); err != nil {
		return fmt.Errorf("deleting product %d: %w", id, err)
	}
	return nil
}

// ImportProducts submits one bulk batch. The whole array goes in a single
// request; the backend commits all of it or none of it.
func (c *Client) ImportProducts(ctx context.Context, batch []models.ProductImport) error {
	if err := c.post(ctx, "/import/bulk-products", batch, nil); err != nil {
		return fmt.Errorf("importing %d products: %w", len(batch), err)
	}
	return nil
}

// ImportHistoryAll fetches every user's import history (admin only).
func (c *Client) ImportHistoryAll(ctx context.Context) ([]models.ImportHistory, error) {
	var out []models.ImportHistory
	if err := c.get(ctx, "/import-history/all", nil, &out); err != nil {
		return nil, fmt.Errorf("fetching import history: %w", err)
	}
	return out, nil
}

// ImportHistoryForUser fetches one user's own import history.
func (c *Client) ImportHistoryForUser(ctx context.Context, userID int64) ([]models.ImportHistory, error) {
	var out []models.ImportHistory
	if err := c.get(ctx, fmt.Sprintf("/user/%d/import-history", userID), nil, &out); err != nil {
		return nil, fmt.Errorf("fetching import history for user %d: %w", userID, err)
	}
	return out, nil
}
