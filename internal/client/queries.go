package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"catalogctl/internal/models"
)

// Query-parameterized lookups. These read straight from the backend and
// bypass the local stores: they answer questions the cached collections
// cannot (aggregates, server-side filters).

// AverageRating returns the mean rating across all organizations.
func (c *Client) AverageRating(ctx context.Context) (float64, error) {
	var out float64
	if err := c.get(ctx, "/organizations/averageRating", nil, &out); err != nil {
		return 0, fmt.Errorf("fetching average rating: %w", err)
	}
	return out, nil
}

// CountByPartNumber returns how many products carry exactly this part number.
func (c *Client) CountByPartNumber(ctx context.Context, partNumber string) (int64, error) {
	query := url.Values{"partNumber": {partNumber}}
	var out int64
	if err := c.get(ctx, "/products/countByPartNumber", query, &out); err != nil {
		return 0, fmt.Errorf("counting products by part number: %w", err)
	}
	return out, nil
}

// ProductsByPartNumberPrefix returns products whose part number starts
// with the given prefix.
func (c *Client) ProductsByPartNumberPrefix(ctx context.Context, prefix string) ([]models.Product, error) {
	query := url.Values{"partNumberPrefix": {prefix}}
	var out []models.Product
	if err := c.get(ctx, "/products/findByPartNumberStartingWith", query, &out); err != nil {
		return nil, fmt.Errorf("fetching products by part number prefix: %w", err)
	}
	return out, nil
}

// ProductsByPriceBetween returns products priced within [min, max].
func (c *Client) ProductsByPriceBetween(ctx context.Context, min, max decimal.Decimal) ([]models.Product, error) {
	query := url.Values{
		"minPrice": {min.String()},
		"maxPrice": {max.String()},
	}
	var out []models.Product
	if err := c.get(ctx, "/products/findByPriceBetween", query, &out); err != nil {
		return nil, fmt.Errorf("fetching products by price range: %w", err)
	}
	return out, nil
}

// ProductsByUnitOfMeasure returns products measured in the given unit.
func (c *Client) ProductsByUnitOfMeasure(ctx context.Context, unit models.UnitOfMeasure) ([]models.Product, error) {
	query := url.Values{"unitOfMeasure": {string(unit)}}
	var out []models.Product
	if err := c.get(ctx, "/products/findByUnitOfMeasure", query, &out); err != nil {
		return nil, fmt.Errorf("fetching products by unit of measure: %w", err)
	}
	return out, nil
}
