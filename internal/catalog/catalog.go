package catalog

import (
	"context"
	"errors"

	"backend/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

// Filter narrows ListProducts. Zero value lists everything.
type Filter struct {
	Category string
	Search   string
}

// Provider is the read-only catalog collaborator. Concrete implementations
// live behind this interface so the storefront core never depends on where
// product data actually comes from.
type Provider interface {
	GetProduct(ctx context.Context, id string) (models.Product, error)
	ListProducts(ctx context.Context, f Filter) ([]models.Product, error)
}
