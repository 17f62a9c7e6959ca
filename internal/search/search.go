package search

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/models"
)

// Index keeps a searchable copy of the catalog.
type Index interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
	Search(ctx context.Context, q string, from, size int) (int64, []models.Product, error)
}

type productSource interface {
	ProductsNewestFirst(ctx context.Context) ([]models.Product, error)
}

// Reindex pushes every stored product into idx.
func Reindex(ctx context.Context, idx Index, src productSource) (int, error) {
	products, err := src.ProductsNewestFirst(ctx)
	if err != nil {
		return 0, err
	}
	for i := range products {
		if err := idx.IndexProduct(ctx, &products[i]); err != nil {
			return i, err
		}
	}
	return len(products), nil
}
