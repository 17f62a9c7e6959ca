package search

import (
	"context"
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
)

// Database answers searches straight from the products table. Index writes
// are no-ops because the table is the index.
type Database struct {
	Repo *repo.GormRepo
}

func (d *Database) IndexProduct(context.Context, *models.Product) error { return nil }

func (d *Database) DeleteProduct(context.Context, uint) error { return nil }

func (d *Database) Search(ctx context.Context, q string, from, size int) (int64, []models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return 0, []models.Product{}, nil
	}
	return d.Repo.SearchProducts(ctx, q, from, size)
}
