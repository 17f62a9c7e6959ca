package repo

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
)

func postgresRepoForTest(t *testing.T) *GormRepo {
	t.Helper()

	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	ctx := context.Background()
	gdb, err := pkgdb.Open(ctx, pkgdb.DriverPostgres, dsn)
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(ctx, gdb))
	return &GormRepo{DB: gdb}
}

func TestPostgres_ConcurrentActivateBanner(t *testing.T) {
	r := postgresRepoForTest(t)
	ctx := context.Background()

	var ids []uint
	for i := 0; i < 5; i++ {
		b, err := r.CreateBanner(ctx, &models.Banner{Title: "concurrent", ImageURL: "c.jpg"})
		require.NoError(t, err)
		ids = append(ids, b.ID)
	}
	t.Cleanup(func() {
		_ = r.DB.Where("id IN ?", ids).Delete(&models.Banner{}).Error
	})

	for round := 0; round < 10; round++ {
		var wg sync.WaitGroup
		for _, id := range ids {
			wg.Add(1)
			go func(id uint) {
				defer wg.Done()
				assert.NoError(t, r.ActivateBanner(ctx, id))
			}(id)
		}
		wg.Wait()

		var active int64
		require.NoError(t, r.DB.Model(&models.Banner{}).Where("is_active = ?", true).Count(&active).Error)
		require.EqualValues(t, 1, active, "round %d", round)
	}
}

func TestPostgres_SearchEscapesWildcards(t *testing.T) {
	r := postgresRepoForTest(t)
	ctx := context.Background()

	p, err := r.CreateProduct(ctx, &models.Product{Name: "pgtest 50% off", Brand: "ZaZa", Price: 10, ImageURL: "i.jpg"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.DeleteProduct(ctx, p.ID) })

	_, items, err := r.SearchProducts(ctx, "pgtest 50%", 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, p.ID, items[0].ID)
}
