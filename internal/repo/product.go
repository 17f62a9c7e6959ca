package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

var editableProductColumns = []string{
	"name", "brand", "price", "description", "image_url",
	"thumb1", "thumb2", "thumb3", "thumb4",
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (r *GormRepo) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, limit)
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Order("id ASC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) ProductsNewestFirst(ctx context.Context) ([]models.Product, error) {
	items := []models.Product{}
	if err := r.DB.WithContext(ctx).Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Featured returns up to limit featured products. A non-zero excludeID is
// left out of the result.
func (r *GormRepo) Featured(ctx context.Context, limit int, excludeID uint) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Where("is_featured = ?", true)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	items := []models.Product{}
	if err := q.Order("id ASC").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) NewArrivals(ctx context.Context, limit int) ([]models.Product, error) {
	items := []models.Product{}
	if err := r.DB.WithContext(ctx).
		Where("is_new_arrival = ?", true).
		Order("id ASC").Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return prod, nil
}

// UpdateProduct overwrites the editable columns of row id with prod's values,
// including empty thumbnails. Flags are left as they are.
func (r *GormRepo) UpdateProduct(ctx context.Context, id uint, prod *models.Product) (*models.Product, error) {
	var out models.Product
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ?", id).
			Select(editableProductColumns).
			Updates(prod)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchProducts is a portable substring match over name, brand and
// description, used when no search index is configured.
func (r *GormRepo) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	pattern := "%" + likeEscaper.Replace(q) + "%"
	where := `LOWER(name) LIKE LOWER(?) ESCAPE '\' OR ` +
		`LOWER(brand) LIKE LOWER(?) ESCAPE '\' OR ` +
		`LOWER(description) LIKE LOWER(?) ESCAPE '\'`

	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where(where, pattern, pattern, pattern).
		Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, limit)
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where(where, pattern, pattern, pattern).
		Order("id ASC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&n).Error
	return n, err
}
