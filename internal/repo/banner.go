package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/storefront/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *GormRepo) ActiveBanner(ctx context.Context) (*models.Banner, error) {
	var b models.Banner
	err := r.DB.WithContext(ctx).Where("is_active = ?", true).Order("id ASC").First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormRepo) ListBanners(ctx context.Context) ([]models.Banner, error) {
	items := []models.Banner{}
	if err := r.DB.WithContext(ctx).Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateBanner(ctx context.Context, b *models.Banner) (*models.Banner, error) {
	if err := r.DB.WithContext(ctx).Create(b).Error; err != nil {
		return nil, fmt.Errorf("create banner: %w", err)
	}
	return b, nil
}

// ActivateBanner makes id the only active banner. An unknown id rolls the
// whole transaction back, so the previous active banner stays active.
// Concurrent activations queue on the banner row locks; sqlite ignores the
// locking clause and serializes the transactions itself.
func (r *GormRepo) ActivateBanner(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked []uint
		if err := tx.Model(&models.Banner{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Order("id ASC").
			Pluck("id", &locked).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Banner{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Banner{}).Where("id = ?", id).Update("is_active", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *GormRepo) CountBanners(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Banner{}).Count(&n).Error
	return n, err
}
