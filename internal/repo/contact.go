package repo

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) CreateContact(ctx context.Context, c *models.Contact) error {
	if err := r.DB.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}
