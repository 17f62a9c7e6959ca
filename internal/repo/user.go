package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/storefront/internal/models"
	"gorm.io/gorm"
)

func (r *GormRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// CreateUser inserts u. A clash on username or email yields ErrDuplicate and
// leaves the existing row untouched.
func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).
			Where("username = ? OR email = ?", u.Username, u.Email).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicate
		}
		return tx.Create(u).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	if err != nil && !errors.Is(err, ErrDuplicate) {
		return fmt.Errorf("create user: %w", err)
	}
	return err
}

func (r *GormRepo) SetAdminByEmail(ctx context.Context, email string, isAdmin bool) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Update("is_admin", isAdmin)
	if res.Error != nil {
		return 0, fmt.Errorf("set admin: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// EnsureAdmin creates the account when the email is unknown and otherwise
// only raises its admin flag. The stored password is never replaced.
func (r *GormRepo) EnsureAdmin(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("email = ?", u.Email).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			u.IsAdmin = true
			return tx.Create(u).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&existing).Update("is_admin", true).Error
	})
}
