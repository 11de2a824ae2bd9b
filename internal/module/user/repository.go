package user

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
)

// userRepository implements domain.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository backed by the given GORM database.
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) live(ctx context.Context) *gorm.DB {
	return crud.NotDeleted(r.db.WithContext(ctx).Model(&domain.User{}))
}

// GetByID retrieves a live user and its role by primary key.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.live(ctx).Preload("Role").Where("id = ?", id).Take(&user).Error; err != nil {
		return nil, crud.MapError(err)
	}
	return &user, nil
}

// GetByEmail retrieves a live user and its role by email address.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	email = normalizeEmail(email)
	if err := r.live(ctx).Preload("Role").Where("email = ?", email).Take(&user).Error; err != nil {
		return nil, crud.MapError(err)
	}
	return &user, nil
}

// EmailTaken reports whether any account, deleted or not, already uses email.
// The unique index spans soft-deleted rows too.
func (r *userRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&count).Error
	if err != nil {
		return false, crud.MapError(err)
	}
	return count > 0, nil
}

// UpdatePassword replaces the stored password hash of a live user.
func (r *userRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	result := r.live(ctx).Where("id = ?", id).Update("password", hash)
	if result.Error != nil {
		return crud.MapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
