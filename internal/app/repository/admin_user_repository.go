package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	"gorm.io/gorm"
)

var (
	// ErrAdminNotFound signals that no admin user matches the lookup.
	ErrAdminNotFound = errors.New("admin user not found")
)

// AdminUserRepository defines the data access contract for admin users.
type AdminUserRepository interface {
	Create(ctx context.Context, user *model.AdminUser) error
	GetByEmail(ctx context.Context, email string) (*model.AdminUser, error)
}

type adminUserRepository struct {
	db *gorm.DB
}

// NewAdminUserRepository returns a GORM-backed AdminUserRepository.
func NewAdminUserRepository(db *gorm.DB) AdminUserRepository {
	return &adminUserRepository{db: db}
}

func (r *adminUserRepository) Create(ctx context.Context, user *model.AdminUser) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *adminUserRepository) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &user, nil
}
