package repository

import (
	"context"
	"errors"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	"gorm.io/gorm"
)

var (
	// ErrAdvertisementNotFound signals that the requested advertisement does not exist.
	ErrAdvertisementNotFound = errors.New("advertisement not found")
)

// AdvertisementFilter narrows List results. Nil fields are not applied.
type AdvertisementFilter struct {
	Active   *bool
	Category *model.Category
}

// AdvertisementRepository defines the data access contract for advertisements.
type AdvertisementRepository interface {
	Create(ctx context.Context, ad *model.Advertisement) error
	GetByID(ctx context.Context, id uint) (*model.Advertisement, error)
	List(ctx context.Context, filter AdvertisementFilter) ([]model.Advertisement, error)
	Update(ctx context.Context, ad *model.Advertisement) error
	UpdateStatus(ctx context.Context, id uint, active bool) (*model.Advertisement, error)
	Delete(ctx context.Context, id uint) error
}

type advertisementRepository struct {
	db *gorm.DB
}

// NewAdvertisementRepository returns a GORM-backed AdvertisementRepository.
func NewAdvertisementRepository(db *gorm.DB) AdvertisementRepository {
	return &advertisementRepository{db: db}
}

func (r *advertisementRepository) Create(ctx context.Context, ad *model.Advertisement) error {
	if err := r.db.WithContext(ctx).Create(ad).Error; err != nil {
		return err
	}
	return nil
}

func (r *advertisementRepository) GetByID(ctx context.Context, id uint) (*model.Advertisement, error) {
	var ad model.Advertisement
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ad).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdvertisementNotFound
		}
		return nil, err
	}
	return &ad, nil
}

func (r *advertisementRepository) List(ctx context.Context, filter AdvertisementFilter) ([]model.Advertisement, error) {
	query := r.db.WithContext(ctx).Model(&model.Advertisement{})
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", string(*filter.Category))
	}

	var result []model.Advertisement
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *advertisementRepository) Update(ctx context.Context, ad *model.Advertisement) error {
	result := r.db.WithContext(ctx).
		Model(&model.Advertisement{}).
		Where("id = ?", ad.ID).
		Updates(map[string]interface{}{
			"title":       ad.Title,
			"description": ad.Description,
			"image_url":   ad.ImageURL,
			"link_url":    ad.LinkURL,
			"category":    string(ad.Category),
			"is_active":   ad.IsActive,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdvertisementNotFound
	}

	return r.db.WithContext(ctx).Where("id = ?", ad.ID).First(ad).Error
}

func (r *advertisementRepository) UpdateStatus(ctx context.Context, id uint, active bool) (*model.Advertisement, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Advertisement{}).
		Where("id = ?", id).
		Update("is_active", active)

	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrAdvertisementNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *advertisementRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Advertisement{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdvertisementNotFound
	}
	return nil
}
