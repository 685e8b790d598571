package repository

import (
	"context"
	"errors"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	"gorm.io/gorm"
)

var (
	// ErrTestimonialNotFound signals that the requested testimonial does not exist.
	ErrTestimonialNotFound = errors.New("testimonial not found")
	// ErrWorkNotFound signals that the requested work does not exist.
	ErrWorkNotFound = errors.New("work not found")
)

// TestimonialRepository defines the data access contract for testimonials.
type TestimonialRepository interface {
	Create(ctx context.Context, t *model.Testimonial) error
	List(ctx context.Context) ([]model.Testimonial, error)
	Update(ctx context.Context, t *model.Testimonial) error
	Delete(ctx context.Context, id uint) error
}

// WorkRepository defines the data access contract for portfolio works.
type WorkRepository interface {
	Create(ctx context.Context, w *model.Work) error
	List(ctx context.Context) ([]model.Work, error)
	Update(ctx context.Context, w *model.Work) error
	Delete(ctx context.Context, id uint) error
}

type testimonialRepository struct {
	db *gorm.DB
}

// NewTestimonialRepository returns a GORM-backed TestimonialRepository.
func NewTestimonialRepository(db *gorm.DB) TestimonialRepository {
	return &testimonialRepository{db: db}
}

func (r *testimonialRepository) Create(ctx context.Context, t *model.Testimonial) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *testimonialRepository) List(ctx context.Context) ([]model.Testimonial, error) {
	var result []model.Testimonial
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *testimonialRepository) Update(ctx context.Context, t *model.Testimonial) error {
	result := r.db.WithContext(ctx).
		Model(&model.Testimonial{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"quote":   t.Quote,
			"author":  t.Author,
			"company": t.Company,
			"image":   t.Image,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTestimonialNotFound
	}
	return r.db.WithContext(ctx).Where("id = ?", t.ID).First(t).Error
}

func (r *testimonialRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Testimonial{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTestimonialNotFound
	}
	return nil
}

type workRepository struct {
	db *gorm.DB
}

// NewWorkRepository returns a GORM-backed WorkRepository.
func NewWorkRepository(db *gorm.DB) WorkRepository {
	return &workRepository{db: db}
}

func (r *workRepository) Create(ctx context.Context, w *model.Work) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *workRepository) List(ctx context.Context) ([]model.Work, error) {
	var result []model.Work
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *workRepository) Update(ctx context.Context, w *model.Work) error {
	result := r.db.WithContext(ctx).
		Model(&model.Work{}).
		Where("id = ?", w.ID).
		Updates(map[string]interface{}{
			"title":        w.Title,
			"description":  w.Description,
			"image_url":    w.ImageURL,
			"project_link": w.ProjectLink,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkNotFound
	}
	return r.db.WithContext(ctx).Where("id = ?", w.ID).First(w).Error
}

func (r *workRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Work{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkNotFound
	}
	return nil
}
