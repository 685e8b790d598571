package repository

import (
	"context"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClickEventRepository defines the data access contract for click events.
type ClickEventRepository interface {
	Create(ctx context.Context, event *model.ClickEvent) error
}

type clickEventRepository struct {
	db *gorm.DB
}

// NewClickEventRepository returns a GORM-backed ClickEventRepository.
func NewClickEventRepository(db *gorm.DB) ClickEventRepository {
	return &clickEventRepository{db: db}
}

// Create appends the event. An event whose id is already stored is ignored, so
// redelivered stream messages do not double count.
func (r *clickEventRepository) Create(ctx context.Context, event *model.ClickEvent) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(event).Error
}
