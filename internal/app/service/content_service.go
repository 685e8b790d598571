package service

import (
	"context"
	"errors"
	"strings"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/repository"
)

// TestimonialInput holds the editable fields of a testimonial.
type TestimonialInput struct {
	Quote   string `json:"quote"`
	Author  string `json:"author"`
	Company string `json:"company"`
	Image   string `json:"image"`
}

// WorkInput holds the editable fields of a portfolio work.
type WorkInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	ProjectLink string `json:"project_link"`
}

// ContentService manages testimonials and portfolio works.
type ContentService interface {
	ListTestimonials(ctx context.Context) ([]model.Testimonial, error)
	CreateTestimonial(ctx context.Context, input TestimonialInput) (*model.Testimonial, error)
	UpdateTestimonial(ctx context.Context, id uint, input TestimonialInput) (*model.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id uint) error

	ListWorks(ctx context.Context) ([]model.Work, error)
	CreateWork(ctx context.Context, input WorkInput) (*model.Work, error)
	UpdateWork(ctx context.Context, id uint, input WorkInput) (*model.Work, error)
	DeleteWork(ctx context.Context, id uint) error
}

type contentService struct {
	testimonials repository.TestimonialRepository
	works        repository.WorkRepository
}

func NewContentService(testimonials repository.TestimonialRepository, works repository.WorkRepository) ContentService {
	return &contentService{testimonials: testimonials, works: works}
}

func (s *contentService) ListTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	items, err := s.testimonials.List(ctx)
	if err != nil {
		return nil, storeError("Failed to fetch testimonials", err)
	}
	if items == nil {
		items = []model.Testimonial{}
	}
	return items, nil
}

func (s *contentService) CreateTestimonial(ctx context.Context, input TestimonialInput) (*model.Testimonial, error) {
	t, err := input.build()
	if err != nil {
		return nil, err
	}
	if err := s.testimonials.Create(ctx, t); err != nil {
		return nil, storeError("Failed to create testimonial", err)
	}
	return t, nil
}

func (s *contentService) UpdateTestimonial(ctx context.Context, id uint, input TestimonialInput) (*model.Testimonial, error) {
	t, err := input.build()
	if err != nil {
		return nil, err
	}
	t.ID = id
	if err := s.testimonials.Update(ctx, t); err != nil {
		return nil, contentError(err, repository.ErrTestimonialNotFound, "Testimonial not found", "Failed to update testimonial")
	}
	return t, nil
}

func (s *contentService) DeleteTestimonial(ctx context.Context, id uint) error {
	if err := s.testimonials.Delete(ctx, id); err != nil {
		return contentError(err, repository.ErrTestimonialNotFound, "Testimonial not found", "Failed to delete testimonial")
	}
	return nil
}

func (s *contentService) ListWorks(ctx context.Context) ([]model.Work, error) {
	items, err := s.works.List(ctx)
	if err != nil {
		return nil, storeError("Failed to fetch works", err)
	}
	if items == nil {
		items = []model.Work{}
	}
	return items, nil
}

func (s *contentService) CreateWork(ctx context.Context, input WorkInput) (*model.Work, error) {
	w, err := input.build()
	if err != nil {
		return nil, err
	}
	if err := s.works.Create(ctx, w); err != nil {
		return nil, storeError("Failed to create work", err)
	}
	return w, nil
}

func (s *contentService) UpdateWork(ctx context.Context, id uint, input WorkInput) (*model.Work, error) {
	w, err := input.build()
	if err != nil {
		return nil, err
	}
	w.ID = id
	if err := s.works.Update(ctx, w); err != nil {
		return nil, contentError(err, repository.ErrWorkNotFound, "Work not found", "Failed to update work")
	}
	return w, nil
}

func (s *contentService) DeleteWork(ctx context.Context, id uint) error {
	if err := s.works.Delete(ctx, id); err != nil {
		return contentError(err, repository.ErrWorkNotFound, "Work not found", "Failed to delete work")
	}
	return nil
}

func (in TestimonialInput) build() (*model.Testimonial, error) {
	t := &model.Testimonial{
		Quote:   strings.TrimSpace(in.Quote),
		Author:  strings.TrimSpace(in.Author),
		Company: strings.TrimSpace(in.Company),
		Image:   strings.TrimSpace(in.Image),
	}
	if t.Quote == "" || t.Author == "" || t.Company == "" || t.Image == "" {
		return nil, validationError("All fields are required")
	}
	return t, nil
}

func (in WorkInput) build() (*model.Work, error) {
	w := &model.Work{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		ProjectLink: strings.TrimSpace(in.ProjectLink),
	}
	if w.Title == "" || w.Description == "" || w.ImageURL == "" || w.ProjectLink == "" {
		return nil, validationError("All fields are required")
	}
	return w, nil
}

func contentError(err, notFound error, notFoundMsg, storeMsg string) error {
	if errors.Is(err, notFound) {
		return notFoundError(notFoundMsg, err)
	}
	return storeError(storeMsg, err)
}
