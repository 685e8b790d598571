package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/repository"
	"go.uber.org/zap"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 1000
	minLinkLength        = 3
)

var imagePrefixes = []string{"data:image/", "http://", "https://"}

// AdvertisementService manages the advertisement catalog.
type AdvertisementService interface {
	Create(ctx context.Context, input AdvertisementInput) (*model.Advertisement, error)
	Get(ctx context.Context, id uint) (*model.Advertisement, error)
	List(ctx context.Context, filter repository.AdvertisementFilter) ([]model.Advertisement, error)
	Update(ctx context.Context, id uint, patch AdvertisementPatch) (*model.Advertisement, error)
	Delete(ctx context.Context, id uint) error
}

// AdvertisementInput captures the fields of a new advertisement.
type AdvertisementInput struct {
	Title       string
	Description string
	ImageURL    string
	LinkURL     string
	Category    string
	IsActive    *bool
}

// AdvertisementPatch records which keys an update request carried. A nil field
// was absent; a non-nil pointer to "" was present but empty.
type AdvertisementPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	LinkURL     *string `json:"link_url"`
	Category    *string `json:"category"`
	IsActive    *bool   `json:"is_active"`
}

// StatusOnly reports whether the patch carries the active flag and no content key.
func (p AdvertisementPatch) StatusOnly() bool {
	return p.IsActive != nil && !p.hasContent()
}

func (p AdvertisementPatch) hasContent() bool {
	return p.Title != nil || p.Description != nil || p.ImageURL != nil ||
		p.LinkURL != nil || p.Category != nil
}

func (p AdvertisementPatch) input() AdvertisementInput {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return AdvertisementInput{
		Title:       deref(p.Title),
		Description: deref(p.Description),
		ImageURL:    deref(p.ImageURL),
		LinkURL:     deref(p.LinkURL),
		Category:    deref(p.Category),
		IsActive:    p.IsActive,
	}
}

type advertisementService struct {
	repo repository.AdvertisementRepository
	log  *zap.Logger
}

// NewAdvertisementService returns a catalog service backed by repo.
func NewAdvertisementService(repo repository.AdvertisementRepository, log *zap.Logger) AdvertisementService {
	if log == nil {
		log = zap.NewNop()
	}
	return &advertisementService{repo: repo, log: log}
}

func (s *advertisementService) Create(ctx context.Context, input AdvertisementInput) (*model.Advertisement, error) {
	ad, err := buildAdvertisement(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, ad); err != nil {
		return nil, storeError("Failed to create advertisement", err)
	}

	s.log.Info("advertisement created", zap.Uint("id", ad.ID), zap.String("category", string(ad.Category)))
	return ad, nil
}

func (s *advertisementService) Get(ctx context.Context, id uint) (*model.Advertisement, error) {
	ad, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAdvertisementNotFound) {
			return nil, notFoundError("Advertisement not found", err)
		}
		return nil, storeError("Failed to fetch advertisement", err)
	}
	return ad, nil
}

func (s *advertisementService) List(ctx context.Context, filter repository.AdvertisementFilter) ([]model.Advertisement, error) {
	ads, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeError("Failed to fetch advertisements", err)
	}
	if ads == nil {
		ads = []model.Advertisement{}
	}
	return ads, nil
}

// Update applies either a status-only update or a full update. The mode is
// chosen by key presence alone; a full update never merges with stored values.
func (s *advertisementService) Update(ctx context.Context, id uint, patch AdvertisementPatch) (*model.Advertisement, error) {
	if patch.StatusOnly() {
		ad, err := s.repo.UpdateStatus(ctx, id, *patch.IsActive)
		if err != nil {
			return nil, s.updateError(err, "Failed to update advertisement status")
		}
		s.log.Info("advertisement status updated", zap.Uint("id", id), zap.Bool("is_active", ad.IsActive))
		return ad, nil
	}

	ad, err := buildAdvertisement(patch.input())
	if err != nil {
		return nil, err
	}
	ad.ID = id

	if err := s.repo.Update(ctx, ad); err != nil {
		return nil, s.updateError(err, "Failed to update advertisement")
	}

	s.log.Info("advertisement updated", zap.Uint("id", id))
	return ad, nil
}

func (s *advertisementService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.updateError(err, "Failed to delete advertisement")
	}
	s.log.Info("advertisement deleted", zap.Uint("id", id))
	return nil
}

func (s *advertisementService) updateError(err error, message string) error {
	if errors.Is(err, repository.ErrAdvertisementNotFound) {
		return notFoundError("Advertisement not found", err)
	}
	return storeError(message, err)
}

// buildAdvertisement trims and validates input. It reports the first violated rule.
func buildAdvertisement(input AdvertisementInput) (*model.Advertisement, error) {
	ad := &model.Advertisement{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		LinkURL:     strings.TrimSpace(input.LinkURL),
		IsActive:    true,
	}
	if input.IsActive != nil {
		ad.IsActive = *input.IsActive
	}
	rawCategory := strings.TrimSpace(input.Category)

	required := []struct {
		name  string
		value string
	}{
		{"title", ad.Title},
		{"description", ad.Description},
		{"image_url", ad.ImageURL},
		{"link_url", ad.LinkURL},
		{"category", rawCategory},
	}
	for _, f := range required {
		if f.value == "" {
			return nil, validationError("%s is required", f.name)
		}
	}

	if utf8.RuneCountInString(ad.Title) > maxTitleLength {
		return nil, validationError("title must be at most %d characters", maxTitleLength)
	}
	if utf8.RuneCountInString(ad.Description) > maxDescriptionLength {
		return nil, validationError("description must be at most %d characters", maxDescriptionLength)
	}
	if !hasAnyPrefix(ad.ImageURL, imagePrefixes) {
		return nil, validationError("image_url must start with %s", strings.Join(imagePrefixes, ", "))
	}
	if utf8.RuneCountInString(ad.LinkURL) < minLinkLength {
		return nil, validationError("link_url must be at least %d characters", minLinkLength)
	}

	category, ok := model.ParseCategory(rawCategory)
	if !ok {
		return nil, validationError("invalid category, expected one of: %s", strings.Join(model.CategoryNames(), ", "))
	}
	ad.Category = category

	return ad, nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
