package service

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/repository"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/infra/prometheus"
	"go.uber.org/zap"
)

const defaultMaxResults = 10

// Randomizer is the randomness source of ad selection.
type Randomizer interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

type globalRand struct{}

func (globalRand) IntN(n int) int                     { return rand.IntN(n) }
func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// DefaultRandomizer draws from the math/rand/v2 global source, which is safe for concurrent use.
var DefaultRandomizer Randomizer = globalRand{}

// SelectionRequest carries the optional criteria of an ad request.
type SelectionRequest struct {
	Category      string
	PageType      string
	PublisherSite string
	Limit         int
}

// SelectionMeta echoes the request next to the result counts.
type SelectionMeta struct {
	Category       string `json:"category"`
	PageType       string `json:"pageType"`
	PublisherSite  string `json:"publisherSite"`
	Count          int    `json:"count"`
	TotalAvailable int    `json:"totalAvailable"`
}

// SelectionResult is the outcome of one selection.
type SelectionResult struct {
	Message string                `json:"message"`
	Ads     []model.Advertisement `json:"ads"`
	Meta    SelectionMeta         `json:"meta"`
}

// SelectionService serves active advertisements to requesting sites.
type SelectionService interface {
	Select(ctx context.Context, req SelectionRequest) (*SelectionResult, error)
}

// SelectionDeps wires the collaborators of the selection service.
type SelectionDeps struct {
	Repo       repository.AdvertisementRepository
	Random     Randomizer
	MaxResults int
	Logger     *zap.Logger
}

type selectionService struct {
	repo       repository.AdvertisementRepository
	random     Randomizer
	maxResults int
	log        *zap.Logger
}

func NewSelectionService(deps SelectionDeps) SelectionService {
	s := &selectionService{
		repo:       deps.Repo,
		random:     deps.Random,
		maxResults: deps.MaxResults,
		log:        deps.Logger,
	}
	if s.random == nil {
		s.random = DefaultRandomizer
	}
	if s.maxResults <= 0 {
		s.maxResults = defaultMaxResults
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

func (s *selectionService) Select(ctx context.Context, req SelectionRequest) (*SelectionResult, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 1
	}
	requested := strings.ToLower(strings.TrimSpace(req.Category))

	s.log.Info("ad request",
		zap.String("category", requested),
		zap.String("page_type", req.PageType),
		zap.String("publisher_site", req.PublisherSite),
		zap.Int("limit", limit),
	)

	active := true
	filter := repository.AdvertisementFilter{Active: &active}
	if category, ok := model.ParseCategory(requested); ok {
		filter.Category = &category
	}

	candidates, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeError("Failed to fetch advertisements", err)
	}

	result := &SelectionResult{
		Ads: []model.Advertisement{},
		Meta: SelectionMeta{
			Category:       requested,
			PageType:       req.PageType,
			PublisherSite:  req.PublisherSite,
			TotalAvailable: len(candidates),
		},
	}

	if len(candidates) == 0 {
		result.Message = "No advertisements available"
		return result, nil
	}

	if limit == 1 {
		result.Ads = append(result.Ads, candidates[s.random.IntN(len(candidates))])
		result.Message = "Advertisement served successfully"
	} else {
		s.random.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		n := min(limit, s.maxResults, len(candidates))
		result.Ads = append(result.Ads, candidates[:n]...)
		result.Message = "Advertisements served successfully"
	}
	result.Meta.Count = len(result.Ads)

	ids := make([]uint, len(result.Ads))
	for i, ad := range result.Ads {
		ids[i] = ad.ID
	}
	s.log.Info("ads served",
		zap.Uints("ad_ids", ids),
		zap.String("publisher_site", req.PublisherSite),
	)
	prometheus.AdsServed.Add(float64(len(result.Ads)))

	return result, nil
}
