package service

import (
	"context"
	"errors"
	"time"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/repository"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/infra/prometheus"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/infra/useragent"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MsgAdUnavailable is returned for clicks on missing or inactive advertisements.
const MsgAdUnavailable = "Advertisement not found or inactive"

// ClickRecorder persists a click event, directly or through a queue.
type ClickRecorder interface {
	Record(ctx context.Context, event *model.ClickEvent) error
}

// UserAgentParser derives device details from a User-Agent header.
type UserAgentParser interface {
	Parse(userAgent string) useragent.DeviceInfo
}

// ClickRequest is one click plus the request metadata attributed to it.
type ClickRequest struct {
	AdID          uint
	PublisherSite string
	PageType      string
	ReferrerURL   string
	UserIP        string
	UserAgent     string
}

// ClickResult tells the caller where to send the user.
type ClickResult struct {
	RedirectURL string
	Ad          *model.Advertisement
}

// ClickService validates clicks, records them and resolves their destination.
type ClickService interface {
	Track(ctx context.Context, req ClickRequest) (*ClickResult, error)
}

// ClickDeps wires the collaborators of the click service.
type ClickDeps struct {
	Ads      repository.AdvertisementRepository
	Recorder ClickRecorder
	Parser   UserAgentParser
	Logger   *zap.Logger
	Now      func() time.Time
}

type clickService struct {
	ads      repository.AdvertisementRepository
	recorder ClickRecorder
	parser   UserAgentParser
	log      *zap.Logger
	now      func() time.Time
}

func NewClickService(deps ClickDeps) ClickService {
	s := &clickService{
		ads:      deps.Ads,
		recorder: deps.Recorder,
		parser:   deps.Parser,
		log:      deps.Logger,
		now:      deps.Now,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Track fails only when the advertisement cannot be clicked. Recording is
// best-effort: a recorder failure is logged and counted, never returned.
func (s *clickService) Track(ctx context.Context, req ClickRequest) (*ClickResult, error) {
	ad, err := s.ads.GetByID(ctx, req.AdID)
	if err != nil {
		if errors.Is(err, repository.ErrAdvertisementNotFound) {
			return nil, notFoundError(MsgAdUnavailable, err)
		}
		return nil, storeError("Failed to fetch advertisement", err)
	}
	if !ad.IsActive {
		return nil, notFoundError(MsgAdUnavailable, nil)
	}

	event := s.buildEvent(req)
	if err := s.recorder.Record(ctx, event); err != nil {
		prometheus.ClickRecordFailures.Inc()
		s.log.Warn("failed to record click",
			zap.String("click_id", event.ID),
			zap.Uint("ad_id", event.AdID),
			zap.Error(err),
		)
	} else {
		prometheus.ClicksRecorded.Inc()
	}

	s.log.Info("click tracked",
		zap.Uint("ad_id", ad.ID),
		zap.String("publisher_site", req.PublisherSite),
		zap.String("page_type", req.PageType),
	)

	return &ClickResult{RedirectURL: ad.LinkURL, Ad: ad}, nil
}

func (s *clickService) buildEvent(req ClickRequest) *model.ClickEvent {
	event := &model.ClickEvent{
		ID:            uuid.NewString(),
		AdID:          req.AdID,
		PublisherSite: req.PublisherSite,
		ReferrerURL:   req.ReferrerURL,
		UserIP:        req.UserIP,
		UserAgent:     req.UserAgent,
		PageType:      req.PageType,
		CreatedAt:     s.now().UTC(),
	}
	if s.parser != nil {
		info := s.parser.Parse(req.UserAgent)
		event.DeviceType = info.DeviceType
		event.Browser = info.Browser
		event.OS = info.OS
	}
	return event
}

// RepositoryRecorder writes click events synchronously.
type RepositoryRecorder struct {
	repo repository.ClickEventRepository
}

func NewRepositoryRecorder(repo repository.ClickEventRepository) *RepositoryRecorder {
	return &RepositoryRecorder{repo: repo}
}

func (r *RepositoryRecorder) Record(ctx context.Context, event *model.ClickEvent) error {
	return r.repo.Create(ctx, event)
}
