// Package memory keeps every repository in process memory. It backs the
// "memory" storage driver and the end-to-end tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/repository"
)

// Store holds all tables behind a single lock.
type Store struct {
	mu sync.RWMutex

	ads          map[uint]model.Advertisement
	clicks       []model.ClickEvent
	clickIDs     map[string]struct{}
	testimonials map[uint]model.Testimonial
	works        map[uint]model.Work
	admins       map[string]model.AdminUser

	adSeq          uint
	testimonialSeq uint
	workSeq        uint
	adminSeq       uint

	now func() time.Time
}

func New() *Store {
	return &Store{
		ads:          make(map[uint]model.Advertisement),
		clickIDs:     make(map[string]struct{}),
		testimonials: make(map[uint]model.Testimonial),
		works:        make(map[uint]model.Work),
		admins:       make(map[string]model.AdminUser),
		now:          time.Now,
	}
}

func (s *Store) Advertisements() repository.AdvertisementRepository { return &adRepo{s} }
func (s *Store) Clicks() repository.ClickEventRepository            { return &clickRepo{s} }
func (s *Store) Testimonials() repository.TestimonialRepository     { return &testimonialRepo{s} }
func (s *Store) Works() repository.WorkRepository                   { return &workRepo{s} }
func (s *Store) Admins() repository.AdminUserRepository             { return &adminRepo{s} }
func (s *Store) Analytics() repository.AnalyticsRepository          { return &analyticsRepo{s} }

// ClickEvents returns a copy of the recorded clicks in insertion order.
func (s *Store) ClickEvents() []model.ClickEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ClickEvent, len(s.clicks))
	copy(out, s.clicks)
	return out
}

// --- Advertisements ---

type adRepo struct{ s *Store }

func (r *adRepo) Create(_ context.Context, ad *model.Advertisement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.adSeq++
	now := r.s.now()
	ad.ID = r.s.adSeq
	ad.CreatedAt = now
	ad.UpdatedAt = now
	r.s.ads[ad.ID] = *ad
	return nil
}

func (r *adRepo) GetByID(_ context.Context, id uint) (*model.Advertisement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ad, ok := r.s.ads[id]
	if !ok {
		return nil, repository.ErrAdvertisementNotFound
	}
	return &ad, nil
}

func (r *adRepo) List(_ context.Context, filter repository.AdvertisementFilter) ([]model.Advertisement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]model.Advertisement, 0, len(r.s.ads))
	for _, ad := range r.s.ads {
		if filter.Active != nil && ad.IsActive != *filter.Active {
			continue
		}
		if filter.Category != nil && ad.Category != *filter.Category {
			continue
		}
		result = append(result, ad)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *adRepo) Update(_ context.Context, ad *model.Advertisement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.ads[ad.ID]
	if !ok {
		return repository.ErrAdvertisementNotFound
	}
	current.Title = ad.Title
	current.Description = ad.Description
	current.ImageURL = ad.ImageURL
	current.LinkURL = ad.LinkURL
	current.Category = ad.Category
	current.IsActive = ad.IsActive
	current.UpdatedAt = r.s.now()
	r.s.ads[ad.ID] = current
	*ad = current
	return nil
}

func (r *adRepo) UpdateStatus(_ context.Context, id uint, active bool) (*model.Advertisement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.ads[id]
	if !ok {
		return nil, repository.ErrAdvertisementNotFound
	}
	current.IsActive = active
	current.UpdatedAt = r.s.now()
	r.s.ads[id] = current
	return &current, nil
}

func (r *adRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.ads[id]; !ok {
		return repository.ErrAdvertisementNotFound
	}
	delete(r.s.ads, id)
	return nil
}

// --- Clicks ---

type clickRepo struct{ s *Store }

func (r *clickRepo) Create(_ context.Context, event *model.ClickEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, dup := r.s.clickIDs[event.ID]; dup {
		return nil
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = r.s.now()
	}
	r.s.clickIDs[event.ID] = struct{}{}
	r.s.clicks = append(r.s.clicks, *event)
	return nil
}

// --- Testimonials ---

type testimonialRepo struct{ s *Store }

func (r *testimonialRepo) Create(_ context.Context, t *model.Testimonial) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.testimonialSeq++
	t.ID = r.s.testimonialSeq
	t.CreatedAt = r.s.now()
	r.s.testimonials[t.ID] = *t
	return nil
}

func (r *testimonialRepo) List(_ context.Context) ([]model.Testimonial, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]model.Testimonial, 0, len(r.s.testimonials))
	for _, t := range r.s.testimonials {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *testimonialRepo) Update(_ context.Context, t *model.Testimonial) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.testimonials[t.ID]
	if !ok {
		return repository.ErrTestimonialNotFound
	}
	current.Quote = t.Quote
	current.Author = t.Author
	current.Company = t.Company
	current.Image = t.Image
	r.s.testimonials[t.ID] = current
	*t = current
	return nil
}

func (r *testimonialRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.testimonials[id]; !ok {
		return repository.ErrTestimonialNotFound
	}
	delete(r.s.testimonials, id)
	return nil
}

// --- Works ---

type workRepo struct{ s *Store }

func (r *workRepo) Create(_ context.Context, w *model.Work) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.workSeq++
	w.ID = r.s.workSeq
	w.CreatedAt = r.s.now()
	r.s.works[w.ID] = *w
	return nil
}

func (r *workRepo) List(_ context.Context) ([]model.Work, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]model.Work, 0, len(r.s.works))
	for _, w := range r.s.works {
		result = append(result, w)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *workRepo) Update(_ context.Context, w *model.Work) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.works[w.ID]
	if !ok {
		return repository.ErrWorkNotFound
	}
	current.Title = w.Title
	current.Description = w.Description
	current.ImageURL = w.ImageURL
	current.ProjectLink = w.ProjectLink
	r.s.works[w.ID] = current
	*w = current
	return nil
}

func (r *workRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.works[id]; !ok {
		return repository.ErrWorkNotFound
	}
	delete(r.s.works, id)
	return nil
}

// --- Admin users ---

type adminRepo struct{ s *Store }

func (r *adminRepo) Create(_ context.Context, user *model.AdminUser) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	r.s.adminSeq++
	user.ID = r.s.adminSeq
	user.CreatedAt = r.s.now()
	r.s.admins[user.Email] = *user
	return nil
}

func (r *adminRepo) GetByEmail(_ context.Context, email string) (*model.AdminUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.admins[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, repository.ErrAdminNotFound
	}
	return &user, nil
}

// --- Analytics ---

type analyticsRepo struct{ s *Store }

func (r *analyticsRepo) Overview(_ context.Context) (*model.Overview, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	overview := model.Overview{
		TotalClicks: int64(len(r.s.clicks)),
		TotalAds:    int64(len(r.s.ads)),
	}
	for _, ad := range r.s.ads {
		if ad.IsActive {
			overview.ActiveAds++
		}
	}
	return &overview, nil
}

func (r *analyticsRepo) ClicksByPublisher(_ context.Context) (map[string]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make(map[string]int64)
	for _, c := range r.s.clicks {
		site := strings.TrimSpace(c.PublisherSite)
		if site == "" {
			site = model.UnknownPublisher
		}
		result[site]++
	}
	return result, nil
}

func (r *analyticsRepo) ClicksByCategory(_ context.Context) (map[string]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make(map[string]int64)
	for _, c := range r.s.clicks {
		ad, ok := r.s.ads[c.AdID]
		if !ok {
			continue
		}
		result[string(ad.Category)]++
	}
	return result, nil
}

func (r *analyticsRepo) AdPerformance(_ context.Context) ([]model.AdPerformance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[uint]int64)
	for _, c := range r.s.clicks {
		if _, ok := r.s.ads[c.AdID]; ok {
			counts[c.AdID]++
		}
	}

	result := make([]model.AdPerformance, 0, len(counts))
	for id, clicks := range counts {
		ad := r.s.ads[id]
		result = append(result, model.AdPerformance{
			AdID:     id,
			Title:    ad.Title,
			Category: ad.Category,
			Clicks:   clicks,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Clicks != result[j].Clicks {
			return result[i].Clicks > result[j].Clicks
		}
		return result[i].AdID < result[j].AdID
	})
	return result, nil
}

// --- OTP ---

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// OTPStore is an expiring in-process OTP store used when Redis is disabled.
type OTPStore struct {
	mu      sync.Mutex
	entries map[string]otpEntry
	now     func() time.Time
}

func NewOTPStore() *OTPStore {
	return &OTPStore{
		entries: make(map[string]otpEntry),
		now:     time.Now,
	}
}

func (s *OTPStore) Save(_ context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()
	s.entries[repository.OTPKey(email)] = otpEntry{code: code, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *OTPStore) Get(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := repository.OTPKey(email)
	entry, ok := s.entries[key]
	if !ok {
		return "", repository.ErrOTPNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return "", repository.ErrOTPNotFound
	}
	return entry.code, nil
}

func (s *OTPStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, repository.OTPKey(email))
	return nil
}

// sweep drops expired entries. Caller holds the lock.
func (s *OTPStore) sweep() {
	now := s.now()
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}
