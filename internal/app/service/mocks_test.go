package service

import (
	"context"
	"time"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/repository"
	appmail "github.com/clooyzi-tech/clooyzi-web-solutions/internal/infra/mail"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/infra/useragent"
)

type mockAdRepository struct {
	createFn       func(ctx context.Context, ad *model.Advertisement) error
	getFn          func(ctx context.Context, id uint) (*model.Advertisement, error)
	listFn         func(ctx context.Context, filter repository.AdvertisementFilter) ([]model.Advertisement, error)
	updateFn       func(ctx context.Context, ad *model.Advertisement) error
	updateStatusFn func(ctx context.Context, id uint, active bool) (*model.Advertisement, error)
	deleteFn       func(ctx context.Context, id uint) error
}

func (m *mockAdRepository) Create(ctx context.Context, ad *model.Advertisement) error {
	if m.createFn != nil {
		return m.createFn(ctx, ad)
	}
	return nil
}

func (m *mockAdRepository) GetByID(ctx context.Context, id uint) (*model.Advertisement, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, repository.ErrAdvertisementNotFound
}

func (m *mockAdRepository) List(ctx context.Context, filter repository.AdvertisementFilter) ([]model.Advertisement, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockAdRepository) Update(ctx context.Context, ad *model.Advertisement) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, ad)
	}
	return nil
}

func (m *mockAdRepository) UpdateStatus(ctx context.Context, id uint, active bool) (*model.Advertisement, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, active)
	}
	return &model.Advertisement{ID: id, IsActive: active}, nil
}

func (m *mockAdRepository) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockRecorder struct {
	events []*model.ClickEvent
	err    error
}

func (m *mockRecorder) Record(_ context.Context, event *model.ClickEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

type fixedParser struct{}

func (fixedParser) Parse(string) useragent.DeviceInfo {
	return useragent.DeviceInfo{DeviceType: "desktop", Browser: "Chrome", OS: "Linux"}
}

// stubRandom picks a fixed index and reverses on shuffle.
type stubRandom struct {
	index    int
	lastN    int
	shuffled bool
}

func (r *stubRandom) IntN(n int) int {
	r.lastN = n
	return r.index
}

func (r *stubRandom) Shuffle(n int, swap func(i, j int)) {
	r.shuffled = true
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

type mockAnalyticsRepository struct {
	overviewFn    func(ctx context.Context) (*model.Overview, error)
	publishersFn  func(ctx context.Context) (map[string]int64, error)
	categoriesFn  func(ctx context.Context) (map[string]int64, error)
	performanceFn func(ctx context.Context) ([]model.AdPerformance, error)
}

func (m *mockAnalyticsRepository) Overview(ctx context.Context) (*model.Overview, error) {
	if m.overviewFn != nil {
		return m.overviewFn(ctx)
	}
	return &model.Overview{}, nil
}

func (m *mockAnalyticsRepository) ClicksByPublisher(ctx context.Context) (map[string]int64, error) {
	if m.publishersFn != nil {
		return m.publishersFn(ctx)
	}
	return nil, nil
}

func (m *mockAnalyticsRepository) ClicksByCategory(ctx context.Context) (map[string]int64, error) {
	if m.categoriesFn != nil {
		return m.categoriesFn(ctx)
	}
	return nil, nil
}

func (m *mockAnalyticsRepository) AdPerformance(ctx context.Context) ([]model.AdPerformance, error) {
	if m.performanceFn != nil {
		return m.performanceFn(ctx)
	}
	return nil, nil
}

type mockAdminRepository struct {
	users map[string]*model.AdminUser
	err   error
}

func (m *mockAdminRepository) Create(_ context.Context, user *model.AdminUser) error {
	if m.err != nil {
		return m.err
	}
	if m.users == nil {
		m.users = map[string]*model.AdminUser{}
	}
	user.ID = uint(len(m.users) + 1)
	m.users[user.Email] = user
	return nil
}

func (m *mockAdminRepository) GetByEmail(_ context.Context, email string) (*model.AdminUser, error) {
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, repository.ErrAdminNotFound
}

type mockOTPStore struct {
	codes   map[string]string
	saveErr error
	ttl     time.Duration
	deleted []string
}

func (m *mockOTPStore) Save(_ context.Context, email, code string, ttl time.Duration) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.codes == nil {
		m.codes = map[string]string{}
	}
	m.codes[email] = code
	m.ttl = ttl
	return nil
}

func (m *mockOTPStore) Get(_ context.Context, email string) (string, error) {
	code, ok := m.codes[email]
	if !ok {
		return "", repository.ErrOTPNotFound
	}
	return code, nil
}

func (m *mockOTPStore) Delete(_ context.Context, email string) error {
	delete(m.codes, email)
	m.deleted = append(m.deleted, email)
	return nil
}

type mockMailer struct {
	sent []appmail.Message
	err  error
}

func (m *mockMailer) Send(_ context.Context, msg appmail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}
