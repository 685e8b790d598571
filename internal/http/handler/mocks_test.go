package handler

import (
	"context"
	"time"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/repository"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/service"
	"github.com/stretchr/testify/mock"
)

type mockSelection struct{ mock.Mock }

func (m *mockSelection) Select(ctx context.Context, req service.SelectionRequest) (*service.SelectionResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*service.SelectionResult)
	return result, args.Error(1)
}

type mockClicks struct{ mock.Mock }

func (m *mockClicks) Track(ctx context.Context, req service.ClickRequest) (*service.ClickResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*service.ClickResult)
	return result, args.Error(1)
}

type mockAds struct{ mock.Mock }

func (m *mockAds) Create(ctx context.Context, input service.AdvertisementInput) (*model.Advertisement, error) {
	args := m.Called(ctx, input)
	ad, _ := args.Get(0).(*model.Advertisement)
	return ad, args.Error(1)
}

func (m *mockAds) Get(ctx context.Context, id uint) (*model.Advertisement, error) {
	args := m.Called(ctx, id)
	ad, _ := args.Get(0).(*model.Advertisement)
	return ad, args.Error(1)
}

func (m *mockAds) List(ctx context.Context, filter repository.AdvertisementFilter) ([]model.Advertisement, error) {
	args := m.Called(ctx, filter)
	ads, _ := args.Get(0).([]model.Advertisement)
	return ads, args.Error(1)
}

func (m *mockAds) Update(ctx context.Context, id uint, patch service.AdvertisementPatch) (*model.Advertisement, error) {
	args := m.Called(ctx, id, patch)
	ad, _ := args.Get(0).(*model.Advertisement)
	return ad, args.Error(1)
}

func (m *mockAds) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockAnalytics struct{ mock.Mock }

func (m *mockAnalytics) Report(ctx context.Context, reportType string) (any, error) {
	args := m.Called(ctx, reportType)
	return args.Get(0), args.Error(1)
}

type mockAuth struct{ mock.Mock }

func (m *mockAuth) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *mockAuth) ParseToken(token string) (*service.AdminClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*service.AdminClaims)
	return claims, args.Error(1)
}

func (m *mockAuth) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	args := m.Called(ctx, email, password)
	return args.Bool(0), args.Error(1)
}

func (m *mockAuth) TokenTTL() time.Duration {
	return 24 * time.Hour
}

type mockOTP struct{ mock.Mock }

func (m *mockOTP) Send(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockOTP) Verify(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}

type mockContact struct{ mock.Mock }

func (m *mockContact) Submit(ctx context.Context, input service.ContactInput) error {
	return m.Called(ctx, input).Error(0)
}

type mockContent struct{ mock.Mock }

func (m *mockContent) ListTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Testimonial)
	return items, args.Error(1)
}

func (m *mockContent) CreateTestimonial(ctx context.Context, input service.TestimonialInput) (*model.Testimonial, error) {
	args := m.Called(ctx, input)
	item, _ := args.Get(0).(*model.Testimonial)
	return item, args.Error(1)
}

func (m *mockContent) UpdateTestimonial(ctx context.Context, id uint, input service.TestimonialInput) (*model.Testimonial, error) {
	args := m.Called(ctx, id, input)
	item, _ := args.Get(0).(*model.Testimonial)
	return item, args.Error(1)
}

func (m *mockContent) DeleteTestimonial(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockContent) ListWorks(ctx context.Context) ([]model.Work, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Work)
	return items, args.Error(1)
}

func (m *mockContent) CreateWork(ctx context.Context, input service.WorkInput) (*model.Work, error) {
	args := m.Called(ctx, input)
	item, _ := args.Get(0).(*model.Work)
	return item, args.Error(1)
}

func (m *mockContent) UpdateWork(ctx context.Context, id uint, input service.WorkInput) (*model.Work, error) {
	args := m.Called(ctx, id, input)
	item, _ := args.Get(0).(*model.Work)
	return item, args.Error(1)
}

func (m *mockContent) DeleteWork(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
