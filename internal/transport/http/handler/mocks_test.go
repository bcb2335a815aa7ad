package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/url"

	"github.com/stretchr/testify/mock"

	"automarket/internal/domain"
	"automarket/internal/feature/user"
	"automarket/internal/service"
)

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Register(ctx context.Context, in user.RegisterInput) (*service.Session, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, in user.LoginInput) (*service.Session, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, uid uint) (*domain.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockListingService struct{ mock.Mock }

func (m *MockListingService) List(ctx context.Context, c domain.Category, q url.Values, p domain.Page) ([]domain.Listing, int64, error) {
	args := m.Called(ctx, c, q, p)
	return args.Get(0).([]domain.Listing), args.Get(1).(int64), args.Error(2)
}

func (m *MockListingService) Get(ctx context.Context, c domain.Category, id uint) (*domain.Listing, error) {
	args := m.Called(ctx, c, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) Create(ctx context.Context, c domain.Category, sellerID uint, body map[string]any) (*domain.Listing, error) {
	args := m.Called(ctx, c, sellerID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) Update(ctx context.Context, c domain.Category, id, actorID uint, admin bool, body map[string]any) (*domain.Listing, error) {
	args := m.Called(ctx, c, id, actorID, admin, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) Delete(ctx context.Context, c domain.Category, id, actorID uint, admin bool) error {
	args := m.Called(ctx, c, id, actorID, admin)
	return args.Error(0)
}

type MockAccountService struct{ mock.Mock }

func (m *MockAccountService) Profile(ctx context.Context, uid uint) (*domain.User, domain.ProfileStats, error) {
	args := m.Called(ctx, uid)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Get(1).(domain.ProfileStats), args.Error(2)
}

func (m *MockAccountService) UpdateProfile(ctx context.Context, uid uint, in user.ProfileInput) (*domain.User, error) {
	args := m.Called(ctx, uid, in)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *MockAccountService) Favorites(ctx context.Context, uid uint, p domain.Page) ([]domain.FavoriteCar, int64, error) {
	args := m.Called(ctx, uid, p)
	return args.Get(0).([]domain.FavoriteCar), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountService) AddFavorite(ctx context.Context, uid, carID uint) error {
	return m.Called(ctx, uid, carID).Error(0)
}

func (m *MockAccountService) RemoveFavorite(ctx context.Context, uid, carID uint) error {
	return m.Called(ctx, uid, carID).Error(0)
}

func (m *MockAccountService) Listings(ctx context.Context, uid uint, c domain.Category, status string, p domain.Page) ([]domain.Listing, int64, error) {
	args := m.Called(ctx, uid, c, status, p)
	return args.Get(0).([]domain.Listing), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountService) SendInquiry(ctx context.Context, buyerID, carID uint, message string) (*domain.Inquiry, error) {
	args := m.Called(ctx, buyerID, carID, message)
	q, _ := args.Get(0).(*domain.Inquiry)
	return q, args.Error(1)
}

func (m *MockAccountService) Inquiries(ctx context.Context, uid uint, box string, p domain.Page) ([]domain.InquiryView, int64, error) {
	args := m.Called(ctx, uid, box, p)
	return args.Get(0).([]domain.InquiryView), args.Get(1).(int64), args.Error(2)
}

type MockAdminService struct{ mock.Mock }

func (m *MockAdminService) Users(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockAdminService) SetRole(ctx context.Context, id uint, role string) (*domain.User, error) {
	args := m.Called(ctx, id, role)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *MockAdminService) DeleteUser(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAdminService) Listings(ctx context.Context, c domain.Category, status string) ([]domain.AdminListing, error) {
	args := m.Called(ctx, c, status)
	return args.Get(0).([]domain.AdminListing), args.Error(1)
}

func (m *MockAdminService) UpdateListing(ctx context.Context, c domain.Category, id uint, body map[string]any) (*domain.Listing, error) {
	args := m.Called(ctx, c, id, body)
	l, _ := args.Get(0).(*domain.Listing)
	return l, args.Error(1)
}

func (m *MockAdminService) DeleteListing(ctx context.Context, c domain.Category, id uint) error {
	return m.Called(ctx, c, id).Error(0)
}

type MockUploadService struct{ mock.Mock }

func (m *MockUploadService) Images(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	args := m.Called(ctx, files)
	urls, _ := args.Get(0).([]string)
	return urls, args.Error(1)
}

func (m *MockUploadService) Open(ctx context.Context, id string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, id)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.String(1), args.Error(2)
}
