package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"automarket/internal/domain"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uint, p domain.UserPatch) (*domain.User, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uint, role string) (*domain.User, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Role(ctx context.Context, id uint) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

type MockListingRepository struct{ mock.Mock }

func (m *MockListingRepository) List(ctx context.Context, c domain.Category, conds []domain.Cond, p domain.Page) ([]domain.Listing, int64, error) {
	args := m.Called(ctx, c, conds, p)
	return args.Get(0).([]domain.Listing), args.Get(1).(int64), args.Error(2)
}

func (m *MockListingRepository) Get(ctx context.Context, c domain.Category, id uint) (*domain.Listing, error) {
	args := m.Called(ctx, c, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingRepository) Create(ctx context.Context, row any) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockListingRepository) SellerOf(ctx context.Context, c domain.Category, id uint) (uint, bool, error) {
	args := m.Called(ctx, c, id)
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

func (m *MockListingRepository) Update(ctx context.Context, c domain.Category, id uint, p *domain.Patch) error {
	args := m.Called(ctx, c, id, p)
	return args.Error(0)
}

func (m *MockListingRepository) Delete(ctx context.Context, c domain.Category, id uint) (bool, error) {
	args := m.Called(ctx, c, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockListingRepository) CountBySeller(ctx context.Context, sellerID uint) (int64, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) IDsBySeller(ctx context.Context, sellerID uint) (map[domain.Category][]uint, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Category][]uint), args.Error(1)
}

type MockFavoriteRepository struct{ mock.Mock }

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, carID uint) (bool, error) {
	args := m.Called(ctx, userID, carID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, carID uint) error {
	args := m.Called(ctx, userID, carID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, carID uint) (bool, error) {
	args := m.Called(ctx, userID, carID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) List(ctx context.Context, userID uint, p domain.Page) ([]domain.FavoriteCar, int64, error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).([]domain.FavoriteCar), args.Get(1).(int64), args.Error(2)
}

func (m *MockFavoriteRepository) Count(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockInquiryRepository struct{ mock.Mock }

func (m *MockInquiryRepository) Create(ctx context.Context, q *domain.Inquiry) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockInquiryRepository) List(ctx context.Context, userID uint, box string, p domain.Page) ([]domain.InquiryView, int64, error) {
	args := m.Called(ctx, userID, box, p)
	return args.Get(0).([]domain.InquiryView), args.Get(1).(int64), args.Error(2)
}

type MockAdminReader struct{ mock.Mock }

func (m *MockAdminReader) ListAll(ctx context.Context, c domain.Category, status string) ([]domain.AdminListing, error) {
	args := m.Called(ctx, c, status)
	return args.Get(0).([]domain.AdminListing), args.Error(1)
}

type stubTokens struct{ err error }

func (s stubTokens) Issue(uid uint, email string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "tok-" + email, nil
}

// memStore 记录写入的 key 与内容
type memStore struct {
	keys   []string
	bodies [][]byte
	err    error
}

func (s *memStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.keys = append(s.keys, key)
	s.bodies = append(s.bodies, b)
	return "/images/" + key, nil
}

func (s *memStore) Close(context.Context) error { return nil }
