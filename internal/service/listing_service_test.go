package service

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"automarket/internal/core/errs"
	"automarket/internal/domain"
)

func ctx() context.Context { return context.Background() }

func newListingSvc(repo domain.ListingRepository) *ListingService {
	return NewListingService(repo, nil, 0, zap.NewNop())
}

func TestDetailKey(t *testing.T) {
	assert.Equal(t, "listing:cars:42", DetailKey(domain.CategoryCars, 42))
}

func TestListingList(t *testing.T) {
	repo := new(MockListingRepository)
	p := domain.NewPage(1, 20)
	repo.On("List", mock.Anything, domain.CategoryBikes, mock.MatchedBy(func(cs []domain.Cond) bool {
		return len(cs) == 2 && cs[0].Column == "status" && cs[1].Column == "price"
	}), p).Return([]domain.Listing{{}}, int64(1), nil)

	rows, total, err := newListingSvc(repo).List(ctx(), domain.CategoryBikes, url.Values{"minPrice": {"100"}}, p)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, int64(1), total)

	repo2 := new(MockListingRepository)
	repo2.On("List", mock.Anything, domain.CategoryParts, mock.Anything, p).Return([]domain.Listing(nil), int64(0), errors.New("db down"))
	_, _, err = newListingSvc(repo2).List(ctx(), domain.CategoryParts, url.Values{}, p)
	assert.Equal(t, "Failed to fetch parts.", errs.Message(err))
}

func TestListingGet(t *testing.T) {
	repo := new(MockListingRepository)
	l := &domain.Listing{}
	l.ID, l.Model, l.Price = 5, "Golf", 9500
	repo.On("Get", mock.Anything, domain.CategoryCars, uint(5)).Return(l, nil)
	repo.On("Get", mock.Anything, domain.CategoryCars, uint(6)).Return(nil, nil)
	svc := newListingSvc(repo)

	got, err := svc.Get(ctx(), domain.CategoryCars, 5)
	require.NoError(t, err)
	assert.Equal(t, "Golf", got.Model)
	assert.Equal(t, 9500.0, got.Price)

	_, err = svc.Get(ctx(), domain.CategoryCars, 6)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	assert.Equal(t, "Car listing not found.", errs.Message(err))
}

func TestListingCreate(t *testing.T) {
	repo := new(MockListingRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Car")).
		Run(func(args mock.Arguments) {
			car := args.Get(1).(*domain.Car)
			car.ID = 11
		}).Return(nil)
	created := &domain.Listing{}
	created.ID = 11
	repo.On("Get", mock.Anything, domain.CategoryCars, uint(11)).Return(created, nil)

	got, err := newListingSvc(repo).Create(ctx(), domain.CategoryCars, 9, map[string]any{
		"model": "Golf", "year": 2015, "price": 9500,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(11), got.ID)

	row := repo.Calls[0].Arguments.Get(1).(*domain.Car)
	assert.Equal(t, uint(9), row.SellerID)
	assert.Equal(t, domain.StatusActive, row.Status)
}

func TestListingCreateValidation(t *testing.T) {
	repo := new(MockListingRepository)
	_, err := newListingSvc(repo).Create(ctx(), domain.CategoryCars, 9, map[string]any{"model": "Golf"})
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Equal(t, "Model, year, and price are required fields.", errs.Message(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListingUpdateAuthorization(t *testing.T) {
	body := map[string]any{"price": 100}

	t.Run("missing", func(t *testing.T) {
		repo := new(MockListingRepository)
		repo.On("SellerOf", mock.Anything, domain.CategoryTrucks, uint(1)).Return(uint(0), false, nil)
		_, err := newListingSvc(repo).Update(ctx(), domain.CategoryTrucks, 1, 9, false, body)
		assert.Equal(t, "Truck listing not found.", errs.Message(err))
	})
	t.Run("not owner", func(t *testing.T) {
		repo := new(MockListingRepository)
		repo.On("SellerOf", mock.Anything, domain.CategoryTrucks, uint(1)).Return(uint(3), true, nil)
		_, err := newListingSvc(repo).Update(ctx(), domain.CategoryTrucks, 1, 9, false, body)
		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
		assert.Equal(t, "You don't have permission to update this listing.", errs.Message(err))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
	t.Run("admin bypass", func(t *testing.T) {
		repo := new(MockListingRepository)
		repo.On("SellerOf", mock.Anything, domain.CategoryTrucks, uint(1)).Return(uint(3), true, nil)
		repo.On("Update", mock.Anything, domain.CategoryTrucks, uint(1), mock.MatchedBy(func(p *domain.Patch) bool {
			return p.Len() == 1 && p.Has("price")
		})).Return(nil)
		out := &domain.Listing{}
		out.Price = 100
		repo.On("Get", mock.Anything, domain.CategoryTrucks, uint(1)).Return(out, nil)

		got, err := newListingSvc(repo).Update(ctx(), domain.CategoryTrucks, 1, 9, true, body)
		require.NoError(t, err)
		assert.Equal(t, 100.0, got.Price)
		repo.AssertExpectations(t)
	})
	t.Run("empty body after ownership", func(t *testing.T) {
		repo := new(MockListingRepository)
		repo.On("SellerOf", mock.Anything, domain.CategoryTrucks, uint(1)).Return(uint(9), true, nil)
		_, err := newListingSvc(repo).Update(ctx(), domain.CategoryTrucks, 1, 9, false, map[string]any{"unknown": 1})
		assert.Equal(t, "No fields to update.", errs.Message(err))
	})
}

func TestListingDelete(t *testing.T) {
	repo := new(MockListingRepository)
	repo.On("SellerOf", mock.Anything, domain.CategoryParts, uint(4)).Return(uint(9), true, nil)
	repo.On("Delete", mock.Anything, domain.CategoryParts, uint(4)).Return(true, nil)
	require.NoError(t, newListingSvc(repo).Delete(ctx(), domain.CategoryParts, 4, 9, false))

	repo2 := new(MockListingRepository)
	repo2.On("SellerOf", mock.Anything, domain.CategoryParts, uint(4)).Return(uint(1), true, nil)
	err := newListingSvc(repo2).Delete(ctx(), domain.CategoryParts, 4, 9, false)
	assert.Equal(t, "You don't have permission to delete this listing.", errs.Message(err))

	repo3 := new(MockListingRepository)
	repo3.On("SellerOf", mock.Anything, domain.CategoryParts, uint(4)).Return(uint(0), false, errors.New("db down"))
	err = newListingSvc(repo3).Delete(ctx(), domain.CategoryParts, 4, 9, false)
	assert.Equal(t, errs.KindInternal, errs.KindOf(err))
	assert.Equal(t, "Failed to delete part listing.", errs.Message(err))
}
