package service

import (
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"automarket/internal/core/cache"
	"automarket/internal/core/errs"
	"automarket/internal/domain"
	"automarket/internal/feature/user"
)

func newCachedListingSvc(t *testing.T, repo domain.ListingRepository) (*ListingService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return NewListingService(repo, c, time.Minute, zap.NewNop()), mr
}

func carListing(id uint, model string) *domain.Listing {
	l := &domain.Listing{}
	l.ID, l.SellerID, l.Model, l.Year, l.Price = id, 7, model, 2015, 9500
	return l
}

func TestCachedGetServesFromRedis(t *testing.T) {
	repo := new(MockListingRepository)
	svc, mr := newCachedListingSvc(t, repo)
	repo.On("Get", mock.Anything, domain.CategoryCars, uint(5)).Return(carListing(5, "Golf"), nil).Once()

	for i := 0; i < 3; i++ {
		got, err := svc.Get(ctx(), domain.CategoryCars, 5)
		require.NoError(t, err)
		assert.Equal(t, "Golf", got.Model)
	}
	repo.AssertNumberOfCalls(t, "Get", 1)
	assert.True(t, mr.Exists("listing:cars:5"))
	assert.Equal(t, time.Minute, mr.TTL("listing:cars:5"))
}

func TestCacheInvalidatedOnUpdateAndDelete(t *testing.T) {
	repo := new(MockListingRepository)
	svc, mr := newCachedListingSvc(t, repo)
	key := DetailKey(domain.CategoryCars, 5)

	repo.On("Get", mock.Anything, domain.CategoryCars, uint(5)).Return(carListing(5, "Golf"), nil).Once()
	_, err := svc.Get(ctx(), domain.CategoryCars, 5)
	require.NoError(t, err)
	require.True(t, mr.Exists(key))

	repo.On("SellerOf", mock.Anything, domain.CategoryCars, uint(5)).Return(uint(7), true, nil)
	repo.On("Update", mock.Anything, domain.CategoryCars, uint(5), mock.Anything).Return(nil)
	repo.On("Get", mock.Anything, domain.CategoryCars, uint(5)).Return(carListing(5, "Polo"), nil).Twice()
	_, err = svc.Update(ctx(), domain.CategoryCars, 5, 7, false, map[string]any{"model": "Polo"})
	require.NoError(t, err)
	assert.False(t, mr.Exists(key))

	got, err := svc.Get(ctx(), domain.CategoryCars, 5)
	require.NoError(t, err)
	assert.Equal(t, "Polo", got.Model)

	repo.On("Delete", mock.Anything, domain.CategoryCars, uint(5)).Return(true, nil)
	require.NoError(t, svc.Delete(ctx(), domain.CategoryCars, 5, 7, false))
	assert.False(t, mr.Exists(key))

	repo.On("Get", mock.Anything, domain.CategoryCars, uint(5)).Return(nil, nil).Once()
	_, err = svc.Get(ctx(), domain.CategoryCars, 5)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	raw, _ := mr.Get(key)
	assert.Equal(t, "null", raw)
}

func TestCreateClearsCachedMiss(t *testing.T) {
	repo := new(MockListingRepository)
	svc, mr := newCachedListingSvc(t, repo)
	key := DetailKey(domain.CategoryCars, 11)

	repo.On("Get", mock.Anything, domain.CategoryCars, uint(11)).Return(nil, nil).Once()
	_, err := svc.Get(ctx(), domain.CategoryCars, 11)
	require.Equal(t, errs.KindNotFound, errs.KindOf(err))
	raw, _ := mr.Get(key)
	require.Equal(t, "null", raw)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Car")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Car).ID = 11 }).Return(nil)
	repo.On("Get", mock.Anything, domain.CategoryCars, uint(11)).Return(carListing(11, "Golf"), nil).Twice()
	_, err = svc.Create(ctx(), domain.CategoryCars, 7, map[string]any{"model": "Golf", "year": 2015, "price": 9500})
	require.NoError(t, err)
	assert.False(t, mr.Exists(key))

	got, err := svc.Get(ctx(), domain.CategoryCars, 11)
	require.NoError(t, err)
	assert.Equal(t, uint(11), got.ID)
}

func TestDeleteUserDropsCachedListings(t *testing.T) {
	listings := new(MockListingRepository)
	users := new(MockUserRepository)
	catalog, mr := newCachedListingSvc(t, listings)
	svc := NewAdminService(users, nil, catalog, zap.NewNop())

	name := "Brake pad"
	part := &domain.Listing{Name: &name}
	part.ID, part.SellerID, part.Price = 2, 7, 49.9
	listings.On("Get", mock.Anything, domain.CategoryCars, uint(5)).Return(carListing(5, "Golf"), nil).Once()
	listings.On("Get", mock.Anything, domain.CategoryParts, uint(2)).Return(part, nil).Once()
	_, err := catalog.Get(ctx(), domain.CategoryCars, 5)
	require.NoError(t, err)
	_, err = catalog.Get(ctx(), domain.CategoryParts, 2)
	require.NoError(t, err)

	listings.On("IDsBySeller", mock.Anything, uint(7)).Return(map[domain.Category][]uint{
		domain.CategoryCars:  {5},
		domain.CategoryParts: {2},
	}, nil)
	users.On("Delete", mock.Anything, uint(7)).Return(true, nil)
	require.NoError(t, svc.DeleteUser(ctx(), 7))
	assert.False(t, mr.Exists("listing:cars:5"))
	assert.False(t, mr.Exists("listing:parts:2"))

	// 级联后回库已查不到
	listings.On("Get", mock.Anything, domain.CategoryCars, uint(5)).Return(nil, nil).Once()
	_, err = catalog.Get(ctx(), domain.CategoryCars, 5)
	assert.Equal(t, "Car listing not found.", errs.Message(err))
}

func TestDeleteUserStopsWhenListingLookupFails(t *testing.T) {
	listings := new(MockListingRepository)
	users := new(MockUserRepository)
	catalog, _ := newCachedListingSvc(t, listings)
	svc := NewAdminService(users, nil, catalog, zap.NewNop())

	listings.On("IDsBySeller", mock.Anything, uint(7)).Return(nil, errors.New("db down"))
	err := svc.DeleteUser(ctx(), 7)
	assert.Equal(t, errs.KindInternal, errs.KindOf(err))
	assert.Equal(t, "Failed to delete user.", errs.Message(err))
	users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUpdateProfileRefreshesCachedSeller(t *testing.T) {
	listings := new(MockListingRepository)
	users := new(MockUserRepository)
	catalog, mr := newCachedListingSvc(t, listings)
	svc := NewAccountService(users, listings, nil, nil, catalog, zap.NewNop())

	before, after := "Ann", "Anna"
	stale := carListing(5, "Golf")
	stale.SellerName = &before
	listings.On("Get", mock.Anything, domain.CategoryCars, uint(5)).Return(stale, nil).Once()
	_, err := catalog.Get(ctx(), domain.CategoryCars, 5)
	require.NoError(t, err)

	users.On("UpdateProfile", mock.Anything, uint(7), mock.Anything).Return(&domain.User{ID: 7, Name: &after}, nil)
	listings.On("IDsBySeller", mock.Anything, uint(7)).Return(map[domain.Category][]uint{domain.CategoryCars: {5}}, nil)
	_, err = svc.UpdateProfile(ctx(), 7, user.ProfileInput{Name: &after})
	require.NoError(t, err)
	assert.False(t, mr.Exists("listing:cars:5"))

	fresh := carListing(5, "Golf")
	fresh.SellerName = &after
	listings.On("Get", mock.Anything, domain.CategoryCars, uint(5)).Return(fresh, nil).Once()
	got, err := catalog.Get(ctx(), domain.CategoryCars, 5)
	require.NoError(t, err)
	assert.Equal(t, "Anna", *got.SellerName)
}
