package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"automarket/internal/core/errs"
	"automarket/internal/domain"
	"automarket/internal/feature/user"
)

const (
	msgCarNotFound    = "Car listing not found."
	msgAlreadyFavored = "Car is already in your favorites."
)

// AccountService 当前登录用户的个人数据：资料、收藏、自己的在售、询价
type AccountService struct {
	users     domain.UserRepository
	listings  domain.ListingRepository
	favorites domain.FavoriteRepository
	inquiries domain.InquiryRepository
	catalog   *ListingService
	log       *zap.Logger
}

func NewAccountService(
	users domain.UserRepository,
	listings domain.ListingRepository,
	favorites domain.FavoriteRepository,
	inquiries domain.InquiryRepository,
	catalog *ListingService,
	l *zap.Logger,
) *AccountService {
	return &AccountService{users: users, listings: listings, favorites: favorites, inquiries: inquiries, catalog: catalog, log: l}
}

// Profile 两次计数互相独立，不保证同一快照
func (s *AccountService) Profile(ctx context.Context, uid uint) (*domain.User, domain.ProfileStats, error) {
	const msg = "Failed to fetch user profile."
	var st domain.ProfileStats
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, st, fail(s.log, msg, err, zap.Uint("user_id", uid))
	}
	if u == nil {
		return nil, st, errs.NotFound(msgUserNotFound)
	}
	if st.TotalListings, err = s.listings.CountBySeller(ctx, uid); err != nil {
		return nil, st, fail(s.log, msg, err, zap.Uint("user_id", uid))
	}
	if st.TotalFavorites, err = s.favorites.Count(ctx, uid); err != nil {
		return nil, st, fail(s.log, msg, err, zap.Uint("user_id", uid))
	}
	return u, st, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, uid uint, in user.ProfileInput) (*domain.User, error) {
	p := in.Patch()
	if p.Empty() {
		return nil, errs.Validation("No fields to update.")
	}
	u, err := s.users.UpdateProfile(ctx, uid, p)
	if err != nil {
		return nil, fail(s.log, "Failed to update user profile.", err, zap.Uint("user_id", uid))
	}
	if u == nil {
		return nil, errs.NotFound(msgUserNotFound)
	}
	s.catalog.ForgetSeller(ctx, uid)
	return u, nil
}

func (s *AccountService) Favorites(ctx context.Context, uid uint, p domain.Page) ([]domain.FavoriteCar, int64, error) {
	rows, total, err := s.favorites.List(ctx, uid, p)
	if err != nil {
		return nil, 0, fail(s.log, "Failed to fetch favorites.", err, zap.Uint("user_id", uid))
	}
	return rows, total, nil
}

// AddFavorite 先查重；并发下由唯一索引兜底，两条路径返回同样的 400
func (s *AccountService) AddFavorite(ctx context.Context, uid, carID uint) error {
	const msg = "Failed to add car to favorites."
	_, found, err := s.listings.SellerOf(ctx, domain.CategoryCars, carID)
	if err != nil {
		return fail(s.log, msg, err, zap.Uint("car_id", carID))
	}
	if !found {
		return errs.NotFound(msgCarNotFound)
	}
	exists, err := s.favorites.Exists(ctx, uid, carID)
	if err != nil {
		return fail(s.log, msg, err, zap.Uint("car_id", carID))
	}
	if exists {
		return errs.Conflict(msgAlreadyFavored)
	}
	if err := s.favorites.Add(ctx, uid, carID); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return errs.Conflict(msgAlreadyFavored)
		}
		return fail(s.log, msg, err, zap.Uint("car_id", carID))
	}
	return nil
}

func (s *AccountService) RemoveFavorite(ctx context.Context, uid, carID uint) error {
	ok, err := s.favorites.Remove(ctx, uid, carID)
	if err != nil {
		return fail(s.log, "Failed to remove car from favorites.", err, zap.Uint("car_id", carID))
	}
	if !ok {
		return errs.NotFound("Car is not in your favorites.")
	}
	return nil
}

// Listings 自己发布的某一分类在售；status 为空时不过滤
func (s *AccountService) Listings(ctx context.Context, uid uint, c domain.Category, status string, p domain.Page) ([]domain.Listing, int64, error) {
	conds := []domain.Cond{{Column: "seller_id", Op: "=", Value: uid}}
	if status = strings.TrimSpace(status); status != "" {
		conds = append(conds, domain.Cond{Column: "status", Op: "=", Value: status})
	}
	rows, total, err := s.listings.List(ctx, c, conds, p)
	if err != nil {
		return nil, 0, fail(s.log, "Failed to fetch user listings.", err, zap.Uint("user_id", uid))
	}
	return rows, total, nil
}

func (s *AccountService) SendInquiry(ctx context.Context, buyerID, carID uint, message string) (*domain.Inquiry, error) {
	const msg = "Failed to send inquiry."
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, errs.Validation("Message is required.")
	}
	seller, found, err := s.listings.SellerOf(ctx, domain.CategoryCars, carID)
	if err != nil {
		return nil, fail(s.log, msg, err, zap.Uint("car_id", carID))
	}
	if !found {
		return nil, errs.NotFound(msgCarNotFound)
	}
	if seller == buyerID {
		return nil, errs.Validation("You cannot send an inquiry about your own listing.")
	}
	q := &domain.Inquiry{CarID: carID, BuyerID: buyerID, SellerID: seller, Message: message}
	if err := s.inquiries.Create(ctx, q); err != nil {
		return nil, fail(s.log, msg, err, zap.Uint("car_id", carID))
	}
	return q, nil
}

func (s *AccountService) Inquiries(ctx context.Context, uid uint, box string, p domain.Page) ([]domain.InquiryView, int64, error) {
	switch box {
	case "":
		box = domain.InboxReceived
	case domain.InboxReceived, domain.InboxSent:
	default:
		return nil, 0, errs.Validation("Box must be one of: received, sent.")
	}
	rows, total, err := s.inquiries.List(ctx, uid, box, p)
	if err != nil {
		return nil, 0, fail(s.log, "Failed to fetch inquiries.", err, zap.Uint("user_id", uid))
	}
	return rows, total, nil
}
