package service

import (
	"context"

	"go.uber.org/zap"

	"automarket/internal/core/errs"
	"automarket/internal/domain"
)

const msgListingNotFound = "Listing not found."

type AdminService struct {
	users    domain.UserRepository
	reader   domain.AdminListingReader
	listings *ListingService
	log      *zap.Logger
}

func NewAdminService(users domain.UserRepository, reader domain.AdminListingReader, listings *ListingService, l *zap.Logger) *AdminService {
	return &AdminService{users: users, reader: reader, listings: listings, log: l}
}

// IsAdmin 每次请求都回库读角色，角色变更立即生效
func (s *AdminService) IsAdmin(ctx context.Context, uid uint) (bool, error) {
	role, err := s.users.Role(ctx, uid)
	if err != nil {
		return false, err
	}
	return role == domain.RoleAdmin, nil
}

func (s *AdminService) Users(ctx context.Context) ([]domain.User, error) {
	us, err := s.users.List(ctx)
	if err != nil {
		return nil, fail(s.log, "Failed to load users.", err)
	}
	return us, nil
}

func (s *AdminService) SetRole(ctx context.Context, id uint, role string) (*domain.User, error) {
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, errs.Validation("Role must be one of: user, admin.")
	}
	u, err := s.users.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, fail(s.log, "Failed to update user role.", err, zap.Uint("user_id", id))
	}
	if u == nil {
		return nil, errs.NotFound(msgUserNotFound)
	}
	return u, nil
}

// DeleteUser 外键级联删除其在售、收藏、询价；级联前先记下在售的详情 key，删完再失效
func (s *AdminService) DeleteUser(ctx context.Context, id uint) error {
	const msg = "Failed to delete user."
	keys, err := s.listings.SellerKeys(ctx, id)
	if err != nil {
		return fail(s.log, msg, err, zap.Uint("user_id", id))
	}
	ok, err := s.users.Delete(ctx, id)
	if err != nil {
		return fail(s.log, msg, err, zap.Uint("user_id", id))
	}
	if !ok {
		return errs.NotFound(msgUserNotFound)
	}
	s.listings.Forget(ctx, keys...)
	return nil
}

// Listings 全量合并后按 created_at 倒序，不分页；c 为空时取四张表
func (s *AdminService) Listings(ctx context.Context, c domain.Category, status string) ([]domain.AdminListing, error) {
	rows, err := s.reader.ListAll(ctx, c, status)
	if err != nil {
		return nil, fail(s.log, "Failed to load listings.", err)
	}
	return rows, nil
}

func (s *AdminService) UpdateListing(ctx context.Context, c domain.Category, id uint, body map[string]any) (*domain.Listing, error) {
	l, err := s.listings.Update(ctx, c, id, 0, true, body)
	return l, adminListingErr(err, "Failed to update listing.")
}

func (s *AdminService) DeleteListing(ctx context.Context, c domain.Category, id uint) error {
	return adminListingErr(s.listings.Delete(ctx, c, id, 0, true), "Failed to delete listing.")
}

// adminListingErr 管理端不区分分类文案
func adminListingErr(err error, internalMsg string) error {
	switch {
	case err == nil:
		return nil
	case errs.Is(err, errs.KindNotFound):
		return errs.NotFound(msgListingNotFound)
	case errs.KindOf(err) == errs.KindInternal:
		return errs.Internal(internalMsg, errs.Cause(err))
	}
	return err
}
