package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"automarket/internal/core/cache"
	"automarket/internal/core/errs"
	"automarket/internal/domain"
	"automarket/internal/feature/listing"
)

type ListingService struct {
	repo  domain.ListingRepository
	cache *cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

// NewListingService c 可以是未启用的缓存（cache.New("", "", 0)），此时只做 singleflight
func NewListingService(repo domain.ListingRepository, c *cache.Cache, ttl time.Duration, l *zap.Logger) *ListingService {
	if c == nil {
		c = cache.New("", "", 0)
	}
	return &ListingService{repo: repo, cache: c, ttl: ttl, log: l}
}

// DetailKey 详情缓存 key
func DetailKey(c domain.Category, id uint) string {
	return fmt.Sprintf("listing:%s:%d", c, id)
}

func (s *ListingService) List(ctx context.Context, c domain.Category, q url.Values, p domain.Page) ([]domain.Listing, int64, error) {
	d := listing.MustFor(c)
	rows, total, err := s.repo.List(ctx, c, listing.Conditions(d, q), p)
	if err != nil {
		return nil, 0, fail(s.log, fmt.Sprintf("Failed to fetch %s.", c), err)
	}
	return rows, total, nil
}

// Get 读穿缓存；不存在的 id 也会被缓存（值为 null）直到 TTL 过期或被失效
func (s *ListingService) Get(ctx context.Context, c domain.Category, id uint) (*domain.Listing, error) {
	d := listing.MustFor(c)
	l, err := cache.GetOrLoadJSON(s.cache, ctx, DetailKey(c, id), s.ttl, func(ctx context.Context) (*domain.Listing, error) {
		return s.repo.Get(ctx, c, id)
	})
	if err != nil {
		return nil, fail(s.log, fmt.Sprintf("Failed to fetch %s.", d.Singular), err, zap.Uint("id", id))
	}
	if l == nil {
		return nil, errs.NotFound(d.NotFoundMsg())
	}
	return l, nil
}

type pker interface{ PK() uint }

func (s *ListingService) Create(ctx context.Context, c domain.Category, sellerID uint, body map[string]any) (*domain.Listing, error) {
	d := listing.MustFor(c)
	v, err := listing.ForCreate(d, body)
	if err != nil {
		return nil, err
	}
	msg := fmt.Sprintf("Failed to create %s listing.", d.Singular)
	row, err := listing.Row(d, v, sellerID)
	if err != nil {
		return nil, fail(s.log, msg, err)
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, fail(s.log, msg, err, zap.Uint("seller_id", sellerID))
	}
	id := row.(pker).PK()
	// 新 id 可能命中过之前缓存的 null
	s.invalidate(ctx, c, id)
	created, err := s.repo.Get(ctx, c, id)
	if err == nil && created == nil {
		err = fmt.Errorf("%s %d vanished after insert", c, id)
	}
	if err != nil {
		return nil, fail(s.log, msg, err, zap.Uint("id", id))
	}
	return created, nil
}

// Update admin=true 时跳过属主校验
func (s *ListingService) Update(ctx context.Context, c domain.Category, id, actorID uint, admin bool, body map[string]any) (*domain.Listing, error) {
	d := listing.MustFor(c)
	msg := fmt.Sprintf("Failed to update %s listing.", d.Singular)
	if err := s.authorize(ctx, d, id, actorID, admin, "update", msg); err != nil {
		return nil, err
	}
	patch, err := listing.ForUpdate(d, body)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c, id, patch); err != nil {
		return nil, fail(s.log, msg, err, zap.Uint("id", id))
	}
	s.invalidate(ctx, c, id)
	updated, err := s.repo.Get(ctx, c, id)
	if err != nil {
		return nil, fail(s.log, msg, err, zap.Uint("id", id))
	}
	if updated == nil {
		// 并发删除
		return nil, errs.NotFound(d.NotFoundMsg())
	}
	return updated, nil
}

func (s *ListingService) Delete(ctx context.Context, c domain.Category, id, actorID uint, admin bool) error {
	d := listing.MustFor(c)
	msg := fmt.Sprintf("Failed to delete %s listing.", d.Singular)
	if err := s.authorize(ctx, d, id, actorID, admin, "delete", msg); err != nil {
		return err
	}
	ok, err := s.repo.Delete(ctx, c, id)
	if err != nil {
		return fail(s.log, msg, err, zap.Uint("id", id))
	}
	s.invalidate(ctx, c, id)
	if !ok {
		return errs.NotFound(d.NotFoundMsg())
	}
	return nil
}

// authorize 先判存在再判属主，与读路径的 404 保持一致
func (s *ListingService) authorize(ctx context.Context, d *listing.Descriptor, id, actorID uint, admin bool, verb, msg string) error {
	seller, found, err := s.repo.SellerOf(ctx, d.Category, id)
	if err != nil {
		return fail(s.log, msg, err, zap.Uint("id", id))
	}
	if !found {
		return errs.NotFound(d.NotFoundMsg())
	}
	if !admin && seller != actorID {
		return errs.Forbidden(fmt.Sprintf("You don't have permission to %s this listing.", verb))
	}
	return nil
}

func (s *ListingService) invalidate(ctx context.Context, c domain.Category, id uint) {
	s.Forget(ctx, DetailKey(c, id))
}

// SellerKeys 卖家全部在售的详情 key；缓存未启用时不查库
func (s *ListingService) SellerKeys(ctx context.Context, sellerID uint) ([]string, error) {
	if !s.cache.Enabled() {
		return nil, nil
	}
	byCat, err := s.repo.IDsBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, c := range domain.Categories {
		for _, id := range byCat[c] {
			keys = append(keys, DetailKey(c, id))
		}
	}
	return keys, nil
}

// Forget 删除详情缓存，失败只记日志，等 TTL 兜底
func (s *ListingService) Forget(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.log.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// ForgetSeller 详情里带卖家姓名电话，卖家资料变了要一起失效
func (s *ListingService) ForgetSeller(ctx context.Context, sellerID uint) {
	keys, err := s.SellerKeys(ctx, sellerID)
	if err != nil {
		s.log.Warn("seller listing lookup failed", zap.Uint("seller_id", sellerID), zap.Error(err))
		return
	}
	s.Forget(ctx, keys...)
}
