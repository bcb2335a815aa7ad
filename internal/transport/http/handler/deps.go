package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"automarket/internal/domain"
	"automarket/internal/feature/user"
	"automarket/internal/service"
)

// Guards 由路由层注入：Auth 校验 token，Admin 在其后确认角色
type Guards struct {
	Auth  gin.HandlerFunc
	Admin gin.HandlerFunc
}

type AuthService interface {
	Register(ctx context.Context, in user.RegisterInput) (*service.Session, error)
	Login(ctx context.Context, in user.LoginInput) (*service.Session, error)
	Me(ctx context.Context, uid uint) (*domain.User, error)
}

type ListingService interface {
	List(ctx context.Context, c domain.Category, q url.Values, p domain.Page) ([]domain.Listing, int64, error)
	Get(ctx context.Context, c domain.Category, id uint) (*domain.Listing, error)
	Create(ctx context.Context, c domain.Category, sellerID uint, body map[string]any) (*domain.Listing, error)
	Update(ctx context.Context, c domain.Category, id, actorID uint, admin bool, body map[string]any) (*domain.Listing, error)
	Delete(ctx context.Context, c domain.Category, id, actorID uint, admin bool) error
}

type AccountService interface {
	Profile(ctx context.Context, uid uint) (*domain.User, domain.ProfileStats, error)
	UpdateProfile(ctx context.Context, uid uint, in user.ProfileInput) (*domain.User, error)
	Favorites(ctx context.Context, uid uint, p domain.Page) ([]domain.FavoriteCar, int64, error)
	AddFavorite(ctx context.Context, uid, carID uint) error
	RemoveFavorite(ctx context.Context, uid, carID uint) error
	Listings(ctx context.Context, uid uint, c domain.Category, status string, p domain.Page) ([]domain.Listing, int64, error)
	SendInquiry(ctx context.Context, buyerID, carID uint, message string) (*domain.Inquiry, error)
	Inquiries(ctx context.Context, uid uint, box string, p domain.Page) ([]domain.InquiryView, int64, error)
}

type AdminService interface {
	Users(ctx context.Context) ([]domain.User, error)
	SetRole(ctx context.Context, id uint, role string) (*domain.User, error)
	DeleteUser(ctx context.Context, id uint) error
	Listings(ctx context.Context, c domain.Category, status string) ([]domain.AdminListing, error)
	UpdateListing(ctx context.Context, c domain.Category, id uint, body map[string]any) (*domain.Listing, error)
	DeleteListing(ctx context.Context, c domain.Category, id uint) error
}

type UploadService interface {
	Images(ctx context.Context, files []*multipart.FileHeader) ([]string, error)
	Open(ctx context.Context, id string) (io.ReadCloser, string, error)
}

// pageOf 与原有前端约定一致：非法的 page/limit 回落到默认值
func pageOf(c *gin.Context) domain.Page {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return domain.NewPage(page, limit)
}

// paged 输出 {<key>: [...], pagination}
func paged(key string, items any, p domain.Page, total int64) gin.H {
	return gin.H{key: items, "pagination": p.Meta(total)}
}
