package domain

import (
	"context"
	"errors"
	"time"
)

var ErrDuplicate = errors.New("duplicate key")

// Page 已归一化的分页参数
type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

// Cond 单列条件；列名由仓储层按方言加引号，值走占位符
type Cond struct {
	Column string
	Op     string // = >= <= LIKE
	Fold   bool   // 两侧都转小写比较
	Value  any
}

// AdminListing 管理端跨表列表行；Category 是所属表，PartCategory 是配件自身分类。
// 某分类没有的列为 NULL
type AdminListing struct {
	ID          uint       `db:"id" json:"id"`
	Category    string     `db:"category" json:"category"`
	SellerID    uint       `db:"seller_id" json:"seller_id"`
	Make        *string    `db:"make" json:"make"`
	Model       *string    `db:"model" json:"model"`
	Year        *int       `db:"year" json:"year"`
	Price       float64    `db:"price" json:"price"`
	Status      string     `db:"status" json:"status"`
	Description *string    `db:"description" json:"description"`
	ImageURLs   StringList `db:"image_urls" json:"image_urls"`
	Location    *string    `db:"location" json:"location"`
	IsBestOffer bool       `db:"is_best_offer" json:"is_best_offer"`

	BodyType     *string     `db:"body_type" json:"body_type"`
	FuelType     *string     `db:"fuel_type" json:"fuel_type"`
	Transmission *string     `db:"transmission" json:"transmission"`
	Engine       *string     `db:"engine" json:"engine"`
	Color        *string     `db:"color" json:"color"`
	Doors        *int        `db:"doors" json:"doors"`
	CO2Emissions *string     `db:"co2_emissions" json:"co2_emissions"`
	Mileage      *int        `db:"mileage" json:"mileage"`
	VINNumber    *string     `db:"vin_number" json:"vin_number"`
	Equipment    *StringList `db:"equipment" json:"equipment,omitempty"`
	Cylindrics   *int        `db:"cylindrics" json:"cylindrics"`
	HPKW         *string     `db:"hp_kw" json:"hp_kw"`

	PartCategory  *string `db:"part_category" json:"part_category,omitempty"`
	Brand         *string `db:"brand" json:"brand,omitempty"`
	Compatibility *string `db:"compatibility" json:"compatibility,omitempty"`
	Condition     *string `db:"condition" json:"condition,omitempty"`
	Warranty      *string `db:"warranty" json:"warranty,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type ListingRepository interface {
	List(ctx context.Context, c Category, conds []Cond, p Page) ([]Listing, int64, error)
	// Get 查不到返回 (nil, nil)
	Get(ctx context.Context, c Category, id uint) (*Listing, error)
	// Create row 必须是该分类对应的表模型指针（*Car/*Bike/*Truck/*Part）
	Create(ctx context.Context, row any) error
	SellerOf(ctx context.Context, c Category, id uint) (sellerID uint, found bool, err error)
	Update(ctx context.Context, c Category, id uint, p *Patch) error
	Delete(ctx context.Context, c Category, id uint) (bool, error)
	CountBySeller(ctx context.Context, sellerID uint) (int64, error)
	// IDsBySeller 按分类列出卖家全部在售 id，没有在售的分类不出现
	IDsBySeller(ctx context.Context, sellerID uint) (map[Category][]uint, error)
}

// AdminListingReader c 为空表示四张表全部
type AdminListingReader interface {
	ListAll(ctx context.Context, c Category, status string) ([]AdminListing, error)
}
