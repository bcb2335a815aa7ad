package domain

import "time"

const (
	StatusActive  = "active"
	StatusSold    = "sold"
	StatusPending = "pending"
)

// ListingBase 四类在售物品的公共列
type ListingBase struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	SellerID    uint       `gorm:"not null;index" json:"seller_id"`
	Price       float64    `gorm:"type:decimal(12,2);not null;index" json:"price"`
	Description *string    `gorm:"type:text" json:"description"`
	ImageURLs   StringList `gorm:"column:image_urls" json:"image_urls"`
	Status      string     `gorm:"size:20;not null;default:active;index" json:"status"`
	IsBestOffer bool       `gorm:"not null;default:false" json:"is_best_offer"`
	Location    *string    `gorm:"size:255" json:"location"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index:,sort:desc" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// PK 插入后取回自增 id
func (b *ListingBase) PK() uint { return b.ID }

// VehicleAttrs cars/bikes/trucks 共用
type VehicleAttrs struct {
	Make         *string    `gorm:"size:100" json:"make"`
	Model        string     `gorm:"size:255;not null" json:"model"`
	Year         int        `gorm:"not null;index" json:"year"`
	BodyType     *string    `gorm:"size:50;index" json:"body_type"`
	FuelType     *string    `gorm:"size:50;index" json:"fuel_type"`
	Transmission *string    `gorm:"size:50" json:"transmission"`
	Engine       *string    `gorm:"size:255" json:"engine"`
	Color        *string    `gorm:"size:50" json:"color"`
	CO2Emissions *string    `gorm:"column:co2_emissions;size:50" json:"co2_emissions"`
	Mileage      *int       `json:"mileage"`
	VINNumber    *string    `gorm:"column:vin_number;size:50" json:"vin_number"`
	Equipment    StringList `json:"equipment"`
	Cylindrics   *int       `json:"cylindrics"`
	HPKW         *string    `gorm:"column:hp_kw;size:50" json:"hp_kw"`
}

type Car struct {
	ListingBase
	VehicleAttrs
	Doors  *int  `json:"doors"`
	Seller *User `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Car) TableName() string { return "cars" }

type Bike struct {
	ListingBase
	VehicleAttrs
	Seller *User `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Bike) TableName() string { return "bikes" }

type Truck struct {
	ListingBase
	VehicleAttrs
	Doors  *int  `json:"doors"`
	Seller *User `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Truck) TableName() string { return "trucks" }

type Part struct {
	ListingBase
	Name          string `gorm:"size:255;not null" json:"name"`
	Category      string `gorm:"size:100;not null;index" json:"category"`
	Brand         string `gorm:"size:100;not null;index" json:"brand"`
	Compatibility string `gorm:"type:text;not null" json:"compatibility"`
	Condition     string `gorm:"size:50;not null" json:"condition"`
	Warranty      string `gorm:"size:100;not null" json:"warranty"`
	Seller        *User  `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Part) TableName() string { return "parts" }

// Listing 跨表读模型：单表查询只会填充该表存在的列，卖家字段来自 users 连接
type Listing struct {
	ListingBase
	VehicleAttrs
	Doors         *int    `json:"doors"`
	Name          *string `gorm:"->" json:"name"`
	Category      *string `gorm:"->" json:"category"`
	Brand         *string `gorm:"->" json:"brand"`
	Compatibility *string `gorm:"->" json:"compatibility"`
	Condition     *string `gorm:"->" json:"condition"`
	Warranty      *string `gorm:"->" json:"warranty"`

	SellerName  *string `gorm:"->;column:seller_name" json:"seller_name"`
	SellerPhone *string `gorm:"->;column:seller_phone" json:"seller_phone"`
	SellerEmail *string `gorm:"->;column:seller_email" json:"seller_email"`
}
