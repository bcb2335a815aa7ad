package domain

import (
	"context"
	"time"
)

const (
	InboxReceived = "received"
	InboxSent     = "sent"
)

// Inquiry 买家对某辆车的留言，创建后不可修改
type Inquiry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CarID     uint      `gorm:"not null;index" json:"car_id"`
	BuyerID   uint      `gorm:"not null;index" json:"buyer_id"`
	SellerID  uint      `gorm:"not null;index" json:"seller_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:,sort:desc" json:"created_at"`

	Car    *Car  `gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE" json:"-"`
	Buyer  *User `gorm:"foreignKey:BuyerID;constraint:OnDelete:CASCADE" json:"-"`
	Seller *User `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Inquiry) TableName() string { return "inquiries" }

// InquiryView 收件箱/发件箱行
type InquiryView struct {
	Inquiry
	CarMake          *string `gorm:"->;column:car_make" json:"car_make"`
	CarModel         *string `gorm:"->;column:car_model" json:"car_model"`
	CarYear          *int    `gorm:"->;column:car_year" json:"car_year"`
	CounterpartName  *string `gorm:"->;column:counterpart_name" json:"counterpart_name"`
	CounterpartEmail *string `gorm:"->;column:counterpart_email" json:"counterpart_email"`
}

type InquiryRepository interface {
	Create(ctx context.Context, q *Inquiry) error
	List(ctx context.Context, userID uint, box string, p Page) ([]InquiryView, int64, error)
}
