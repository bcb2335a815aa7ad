package domain

import (
	"context"
	"time"
)

type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uq_favorites_user_car;index" json:"user_id"`
	CarID     uint      `gorm:"not null;uniqueIndex:uq_favorites_user_car;index" json:"car_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Car  *Car  `gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Favorite) TableName() string { return "favorites" }

// FavoriteCar 收藏列表行：车辆列 + 卖家 + 收藏时间
type FavoriteCar struct {
	Listing
	FavoriteID  uint      `gorm:"->;column:favorite_id" json:"favorite_id"`
	FavoritedAt time.Time `gorm:"->;column:favorited_at" json:"favorited_at"`
}

type FavoriteRepository interface {
	Exists(ctx context.Context, userID, carID uint) (bool, error)
	// Add 唯一约束冲突时返回 ErrDuplicate
	Add(ctx context.Context, userID, carID uint) error
	Remove(ctx context.Context, userID, carID uint) (bool, error)
	List(ctx context.Context, userID uint, p Page) ([]FavoriteCar, int64, error)
	Count(ctx context.Context, userID uint) (int64, error)
}
