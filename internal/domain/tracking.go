package domain

import "time"

// RecentlyViewed / SearchAlert 只建表，暂无读写入口

type RecentlyViewed struct {
	ID       uint      `gorm:"primaryKey"`
	UserID   uint      `gorm:"not null;uniqueIndex:uq_recently_viewed_user_car"`
	CarID    uint      `gorm:"not null;uniqueIndex:uq_recently_viewed_user_car"`
	ViewedAt time.Time `gorm:"autoCreateTime"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Car  *Car  `gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE"`
}

func (RecentlyViewed) TableName() string { return "recently_viewed" }

type SearchAlert struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:uq_search_alerts_user_category"`
	Category  string    `gorm:"size:20;not null;uniqueIndex:uq_search_alerts_user_category"`
	Criteria  *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (SearchAlert) TableName() string { return "search_alerts" }
