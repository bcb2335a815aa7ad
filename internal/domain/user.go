package domain

import (
	"context"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex:idx_users_email;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Name         *string   `gorm:"size:255" json:"name"`
	Phone        *string   `gorm:"size:50" json:"phone"`
	Role         string    `gorm:"size:20;not null;default:user" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// ProfileStats 个人主页统计
type ProfileStats struct {
	TotalListings  int64 `json:"total_listings"`
	TotalFavorites int64 `json:"total_favorites"`
}

// UserPatch nil 字段表示不修改
type UserPatch struct {
	Name  *string
	Phone *string
}

func (p UserPatch) Empty() bool { return p.Name == nil && p.Phone == nil }

// UserRepository 查不到时返回 (nil, nil)
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateProfile(ctx context.Context, id uint, p UserPatch) (*User, error)
	UpdateRole(ctx context.Context, id uint, role string) (*User, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Role(ctx context.Context, id uint) (string, error)
}
