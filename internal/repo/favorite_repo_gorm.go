package repo

import (
	"context"

	"gorm.io/gorm"

	"automarket/internal/core/database"
	"automarket/internal/domain"
)

type FavoriteRepo struct{ db *gorm.DB }

func NewFavoriteRepo(db *gorm.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

func (r *FavoriteRepo) Exists(ctx context.Context, userID, carID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ? AND car_id = ?", userID, carID).
		Limit(1).Count(&n).Error
	return n > 0, err
}

func (r *FavoriteRepo) Add(ctx context.Context, userID, carID uint) error {
	err := r.db.WithContext(ctx).Omit("User", "Car").Create(&domain.Favorite{UserID: userID, CarID: carID}).Error
	if database.IsUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *FavoriteRepo) Remove(ctx context.Context, userID, carID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND car_id = ?", userID, carID).
		Delete(&domain.Favorite{})
	return res.RowsAffected > 0, res.Error
}

func (r *FavoriteRepo) Count(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

// List 收藏 + 车辆 + 卖家，按收藏时间倒序
func (r *FavoriteRepo) List(ctx context.Context, userID uint, p domain.Page) ([]domain.FavoriteCar, int64, error) {
	total, err := r.Count(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	items := []domain.FavoriteCar{}
	if total == 0 {
		return items, 0, nil
	}
	err = r.db.WithContext(ctx).
		Table("favorites AS f").
		Select("l.*, f.id AS favorite_id, f.created_at AS favorited_at, "+sellerColumns).
		Joins("JOIN cars l ON l.id = f.car_id").
		Joins("JOIN users u ON u.id = l.seller_id").
		Where("f.user_id = ?", userID).
		Order("f.created_at DESC").Order("f.id DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&items).Error
	return items, total, err
}
