package repo

import (
	"context"

	"gorm.io/gorm"

	"automarket/internal/domain"
)

type InquiryRepo struct{ db *gorm.DB }

func NewInquiryRepo(db *gorm.DB) *InquiryRepo { return &InquiryRepo{db: db} }

func (r *InquiryRepo) Create(ctx context.Context, q *domain.Inquiry) error {
	return r.db.WithContext(ctx).Omit("Car", "Buyer", "Seller").Create(q).Error
}

// List received: 我作为卖家收到的；sent: 我作为买家发出的
func (r *InquiryRepo) List(ctx context.Context, userID uint, box string, p domain.Page) ([]domain.InquiryView, int64, error) {
	own, other := "i.seller_id", "i.buyer_id"
	if box == domain.InboxSent {
		own, other = "i.buyer_id", "i.seller_id"
	}

	var total int64
	if err := r.db.WithContext(ctx).Table("inquiries AS i").Where(own+" = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := []domain.InquiryView{}
	if total == 0 {
		return items, 0, nil
	}
	err := r.db.WithContext(ctx).
		Table("inquiries AS i").
		Select("i.*, c.make AS car_make, c.model AS car_model, c.year AS car_year, "+
			"u.name AS counterpart_name, u.email AS counterpart_email").
		Joins("JOIN cars c ON c.id = i.car_id").
		Joins("JOIN users u ON u.id = "+other).
		Where(own+" = ?", userID).
		Order("i.created_at DESC").Order("i.id DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&items).Error
	return items, total, err
}
