package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"automarket/internal/domain"
)

const sellerColumns = "u.name AS seller_name, u.phone AS seller_phone, u.email AS seller_email"

// ListingRepo 四张表共用一套实现；表名只来自 domain.Category 白名单
type ListingRepo struct{ db *gorm.DB }

func NewListingRepo(db *gorm.DB) *ListingRepo { return &ListingRepo{db: db} }

func (r *ListingRepo) q(ctx context.Context) *gorm.DB { return r.db.WithContext(ctx) }

func (r *ListingRepo) where(tx *gorm.DB, alias string, conds []domain.Cond) *gorm.DB {
	quote := quoter(r.db)
	for _, c := range conds {
		col := quote(c.Column)
		if alias != "" {
			col = alias + "." + col
		}
		if c.Fold {
			col = "LOWER(" + col + ")"
		}
		tx = tx.Where(fmt.Sprintf("%s %s ?", col, c.Op), c.Value)
	}
	return tx
}

func (r *ListingRepo) joined(ctx context.Context, c domain.Category) *gorm.DB {
	return r.q(ctx).
		Table(c.Table() + " AS l").
		Select("l.*, " + sellerColumns).
		Joins("JOIN users u ON u.id = l.seller_id")
}

func (r *ListingRepo) List(ctx context.Context, c domain.Category, conds []domain.Cond, p domain.Page) ([]domain.Listing, int64, error) {
	var total int64
	if err := r.where(r.q(ctx).Table(c.Table()), "", conds).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := []domain.Listing{}
	if total == 0 {
		return items, 0, nil
	}
	err := r.where(r.joined(ctx, c), "l", conds).
		Order("l.created_at DESC").Order("l.id DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&items).Error
	return items, total, err
}

func (r *ListingRepo) Get(ctx context.Context, c domain.Category, id uint) (*domain.Listing, error) {
	var l domain.Listing
	err := r.joined(ctx, c).Where("l.id = ?", id).Take(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ListingRepo) Create(ctx context.Context, row any) error {
	switch row.(type) {
	case *domain.Car, *domain.Bike, *domain.Truck, *domain.Part:
	default:
		return fmt.Errorf("listing repo: unsupported row type %T", row)
	}
	return r.q(ctx).Omit("Seller").Create(row).Error
}

func (r *ListingRepo) SellerOf(ctx context.Context, c domain.Category, id uint) (uint, bool, error) {
	var ids []uint
	err := r.q(ctx).Table(c.Table()).Where("id = ?", id).Limit(1).Pluck("seller_id", &ids).Error
	if err != nil || len(ids) == 0 {
		return 0, false, err
	}
	return ids[0], true, nil
}

func (r *ListingRepo) Update(ctx context.Context, c domain.Category, id uint, p *domain.Patch) error {
	sql, args, err := p.ToSQL(quoter(r.db), c.Table(), id)
	if err != nil {
		return err
	}
	return r.q(ctx).Exec(sql, args...).Error
}

func (r *ListingRepo) Delete(ctx context.Context, c domain.Category, id uint) (bool, error) {
	res := r.q(ctx).Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", quoter(r.db)(c.Table())), id)
	return res.RowsAffected > 0, res.Error
}

// CountBySeller 四张表合计
func (r *ListingRepo) CountBySeller(ctx context.Context, sellerID uint) (int64, error) {
	var sum int64
	for _, c := range domain.Categories {
		var n int64
		if err := r.q(ctx).Table(c.Table()).Where("seller_id = ?", sellerID).Count(&n).Error; err != nil {
			return 0, err
		}
		sum += n
	}
	return sum, nil
}

func (r *ListingRepo) IDsBySeller(ctx context.Context, sellerID uint) (map[domain.Category][]uint, error) {
	out := map[domain.Category][]uint{}
	for _, c := range domain.Categories {
		var ids []uint
		if err := r.q(ctx).Table(c.Table()).Where("seller_id = ?", sellerID).Order("id").Pluck("id", &ids).Error; err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			out[c] = ids
		}
	}
	return out, nil
}
