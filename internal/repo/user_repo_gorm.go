package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"automarket/internal/core/database"
	"automarket/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	err := r.db.WithContext(ctx).Create(u).Error
	if database.IsUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *UserRepo) first(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Where(query, arg).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

// List 管理端用户列表，password_hash 不出库
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Select("id", "email", "name", "phone", "role", "created_at", "updated_at").
		Order("created_at DESC").Order("id DESC").
		Find(&users).Error
	return users, err
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id uint, p domain.UserPatch) (*domain.User, error) {
	patch := &domain.Patch{}
	if p.Name != nil {
		patch.Set("name", nullIfEmpty(*p.Name))
	}
	if p.Phone != nil {
		patch.Set("phone", nullIfEmpty(*p.Phone))
	}
	if err := r.exec(ctx, "users", id, patch); err != nil {
		return nil, err
	}
	// mysql 的 RowsAffected 只计真正变化的行，存在性以回读为准
	return r.FindByID(ctx, id)
}

func (r *UserRepo) UpdateRole(ctx context.Context, id uint, role string) (*domain.User, error) {
	patch := (&domain.Patch{}).Set("role", role)
	if err := r.exec(ctx, "users", id, patch); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepo) exec(ctx context.Context, table string, id uint, p *domain.Patch) error {
	sql, args, err := p.ToSQL(quoter(r.db), table, id)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Exec(sql, args...).Error
}

// Delete 外键 ON DELETE CASCADE 负责清理该用户的在售物品、收藏与留言
func (r *UserRepo) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	return res.RowsAffected > 0, res.Error
}

func (r *UserRepo) Role(ctx context.Context, id uint) (string, error) {
	var role string
	res := r.db.WithContext(ctx).Model(&domain.User{}).Select("role").Where("id = ?", id).Limit(1).Scan(&role)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", nil
	}
	return role, nil
}

// quoter 按当前方言给标识符加引号
func quoter(db *gorm.DB) domain.Quoter {
	return func(s string) string { return db.Statement.Quote(s) }
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
