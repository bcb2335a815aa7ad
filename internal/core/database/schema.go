package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"automarket/internal/domain"
)

// 建表顺序即外键依赖顺序；删表时倒序
func models() []any {
	return []any{
		&domain.User{},
		&domain.Car{},
		&domain.Bike{},
		&domain.Truck{},
		&domain.Part{},
		&domain.Favorite{},
		&domain.Inquiry{},
		&domain.RecentlyViewed{},
		&domain.SearchAlert{},
	}
}

var vehicleTables = []string{"cars", "bikes", "trucks"}

// 需要 BEFORE UPDATE 触发器的表
var touchedTables = []string{"users", "cars", "bikes", "trucks", "parts"}

const pgTouchFunc = `CREATE OR REPLACE FUNCTION update_updated_at_column()
RETURNS TRIGGER AS $$
BEGIN
  NEW.updated_at = CURRENT_TIMESTAMP;
  RETURN NEW;
END;
$$ LANGUAGE plpgsql`

// Provision 幂等建表 + 索引 + (postgres) updated_at 触发器
func Provision(ctx context.Context, db *gorm.DB, l *zap.Logger) error {
	tx := db.WithContext(ctx)
	if err := tx.AutoMigrate(models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	l.Info("tables ready", zap.Int("count", len(models())))

	m := tx.Migrator()
	for _, t := range vehicleTables {
		name := "idx_" + t + "_make_model"
		if m.HasIndex(t, name) {
			continue
		}
		if err := tx.Exec(fmt.Sprintf("CREATE INDEX %s ON %s (make, model)", name, t)).Error; err != nil {
			return fmt.Errorf("create index %s: %w", name, err)
		}
	}

	if tx.Dialector.Name() != "postgres" {
		// mysql 依赖 autoUpdateTime 与 Patch 里的 updated_at 刷新
		return nil
	}
	if err := tx.Exec(pgTouchFunc).Error; err != nil {
		return fmt.Errorf("create trigger function: %w", err)
	}
	for _, t := range touchedTables {
		trg := "update_" + t + "_updated_at"
		if err := tx.Exec(fmt.Sprintf("DROP TRIGGER IF EXISTS %s ON %s", trg, t)).Error; err != nil {
			return fmt.Errorf("drop trigger %s: %w", trg, err)
		}
		stmt := fmt.Sprintf("CREATE TRIGGER %s BEFORE UPDATE ON %s FOR EACH ROW EXECUTE FUNCTION update_updated_at_column()", trg, t)
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create trigger %s: %w", trg, err)
		}
	}
	l.Info("triggers ready", zap.Strings("tables", touchedTables))
	return nil
}

// Drop 按依赖倒序删表
func Drop(ctx context.Context, db *gorm.DB, l *zap.Logger) error {
	ms := models()
	m := db.WithContext(ctx).Migrator()
	for i := len(ms) - 1; i >= 0; i-- {
		if err := m.DropTable(ms[i]); err != nil {
			return fmt.Errorf("drop %T: %w", ms[i], err)
		}
	}
	if db.Dialector.Name() == "postgres" {
		if err := db.WithContext(ctx).Exec("DROP FUNCTION IF EXISTS update_updated_at_column()").Error; err != nil {
			return err
		}
	}
	l.Info("tables dropped", zap.Int("count", len(ms)))
	return nil
}

// PromoteAdmin 把已存在的账号提升为 admin
func PromoteAdmin(ctx context.Context, db *gorm.DB, email string) error {
	res := db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", email).
		Update("role", domain.RoleAdmin)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("no user with email %q", email)
	}
	return nil
}
