package repo

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"automarket/internal/domain"
)

// AdminListingReader 管理端跨表只读视图：每张表一条 SELECT，内存里合并后按 created_at 倒序。
// 不分页，数据量大时需要改成下推分页。
type AdminListingReader struct {
	db    *sqlx.DB
	quote func(string) string
}

// NewAdminListingReader driverName 取 "pgx" 或 "mysql"，决定占位符与引号风格
func NewAdminListingReader(db *sqlx.DB) *AdminListingReader {
	q := func(s string) string { return `"` + s + `"` }
	if db.DriverName() == "mysql" {
		q = func(s string) string { return "`" + s + "`" }
	}
	return &AdminListingReader{db: db, quote: q}
}

// adminColumns 统一投影：as 是输出列名，vehicle/part 是各自表里的来源列，空串补 NULL
var adminColumns = []struct{ as, vehicle, part string }{
	{"id", "id", "id"},
	{"seller_id", "seller_id", "seller_id"},
	{"make", "make", ""},
	{"model", "model", "name"},
	{"year", "year", ""},
	{"price", "price", "price"},
	{"status", "status", "status"},
	{"description", "description", "description"},
	{"image_urls", "image_urls", "image_urls"},
	{"location", "location", "location"},
	{"is_best_offer", "is_best_offer", "is_best_offer"},
	{"body_type", "body_type", ""},
	{"fuel_type", "fuel_type", ""},
	{"transmission", "transmission", ""},
	{"engine", "engine", ""},
	{"color", "color", ""},
	{"doors", "doors", ""},
	{"co2_emissions", "co2_emissions", ""},
	{"mileage", "mileage", ""},
	{"vin_number", "vin_number", ""},
	{"equipment", "equipment", ""},
	{"cylindrics", "cylindrics", ""},
	{"hp_kw", "hp_kw", ""},
	{"part_category", "", "category"},
	{"brand", "", "brand"},
	{"compatibility", "", "compatibility"},
	{"condition", "", "condition"},
	{"warranty", "", "warranty"},
	{"created_at", "created_at", "created_at"},
}

func (r *AdminListingReader) selectFor(c domain.Category) string {
	q := r.quote
	cols := []string{fmt.Sprintf("'%s' AS %s", c, q("category"))}
	for _, col := range adminColumns {
		src := col.part
		if c.IsVehicle() {
			src = col.vehicle
		}
		if src == "doors" && !c.HasDoors() {
			src = ""
		}
		switch src {
		case "":
			cols = append(cols, "NULL AS "+q(col.as))
		case col.as:
			cols = append(cols, q(src))
		default:
			cols = append(cols, q(src)+" AS "+q(col.as))
		}
	}
	return "SELECT " + strings.Join(cols, ", ") + " FROM " + q(c.Table())
}

func (r *AdminListingReader) ListAll(ctx context.Context, only domain.Category, status string) ([]domain.AdminListing, error) {
	cats := domain.Categories
	if only != "" {
		cats = []domain.Category{only}
	}
	all := []domain.AdminListing{}
	for _, c := range cats {
		query := r.selectFor(c)
		var args []any
		if s := strings.TrimSpace(status); s != "" {
			query += " WHERE status = ?"
			args = append(args, s)
		}
		var rows []domain.AdminListing
		if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
			return nil, fmt.Errorf("select %s: %w", c, err)
		}
		all = append(all, rows...)
	}
	sortNewestFirst(all)
	return all, nil
}

func sortNewestFirst(ls []domain.AdminListing) {
	sort.SliceStable(ls, func(i, j int) bool {
		return ls[i].CreatedAt.After(ls[j].CreatedAt)
	})
}
