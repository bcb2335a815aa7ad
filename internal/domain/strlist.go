package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// StringList 有序字符串列表：Postgres 落 TEXT[]，MySQL 落 JSON
type StringList []string

func (StringList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "json"
}

func (l StringList) GormValue(_ context.Context, db *gorm.DB) clause.Expr {
	list := l
	if list == nil {
		list = StringList{}
	}
	if db.Dialector.Name() == "postgres" {
		return clause.Expr{SQL: "?", Vars: []any{pq.StringArray(list)}}
	}
	b, _ := json.Marshal([]string(list))
	return clause.Expr{SQL: "?", Vars: []any{string(b)}}
}

// Value 供 gorm 之外的 database/sql 调用方使用（JSON 编码）
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	return string(b), err
}

func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("StringList: unsupported scan type %T", src)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	if raw[0] == '[' {
		var out []string
		if err := json.Unmarshal(raw, &out); err != nil {
			return err
		}
		*l = append(StringList{}, out...)
		return nil
	}
	var arr pq.StringArray
	if err := arr.Scan(raw); err != nil {
		return err
	}
	*l = append(StringList{}, arr...)
	return nil
}

func (l StringList) First() *string {
	if len(l) == 0 {
		return nil
	}
	s := l[0]
	return &s
}
