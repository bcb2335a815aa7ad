package domain

import (
	"errors"
	"strings"
)

var ErrEmptyPatch = errors.New("no columns to update")

type Assignment struct {
	Column string
	Value  any
}

// Patch 按写入顺序保存 SET 子句；列名来自白名单，值一律走占位符
type Patch struct {
	sets []Assignment
}

func (p *Patch) Set(column string, value any) *Patch {
	for i := range p.sets {
		if p.sets[i].Column == column {
			p.sets[i].Value = value
			return p
		}
	}
	p.sets = append(p.sets, Assignment{Column: column, Value: value})
	return p
}

func (p *Patch) Len() int { return len(p.sets) }

func (p *Patch) Has(column string) bool {
	for _, a := range p.sets {
		if a.Column == column {
			return true
		}
	}
	return false
}

// Quoter 给标识符加方言引号（condition 在 mysql 里是保留字）
type Quoter func(string) string

// ToSQL 生成 UPDATE 语句，始终追加 updated_at 刷新
func (p *Patch) ToSQL(quote Quoter, table string, id uint) (string, []any, error) {
	if len(p.sets) == 0 {
		return "", nil, ErrEmptyPatch
	}
	var b strings.Builder
	args := make([]any, 0, len(p.sets)+1)

	b.WriteString("UPDATE ")
	b.WriteString(quote(table))
	b.WriteString(" SET ")
	for i, a := range p.sets {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(a.Column))
		b.WriteString(" = ?")
		args = append(args, a.Value)
	}
	b.WriteString(", ")
	b.WriteString(quote("updated_at"))
	b.WriteString(" = CURRENT_TIMESTAMP WHERE ")
	b.WriteString(quote("id"))
	b.WriteString(" = ?")
	args = append(args, id)
	return b.String(), args, nil
}
