package listing

import (
	"net/url"
	"strings"

	"automarket/internal/domain"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Conditions 把查询参数翻译成条件；status 缺省为 active，非法数值参数直接忽略
func Conditions(d *Descriptor, q url.Values) []domain.Cond {
	status := strings.TrimSpace(q.Get("status"))
	if status == "" {
		status = domain.StatusActive
	}
	conds := []domain.Cond{{Column: "status", Op: "=", Value: status}}

	for _, f := range d.Filters {
		raw := strings.TrimSpace(q.Get(f.Param))
		if raw == "" {
			continue
		}
		if c, ok := condition(f, raw); ok {
			conds = append(conds, c)
		}
	}
	return conds
}

func condition(f Filter, raw string) (domain.Cond, bool) {
	var arg any = raw
	switch f.Type {
	case TypeDecimal:
		n, ok := toFloat(raw)
		if !ok {
			return domain.Cond{}, false
		}
		arg = n
	case TypeInt:
		n, ok := toInt(raw)
		if !ok {
			return domain.Cond{}, false
		}
		arg = n
	}

	c := domain.Cond{Column: f.Column, Op: "=", Value: arg}
	switch f.Op {
	case OpGte:
		c.Op = ">="
	case OpLte:
		c.Op = "<="
	case OpLike:
		c.Op, c.Fold = "LIKE", true
		c.Value = "%" + likeEscaper.Replace(strings.ToLower(raw)) + "%"
	case OpEqFold:
		c.Fold = true
		c.Value = strings.ToLower(raw)
	}
	return c, true
}
