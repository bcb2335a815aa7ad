package listing

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"automarket/internal/core/errs"
	"automarket/internal/domain"
)

const (
	minYear       = 1900
	priceErrMsg   = "Price must be a positive number."
	noFieldsMsg   = "No fields to update."
	statusErrMsg  = "Status must be one of: active, sold, pending."
	defaultStatus = domain.StatusActive
)

// Values 规范化后的列 -> 值，保持字段声明顺序
type Values struct {
	cols []string
	vals map[string]any
}

func (v *Values) set(col string, val any) {
	if v.vals == nil {
		v.vals = map[string]any{}
	}
	if _, ok := v.vals[col]; !ok {
		v.cols = append(v.cols, col)
	}
	v.vals[col] = val
}

func (v *Values) Get(col string) (any, bool) {
	val, ok := v.vals[col]
	return val, ok
}

func (v *Values) Len() int { return len(v.cols) }

// Map 给 INSERT 使用：key 即列名，也是表模型的 json tag
func (v *Values) Map() map[string]any {
	out := make(map[string]any, len(v.vals))
	for k, val := range v.vals {
		out[k] = val
	}
	return out
}

// Patch 转成 UPDATE 的 SET 列表
func (v *Values) Patch() *domain.Patch {
	p := &domain.Patch{}
	for _, c := range v.cols {
		val := v.vals[c]
		if l, ok := val.([]string); ok {
			val = domain.StringList(l)
		}
		p.Set(c, val)
	}
	return p
}

// pick 先看 snake_case，再按顺序看别名；snake_case 为空值时才回退
func pick(body map[string]any, f Field) (any, bool) {
	raw, ok := body[f.Column]
	if ok && !isBlank(raw) {
		return raw, true
	}
	for _, a := range f.Aliases {
		if av, aok := body[a]; aok && !isBlank(av) {
			return av, true
		}
	}
	if ok {
		return raw, true
	}
	for _, a := range f.Aliases {
		if av, aok := body[a]; aok {
			return av, true
		}
	}
	return nil, false
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case bool:
		return !t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case float64:
		return t == 0
	case []any:
		return len(t) == 0
	}
	return false
}

// Normalize 只收集请求里出现过的字段并做类型转换
func Normalize(d *Descriptor, body map[string]any) (*Values, error) {
	out := &Values{}
	for _, f := range d.Fields {
		raw, ok := pick(body, f)
		if !ok {
			continue
		}
		val, err := coerce(f, raw)
		if err != nil {
			return nil, err
		}
		out.set(f.Column, val)
	}
	return out, nil
}

func coerce(f Field, raw any) (any, error) {
	switch f.Type {
	case TypeDecimal:
		if raw == nil {
			return nil, errs.Validation(priceErrMsg)
		}
		n, ok := toFloat(raw)
		if !ok {
			return nil, errs.Validation(priceErrMsg)
		}
		return n, nil
	case TypeInt:
		if s, isStr := raw.(string); raw == nil || isStr && strings.TrimSpace(s) == "" {
			return nil, nil
		}
		n, ok := toInt(raw)
		if !ok {
			if f.Column == "year" {
				return nil, yearError()
			}
			return nil, errs.Validation(fmt.Sprintf("%s must be an integer.", f.Column))
		}
		return n, nil
	case TypeBool:
		return toBool(raw), nil
	case TypeList:
		return toList(raw), nil
	default:
		if raw == nil {
			return nil, nil
		}
		s := toString(raw)
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		return s, nil
	}
}

func toFloat(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case float64:
		f = t
	case int:
		f = float64(t)
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func toBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	case nil:
		return false
	}
	f, ok := toFloat(v)
	return ok && f != 0
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	}
	return fmt.Sprint(v)
}

// toList 标量包装成单元素列表，空值为空列表
func toList(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if e == nil {
				continue
			}
			if s := toString(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return t
	case string:
		if strings.TrimSpace(t) == "" {
			return []string{}
		}
		return []string{t}
	}
	return []string{toString(v)}
}

var nowFunc = time.Now

func yearError() error {
	return errs.Validation(fmt.Sprintf("Year must be between %d and %d.", minYear, nowFunc().Year()+1))
}

func validStatus(s string) bool {
	switch s {
	case domain.StatusActive, domain.StatusSold, domain.StatusPending:
		return true
	}
	return false
}

// validate 价格/年份/状态的共用校验；只检查出现过的字段
func validate(v *Values) error {
	if p, ok := v.Get("price"); ok {
		if f, _ := p.(float64); f <= 0 {
			return errs.Validation(priceErrMsg)
		}
	}
	if y, ok := v.Get("year"); ok {
		n, isInt := y.(int)
		if !isInt || n < minYear || n > nowFunc().Year()+1 {
			return yearError()
		}
	}
	if s, ok := v.Get("status"); ok {
		str, _ := s.(string)
		if !validStatus(str) {
			return errs.Validation(statusErrMsg)
		}
	}
	return nil
}

// ForCreate 必填校验 + 默认值；卖家 id 由调用方写入，从不取自请求体
func ForCreate(d *Descriptor, body map[string]any) (*Values, error) {
	for _, col := range d.Required {
		f, _ := d.Field(col)
		raw, ok := pick(body, f)
		if !ok || isBlank(raw) {
			if col == "price" && ok && raw != nil {
				return nil, errs.Validation(priceErrMsg)
			}
			return nil, errs.Validation(d.RequiredMsg)
		}
	}
	v, err := Normalize(d, body)
	if err != nil {
		return nil, err
	}
	if _, ok := v.Get("status"); !ok || v.vals["status"] == nil {
		v.set("status", defaultStatus)
	}
	if err := validate(v); err != nil {
		return nil, err
	}
	for _, f := range d.Fields {
		if f.Type == TypeList {
			if _, ok := v.Get(f.Column); !ok {
				v.set(f.Column, []string{})
			}
		}
	}
	if _, ok := v.Get("is_best_offer"); !ok {
		v.set("is_best_offer", false)
	}
	return v, nil
}

// ForUpdate 部分更新：未出现的字段保持不变；一个可写字段都没有时报错
func ForUpdate(d *Descriptor, body map[string]any) (*domain.Patch, error) {
	v, err := Normalize(d, body)
	if err != nil {
		return nil, err
	}
	if v.Len() == 0 {
		return nil, errs.Validation(noFieldsMsg)
	}
	if err := validate(v); err != nil {
		return nil, err
	}
	for _, col := range d.Required {
		// 必填列不允许被清空
		if val, ok := v.Get(col); ok && val == nil {
			return nil, errs.Validation(d.RequiredMsg)
		}
	}
	return v.Patch(), nil
}
