package user

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"automarket/internal/core/errs"
	"automarket/internal/domain"
)

const MinPasswordLen = 6

var validate = validator.New()

// rule 单字段校验规则，msg 为失败时返回的文案
type rule struct {
	val any
	tag string
	msg string
}

// check 按给定顺序逐条校验，返回第一条失败
func check(rules ...rule) error {
	for _, r := range rules {
		if err := validate.Var(r.val, r.tag); err != nil {
			return errs.Validation(r.msg)
		}
	}
	return nil
}

// NormalizeEmail 入口处统一 trim + 小写
func NormalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

type RegisterInput struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
}

func (in *RegisterInput) Validate() error {
	in.Email = NormalizeEmail(in.Email)
	if err := check(
		rule{in.Email, "required", "Email is required."},
		rule{in.Password, "required", "Password is required."},
		rule{in.Password, "min=" + strconv.Itoa(MinPasswordLen), "Password must be at least 6 characters long."},
		rule{in.Email, "email", "Please enter a valid email address."},
	); err != nil {
		return err
	}
	in.Name = blankToNil(in.Name)
	in.Phone = blankToNil(in.Phone)
	return nil
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *LoginInput) Validate() error {
	in.Email = NormalizeEmail(in.Email)
	return check(
		rule{in.Email, "required", "Email is required."},
		rule{in.Password, "required", "Password is required."},
	)
}

// ProfileInput 只允许改 name/phone；字段缺失表示不改，空串表示清空
type ProfileInput struct {
	Name  *string `json:"name" binding:"omitempty,max=255"`
	Phone *string `json:"phone" binding:"omitempty,max=50"`
}

func (in ProfileInput) Patch() domain.UserPatch {
	p := domain.UserPatch{}
	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		p.Name = &v
	}
	if in.Phone != nil {
		v := strings.TrimSpace(*in.Phone)
		p.Phone = &v
	}
	return p
}

type RoleInput struct {
	Role string `json:"role" binding:"required,user_role"`
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
