package ez

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"automarket/internal/core/errs"
	"automarket/internal/domain"
)

var registerOnce sync.Once

// RegisterValidators 注册自定义标签，并让错误里的字段名取 json/form tag
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
		_ = v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == domain.RoleUser || s == domain.RoleAdmin
		})
		_ = v.RegisterValidation("listing_status", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case domain.StatusActive, domain.StatusSold, domain.StatusPending:
				return true
			}
			return false
		})
	})
}

// translate 绑定错误 -> 面向用户的 400 文案，只取第一条
func translate(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		field := humanize(fe.Field())
		switch fe.Tag() {
		case "required":
			return errs.Validation(field + " is required.")
		case "email":
			return errs.Validation("Please enter a valid email address.")
		case "user_role":
			return errs.Validation("Role must be one of: user, admin.")
		case "listing_status":
			return errs.Validation("Status must be one of: active, sold, pending.")
		case "max":
			return errs.Validation(field + " must be at most " + fe.Param() + " characters.")
		case "min":
			return errs.Validation(field + " must be at least " + fe.Param() + ".")
		case "oneof":
			return errs.Validation(field + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ") + ".")
		}
		return errs.Validation(field + " is invalid.")
	}
	var se *json.SyntaxError
	var te *json.UnmarshalTypeError
	switch {
	case errors.As(err, &te):
		return errs.Validation(humanize(te.Field) + " has the wrong type.")
	case errors.As(err, &se), errors.Is(err, io.ErrUnexpectedEOF):
		return errs.Validation("Invalid JSON body.")
	}
	if tooLarge(err) {
		return err
	}
	return errs.Validation("Invalid request.")
}

// humanize "body_type" -> "Body type"
func humanize(field string) string {
	if i := strings.LastIndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	field = strings.ReplaceAll(field, "_", " ")
	if field == "" {
		return "Field"
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
