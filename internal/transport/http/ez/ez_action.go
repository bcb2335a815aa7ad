// Package ez 一行注册一个接口：声明入参、绑定方式、是否需要登录，
// handler 只返回 (出参, error)，状态码与 {error} 包体在这里统一处理。
package ez

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"automarket/internal/core/errs"
	mdw "automarket/internal/transport/http/middleware"
	resp "automarket/internal/transport/http/response"
)

// Binder 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // ShouldBindJSON + validator 标签
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
	BindRaw   Binder = "raw"   // 原样解码 JSON（数字保留为 json.Number），空 body 视为 {}
)

// Action 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "DELETE"
	Path    string
	Binder  Binder
	Auth    bool // 要求已登录（分组上需挂 AuthJWT）
	Status  int  // 成功状态码，默认 200
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 在路由分组上注册动作
func RegisterAction[I any, O any](g gin.IRoutes, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		if a.Auth {
			if _, ok := mdw.UserID(c); !ok {
				resp.Fail(c, errs.Unauthenticated("Access token required."))
				return
			}
		}

		var in I
		if err := bind(c, a.Binder, &in); err != nil {
			if tooLarge(err) {
				resp.Abort(c, http.StatusRequestEntityTooLarge, "Request body too large.")
				return
			}
			resp.Fail(c, err)
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			resp.Fail(c, err)
			return
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		g.GET(a.Path, h)
	case http.MethodPut:
		g.PUT(a.Path, h)
	case http.MethodPatch:
		g.PATCH(a.Path, h)
	case http.MethodDelete:
		g.DELETE(a.Path, h)
	default:
		g.POST(a.Path, h)
	}
}

func bind(c *gin.Context, b Binder, in any) error {
	switch b {
	case BindJSON:
		err := c.ShouldBindJSON(in)
		if errors.Is(err, io.EOF) {
			// 空 body 按 {} 处理，让 required 之类的标签给出具体字段
			err = binding.Validator.ValidateStruct(in)
		}
		if err != nil {
			return translate(err)
		}
	case BindQuery:
		if err := c.ShouldBindQuery(in); err != nil {
			return translate(err)
		}
	case BindRaw:
		if c.Request.Body == nil {
			return nil
		}
		dec := json.NewDecoder(c.Request.Body)
		dec.UseNumber()
		if err := dec.Decode(in); err != nil && !errors.Is(err, io.EOF) {
			if tooLarge(err) {
				return err
			}
			return errs.Validation("Invalid JSON body.")
		}
	}
	return nil
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

// ParamID 解析路径上的正整数 id
func ParamID(c *gin.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || n == 0 {
		return 0, errs.Validation("Invalid id.")
	}
	return uint(n), nil
}

// MustUserID 仅用于 Auth=true 的 handler
func MustUserID(c *gin.Context) uint {
	uid, _ := mdw.UserID(c)
	return uid
}
