package response

import (
	"net/http"

	"automarket/internal/core/errs"
)

// statusByKind 业务错误分类 -> HTTP 状态码；Conflict 沿用 400
var statusByKind = map[errs.Kind]int{
	errs.KindValidation:      http.StatusBadRequest,
	errs.KindUnauthenticated: http.StatusUnauthorized,
	errs.KindForbidden:       http.StatusForbidden,
	errs.KindNotFound:        http.StatusNotFound,
	errs.KindConflict:        http.StatusBadRequest,
	errs.KindInternal:        http.StatusInternalServerError,
}

func StatusOf(err error) int {
	if s, ok := statusByKind[errs.KindOf(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}
