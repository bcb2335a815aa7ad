// Package service 业务编排：校验、权限、缓存失效都在这里，仓储只管 SQL。
package service

import (
	"go.uber.org/zap"

	"automarket/internal/core/errs"
)

const msgInternal = "Internal server error."

// fail 记录底层错误并转成 Internal；msg 是返回给客户端的文案
func fail(l *zap.Logger, msg string, err error, fields ...zap.Field) error {
	l.Error(msg, append(fields, zap.Error(err))...)
	return errs.Internal(msg, err)
}
