package service

import (
	"errors"
	"fmt"
)

// ErrorKind 业务错误类别，供 HTTP 层映射状态码
type ErrorKind string

const (
	KindDuplicateActiveSession ErrorKind = "DUPLICATE_ACTIVE_SESSION"
	KindSlotUnavailable        ErrorKind = "SLOT_UNAVAILABLE"
	KindSlotIncompatible       ErrorKind = "SLOT_INCOMPATIBLE"
	KindNoSlotAvailable        ErrorKind = "NO_SLOT_AVAILABLE"
	KindSessionNotFound        ErrorKind = "SESSION_NOT_FOUND"
	KindSlotNotFound           ErrorKind = "SLOT_NOT_FOUND"
	KindSlotInUse              ErrorKind = "SLOT_IN_USE"
	KindDuplicateSlotNumber    ErrorKind = "DUPLICATE_SLOT_NUMBER"
	KindInvalidTimeRange       ErrorKind = "INVALID_TIME_RANGE"
)

// Error 业务规则拒绝，直接透出给调用方，不重试
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error 实现 error 接口
func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf 提取业务错误类别；非业务错误返回空串
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
