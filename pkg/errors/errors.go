package errors

import (
	"fmt"
	"pairflow/pkg/errors/ecode"
)

// 带业务错误码的error，handler层统一通过DecodeErr转换为响应体

type CodeError struct {
	code    int
	message string
	cause   error
}

func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("code: %d, message: %s, cause: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("code: %d, message: %s", e.code, e.message)
}

func (e *CodeError) Code() int {
	return e.code
}

func (e *CodeError) Message() string {
	return e.message
}

func (e *CodeError) Unwrap() error {
	return e.cause
}

// WithCode 创建一个带错误码的错误
func WithCode(code int, message string) error {
	return &CodeError{code: code, message: message}
}

func WithCodef(code int, format string, args ...interface{}) error {
	return &CodeError{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap 包装底层错误并附加错误码和提示信息
// err 允许为nil：此时仅携带code和message（成功响应也会走这里带提示语）
func Wrap(err error, code int, message string) error {
	return &CodeError{code: code, message: message, cause: err}
}

func Wrapf(err error, code int, format string, args ...interface{}) error {
	return &CodeError{code: code, message: fmt.Sprintf(format, args...), cause: err}
}

// DecodeErr 解码错误为(code, message)
// nil -> 成功；普通error -> Unknown
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, ecode.Text(ecode.Success)
	}
	if ce, ok := err.(*CodeError); ok {
		msg := ce.message
		if msg == "" {
			msg = ecode.Text(ce.code)
		}
		return ce.code, msg
	}
	return ecode.Unknown, err.Error()
}
