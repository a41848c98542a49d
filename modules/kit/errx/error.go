package errx

import (
	"errors"
	"fmt"
	"runtime"
)

// Code 表示错误码（对外语义的稳定标识）。
type Code string

type kind uint8

const (
	kindBiz kind = iota
	kindSys
)

// Error 是通用错误模型：
// - code：对外语义，errors.Is 只比较 code
// - reason：业务侧更细的原因码（例如 WRONG_PASSWORD）
// - fields：附加上下文，只用于日志，不参与语义
// - cause：原始错误链，仅溯源用
// - stack：系统类错误在第一次挂 cause 处捕获一次
type Error struct {
	code   Code
	msg    string
	reason string
	fields map[string]any
	cause  error
	stack  []uintptr
	kind   kind
}

func NewBiz(code Code, msg string) *Error {
	return &Error{code: code, msg: msg, kind: kindBiz}
}

func NewSys(code Code, msg string) *Error {
	return &Error{code: code, msg: msg, kind: kindSys}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.msg == "" && e.cause == nil:
		return string(e.code)
	case e.msg == "":
		return fmt.Sprintf("%s: %v", e.code, e.cause)
	case e.cause == nil:
		return fmt.Sprintf("%s: %s", e.code, e.msg)
	default:
		return fmt.Sprintf("%s: %s: %v", e.code, e.msg, e.cause)
	}
}

// Unwrap 让 errors.Is / errors.As 可以沿 cause 链溯源。
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is 只按错误码判断语义是否相同，忽略 msg/reason/fields/cause。
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return e.code == t.code
}

func (e *Error) Code() Code {
	if e == nil {
		return ""
	}
	return e.code
}

func (e *Error) CodeText() string {
	return string(e.Code())
}

func (e *Error) Msg() string {
	if e == nil {
		return ""
	}
	return e.msg
}

func (e *Error) Reason() string {
	if e == nil {
		return ""
	}
	return e.reason
}

// Fields 返回附加上下文的拷贝，避免外部修改污染错误对象。
func (e *Error) Fields() map[string]any {
	if e == nil || e.fields == nil {
		return nil
	}
	out := make(map[string]any, len(e.fields))
	for k, v := range e.fields {
		out[k] = v
	}
	return out
}

// Stack 返回系统类错误第一次被转换那一刻的调用栈。
func (e *Error) Stack() []uintptr {
	if e == nil || len(e.stack) == 0 {
		return nil
	}
	out := make([]uintptr, len(e.stack))
	copy(out, e.stack)
	return out
}

func (e *Error) clone() *Error {
	next := &Error{
		code:   e.code,
		msg:    e.msg,
		reason: e.reason,
		cause:  e.cause,
		kind:   e.kind,
	}
	if e.fields != nil {
		next.fields = make(map[string]any, len(e.fields))
		for k, v := range e.fields {
			next.fields[k] = v
		}
	}
	if len(e.stack) != 0 {
		next.stack = make([]uintptr, len(e.stack))
		copy(next.stack, e.stack)
	}
	return next
}

// WithReason 派生一个带原因码的新错误，不修改原对象。
func (e *Error) WithReason(reason string) *Error {
	next := e.clone()
	next.reason = reason
	return next
}

func (e *Error) WithField(key string, value any) *Error {
	next := e.clone()
	if next.fields == nil {
		next.fields = make(map[string]any, 1)
	}
	next.fields[key] = value
	return next
}

func (e *Error) WithCause(cause error) *Error {
	next := e.clone()
	next.cause = cause
	// 只在系统类错误首次挂 cause 时捕获一次；下层已有栈则不重复。
	if next.kind == kindSys && cause != nil && len(next.stack) == 0 && !hasStackInChain(cause) {
		next.stack = captureStack(3)
	}
	return next
}

func captureStack(skip int) []uintptr {
	const maxDepth = 64
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(skip, pcs)
	if n <= 0 {
		return nil
	}
	return pcs[:n]
}

func hasStackInChain(err error) bool {
	const maxDepth = 32
	for i := 0; i < maxDepth && err != nil; i++ {
		if sp, ok := err.(interface{ Stack() []uintptr }); ok && len(sp.Stack()) != 0 {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
