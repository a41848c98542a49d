// Package tracex 在 context 上携带 trace_id / span_id，
// 供日志与访问流水做跨层关联。
package tracex

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

type ctxKey uint8

const (
	keyTraceID ctxKey = iota
	keySpanID
)

// WithTraceID 把 trace_id 写入 context。
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, keyTraceID, traceID)
}

// TraceIDFrom 取出 trace_id；未写入或为空串时 ok=false。
func TraceIDFrom(ctx context.Context) (string, bool) {
	return idFrom(ctx, keyTraceID)
}

// WithSpanID 把 span_id 写入 context。
func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, keySpanID, spanID)
}

// SpanIDFrom 取出 span_id；未写入或为空串时 ok=false。
func SpanIDFrom(ctx context.Context) (string, bool) {
	return idFrom(ctx, keySpanID)
}

func idFrom(ctx context.Context, key ctxKey) (string, bool) {
	s, ok := ctx.Value(key).(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// NewTraceID 生成 16 字节随机 trace_id（hex 编码，32 字符）。
// 随机源异常时返回空串，调用方按缺省处理。
func NewTraceID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(b[:])
}
