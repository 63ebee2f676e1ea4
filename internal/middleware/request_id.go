package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// contextKey はコンテキスト値のキー衝突を避けるための非公開型。
type contextKey string

const requestIDKey contextKey = "request_id"

// ErrRequestIDNotFound はコンテキストにリクエストIDが存在しない場合のエラー。
var ErrRequestIDNotFound = errors.New("request id not found in context")

// NewRequestIDMiddleware はリクエストごとにUUIDを採番し、
// コンテキストとX-Request-Idレスポンスヘッダーに設定するミドルウェアを返す。
func NewRequestIDMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			w.Header().Set("X-Request-Id", requestID)

			ctx := ContextWithRequestID(r.Context(), requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextWithRequestID はコンテキストにリクエストIDを設定する。
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext はコンテキストからリクエストIDを取得する。
func RequestIDFromContext(ctx context.Context) (string, error) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	if !ok || requestID == "" {
		return "", ErrRequestIDNotFound
	}
	return requestID, nil
}
