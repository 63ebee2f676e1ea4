package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestIDMiddleware_SetsHeaderAndContext(t *testing.T) {
	var ctxRequestID string
	mw := NewRequestIDMiddleware()
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := RequestIDFromContext(r.Context())
		if err != nil {
			t.Errorf("RequestIDFromContext() error = %v", err)
		}
		ctxRequestID = id
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	headerID := w.Header().Get("X-Request-Id")
	if headerID == "" {
		t.Fatal("X-Request-Id header should be set")
	}
	if _, err := uuid.Parse(headerID); err != nil {
		t.Errorf("X-Request-Id is not a valid UUID: %q", headerID)
	}

	// ヘッダーとコンテキストで同じIDが使われること
	if ctxRequestID != headerID {
		t.Errorf("context id = %q, header id = %q, want equal", ctxRequestID, headerID)
	}
}

// リクエストごとに異なるIDが採番されること
func TestRequestIDMiddleware_UniquePerRequest(t *testing.T) {
	mw := NewRequestIDMiddleware()
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	ids := make(map[string]bool)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		ids[w.Header().Get("X-Request-Id")] = true
	}

	if len(ids) != 3 {
		t.Errorf("got %d unique ids, want 3", len(ids))
	}
}

func TestRequestIDFromContext_NotSet_ReturnsError(t *testing.T) {
	_, err := RequestIDFromContext(context.Background())
	if !errors.Is(err, ErrRequestIDNotFound) {
		t.Errorf("err = %v, want %v", err, ErrRequestIDNotFound)
	}
}
