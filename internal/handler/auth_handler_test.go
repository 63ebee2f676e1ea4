package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/dominotasks/internal/model"
)

// --- モック定義 ---

// mockAuthService はAuthServiceInterfaceのモック実装。
type mockAuthService struct {
	verifyTokenFn func(ctx context.Context, accessToken string) (*model.UserInfo, error)
}

func (m *mockAuthService) VerifyToken(ctx context.Context, accessToken string) (*model.UserInfo, error) {
	if m.verifyTokenFn != nil {
		return m.verifyTokenFn(ctx, accessToken)
	}
	return nil, nil
}

// --- テストヘルパー ---

// parseAPIErrorResponse はレスポンスボディからAPIErrorレスポンスをパースするヘルパー。
func parseAPIErrorResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var result map[string]string
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return result
}

// --- POST /auth/google テスト ---

func TestAuthHandler_AuthenticateGoogle_Success(t *testing.T) {
	svc := &mockAuthService{
		verifyTokenFn: func(ctx context.Context, accessToken string) (*model.UserInfo, error) {
			if accessToken != "valid-token" {
				t.Errorf("accessToken = %q, want %q", accessToken, "valid-token")
			}
			return &model.UserInfo{
				Email:   "user@gmail.com",
				Name:    "Google User",
				Picture: "https://example.com/photo.jpg",
			}, nil
		},
	}

	h := NewAuthHandler(svc)

	body := `{"access_token": "valid-token"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/google", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.AuthenticateGoogle(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result["email"] != "user@gmail.com" {
		t.Errorf("email = %v, want %q", result["email"], "user@gmail.com")
	}
	if result["name"] != "Google User" {
		t.Errorf("name = %v, want %q", result["name"], "Google User")
	}
	if result["picture"] != "https://example.com/photo.jpg" {
		t.Errorf("picture = %v, want %q", result["picture"], "https://example.com/photo.jpg")
	}
}

// pictureが空の場合はレスポンスから省略されること
func TestAuthHandler_AuthenticateGoogle_OmitsEmptyPicture(t *testing.T) {
	svc := &mockAuthService{
		verifyTokenFn: func(ctx context.Context, accessToken string) (*model.UserInfo, error) {
			return &model.UserInfo{Email: "user@gmail.com", Name: "Google User"}, nil
		},
	}

	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/google", bytes.NewBufferString(`{"access_token": "token"}`))
	w := httptest.NewRecorder()

	h.AuthenticateGoogle(w, req)

	var result map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, exists := result["picture"]; exists {
		t.Error("picture should be omitted when empty")
	}
}

func TestAuthHandler_AuthenticateGoogle_InvalidJSON_ReturnsBadRequest(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/google", bytes.NewBufferString("not json"))
	w := httptest.NewRecorder()

	h.AuthenticateGoogle(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// トークンが空の場合は外部呼び出しなしで401を返すこと
func TestAuthHandler_AuthenticateGoogle_EmptyToken_ReturnsUnauthorized(t *testing.T) {
	called := false
	svc := &mockAuthService{
		verifyTokenFn: func(ctx context.Context, accessToken string) (*model.UserInfo, error) {
			called = true
			return nil, nil
		},
	}

	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/google", bytes.NewBufferString(`{"access_token": ""}`))
	w := httptest.NewRecorder()

	h.AuthenticateGoogle(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if called {
		t.Error("VerifyToken should not be called for empty token")
	}
}

// サービスのエラー分類がHTTPステータスにマッピングされること
func TestAuthHandler_AuthenticateGoogle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{"無効なトークン", model.NewInvalidTokenError(), http.StatusUnauthorized, model.ErrCodeInvalidToken},
		{"upstreamエラー", model.NewUpstreamError(503, "unavailable"), http.StatusBadRequest, model.ErrCodeUpstreamError},
		{"接続失敗", model.NewUpstreamUnreachableError("connection refused"), http.StatusBadRequest, model.ErrCodeUpstreamUnreachable},
		{"レスポンス検証失敗", model.NewInvalidUpstreamResponseError("missing email"), http.StatusBadRequest, model.ErrCodeInvalidUpstreamResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{
				verifyTokenFn: func(ctx context.Context, accessToken string) (*model.UserInfo, error) {
					return nil, tt.serviceErr
				},
			}

			h := NewAuthHandler(svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/google", bytes.NewBufferString(`{"access_token": "token"}`))
			w := httptest.NewRecorder()

			h.AuthenticateGoogle(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			result := parseAPIErrorResponse(t, w)
			if result["code"] != tt.wantCode {
				t.Errorf("code = %q, want %q", result["code"], tt.wantCode)
			}
		})
	}
}
