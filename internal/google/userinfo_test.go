package google

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/dominotasks/internal/metrics"
	"github.com/hitoshi/dominotasks/internal/model"
)

// newTestClient はテスト用エンドポイントを指すClientを生成するヘルパー。
func newTestClient(t *testing.T, userInfoURL, tasksURL string) *Client {
	t.Helper()
	collector := metrics.NewCollector(prometheus.NewRegistry())
	return NewClient(ClientConfig{
		UserInfoURL: userInfoURL,
		TasksURL:    tasksURL,
	}, slog.Default(), collector)
}

// apiErrorCode はエラーからAPIErrorコードを取り出すヘルパー。
func apiErrorCode(t *testing.T, err error) string {
	t.Helper()
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	return apiErr.Code
}

func TestClient_VerifyToken_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Authorizationヘッダーの検証
		authHeader := r.Header.Get("Authorization")
		if authHeader != "Bearer test-access-token" {
			t.Errorf("unexpected Authorization header: %q", authHeader)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"email":   "user@gmail.com",
			"name":    "Google User",
			"picture": "https://example.com/photo.jpg",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "")

	userInfo, err := client.VerifyToken(context.Background(), "test-access-token")
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}

	if userInfo.Email != "user@gmail.com" {
		t.Errorf("email = %q, want %q", userInfo.Email, "user@gmail.com")
	}
	if userInfo.Name != "Google User" {
		t.Errorf("name = %q, want %q", userInfo.Name, "Google User")
	}
	if userInfo.Picture != "https://example.com/photo.jpg" {
		t.Errorf("picture = %q, want %q", userInfo.Picture, "https://example.com/photo.jpg")
	}
}

// pictureが未設定でも検証は成功すること
func TestClient_VerifyToken_PictureOptional(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"email": "user@gmail.com",
			"name":  "Google User",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "")

	userInfo, err := client.VerifyToken(context.Background(), "token")
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if userInfo.Picture != "" {
		t.Errorf("picture = %q, want empty", userInfo.Picture)
	}
}

// 認識しない追加フィールドは無視されること
func TestClient_VerifyToken_IgnoresExtraFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"sub":            "google-sub-12345",
			"email":          "user@gmail.com",
			"name":           "Google User",
			"email_verified": true,
			"locale":         "ja",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "")

	userInfo, err := client.VerifyToken(context.Background(), "token")
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if userInfo.Email != "user@gmail.com" {
		t.Errorf("email = %q, want %q", userInfo.Email, "user@gmail.com")
	}
}

// プロバイダが401を返した場合はINVALID_TOKENになること
func TestClient_VerifyToken_Unauthorized_ReturnsInvalidToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "")

	_, err := client.VerifyToken(context.Background(), "badtoken")
	if err == nil {
		t.Fatal("expected error")
	}
	if code := apiErrorCode(t, err); code != model.ErrCodeInvalidToken {
		t.Errorf("code = %q, want %q", code, model.ErrCodeInvalidToken)
	}
}

// プロバイダが401以外のエラーステータスを返した場合はUPSTREAM_ERRORになること
func TestClient_VerifyToken_ServerError_ReturnsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("backend exploded"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "")

	_, err := client.VerifyToken(context.Background(), "token")
	if err == nil {
		t.Fatal("expected error")
	}
	if code := apiErrorCode(t, err); code != model.ErrCodeUpstreamError {
		t.Errorf("code = %q, want %q", code, model.ErrCodeUpstreamError)
	}
}

// ネットワークレベルの失敗はUPSTREAM_UNREACHABLEになること
func TestClient_VerifyToken_NetworkFailure_ReturnsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // 即座に閉じて接続失敗を起こす

	client := newTestClient(t, server.URL, "")

	_, err := client.VerifyToken(context.Background(), "token")
	if err == nil {
		t.Fatal("expected error")
	}
	if code := apiErrorCode(t, err); code != model.ErrCodeUpstreamUnreachable {
		t.Errorf("code = %q, want %q", code, model.ErrCodeUpstreamUnreachable)
	}
}

// 必須フィールド欠落は検証エラーになること
func TestClient_VerifyToken_MissingRequiredField_ReturnsValidationError(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"emailなし", map[string]interface{}{"name": "Google User"}},
		{"nameなし", map[string]interface{}{"email": "user@gmail.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(tt.body)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, "")

			_, err := client.VerifyToken(context.Background(), "token")
			if err == nil {
				t.Fatal("expected error")
			}
			if code := apiErrorCode(t, err); code != model.ErrCodeInvalidUpstreamResponse {
				t.Errorf("code = %q, want %q", code, model.ErrCodeInvalidUpstreamResponse)
			}
		})
	}
}

// 不正なJSONは検証エラーになること
func TestClient_VerifyToken_InvalidJSON_ReturnsValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "")

	_, err := client.VerifyToken(context.Background(), "token")
	if err == nil {
		t.Fatal("expected error")
	}
	if code := apiErrorCode(t, err); code != model.ErrCodeInvalidUpstreamResponse {
		t.Errorf("code = %q, want %q", code, model.ErrCodeInvalidUpstreamResponse)
	}
}
