// Package google はGoogle APIとの連携を提供する。
// userinfoエンドポイントによるアクセストークン検証と、
// Google Tasks APIからのタスク一覧取得を含む。
// いずれも呼び出し元から渡されたbearerトークンをそのまま転送し、
// プロバイダのレスポンス・エラーをローカルのエラー分類に変換する。
package google

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/dominotasks/internal/metrics"
	"github.com/hitoshi/dominotasks/internal/model"
)

const (
	defaultUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
	defaultTasksURL    = "https://www.googleapis.com/tasks/v1/lists/@default/tasks"
	defaultTimeout     = 10 * time.Second
)

// メトリクスのendpointラベル値
const (
	endpointUserInfo = "userinfo"
	endpointTasks    = "tasks"
)

// ClientConfig はGoogle APIクライアントの設定。
type ClientConfig struct {
	// テスト・ステージング用にオーバーライド可能なURL
	UserInfoURL string
	TasksURL    string
	Timeout     time.Duration
}

// Client はGoogle APIのクライアント。
// リトライは行わず、すべての失敗は現在のリクエストに対して終端的に扱う。
type Client struct {
	httpClient  *http.Client
	userInfoURL string
	tasksURL    string
	logger      *slog.Logger
	collector   metrics.MetricsCollector
}

// NewClient はClientの新しいインスタンスを生成する。
func NewClient(config ClientConfig, logger *slog.Logger, collector metrics.MetricsCollector) *Client {
	if config.UserInfoURL == "" {
		config.UserInfoURL = defaultUserInfoURL
	}
	if config.TasksURL == "" {
		config.TasksURL = defaultTasksURL
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}

	return &Client{
		httpClient:  &http.Client{Timeout: config.Timeout},
		userInfoURL: config.UserInfoURL,
		tasksURL:    config.TasksURL,
		logger:      logger,
		collector:   collector,
	}
}

// getWithBearer は指定URLにbearerトークン付きのGETリクエストを送り、レスポンスボディを返す。
// エラー分類のマッピング:
//   - ネットワークレベルの失敗 → UPSTREAM_UNREACHABLE
//   - 401 → INVALID_TOKEN
//   - その他の非2xx → UPSTREAM_ERROR（ステータスとボディを含む）
func (c *Client) getWithBearer(ctx context.Context, endpoint, reqURL, accessToken string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, model.NewUpstreamUnreachableError(err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.collector.RecordGoogleLatency(endpoint, time.Since(start))

	if err != nil {
		c.collector.RecordGoogleUnreachable(endpoint)
		c.logger.Error("Google APIへの接続に失敗しました",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
		)
		return nil, model.NewUpstreamUnreachableError(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.collector.RecordGoogleUnreachable(endpoint)
		return nil, model.NewUpstreamUnreachableError(err.Error())
	}

	c.collector.RecordGoogleRequest(endpoint, resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, model.NewInvalidTokenError()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Google APIがエラーステータスを返しました",
			slog.String("endpoint", endpoint),
			slog.Int("http_status", resp.StatusCode),
		)
		return nil, model.NewUpstreamError(resp.StatusCode, string(body))
	}

	return body, nil
}
