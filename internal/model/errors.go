// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, upstream, validation, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidToken            = "INVALID_TOKEN"
	ErrCodeUpstreamError           = "UPSTREAM_ERROR"
	ErrCodeUpstreamUnreachable     = "UPSTREAM_UNREACHABLE"
	ErrCodeInvalidUpstreamResponse = "INVALID_UPSTREAM_RESPONSE"
	ErrCodeTagAlreadyRegistered    = "TAG_ALREADY_REGISTERED"
)

// NewInvalidTokenError はGoogleトークンが無効または期限切れの場合のエラーを生成する。
// Authorizationヘッダーが欠落・不正な場合にも使用する。
func NewInvalidTokenError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidToken,
		Message:  "Googleトークンが無効または期限切れです。",
		Category: "auth",
		Action:   "再度Googleでログインし、新しいアクセストークンを取得してください。",
	}
}

// NewUpstreamError はGoogle APIが401以外のエラーステータスを返した場合のエラーを生成する。
// 診断のためにupstreamのステータスコードとレスポンスボディをメッセージに含める。
func NewUpstreamError(statusCode int, body string) *APIError {
	return &APIError{
		Code:     ErrCodeUpstreamError,
		Message:  fmt.Sprintf("Google APIがステータス %d を返しました: %s", statusCode, body),
		Category: "upstream",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewUpstreamUnreachableError はGoogle APIへのネットワークレベルの接続失敗エラーを生成する。
func NewUpstreamUnreachableError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeUpstreamUnreachable,
		Message:  fmt.Sprintf("Google APIへの接続に失敗しました: %s", reason),
		Category: "upstream",
		Action:   "ネットワーク状態を確認し、しばらく待ってから再度お試しください。",
	}
}

// NewInvalidUpstreamResponseError はGoogle APIのレスポンスが期待する形式でない場合のエラーを生成する。
// 必須フィールドの欠落時は部分的な結果を返さず、リクエスト全体を失敗させる。
func NewInvalidUpstreamResponseError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidUpstreamResponse,
		Message:  fmt.Sprintf("Google APIのレスポンスの検証に失敗しました: %s", reason),
		Category: "validation",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewTagAlreadyRegisteredError はタグ名が登録済みの場合のエラーを生成する。
func NewTagAlreadyRegisteredError(name string) *APIError {
	return &APIError{
		Code:     ErrCodeTagAlreadyRegistered,
		Message:  fmt.Sprintf("タグ名は既に登録されています: %s", name),
		Category: "validation",
		Action:   "別のタグ名を指定してください。",
	}
}
