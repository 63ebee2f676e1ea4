// Package model はドメインモデルを定義する。
package model

// UserInfo はGoogleのuserinfoエンドポイントから取得したユーザー情報を表す。
// 検証済みトークンに対するレスポンスのパススルーであり、永続化しない。
// EmailとNameは必須、Pictureは任意（未設定の場合は空文字列）。
type UserInfo struct {
	Email   string
	Name    string
	Picture string
}
