// Package model はドメインモデルを定義する。
package model

import "time"

// GoogleTask はGoogle Tasks APIから取得したタスクを表す。
// リクエストごとに取得される一時データであり、ローカルには永続化しない。
// タスクの存在についてはGoogle側が信頼できる唯一の情報源となる。
type GoogleTask struct {
	ID     string
	Title  string
	Status string
	Due    *time.Time
	Notes  string
}

// EnrichedTask はGoogleタスクにローカルのタグを付与したレスポンス用データ。
// Tagsは関連付けが存在しない場合は空スライスになる。
type EnrichedTask struct {
	GoogleTask
	Tags []Tag
}
