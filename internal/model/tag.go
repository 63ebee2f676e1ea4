// Package model はドメインモデルを定義する。
package model

// Tag はタスクに付与できるローカル管理のタグを表す。
// 名前はストア全体で一意。作成後の更新・削除は現スコープでは行わない。
type Tag struct {
	ID   int64
	Name string
}
