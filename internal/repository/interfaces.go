// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/dominotasks/internal/model"
)

// TagRepository はタグデータとタスク・タグ関連の永続化インターフェース。
type TagRepository interface {
	// FindByName は指定した名前のタグを取得する。見つからない場合はnilを返す。
	FindByName(ctx context.Context, name string) (*model.Tag, error)

	// List はタグ一覧をオフセット・リミット指定で取得する。
	// 並び順は挿入順（id昇順）。limitが0の場合は空スライスを返す。
	List(ctx context.Context, skip, limit int) ([]model.Tag, error)

	// Create は新しいタグを作成し、IDが割り当てられた永続化済みエンティティを返す。
	// nameのUNIQUE制約違反の場合はmodel.ErrCodeTagAlreadyRegisteredのAPIErrorを返す。
	// 制約違反の検出が重複判定の最終的な権威であり、事前チェックをすり抜けた
	// 同時作成もここで捕捉される。
	Create(ctx context.Context, name string) (*model.Tag, error)

	// ListByTaskID は指定した外部タスクIDに関連付けられたタグ一覧を取得する。
	// 関連が存在しない場合は空スライスを返す（エラーにはしない）。
	ListByTaskID(ctx context.Context, taskID string) ([]model.Tag, error)
}
