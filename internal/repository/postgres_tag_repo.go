package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/dominotasks/internal/model"
)

// uniqueViolationCode はPostgreSQLのunique_violationエラーコード。
const uniqueViolationCode = "23505"

// PostgresTagRepo はPostgreSQLを使用したタグリポジトリ。
type PostgresTagRepo struct {
	db *sql.DB
}

// NewPostgresTagRepo はPostgresTagRepoを生成する。
func NewPostgresTagRepo(db *sql.DB) *PostgresTagRepo {
	return &PostgresTagRepo{db: db}
}

// FindByName は指定した名前のタグを取得する。見つからない場合はnilを返す。
func (r *PostgresTagRepo) FindByName(ctx context.Context, name string) (*model.Tag, error) {
	tag := &model.Tag{}

	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM tags WHERE name = $1`,
		name,
	).Scan(&tag.ID, &tag.Name)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("タグの取得に失敗しました: %w", err)
	}

	return tag, nil
}

// List はタグ一覧をオフセット・リミット指定で取得する。
// 並び順は挿入順（id昇順）。
func (r *PostgresTagRepo) List(ctx context.Context, skip, limit int) ([]model.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM tags ORDER BY id ASC OFFSET $1 LIMIT $2`,
		skip, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("タグ一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

// Create は新しいタグを作成し、IDが割り当てられた永続化済みエンティティを返す。
// nameのUNIQUE制約違反は重複判定の最終的な権威としてここで捕捉し、
// model.ErrCodeTagAlreadyRegisteredのAPIErrorに変換する。
func (r *PostgresTagRepo) Create(ctx context.Context, name string) (*model.Tag, error) {
	tag := &model.Tag{Name: name}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO tags (name) VALUES ($1) RETURNING id`,
		name,
	).Scan(&tag.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.NewTagAlreadyRegisteredError(name)
		}
		return nil, fmt.Errorf("タグの作成に失敗しました: %w", err)
	}

	return tag, nil
}

// ListByTaskID は指定した外部タスクIDに関連付けられたタグ一覧を取得する。
// 関連テーブルをtask_idで結合してTagエンティティに解決する。
// 関連が存在しない場合は空スライスを返す。
func (r *PostgresTagRepo) ListByTaskID(ctx context.Context, taskID string) ([]model.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.name
		 FROM tags t
		 INNER JOIN task_tags tt ON t.id = tt.tag_id
		 WHERE tt.task_id = $1
		 ORDER BY t.id ASC`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("タスクに関連するタグの取得に失敗しました: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

// scanTags は結果セットをタグのスライスに読み取る。
// 行が存在しない場合も空スライスを返す（nilは返さない）。
func scanTags(rows *sql.Rows) ([]model.Tag, error) {
	tags := []model.Tag{}
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("タグの読み取りに失敗しました: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("タグの走査に失敗しました: %w", err)
	}

	return tags, nil
}

// isUniqueViolation はエラーがPostgreSQLのunique_violationかどうかを判定する。
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}

// compile-time interface check
var _ TagRepository = (*PostgresTagRepo)(nil)
