// Package tag はタグ管理のドメインロジックを提供する。
package tag

import (
	"context"
	"fmt"

	"github.com/hitoshi/dominotasks/internal/metrics"
	"github.com/hitoshi/dominotasks/internal/model"
	"github.com/hitoshi/dominotasks/internal/repository"
)

// デフォルトのページネーション値
const (
	DefaultSkip  = 0
	DefaultLimit = 100
)

// Service はタグ管理のサービス層。
// タグの作成と一覧取得のビジネスロジックを提供する。
type Service struct {
	repo      repository.TagRepository
	collector metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.TagRepository, collector metrics.MetricsCollector) *Service {
	return &Service{
		repo:      repo,
		collector: collector,
	}
}

// CreateTag は新しいタグを作成する。
// 同名タグの存在を事前チェックするが、同時作成の競合はすり抜ける可能性があるため、
// ストアのUNIQUE制約違反（リポジトリがTAG_ALREADY_REGISTEREDに変換する）を
// 重複判定の最終的な権威とする。
func (s *Service) CreateTag(ctx context.Context, name string) (*model.Tag, error) {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("タグの重複チェックに失敗しました: %w", err)
	}
	if existing != nil {
		return nil, model.NewTagAlreadyRegisteredError(name)
	}

	tag, err := s.repo.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	s.collector.RecordTagOperation("create")
	return tag, nil
}

// ListTags はタグ一覧をオフセット・リミット指定で取得する。
// skipが負の場合は0、limitが負の場合はデフォルト値に補正する。
// limitが0の場合は空スライスを返す。
func (s *Service) ListTags(ctx context.Context, skip, limit int) ([]model.Tag, error) {
	if skip < 0 {
		skip = DefaultSkip
	}
	if limit < 0 {
		limit = DefaultLimit
	}
	if limit == 0 {
		return []model.Tag{}, nil
	}

	tags, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("タグ一覧の取得に失敗しました: %w", err)
	}

	s.collector.RecordTagOperation("list")
	return tags, nil
}
