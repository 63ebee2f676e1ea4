// Package task はタスク取得とタグ付与のドメインロジックを提供する。
package task

import (
	"context"

	"github.com/hitoshi/dominotasks/internal/metrics"
	"github.com/hitoshi/dominotasks/internal/model"
	"github.com/hitoshi/dominotasks/internal/repository"
	"github.com/hitoshi/dominotasks/internal/security"
)

// TaskFetcher はタスク取得のためのインターフェース。
// google.Clientが実装する。
type TaskFetcher interface {
	// FetchTasks はアクセストークンでプロバイダからタスク一覧を取得する。
	FetchTasks(ctx context.Context, accessToken string) ([]model.GoogleTask, error)
}

// Service はタスクのタグ付与を行うサービス層。
// 外部のタスク一覧とローカルのタグ関連を結合する唯一の箇所。
type Service struct {
	fetcher   TaskFetcher
	tagRepo   repository.TagRepository
	sanitizer security.NotesSanitizerService
	collector metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	fetcher TaskFetcher,
	tagRepo repository.TagRepository,
	sanitizer security.NotesSanitizerService,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		fetcher:   fetcher,
		tagRepo:   tagRepo,
		sanitizer: sanitizer,
		collector: collector,
	}
}

// Enrich はプロバイダからタスク一覧を取得し、各タスクにローカルのタグを付与して返す。
// 取得失敗時はエラーをそのまま伝播し、部分的な結果は返さない（フェイルファスト）。
// 返却順はプロバイダのレスポンス順を保持する。
// タスクごとに1回の関連検索を行うN+1パターンだが、1ユーザーのデフォルトタスクリストは
// サイズが限られるため現スケールでは許容する。
func (s *Service) Enrich(ctx context.Context, accessToken string) ([]model.EnrichedTask, error) {
	tasks, err := s.fetcher.FetchTasks(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	enriched := make([]model.EnrichedTask, 0, len(tasks))
	for _, t := range tasks {
		tags, err := s.tagRepo.ListByTaskID(ctx, t.ID)
		if err != nil {
			return nil, err
		}

		t.Notes = s.sanitizer.Sanitize(t.Notes)

		enriched = append(enriched, model.EnrichedTask{
			GoogleTask: t,
			Tags:       tags,
		})
	}

	s.collector.RecordTasksEnriched(len(enriched))
	return enriched, nil
}
