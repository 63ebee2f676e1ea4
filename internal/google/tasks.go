package google

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hitoshi/dominotasks/internal/model"
)

// tasksPayload はGoogle Tasks APIのタスク一覧レスポンス。
// itemsフィールドが存在しない場合は空の一覧として扱う。
type tasksPayload struct {
	Items []taskPayload `json:"items"`
}

// taskPayload はGoogle Tasks APIのタスク1件分のレスポンス。
// id、title、statusは必須。dueはRFC 3339形式の日時文字列、notesは任意。
// 認識しない追加フィールドは無視する。
type taskPayload struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Due    string `json:"due"`
	Notes  string `json:"notes"`
}

// FetchTasks はアクセストークンをGoogle Tasksのデフォルトタスクリストエンドポイントに
// 転送し、タスク一覧を取得する。
// 各タスクの必須フィールド（id, title, status）が欠落している場合は
// リクエスト全体を検証エラーとして失敗させ、部分的な結果は返さない。
// 返却順はプロバイダのレスポンス順をそのまま保持する。
func (c *Client) FetchTasks(ctx context.Context, accessToken string) ([]model.GoogleTask, error) {
	body, err := c.getWithBearer(ctx, endpointTasks, c.tasksURL, accessToken)
	if err != nil {
		return nil, err
	}

	var payload tasksPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, model.NewInvalidUpstreamResponseError("タスク一覧のJSONのパースに失敗しました")
	}

	tasks := make([]model.GoogleTask, 0, len(payload.Items))
	for i, item := range payload.Items {
		task, err := validateTask(i, item)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	return tasks, nil
}

// validateTask はプロバイダのタスクデータを検証してGoogleTaskに変換する。
// 必須フィールドの欠落と不正なdue日時はフェイルクローズで検証エラーにする。
func validateTask(index int, item taskPayload) (*model.GoogleTask, error) {
	if item.ID == "" {
		return nil, model.NewInvalidUpstreamResponseError(
			fmt.Sprintf("タスク[%d]に必須フィールドidがありません", index))
	}
	if item.Title == "" {
		return nil, model.NewInvalidUpstreamResponseError(
			fmt.Sprintf("タスク[%d]に必須フィールドtitleがありません", index))
	}
	if item.Status == "" {
		return nil, model.NewInvalidUpstreamResponseError(
			fmt.Sprintf("タスク[%d]に必須フィールドstatusがありません", index))
	}

	task := &model.GoogleTask{
		ID:     item.ID,
		Title:  item.Title,
		Status: item.Status,
		Notes:  item.Notes,
	}

	if item.Due != "" {
		due, err := time.Parse(time.RFC3339, item.Due)
		if err != nil {
			return nil, model.NewInvalidUpstreamResponseError(
				fmt.Sprintf("タスク[%d]のdueの日時形式が不正です: %s", index, item.Due))
		}
		task.Due = &due
	}

	return task, nil
}
