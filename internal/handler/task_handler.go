package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/hitoshi/dominotasks/internal/model"
)

// TaskServiceInterface はタスクハンドラーが必要とするサービスインターフェース。
type TaskServiceInterface interface {
	// Enrich はプロバイダからタスク一覧を取得し、各タスクにローカルのタグを付与して返す。
	Enrich(ctx context.Context, accessToken string) ([]model.EnrichedTask, error)
}

// TaskHandler はタスク取得のHTTPハンドラー。
type TaskHandler struct {
	service TaskServiceInterface
}

// NewTaskHandler はTaskHandlerを生成する。
func NewTaskHandler(service TaskServiceInterface) *TaskHandler {
	return &TaskHandler{service: service}
}

// taskResponse はタグ付与済みタスクのAPIレスポンス。
// tagsは関連がない場合でも空配列として出力する。
type taskResponse struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Status string     `json:"status"`
	Due    *time.Time `json:"due,omitempty"`
	Notes  string     `json:"notes,omitempty"`
	Tags   []tagResponse `json:"tags"`
}

// GetTasks はGoogle Tasksのデフォルトタスクリストを取得し、
// ローカルに保存されたタグを付与して返す。
// Authorizationヘッダーが欠落・不正な場合は外部呼び出しを行わずに401を返す。
// GET /tasks
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
		return
	}

	tasks, err := h.service.Enrich(r.Context(), token)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toTaskResponses(tasks))
}

// bearerToken はAuthorizationヘッダーからbearerトークンを取り出す。
// ヘッダーが存在しない、スキームがBearerでない、またはトークンが空の場合はfalseを返す。
func bearerToken(r *http.Request) (string, bool) {
	const prefix = "Bearer "

	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", false
	}

	return token, true
}

// toTaskResponses はタグ付与済みタスクの一覧をAPIレスポンスに変換する。
// プロバイダから受け取った順序をそのまま保持する。
func toTaskResponses(tasks []model.EnrichedTask) []taskResponse {
	responses := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		tags := make([]tagResponse, 0, len(t.Tags))
		for _, tag := range t.Tags {
			tags = append(tags, toTagResponse(tag))
		}

		responses = append(responses, taskResponse{
			ID:     t.ID,
			Title:  t.Title,
			Status: t.Status,
			Due:    t.Due,
			Notes:  t.Notes,
			Tags:   tags,
		})
	}
	return responses
}
