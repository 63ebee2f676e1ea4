package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hitoshi/dominotasks/internal/model"
	"github.com/hitoshi/dominotasks/internal/tag"
)

// TagServiceInterface はタグハンドラーが必要とするサービスインターフェース。
type TagServiceInterface interface {
	// CreateTag は新しいタグを作成する。
	CreateTag(ctx context.Context, name string) (*model.Tag, error)
	// ListTags はタグ一覧をオフセット・リミット指定で取得する。
	ListTags(ctx context.Context, skip, limit int) ([]model.Tag, error)
}

// TagHandler はタグ管理のHTTPハンドラー。
type TagHandler struct {
	service      TagServiceInterface
	defaultLimit int
}

// NewTagHandler はTagHandlerを生成する。
// defaultLimitはlimitクエリパラメータ未指定時のデフォルト値。
// 0以下の場合はtag.DefaultLimitを使用する。
func NewTagHandler(service TagServiceInterface, defaultLimit int) *TagHandler {
	if defaultLimit <= 0 {
		defaultLimit = tag.DefaultLimit
	}
	return &TagHandler{
		service:      service,
		defaultLimit: defaultLimit,
	}
}

// createTagRequest はタグ作成リクエストのボディ。
type createTagRequest struct {
	Name string `json:"name"`
}

// tagResponse はタグのAPIレスポンス。
type tagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateTag はタグ作成を処理する。
// 同名タグが登録済みの場合は400を返す。
// POST /tags/
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "リクエストボディの解析に失敗しました。",
			Category: "validation",
			Action:   "正しいJSON形式でリクエストしてください。",
		})
		return
	}

	if req.Name == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "タグ名が空です。",
			Category: "validation",
			Action:   "タグ名を指定してください。",
		})
		return
	}

	created, err := h.service.CreateTag(r.Context(), req.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, toTagResponse(*created))
}

// ListTags はタグ一覧を取得する。
// クエリパラメータはskip（デフォルト0）とlimit（デフォルトはTAGS_DEFAULT_LIMITの設定値）。
// GET /tags/
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	skip := parseQueryInt(r, "skip", tag.DefaultSkip)
	limit := parseQueryInt(r, "limit", h.defaultLimit)

	tags, err := h.service.ListTags(r.Context(), skip, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]tagResponse, 0, len(tags))
	for _, t := range tags {
		responses = append(responses, toTagResponse(t))
	}

	writeJSONResponse(w, http.StatusOK, responses)
}

// toTagResponse はmodel.TagからAPIレスポンスに変換する。
func toTagResponse(t model.Tag) tagResponse {
	return tagResponse{
		ID:   t.ID,
		Name: t.Name,
	}
}

// parseQueryInt はクエリパラメータを整数として取得する。
// 未指定または数値でない場合はデフォルト値を返す。
func parseQueryInt(r *http.Request, key string, defaultVal int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}
