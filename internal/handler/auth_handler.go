package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/dominotasks/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// VerifyToken はGoogleアクセストークンを検証してユーザー情報を返す。
	VerifyToken(ctx context.Context, accessToken string) (*model.UserInfo, error)
}

// AuthHandler はGoogleトークン検証のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// authGoogleRequest はトークン検証リクエストのボディ。
type authGoogleRequest struct {
	AccessToken string `json:"access_token"`
}

// userInfoResponse はユーザー情報のAPIレスポンス。
type userInfoResponse struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// AuthenticateGoogle はGoogleアクセストークンを検証してユーザー情報を返す。
// Googleのuserinfoエンドポイントへのプロキシとして動作する。
// POST /auth/google
func (h *AuthHandler) AuthenticateGoogle(w http.ResponseWriter, r *http.Request) {
	var req authGoogleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "リクエストボディの解析に失敗しました。",
			Category: "validation",
			Action:   "正しいJSON形式でリクエストしてください。",
		})
		return
	}

	// トークンが空の場合は外部呼び出しを行わずに401を返す
	if req.AccessToken == "" {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
		return
	}

	userInfo, err := h.service.VerifyToken(r.Context(), req.AccessToken)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, userInfoResponse{
		Email:   userInfo.Email,
		Name:    userInfo.Name,
		Picture: userInfo.Picture,
	})
}
