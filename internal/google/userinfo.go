package google

import (
	"context"
	"encoding/json"

	"github.com/hitoshi/dominotasks/internal/model"
)

// userInfoPayload はGoogleのuserinfoエンドポイントのレスポンス。
// emailとnameは必須、pictureは任意。認識しない追加フィールドは無視する。
type userInfoPayload struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// VerifyToken はアクセストークンをGoogleのuserinfoエンドポイントに転送して検証し、
// ユーザー情報を取得する。
// 必須フィールド（email, name）が欠落している場合は検証エラーとして扱い、
// 暗黙の補完は行わない。
func (c *Client) VerifyToken(ctx context.Context, accessToken string) (*model.UserInfo, error) {
	body, err := c.getWithBearer(ctx, endpointUserInfo, c.userInfoURL, accessToken)
	if err != nil {
		return nil, err
	}

	var payload userInfoPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, model.NewInvalidUpstreamResponseError("ユーザー情報のJSONのパースに失敗しました")
	}

	if payload.Email == "" {
		return nil, model.NewInvalidUpstreamResponseError("ユーザー情報に必須フィールドemailがありません")
	}
	if payload.Name == "" {
		return nil, model.NewInvalidUpstreamResponseError("ユーザー情報に必須フィールドnameがありません")
	}

	return &model.UserInfo{
		Email:   payload.Email,
		Name:    payload.Name,
		Picture: payload.Picture,
	}, nil
}
