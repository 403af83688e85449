// Package dto はAPI境界のリクエスト/レスポンス形を定義します。
package dto

import (
	"time"

	"github.com/yourusername/todo-api/internal/domain"
)

// AuthRequest は POST /auth/register と POST /auth/login のJSONボディです。
type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse はクライアントに返すユーザーの射影です。
// 導出済みパスワードシークレットは決して含めません。
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthResponse は登録・ログイン成功時のレスポンスです。
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// NewUserResponse は domain.User から射影を作ります。
func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
