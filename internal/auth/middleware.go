// Package auth は保護されたリクエストに対する認可ゲートを提供します。
package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/todo-api/internal/token"
)

// ContextUserIDKey は、ハンドラー間で認証済みユーザーIDを共有するためのキーです。
const ContextUserIDKey = "auth.userId"

// UserIDFromContext は RequireAuth が設定したユーザーIDを返します。未設定なら 0 を返します。
func UserIDFromContext(c *gin.Context) int64 {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0
	}
	id, ok := v.(int64)
	if !ok {
		return 0
	}
	return id
}

// RequireAuth はベアラートークンを検証するミドルウェアを返します。
// ヘッダー欠落・形式不正・署名不正・期限切れのいずれでも同じ401を返し、
// ハンドラー本体が実行される前に処理を打ち切ります。
func RequireAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthenticated(c)
			return
		}

		userID, err := tokens.Verify(tokenString)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "Please authenticate.",
	})
}
