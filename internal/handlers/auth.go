// Package handlers はHTTPハンドラーを提供し、サービスの結果をエラー分類に従ってHTTPへ写します。
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/todo-api/internal/domain"
	"github.com/yourusername/todo-api/internal/dto"
	"github.com/yourusername/todo-api/internal/service"
)

// UserDirectory はユーザー登録と認証を提供するサービスのインターフェースです。
type UserDirectory interface {
	Register(ctx context.Context, username, password string) (domain.User, error)
	Authenticate(ctx context.Context, username, password string) (domain.User, error)
}

// TokenIssuer はアイデンティティトークンを発行します。
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// AuthHandler は /auth/register と /auth/login のハンドラーです。
type AuthHandler struct {
	users  UserDirectory
	tokens TokenIssuer
}

// NewAuthHandler は AuthHandler を作成します。
func NewAuthHandler(users UserDirectory, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Register は POST /auth/register のハンドラーです。
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": []string{"username and password are required"},
		})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Messages})
		case errors.Is(err, domain.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		default:
			// ハッシュ化やストレージの失敗は内部詳細を出さずに500へ
			log.Printf("Registration error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		}
		return
	}

	tokenString, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Printf("Token issue error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		User:  dto.NewUserResponse(user),
		Token: tokenString,
	})
}

// Login は POST /auth/login のハンドラーです。
// ユーザー名不在とパスワード不一致は同じ401として扱います。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": []string{"username and password are required"},
		})
		return
	}

	// 登録時と同じ形式検証を先に行う（形式を満たさない入力はDBに到達させない）
	if verr := service.ValidateCredentialInput(req.Username, req.Password); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Messages})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		log.Printf("Login error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	tokenString, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Printf("Token issue error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		User:  dto.NewUserResponse(user),
		Token: tokenString,
	})
}
