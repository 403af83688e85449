// Package service はユーザー認証とTodo CRUDのビジネスロジックを提供します。
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/yourusername/todo-api/internal/domain"
	"github.com/yourusername/todo-api/internal/repo"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// パスワードに最低1文字要求される記号のセット。
const passwordSymbols = "!@#$%^&*"

// ValidationError は入力検証の失敗をメッセージの列として保持します。
// ストレージに触れる前に検出され、HTTP 400 で報告されます。
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// PasswordCodec はクレデンシャルコーデックのインターフェースです。
type PasswordCodec interface {
	Hash(password string) (string, error)
	Verify(password, secret string) bool
}

// UserService はユーザー登録と認証を提供します。
type UserService struct {
	repo  repo.UserRepo
	codec PasswordCodec
}

// NewUserService は UserService を作成します。
func NewUserService(r repo.UserRepo, codec PasswordCodec) *UserService {
	return &UserService{repo: r, codec: codec}
}

// ValidateCredentialInput はユーザー名とパスワードの形式を検証します。
// 登録・ログイン共通で、ストレージ参照の前に呼び出します。
func ValidateCredentialInput(username, password string) *ValidationError {
	var messages []string

	username = strings.TrimSpace(username)
	if len(username) < 3 {
		messages = append(messages, "Username must be at least 3 characters long")
	}
	if username != "" && !usernamePattern.MatchString(username) {
		messages = append(messages, "Username can only contain letters, numbers and underscores")
	}

	if len(password) < 8 {
		messages = append(messages, "Password must be at least 8 characters long")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		messages = append(messages, "Password must contain at least one uppercase letter")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		messages = append(messages, "Password must contain at least one lowercase letter")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) {
		messages = append(messages, "Password must contain at least one number")
	}
	if !strings.ContainsAny(password, passwordSymbols) {
		messages = append(messages, "Password must contain at least one special character")
	}

	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}

// Register はユーザーを新規作成します。
// 入力検証に通った後、ユーザー名の有無を確認してから作成します。
// 事前チェックをすり抜けた同時登録はリポジトリ側の一意制約で
// domain.ErrUsernameTaken として拒否されます。
func (s *UserService) Register(ctx context.Context, username, password string) (domain.User, error) {
	if verr := ValidateCredentialInput(username, password); verr != nil {
		return domain.User{}, verr
	}
	username = strings.TrimSpace(username)

	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return domain.User{}, domain.ErrUsernameTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, err
	}

	secret, err := s.codec.Hash(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, username, secret)
}

// Authenticate はユーザー名とパスワードを照合します。
// ユーザー名不在とパスワード不一致はどちらも domain.ErrInvalidCredentials を返し、
// ユーザー名の存在を推測させません。
func (s *UserService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, domain.ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if !s.codec.Verify(password, u.Password) {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return u, nil
}
