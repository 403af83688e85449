// Package token は署名付き・時限付きのアイデンティティトークンの発行と検証を提供します。
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// トークンの有効期間。サーバー側にセッション状態を持たないため、失効は期限切れのみです。
const tokenTTL = time.Hour

// ErrInvalidToken は検証に失敗したすべてのトークンに対して返されます。
// 署名不正・期限切れ・形式不正のどれが原因かは呼び出し元に開示しません。
var ErrInvalidToken = errors.New("invalid token")

// Claims はトークンに埋め込むクレームです。
type Claims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// Manager はHMACシークレットを保持し、トークンの発行と検証を行います。
type Manager struct {
	secret []byte
	now    func() time.Time
}

// NewManager は Manager を作成します。
func NewManager(secret string) *Manager {
	return &Manager{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue はユーザーIDと1時間後の有効期限を束ねたトークンを発行します。
func (m *Manager) Issue(userID int64) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify はトークンの署名と有効期限を検証し、ユーザーIDを返します。
// 失敗理由によらず ErrInvalidToken を返します。
func (m *Manager) Verify(tokenString string) (int64, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}
	if claims.UserID <= 0 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}
