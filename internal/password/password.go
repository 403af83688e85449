// Package password はパスワードから保存用シークレットを導出する
// クレデンシャルコーデックを提供します。
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Codec はペッパー付きbcryptによるハッシュ化と検証を行います。
type Codec struct {
	pepper string
	cost   int
}

// NewCodec は Codec を作成します。cost が bcrypt の範囲外の場合はデフォルト(12)を使います。
func NewCodec(pepper string, cost int) *Codec {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 12
	}
	return &Codec{pepper: pepper, cost: cost}
}

// Hash はパスワードにペッパーを連結し、bcrypt でハッシュ化します。
// ソルトは呼び出しごとに新しく生成され、出力文字列に
// アルゴリズムバージョン・コスト・ソルト・ダイジェストが埋め込まれます。
func (c *Codec) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password+c.pepper), c.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify は平文パスワードと保存済みシークレットを照合します。
// 比較は bcrypt の定数時間比較に委譲します。
func (c *Codec) Verify(password, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(secret), []byte(password+c.pepper)) == nil
}
