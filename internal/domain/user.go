// Package domain はユーザーとTodoのエンティティ、およびエラー分類を定義します。
package domain

import "time"

// User はユーザーアカウントのエンティティです。
// Password には平文ではなく導出済みシークレット（bcrypt文字列）のみを保持します。
type User struct {
	ID        int64
	Username  string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
