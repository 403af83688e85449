package domain

import "errors"

// サービス層とハンドラー間で共有するセンチネルエラー。
// 認証・所有権まわりのエラーは原因を区別できない形で返します
// （ユーザー名の存在や他人のTodoの存在を推測させないため）。
var (
	// ErrUsernameTaken はユーザー名が既に登録済みの場合に返されます。
	ErrUsernameTaken = errors.New("username already exists")

	// ErrUserNotFound はユーザー名に一致する行が存在しない場合に返されます。
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials はユーザー名不在とパスワード不一致の両方で返されます。
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTodoNotFound はTodoが存在しない場合と他ユーザー所有の場合の両方で返されます。
	ErrTodoNotFound = errors.New("todo not found")
)
