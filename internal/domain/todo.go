package domain

import "time"

// Todo はTodo項目のエンティティです。UserID は作成後に変更されません。
type Todo struct {
	ID          int64
	Description string
	Completed   bool
	DueDate     *time.Time
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoPatch は部分更新の内容です。nil のフィールドは変更しません。
type TodoPatch struct {
	Description *string
	Completed   *bool
}
