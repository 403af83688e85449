package dto

import (
	"time"

	"github.com/yourusername/todo-api/internal/domain"
)

// CreateTodoRequest は POST /todos のJSONボディです。
// ワイヤ上の title は保存される description に対応します（元APIとの互換）。
type CreateTodoRequest struct {
	Title     string `json:"title" binding:"required"`
	Completed bool   `json:"completed"`
}

// UpdateTodoRequest は PUT /todos/:id のJSONボディです。nil のフィールドは変更しません。
type UpdateTodoRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// TodoResponse はクライアントに返すTodoの射影です。
type TodoResponse struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewTodoResponse は domain.Todo から射影を作ります。
func NewTodoResponse(t domain.Todo) TodoResponse {
	return TodoResponse{
		ID:        t.ID,
		Title:     t.Description,
		Completed: t.Completed,
		DueDate:   t.DueDate,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// NewTodoResponses はリスト全体を射影します。空のリストは nil ではなく空配列として返します。
func NewTodoResponses(list []domain.Todo) []TodoResponse {
	out := make([]TodoResponse, 0, len(list))
	for _, t := range list {
		out = append(out, NewTodoResponse(t))
	}
	return out
}
