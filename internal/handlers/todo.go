package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/todo-api/internal/auth"
	"github.com/yourusername/todo-api/internal/domain"
	"github.com/yourusername/todo-api/internal/dto"
	"github.com/yourusername/todo-api/internal/service"
)

// TodoStore は所有者スコープ付きのTodo CRUDを提供するサービスのインターフェースです。
type TodoStore interface {
	Create(ctx context.Context, ownerID int64, description string, completed bool) (domain.Todo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error)
	Update(ctx context.Context, ownerID, id int64, patch domain.TodoPatch) (domain.Todo, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// TodoHandler は /todos 系エンドポイントのハンドラーです。
// すべてのルートが認可ゲートの内側にあり、所有者IDはコンテキストから取り出します。
type TodoHandler struct {
	todos TodoStore
}

// NewTodoHandler は TodoHandler を作成します。
func NewTodoHandler(todos TodoStore) *TodoHandler {
	return &TodoHandler{todos: todos}
}

// Create は POST /todos のハンドラーです。
func (h *TodoHandler) Create(c *gin.Context) {
	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	t, err := h.todos.Create(c.Request.Context(), auth.UserIDFromContext(c), req.Title, req.Completed)
	if err != nil {
		respondTodoError(c, err, "Failed to create todo")
		return
	}
	c.JSON(http.StatusCreated, dto.NewTodoResponse(t))
}

// List は GET /todos のハンドラーです。認証済みユーザーのTodoのみを返します。
func (h *TodoHandler) List(c *gin.Context) {
	list, err := h.todos.ListByOwner(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		log.Printf("List todos error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todos"})
		return
	}
	c.JSON(http.StatusOK, dto.NewTodoResponses(list))
}

// Update は PUT /todos/:id のハンドラーです。
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	patch := domain.TodoPatch{Description: req.Title, Completed: req.Completed}
	t, err := h.todos.Update(c.Request.Context(), auth.UserIDFromContext(c), id, patch)
	if err != nil {
		respondTodoError(c, err, "Failed to update todo")
		return
	}
	c.JSON(http.StatusOK, dto.NewTodoResponse(t))
}

// Delete は DELETE /todos/:id のハンドラーです。
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.todos.Delete(c.Request.Context(), auth.UserIDFromContext(c), id); err != nil {
		respondTodoError(c, err, "Failed to delete todo")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully"})
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return 0, false
	}
	return id, true
}

// respondTodoError はサービス層のエラーをHTTPへ写します。
// 存在しないTodoと他ユーザー所有のTodoは同じ404です。
func respondTodoError(c *gin.Context, err error, fallback string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Messages})
	case errors.Is(err, domain.ErrTodoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
	default:
		log.Printf("Todo error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
