package service

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/yourusername/todo-api/internal/cache"
	"github.com/yourusername/todo-api/internal/domain"
	"github.com/yourusername/todo-api/internal/repo"
)

// TodoService は所有者スコープ付きのTodo CRUDを提供します。
// すべての操作が認証済みユーザーのIDを必須で受け取ります。
type TodoService struct {
	repo  repo.TodoRepo
	cache *cache.TodoCache
	sf    singleflight.Group
}

// NewTodoService は TodoService を作成します。cache が nil の場合はキャッシュを使いません。
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache) *TodoService {
	return &TodoService{repo: r, cache: c}
}

// Create はTodoを作成します。説明が空の場合は ValidationError を返します。
func (s *TodoService) Create(ctx context.Context, ownerID int64, description string, completed bool) (domain.Todo, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return domain.Todo{}, &ValidationError{Messages: []string{"Title must not be empty"}}
	}

	t, err := s.repo.Create(ctx, ownerID, description, completed)
	if err != nil {
		return domain.Todo{}, err
	}
	s.invalidate(ctx, ownerID)
	return t, nil
}

// ListByOwner は所有者のTodoをすべて返します。
// キャッシュミス時の問い合わせは singleflight で集約し、
// 同一ユーザーの同時リクエストがDBへ殺到しないようにします。
func (s *TodoService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	if s.cache == nil {
		return s.repo.ListByOwner(ctx, ownerID)
	}

	key := "list:" + strconv.FormatInt(ownerID, 10)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetList(ctx, ownerID); err == nil && list != nil {
			return list, nil
		}
		list, err := s.repo.ListByOwner(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetList(ctx, ownerID, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Todo), nil
}

// Update はTodoを部分更新します。空文字への説明の変更は拒否します。
// 存在しないTodoと他ユーザー所有のTodoはどちらも domain.ErrTodoNotFound です。
func (s *TodoService) Update(ctx context.Context, ownerID, id int64, patch domain.TodoPatch) (domain.Todo, error) {
	if patch.Description != nil {
		trimmed := strings.TrimSpace(*patch.Description)
		if trimmed == "" {
			return domain.Todo{}, &ValidationError{Messages: []string{"Title must not be empty"}}
		}
		patch.Description = &trimmed
	}

	t, err := s.repo.Update(ctx, ownerID, id, patch)
	if err != nil {
		return domain.Todo{}, err
	}
	s.invalidate(ctx, ownerID)
	return t, nil
}

// Delete はTodoを削除します。所有権の扱いは Update と同じです。
func (s *TodoService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.invalidate(ctx, ownerID)
	return nil
}

func (s *TodoService) invalidate(ctx context.Context, ownerID int64) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, ownerID)
	}
}
