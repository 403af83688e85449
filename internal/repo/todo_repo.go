package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourusername/todo-api/internal/domain"
)

// TodoRepo は所有者スコープ付きのTodo永続化を提供します。
// 全操作が ownerID を必須で受け取り、他ユーザーの行は存在しない行と同じ扱いになります。
type TodoRepo interface {
	Create(ctx context.Context, ownerID int64, description string, completed bool) (domain.Todo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error)
	Update(ctx context.Context, ownerID, id int64, patch domain.TodoPatch) (domain.Todo, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// PGTodoRepo は TodoRepo のPostgres実装です。
type PGTodoRepo struct {
	db *pgxpool.Pool
}

// NewPGTodoRepo は PGTodoRepo を作成します。
func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

// Create はTodoを1件作成して返します。due_date は作成時に設定できません。
func (r *PGTodoRepo) Create(ctx context.Context, ownerID int64, description string, completed bool) (domain.Todo, error) {
	query := `
		INSERT INTO todos (description, completed, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, description, completed, due_date, user_id, created_at, updated_at`
	var t domain.Todo
	err := r.db.QueryRow(ctx, query, description, completed, ownerID).Scan(
		&t.ID, &t.Description, &t.Completed, &t.DueDate, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	return t, nil
}

// ListByOwner は所有者のTodoをすべて返します。
func (r *PGTodoRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	query := `
		SELECT id, description, completed, due_date, user_id, created_at, updated_at
		FROM todos WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()
	var list []domain.Todo
	for rows.Next() {
		var t domain.Todo
		if err := rows.Scan(&t.ID, &t.Description, &t.Completed, &t.DueDate, &t.UserID,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update はTodoを部分更新します。nil のフィールドは現在値を維持します。
// id と user_id を単一の述語で絞り込むため、存在しない行と
// 他ユーザー所有の行はどちらも domain.ErrTodoNotFound になります。
func (r *PGTodoRepo) Update(ctx context.Context, ownerID, id int64, patch domain.TodoPatch) (domain.Todo, error) {
	query := `
		UPDATE todos
		SET description = COALESCE($3, description),
		    completed   = COALESCE($4, completed),
		    updated_at  = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id, description, completed, due_date, user_id, created_at, updated_at`
	var t domain.Todo
	err := r.db.QueryRow(ctx, query, id, ownerID, patch.Description, patch.Completed).Scan(
		&t.ID, &t.Description, &t.Completed, &t.DueDate, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Todo{}, domain.ErrTodoNotFound
		}
		return domain.Todo{}, fmt.Errorf("update todo: %w", err)
	}
	return t, nil
}

// Delete はTodoを削除します。所有権の扱いは Update と同じです。
func (r *PGTodoRepo) Delete(ctx context.Context, ownerID, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}
