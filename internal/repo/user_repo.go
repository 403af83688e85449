// Package repo はPostgresに対するリポジトリ実装を提供します。
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourusername/todo-api/internal/domain"
)

// UserRepo はユーザーの永続化を提供します。
type UserRepo interface {
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	Create(ctx context.Context, username, passwordSecret string) (domain.User, error)
}

// PGUserRepo は UserRepo のPostgres実装です。
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo は PGUserRepo を作成します。
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// GetByUsername はユーザー名で1件取得します。
// 該当行がない場合は domain.ErrUserNotFound を返します。
func (r *PGUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password, created_at, updated_at FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// Create はユーザーを1件作成して返します。
// ユーザー名の一意性はDBの一意制約が最終的な裁定者であり、
// 事前チェックをすり抜けた競合も 23505 として検出し domain.ErrUsernameTaken にマップします。
func (r *PGUserRepo) Create(ctx context.Context, username, passwordSecret string) (domain.User, error) {
	query := `
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING id, username, password, created_at, updated_at`
	var u domain.User
	err := r.db.QueryRow(ctx, query, username, passwordSecret).Scan(
		&u.ID, &u.Username, &u.Password, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrUsernameTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// isUniqueViolation はPostgresの一意制約違反(23505)かどうかを判定します。
func isUniqueViolation(err error) bool {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code == "23505"
	}
	return false
}
