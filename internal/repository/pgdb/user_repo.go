package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"

	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/internal/repository/pgdb/converter"
	"github.com/sweetslice/go-backend/internal/usecase"
	"github.com/sweetslice/go-backend/pkg/e"
)

const userColumns = `id, name, email, password_hash, role, active, created_at, updated_at`

// UserRepo implements the user repository on top of PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
	conv converter.UserConverter
}

func NewUserRepo(pool *pgxpool.Pool, conv converter.UserConverter) *UserRepo {
	return &UserRepo{
		pool: pool,
		conv: conv,
	}
}

func (u *UserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at;
	`

	err := u.pool.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.Active,
	).Scan(&user.CreatedAt)
	if err != nil {
		if postgresDuplicate(err) {
			return nil, e.ErrEmailTaken
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return user, nil
}

func (u *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return u.getOne(ctx, query, id)
}

// GetByEmail matches case-insensitively so logins are not sensitive to the
// casing used at registration.
func (u *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE lower(email) = lower($1)`, userColumns)
	return u.getOne(ctx, query, email)
}

func (u *UserRepo) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var model converter.UserModel
	err := u.pool.QueryRow(ctx, query, arg).Scan(
		&model.ID, &model.Name, &model.Email, &model.PasswordHash,
		&model.Role, &model.Active, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrUserNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(&model), nil
}

// List returns one page of users, newest first, optionally filtered by a
// case-insensitive substring over name or email.
func (u *UserRepo) List(ctx context.Context, q usecase.UserQuery) ([]domain.User, int64, error) {
	where := ""
	args := make([]any, 0, 3)
	if q.Search != "" {
		args = append(args, "%"+escapeLike(q.Search)+"%")
		where = `WHERE (name ILIKE $1 OR email ILIKE $1)`
	}

	var total int64
	if err := u.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users `+where, args...).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM users %s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		userColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, q.Limit, q.Offset())

	rows, err := u.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	users := make([]domain.User, 0, q.Limit)
	for rows.Next() {
		var model converter.UserModel
		err := rows.Scan(
			&model.ID, &model.Name, &model.Email, &model.PasswordHash,
			&model.Role, &model.Active, &model.CreatedAt, &model.UpdatedAt,
		)
		if err != nil {
			return nil, 0, e.Wrap(whereami.WhereAmI(), err)
		}
		users = append(users, *u.conv.ToEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return users, total, nil
}

func (u *UserRepo) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, role = $4, active = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at;
	`

	err := u.pool.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role, user.Active, user.ID,
	).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrUserNotFound
		}
		if postgresDuplicate(err) {
			return nil, e.ErrEmailTaken
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return user, nil
}

func (u *UserRepo) Delete(ctx context.Context, id string) error {
	result, err := u.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if result.RowsAffected() == 0 {
		return e.ErrUserNotFound
	}

	return nil
}
