package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mediscribe/mediscribe-api/internal/domain/entity"
	"github.com/mediscribe/mediscribe-api/internal/domain/repository"
)

// uniqueViolation is the postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts the user and fills in the generated id and timestamps.
// A concurrent insert with the same email surfaces as ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (full_name, email, password_hash, role, is_verified)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, u.FullName, u.Email, u.PasswordHash, string(u.Role), u.IsVerified)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT id, full_name, email, password_hash, role, is_verified, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT id, full_name, email, password_hash, role, is_verified, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UserRepository) scanOne(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var role string
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &role,
		&u.IsVerified, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	u.Role = entity.Role(role)
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
