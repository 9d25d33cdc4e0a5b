package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prudhvinik1/boxfleet/internal/apperr"
	"github.com/prudhvinik1/boxfleet/internal/database"
	"github.com/prudhvinik1/boxfleet/internal/models"
)

type PostgresUserRepository struct {
	db database.Querier
}

func NewPostgresUserRepository(db database.Querier) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (email, password_hash) 
              VALUES ($1, $2) 
              RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return apperr.Store("create user", err)
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT id, email, password_hash, created_at, updated_at
	          FROM users WHERE id = $1`

	return r.scanOne(ctx, query, id)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, password_hash, created_at, updated_at
	          FROM users WHERE email = $1`

	return r.scanOne(ctx, query, email)
}

func (r *PostgresUserRepository) scanOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, query, arg).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("user")
	}
	if err != nil {
		return nil, apperr.Store("get user", err)
	}
	return &user, nil
}

// Delete removes the user. Their boxes, sensors and measurements go with them
// through the foreign key cascade.
func (r *PostgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return apperr.Store("delete user", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("user " + id.String())
	}

	return nil
}
