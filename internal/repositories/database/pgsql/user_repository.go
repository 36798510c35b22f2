package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tukarkoin/tukar_koin_app/internal/apperrors"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	portsrepo "github.com/tukarkoin/tukar_koin_app/internal/core/ports/repositories"
	"github.com/tukarkoin/tukar_koin_app/internal/models"
	"github.com/tukarkoin/tukar_koin_app/internal/utils/mapping"
)

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for employee master data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// SaveUser persists a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (nik, name, role, password_hash, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.Nik,
		m.Name,
		m.Role,
		m.PasswordHash,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to insert user "+m.Nik, err)
	}
	return nil
}

// FindUserByNik retrieves a user by their NIK.
func (r *PgxUserRepository) FindUserByNik(ctx context.Context, nik string) (*domain.User, error) {
	query := `
		SELECT nik, name, role, password_hash, created_at, created_by, last_updated_at, last_updated_by
		FROM users
		WHERE nik = $1;
	`
	var m models.User
	err := r.Pool.QueryRow(ctx, query, nik).Scan(
		&m.Nik,
		&m.Name,
		&m.Role,
		&m.PasswordHash,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user by NIK "+nik, err)
	}

	d := mapping.ToDomainUser(m)
	return &d, nil
}

// FindUsers retrieves a page of users ordered by NIK.
func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT nik, name, role, password_hash, created_at, created_by, last_updated_at, last_updated_by
		FROM users
		ORDER BY nik
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var m models.User
		if err := rows.Scan(
			&m.Nik,
			&m.Name,
			&m.Role,
			&m.PasswordHash,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user row", err)
		}
		users = append(users, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user rows", err)
	}

	return mapping.ToDomainUserSlice(users), nil
}
