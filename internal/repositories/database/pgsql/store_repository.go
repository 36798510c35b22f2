package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tukarkoin/tukar_koin_app/internal/apperrors"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	portsrepo "github.com/tukarkoin/tukar_koin_app/internal/core/ports/repositories"
	"github.com/tukarkoin/tukar_koin_app/internal/models"
	"github.com/tukarkoin/tukar_koin_app/internal/utils/mapping"
)

type PgxStoreRepository struct {
	BaseRepository
}

// newPgxStoreRepository creates a new read-only repository for store master
// data.
func newPgxStoreRepository(pool *pgxpool.Pool) portsrepo.StoreReader {
	return &PgxStoreRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StoreReader = (*PgxStoreRepository)(nil)

// FindStoreByCode retrieves a store by its code.
func (r *PgxStoreRepository) FindStoreByCode(ctx context.Context, storeCode string) (*domain.Store, error) {
	query := `
		SELECT store_code, name, address, created_at, created_by, last_updated_at, last_updated_by
		FROM stores
		WHERE store_code = $1;
	`
	var m models.Store
	err := r.Pool.QueryRow(ctx, query, storeCode).Scan(
		&m.StoreCode,
		&m.Name,
		&m.Address,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find store by code "+storeCode, err)
	}

	d := mapping.ToDomainStore(m)
	return &d, nil
}

// FindStores retrieves a page of stores ordered by code.
func (r *PgxStoreRepository) FindStores(ctx context.Context, limit int, offset int) ([]domain.Store, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT store_code, name, address, created_at, created_by, last_updated_at, last_updated_by
		FROM stores
		ORDER BY store_code
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stores", err)
	}
	defer rows.Close()

	stores := []domain.Store{}
	for rows.Next() {
		var m models.Store
		if err := rows.Scan(
			&m.StoreCode,
			&m.Name,
			&m.Address,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan store row", err)
		}
		stores = append(stores, mapping.ToDomainStore(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating store rows", err)
	}

	return stores, nil
}
