package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tukarkoin/tukar_koin_app/internal/apperrors"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	portsrepo "github.com/tukarkoin/tukar_koin_app/internal/core/ports/repositories"
)

type PgxWarehouseStockRepository struct {
	BaseRepository
}

// newPgxWarehouseStockRepository creates a new repository for the central
// stock pool.
func newPgxWarehouseStockRepository(pool *pgxpool.Pool) portsrepo.WarehouseStockRepositoryFacade {
	return &PgxWarehouseStockRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxWarehouseStockRepository implements the facade.
var _ portsrepo.WarehouseStockRepositoryFacade = (*PgxWarehouseStockRepository)(nil)

// GetStock returns the warehouse ledger as stored.
func (r *PgxWarehouseStockRepository) GetStock(ctx context.Context) (domain.DenominationLedger, error) {
	query := `
		SELECT denomination, quantity
		FROM warehouse_stock
		ORDER BY denomination;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query warehouse stock", err)
	}
	defer rows.Close()

	ledger := domain.DenominationLedger{}
	for rows.Next() {
		var denomination, quantity int64
		if err := rows.Scan(&denomination, &quantity); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan warehouse stock row", err)
		}
		ledger[denomination] = quantity
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating warehouse stock rows", err)
	}

	return ledger, nil
}

// upsertDeltaQuery adds a signed delta onto a denomination row, creating the
// row when missing. The increment happens entirely at the storage layer so
// concurrent unrelated operations cannot lose updates. There is deliberately
// no floor: a negative delta on a missing row seeds a negative quantity.
const upsertDeltaQuery = `
	INSERT INTO warehouse_stock (denomination, quantity, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $3, $4)
	ON CONFLICT (denomination) DO UPDATE SET
		quantity = warehouse_stock.quantity + EXCLUDED.quantity,
		last_updated_at = EXCLUDED.last_updated_at,
		last_updated_by = EXCLUDED.last_updated_by;
`

// ApplyStockDeltasInTx upserts signed quantity deltas inside the caller's
// transaction, batched as a single round trip.
func (r *PgxWarehouseStockRepository) ApplyStockDeltasInTx(ctx context.Context, tx pgx.Tx, deltas domain.DenominationLedger, updatedBy string, updatedAt time.Time) error {
	if len(deltas) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, denomination := range deltas.Denominations() {
		quantity := deltas[denomination]
		if quantity == 0 {
			continue
		}
		batch.Queue(upsertDeltaQuery, denomination, quantity, updatedAt, updatedBy)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute warehouse stock delta batch", err)
	}
	return nil
}

// SetStockQuantities upserts absolute quantities for the given denominations.
func (r *PgxWarehouseStockRepository) SetStockQuantities(ctx context.Context, quantities domain.DenominationLedger, updatedBy string, updatedAt time.Time) error {
	if len(quantities) == 0 {
		return nil
	}

	query := `
		INSERT INTO warehouse_stock (denomination, quantity, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $3, $4)
		ON CONFLICT (denomination) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	batch := &pgx.Batch{}
	for _, denomination := range quantities.Denominations() {
		batch.Queue(query, denomination, quantities[denomination], updatedAt, updatedBy)
	}

	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute warehouse stock set batch", err)
	}
	return nil
}
