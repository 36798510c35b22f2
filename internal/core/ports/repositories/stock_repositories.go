package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
)

// WarehouseStockReader defines read operations on the central stock pool.
type WarehouseStockReader interface {
	// GetStock returns the warehouse ledger as stored. Missing denominations
	// are simply absent; zero-filling against the catalog is a service concern.
	GetStock(ctx context.Context) (domain.DenominationLedger, error)
}

// WarehouseStockWriter defines write operations on the central stock pool.
// Every upsert is an atomic increment/decrement at the storage layer, never a
// read-modify-write in consuming code.
type WarehouseStockWriter interface {
	// ApplyStockDeltasInTx upserts signed quantity deltas per denomination
	// inside a caller-owned transaction. Rows are created lazily; a negative
	// delta on a missing row seeds a negative quantity.
	ApplyStockDeltasInTx(ctx context.Context, tx pgx.Tx, deltas domain.DenominationLedger, updatedBy string, updatedAt time.Time) error

	// SetStockQuantities upserts absolute quantities per denomination.
	SetStockQuantities(ctx context.Context, quantities domain.DenominationLedger, updatedBy string, updatedAt time.Time) error
}

// WarehouseStockRepositoryFacade combines warehouse stock interfaces.
type WarehouseStockRepositoryFacade interface {
	WarehouseStockReader
	WarehouseStockWriter
}

// UserBalanceReader defines read operations for aggregate user balances.
type UserBalanceReader interface {
	// FindBalanceByUserNik retrieves a user's balances, or apperrors.ErrNotFound
	// if no assignment or transaction has touched the user yet.
	FindBalanceByUserNik(ctx context.Context, userNik string) (*domain.UserBalance, error)
}

// UserBalanceWriter defines write operations for aggregate user balances.
type UserBalanceWriter interface {
	// ApplyBalanceDeltaInTx upserts the signed delta onto the user's balances
	// inside a caller-owned transaction. Balances may go negative.
	ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, delta domain.BalanceDelta, updatedBy string, updatedAt time.Time) error
}

// UserBalanceRepositoryFacade combines user balance interfaces.
type UserBalanceRepositoryFacade interface {
	UserBalanceReader
	UserBalanceWriter
}
