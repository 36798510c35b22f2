package repositories

import (
	"context"

	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
)

// TransactionReader defines read operations for recorded transactions.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its detail lines.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByUser retrieves a user's transactions newest first with
	// cursor pagination.
	ListTransactionsByUser(ctx context.Context, userNik string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines the coordinated persistence of a transaction and
// its ledger side effects.
type TransactionWriter interface {
	// SaveFieldTransaction persists the transaction with its details, swaps in
	// the assignment's new stock (CAS on revision) and adjusts the cashier's
	// balances, atomically. Returns apperrors.ErrConcurrentUpdate when the
	// revision check fails; nothing is persisted in that case.
	SaveFieldTransaction(ctx context.Context, txn domain.Transaction, stockUpdate AssignmentStockUpdate, balanceDelta domain.BalanceDelta) error

	// SaveWalkInTransaction persists the transaction with its details and
	// applies the signed warehouse deltas, atomically. No sufficiency check.
	SaveWalkInTransaction(ctx context.Context, txn domain.Transaction, warehouseDeltas domain.DenominationLedger) error
}

// TransactionRepositoryFacade combines transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
