package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tukarkoin/tukar_koin_app/internal/apperrors"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	portsrepo "github.com/tukarkoin/tukar_koin_app/internal/core/ports/repositories"
	"github.com/tukarkoin/tukar_koin_app/internal/models"
	"github.com/tukarkoin/tukar_koin_app/internal/utils/mapping"
	"github.com/tukarkoin/tukar_koin_app/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
	stockRepo   portsrepo.WarehouseStockRepositoryFacade
	balanceRepo portsrepo.UserBalanceRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for transaction data.
// Ledger repositories are injected so recording a transaction and applying its
// stock and balance effects happen in one DB transaction.
func newPgxTransactionRepository(pool *pgxpool.Pool, stockRepo portsrepo.WarehouseStockRepositoryFacade, balanceRepo portsrepo.UserBalanceRepositoryFacade) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		stockRepo:      stockRepo,
		balanceRepo:    balanceRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const insertTransactionQuery = `
	INSERT INTO transactions (
		transaction_id, user_nik, store_code, transaction_date, source,
		coin_value, big_money_value,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

const insertDetailQuery = `
	INSERT INTO transaction_details (transaction_id, denomination, quantity, kind)
	VALUES ($1, $2, $3, $4);
`

// insertTransactionInTx writes the transaction row and queues its detail lines
// as one batch on the caller's transaction.
func (r *PgxTransactionRepository) insertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	_, err := tx.Exec(ctx, insertTransactionQuery,
		m.TransactionID,
		m.UserNik,
		m.StoreCode,
		m.TransactionDate,
		m.Source,
		m.CoinValue,
		m.BigMoneyValue,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}

	batch := &pgx.Batch{}
	for _, detail := range mapping.ToModelTransactionDetails(m.TransactionID, txn.Details) {
		batch.Queue(insertDetailQuery, detail.TransactionID, detail.Denomination, detail.Quantity, detail.Kind)
	}
	if batch.Len() == 0 {
		return nil
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute detail batch for transaction "+m.TransactionID, err)
	}
	return nil
}

// SaveFieldTransaction persists a field transaction, swaps the assignment's
// live stock via compare-and-swap on the revision, and adjusts the cashier's
// balances. When the revision check fails nothing is persisted and
// apperrors.ErrConcurrentUpdate is returned so the caller can re-read and retry.
func (r *PgxTransactionRepository) SaveFieldTransaction(ctx context.Context, txn domain.Transaction, stockUpdate portsrepo.AssignmentStockUpdate, balanceDelta domain.BalanceDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	casQuery := `
		UPDATE assignments
		SET current_stock = $2,
		    revision = revision + 1,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE assignment_id = $1 AND revision = $5;
	`
	cmdTag, err := tx.Exec(ctx, casQuery,
		stockUpdate.AssignmentID,
		map[int64]int64(stockUpdate.NewStock),
		txn.CreatedAt,
		txn.CreatedBy,
		stockUpdate.ExpectedRevision,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to swap stock for assignment "+stockUpdate.AssignmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either the assignment vanished or another transaction moved the
		// revision forward. The caller re-reads and distinguishes the two.
		return apperrors.ErrConcurrentUpdate
	}

	if err := r.insertTransactionInTx(ctx, tx, txn); err != nil {
		return err
	}

	if err := r.balanceRepo.ApplyBalanceDeltaInTx(ctx, tx, balanceDelta, txn.CreatedBy, txn.CreatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to adjust balance for transaction "+txn.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit field transaction "+txn.TransactionID, err)
	}
	return nil
}

// SaveWalkInTransaction persists a walk-in transaction and applies its signed
// warehouse deltas in one DB transaction. No sufficiency check is made.
func (r *PgxTransactionRepository) SaveWalkInTransaction(ctx context.Context, txn domain.Transaction, warehouseDeltas domain.DenominationLedger) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertTransactionInTx(ctx, tx, txn); err != nil {
		return err
	}

	if err := r.stockRepo.ApplyStockDeltasInTx(ctx, tx, warehouseDeltas, txn.CreatedBy, txn.CreatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to apply warehouse deltas for transaction "+txn.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit walk-in transaction "+txn.TransactionID, err)
	}
	return nil
}

const transactionSelectColumns = `
	SELECT transaction_id, user_nik, store_code, transaction_date, source,
	       coin_value, big_money_value,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM transactions
`

func scanTransactionRow(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserNik,
		&m.StoreCode,
		&m.TransactionDate,
		&m.Source,
		&m.CoinValue,
		&m.BigMoneyValue,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindTransactionByID retrieves a transaction with its detail lines.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := transactionSelectColumns + ` WHERE transaction_id = $1;`
	m, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	detailsByID, err := r.findDetailsByTransactionIDs(ctx, []string{transactionID})
	if err != nil {
		return nil, err
	}

	d := mapping.ToDomainTransaction(m, detailsByID[transactionID])
	return &d, nil
}

// ListTransactionsByUser retrieves a user's transactions newest first using
// token-based pagination, with detail lines attached.
func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userNik string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	filterClause := `WHERE user_nik = $1`
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{userNik}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (transaction_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)

		query := transactionSelectColumns + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := transactionSelectColumns + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for user "+userNik, err)
	}
	defer rows.Close()

	modelTxns := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanTransactionRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row for user "+userNik, scanErr)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows for user "+userNik, err)
	}

	var nextTokenVal *string
	results := modelTxns
	if len(modelTxns) > limit {
		lastTxn := modelTxns[limit-1] // the last item included in this page
		token := pagination.EncodeToken(lastTxn.TransactionDate, lastTxn.CreatedAt)
		nextTokenVal = &token
		results = modelTxns[:limit]
	}

	ids := make([]string, len(results))
	for i, m := range results {
		ids[i] = m.TransactionID
	}
	detailsByID, err := r.findDetailsByTransactionIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	domainTxns := make([]domain.Transaction, len(results))
	for i, m := range results {
		domainTxns[i] = mapping.ToDomainTransaction(m, detailsByID[m.TransactionID])
	}
	return domainTxns, nextTokenVal, nil
}

// findDetailsByTransactionIDs fetches detail rows for a set of transactions,
// keyed by transaction ID.
func (r *PgxTransactionRepository) findDetailsByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string][]models.TransactionDetail, error) {
	if len(transactionIDs) == 0 {
		return map[string][]models.TransactionDetail{}, nil
	}

	query := `
		SELECT transaction_id, denomination, quantity, kind
		FROM transaction_details
		WHERE transaction_id = ANY($1)
		ORDER BY transaction_id, denomination;
	`
	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transaction details", err)
	}
	defer rows.Close()

	detailsByID := make(map[string][]models.TransactionDetail)
	for rows.Next() {
		var d models.TransactionDetail
		if err := rows.Scan(&d.TransactionID, &d.Denomination, &d.Quantity, &d.Kind); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction detail row", err)
		}
		detailsByID[d.TransactionID] = append(detailsByID[d.TransactionID], d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction detail rows", err)
	}

	return detailsByID, nil
}
