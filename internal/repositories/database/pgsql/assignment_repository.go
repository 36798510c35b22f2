package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tukarkoin/tukar_koin_app/internal/apperrors"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	portsrepo "github.com/tukarkoin/tukar_koin_app/internal/core/ports/repositories"
	"github.com/tukarkoin/tukar_koin_app/internal/models"
	"github.com/tukarkoin/tukar_koin_app/internal/utils/mapping"
	"github.com/tukarkoin/tukar_koin_app/internal/utils/pagination"
)

const uniqueViolationCode = "23505"

type PgxAssignmentRepository struct {
	BaseRepository
	stockRepo   portsrepo.WarehouseStockRepositoryFacade
	balanceRepo portsrepo.UserBalanceRepositoryFacade
}

// newPgxAssignmentRepository creates a new repository for assignment data.
// The stock and balance repositories are injected so lifecycle writes can
// apply ledger side effects inside the same DB transaction.
func newPgxAssignmentRepository(pool *pgxpool.Pool, stockRepo portsrepo.WarehouseStockRepositoryFacade, balanceRepo portsrepo.UserBalanceRepositoryFacade) portsrepo.AssignmentRepositoryFacade {
	return &PgxAssignmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		stockRepo:      stockRepo,
		balanceRepo:    balanceRepo,
	}
}

// Ensure PgxAssignmentRepository implements portsrepo.AssignmentRepositoryFacade
var _ portsrepo.AssignmentRepositoryFacade = (*PgxAssignmentRepository)(nil)

// assignmentSelectColumns is the shared select list joining display names for
// the vehicle, the cashier and the driver.
const assignmentSelectColumns = `
	SELECT a.assignment_id, a.assignment_date, a.vehicle_id, a.cashier_nik, a.driver_nik,
	       a.initial_stock, a.current_stock, a.status, a.store_codes, a.current_stop_index, a.revision,
	       a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
	       COALESCE(v.name, ''), COALESCE(cu.name, ''), COALESCE(du.name, '')
	FROM assignments a
	LEFT JOIN vehicles v ON v.vehicle_id = a.vehicle_id
	LEFT JOIN users cu ON cu.nik = a.cashier_nik
	LEFT JOIN users du ON du.nik = a.driver_nik
`

func scanAssignmentRow(row pgx.Row) (models.Assignment, error) {
	var m models.Assignment
	err := row.Scan(
		&m.AssignmentID,
		&m.AssignmentDate,
		&m.VehicleID,
		&m.CashierNik,
		&m.DriverNik,
		&m.InitialStock,
		&m.CurrentStock,
		&m.Status,
		&m.StoreCodes,
		&m.CurrentStopIndex,
		&m.Revision,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.VehicleName,
		&m.CashierName,
		&m.DriverName,
	)
	return m, err
}

// CreateAssignment inserts the assignment, deducts the float from the
// warehouse and credits the cashier's balances within a DB transaction.
func (r *PgxAssignmentRepository) CreateAssignment(ctx context.Context, assignment domain.Assignment, warehouseDeltas domain.DenominationLedger, balanceDelta domain.BalanceDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	m := mapping.ToModelAssignment(assignment)
	query := `
		INSERT INTO assignments (
			assignment_id, assignment_date, vehicle_id, cashier_nik, driver_nik,
			initial_stock, current_stock, status, store_codes, current_stop_index, revision,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, query,
		m.AssignmentID,
		m.AssignmentDate,
		m.VehicleID,
		m.CashierNik,
		m.DriverNik,
		m.InitialStock,
		m.CurrentStock,
		m.Status,
		m.StoreCodes,
		m.CurrentStopIndex,
		m.Revision,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			// One of the partial unique indexes fired: the vehicle, cashier or
			// driver already has an open assignment on that date.
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to insert assignment "+m.AssignmentID, err)
	}

	if err := r.stockRepo.ApplyStockDeltasInTx(ctx, tx, warehouseDeltas, m.CreatedBy, m.CreatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to deduct warehouse stock for assignment "+m.AssignmentID, err)
	}

	if err := r.balanceRepo.ApplyBalanceDeltaInTx(ctx, tx, balanceDelta, m.CreatedBy, m.CreatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to credit cashier balance for assignment "+m.AssignmentID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction for assignment "+m.AssignmentID, err)
	}
	return nil
}

// UpdateAssignment rewrites the mutable assignment fields. The revision is
// bumped so any in-flight stock swap based on the previous state fails its
// compare-and-swap and retries.
func (r *PgxAssignmentRepository) UpdateAssignment(ctx context.Context, assignment domain.Assignment) error {
	m := mapping.ToModelAssignment(assignment)
	query := `
		UPDATE assignments
		SET assignment_date = $2,
		    vehicle_id = $3,
		    cashier_nik = $4,
		    driver_nik = $5,
		    initial_stock = $6,
		    current_stock = $7,
		    status = $8,
		    store_codes = $9,
		    current_stop_index = $10,
		    revision = revision + 1,
		    last_updated_at = $11,
		    last_updated_by = $12
		WHERE assignment_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AssignmentID,
		m.AssignmentDate,
		m.VehicleID,
		m.CashierNik,
		m.DriverNik,
		m.InitialStock,
		m.CurrentStock,
		m.Status,
		m.StoreCodes,
		m.CurrentStopIndex,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to update assignment "+m.AssignmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("assignment " + m.AssignmentID + " not found for update")
	}
	return nil
}

// CompleteAssignment marks the assignment COMPLETED, returns the remaining
// stock to the warehouse and debits the cashier's balances within a DB
// transaction.
func (r *PgxAssignmentRepository) CompleteAssignment(ctx context.Context, assignment domain.Assignment, returnedStock domain.DenominationLedger, balanceDelta domain.BalanceDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelAssignment(assignment)
	query := `
		UPDATE assignments
		SET status = $2,
		    current_stock = $3,
		    revision = revision + 1,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE assignment_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.AssignmentID,
		m.Status,
		m.CurrentStock,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to complete assignment "+m.AssignmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("assignment " + m.AssignmentID + " not found for completion")
	}

	if err := r.stockRepo.ApplyStockDeltasInTx(ctx, tx, returnedStock, m.LastUpdatedBy, m.LastUpdatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to return stock to warehouse for assignment "+m.AssignmentID, err)
	}

	if err := r.balanceRepo.ApplyBalanceDeltaInTx(ctx, tx, balanceDelta, m.LastUpdatedBy, m.LastUpdatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to debit cashier balance for assignment "+m.AssignmentID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit completion of assignment "+m.AssignmentID, err)
	}
	return nil
}

// DeleteAssignment hard-deletes the assignment and applies the given
// warehouse deltas (the unwound initial stock, or nil) in one transaction.
func (r *PgxAssignmentRepository) DeleteAssignment(ctx context.Context, assignmentID string, warehouseDeltas domain.DenominationLedger, deletedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM assignments WHERE assignment_id = $1;`, assignmentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete assignment "+assignmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("assignment " + assignmentID + " not found for deletion")
	}

	now := time.Now()
	if err := r.stockRepo.ApplyStockDeltasInTx(ctx, tx, warehouseDeltas, deletedBy, now); err != nil {
		return apperrors.NewAppError(500, "failed to restore warehouse stock for deleted assignment "+assignmentID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit deletion of assignment "+assignmentID, err)
	}
	return nil
}

// FindAssignmentByID retrieves an assignment by its ID.
func (r *PgxAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	query := assignmentSelectColumns + ` WHERE a.assignment_id = $1;`
	m, err := scanAssignmentRow(r.Pool.QueryRow(ctx, query, assignmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find assignment by ID "+assignmentID, err)
	}

	d := mapping.ToDomainAssignment(m)
	return &d, nil
}

// FindActiveAssignmentByCashier retrieves the cashier's ACTIVE assignment.
// The partial unique index on cashier_nik guarantees at most one open
// assignment per cashier per date; ACTIVE across dates is resolved newest first.
func (r *PgxAssignmentRepository) FindActiveAssignmentByCashier(ctx context.Context, cashierNik string) (*domain.Assignment, error) {
	query := assignmentSelectColumns + `
		WHERE a.cashier_nik = $1 AND a.status = 'ACTIVE'
		ORDER BY a.assignment_date DESC, a.created_at DESC
		LIMIT 1;
	`
	m, err := scanAssignmentRow(r.Pool.QueryRow(ctx, query, cashierNik))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find active assignment for cashier "+cashierNik, err)
	}

	d := mapping.ToDomainAssignment(m)
	return &d, nil
}

// HasOpenAssignment reports whether any non-completed assignment already
// claims the vehicle, the cashier or the driver on the given date.
func (r *PgxAssignmentRepository) HasOpenAssignment(ctx context.Context, date time.Time, vehicleID, cashierNik, driverNik string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM assignments
			WHERE assignment_date = $1
			  AND status != 'COMPLETED'
			  AND (vehicle_id = $2 OR cashier_nik = $3 OR driver_nik = $4)
		);
	`
	var exists bool
	err := r.Pool.QueryRow(ctx, query, date, vehicleID, cashierNik, driverNik).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check for open assignments", err)
	}
	return exists, nil
}

// ListAssignments retrieves a paginated list of assignments newest first using
// token-based pagination.
func (r *PgxAssignmentRepository) ListAssignments(ctx context.Context, limit int, nextToken *string) ([]domain.Assignment, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	orderByClause := `ORDER BY a.assignment_date DESC, a.created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `WHERE (a.assignment_date, a.created_at) < ($1, $2)`
		args = append(args, lastDate, lastCreatedAt)

		query := assignmentSelectColumns + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := assignmentSelectColumns + " " + orderByClause + " LIMIT $1;"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query assignments", err)
	}
	defer rows.Close()

	modelAssignments := make([]models.Assignment, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanAssignmentRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan assignment row", scanErr)
		}
		modelAssignments = append(modelAssignments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating assignment rows", err)
	}

	var nextTokenVal *string
	results := modelAssignments
	if len(modelAssignments) > limit {
		lastAssignment := modelAssignments[limit-1] // the last item included in this page
		token := pagination.EncodeToken(lastAssignment.AssignmentDate, lastAssignment.CreatedAt)
		nextTokenVal = &token
		results = modelAssignments[:limit]
	}

	return mapping.ToDomainAssignmentSlice(results), nextTokenVal, nil
}
