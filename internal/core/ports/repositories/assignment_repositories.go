package repositories

import (
	"context"
	"time"

	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
)

// AssignmentStockUpdate carries the compare-and-swap write applied to an
// assignment's live stock by a field transaction. The update must fail with
// apperrors.ErrConcurrentUpdate when the stored revision no longer matches
// ExpectedRevision.
type AssignmentStockUpdate struct {
	AssignmentID     string
	NewStock         domain.DenominationLedger
	ExpectedRevision int64
}

// AssignmentReader defines read operations for assignments.
type AssignmentReader interface {
	// FindAssignmentByID retrieves one assignment, including resolved
	// vehicle/cashier/driver display names.
	FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error)

	// ListAssignments retrieves assignments newest first with cursor pagination.
	ListAssignments(ctx context.Context, limit int, nextToken *string) ([]domain.Assignment, *string, error)

	// FindActiveAssignmentByCashier retrieves the single ACTIVE assignment
	// owned by the cashier, or apperrors.ErrNotFound.
	FindActiveAssignmentByCashier(ctx context.Context, cashierNik string) (*domain.Assignment, error)

	// HasOpenAssignment reports whether any non-completed assignment exists on
	// the date for the vehicle, the cashier or the driver.
	HasOpenAssignment(ctx context.Context, date time.Time, vehicleID, cashierNik, driverNik string) (bool, error)
}

// AssignmentWriter defines the coordinated write operations of the assignment
// lifecycle. Each method groups its ledger upserts and the assignment-row
// write into one storage transaction.
type AssignmentWriter interface {
	// CreateAssignment persists the assignment, applies the warehouse stock
	// deltas (negative: the float leaves the warehouse) and credits the
	// cashier's aggregate balances, atomically.
	CreateAssignment(ctx context.Context, assignment domain.Assignment, warehouseDeltas domain.DenominationLedger, balanceDelta domain.BalanceDelta) error

	// UpdateAssignment patches assignment fields in place. No stock side effects.
	UpdateAssignment(ctx context.Context, assignment domain.Assignment) error

	// CompleteAssignment marks the assignment COMPLETED with the remaining
	// stock, returns the stock to the warehouse and debits the cashier's
	// balances, atomically.
	CompleteAssignment(ctx context.Context, assignment domain.Assignment, returnedStock domain.DenominationLedger, balanceDelta domain.BalanceDelta) error

	// DeleteAssignment hard-deletes the assignment row, applying the given
	// warehouse deltas (the unwound initial stock, or nil) in the same
	// transaction. deletedBy is recorded on the stock unwind for audit.
	DeleteAssignment(ctx context.Context, assignmentID string, warehouseDeltas domain.DenominationLedger, deletedBy string) error
}

// AssignmentRepositoryFacade combines all assignment repository interfaces.
type AssignmentRepositoryFacade interface {
	AssignmentReader
	AssignmentWriter
}
