package services

import (
	"context"

	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	"github.com/tukarkoin/tukar_koin_app/internal/dto"
)

// AssignmentReaderSvc defines read operations for assignments.
type AssignmentReaderSvc interface {
	// GetAssignmentByID retrieves one assignment with resolved display names.
	GetAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error)

	// ListAssignments retrieves assignments newest first.
	ListAssignments(ctx context.Context, params dto.ListAssignmentsParams) (*dto.ListAssignmentsResponse, error)

	// GetActiveAssignmentForCashier retrieves the caller's own ACTIVE assignment.
	GetActiveAssignmentForCashier(ctx context.Context, cashierNik string) (*domain.Assignment, error)
}

// AssignmentLifecycleSvc defines the lifecycle write operations.
type AssignmentLifecycleSvc interface {
	// CreateAssignment dispatches a new assignment: checks the one-open-
	// assignment-per-date rule, moves the float out of the warehouse onto the
	// cashier's balances and persists the assignment with status READY.
	CreateAssignment(ctx context.Context, req dto.CreateAssignmentRequest, creatorNik string) (*domain.Assignment, error)

	// UpdateAssignment applies a raw field patch with no stock side effects.
	UpdateAssignment(ctx context.Context, assignmentID string, req dto.UpdateAssignmentRequest, updaterNik string) (*domain.Assignment, error)

	// CompleteAssignment returns the remaining stock to the warehouse, debits
	// the cashier's balances and marks the assignment COMPLETED. Returns the
	// updated assignment and the returned stock map.
	CompleteAssignment(ctx context.Context, assignmentID string, req dto.CompleteAssignmentRequest, updaterNik string) (*domain.Assignment, domain.DenominationLedger, error)

	// DeleteAssignment hard-deletes an assignment. Stock is unwound back to
	// the warehouse only when the assignment is ACTIVE; the user balance is
	// never adjusted on delete.
	DeleteAssignment(ctx context.Context, assignmentID string, deleterNik string) error
}

// AssignmentSvcFacade combines all assignment service interfaces.
type AssignmentSvcFacade interface {
	AssignmentReaderSvc
	AssignmentLifecycleSvc
}
