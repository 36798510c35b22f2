package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tukarkoin/tukar_koin_app/internal/apperrors"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	portsrepo "github.com/tukarkoin/tukar_koin_app/internal/core/ports/repositories"
	portssvc "github.com/tukarkoin/tukar_koin_app/internal/core/ports/services"
	"github.com/tukarkoin/tukar_koin_app/internal/dto"
	"github.com/tukarkoin/tukar_koin_app/internal/middleware"
)

// assignmentService orchestrates the assignment lifecycle: every create,
// complete and delete is a coordinated transfer between the warehouse ledger,
// the assignment's float and the cashier's aggregate balances.
type assignmentService struct {
	assignmentRepo portsrepo.AssignmentRepositoryFacade
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(assignmentRepo portsrepo.AssignmentRepositoryFacade) portssvc.AssignmentSvcFacade {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
	}
}

// Ensure assignmentService implements the portssvc.AssignmentSvcFacade interface
var _ portssvc.AssignmentSvcFacade = (*assignmentService)(nil)

// GetAssignmentByID retrieves one assignment with resolved display names.
func (s *assignmentService) GetAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	return s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
}

// ListAssignments retrieves assignments newest first.
func (s *assignmentService) ListAssignments(ctx context.Context, params dto.ListAssignmentsParams) (*dto.ListAssignmentsResponse, error) {
	assignments, nextToken, err := s.assignmentRepo.ListAssignments(ctx, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AssignmentResponse, len(assignments))
	for i := range assignments {
		responses[i] = dto.ToAssignmentResponse(&assignments[i])
	}
	return &dto.ListAssignmentsResponse{
		Assignments: responses,
		NextToken:   nextToken,
	}, nil
}

// GetActiveAssignmentForCashier retrieves the cashier's ACTIVE assignment.
func (s *assignmentService) GetActiveAssignmentForCashier(ctx context.Context, cashierNik string) (*domain.Assignment, error) {
	return s.assignmentRepo.FindActiveAssignmentByCashier(ctx, cashierNik)
}

// CreateAssignment dispatches a new assignment. The float leaves the
// warehouse and lands on the cashier's aggregate balances; the assignment row
// carries an independent copy of the stock as its live float.
func (s *assignmentService) CreateAssignment(ctx context.Context, req dto.CreateAssignmentRequest, creatorNik string) (*domain.Assignment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Date.IsZero() || req.VehicleID == "" || req.CashierNik == "" || req.DriverNik == "" {
		return nil, fmt.Errorf("%w: date, vehicleID, cashierNik and driverNik are required", apperrors.ErrValidation)
	}

	// Uniqueness is per calendar day. Normalize to UTC midnight so two
	// creates on the same day with different times-of-day still collide.
	assignmentDate := req.Date.UTC().Truncate(24 * time.Hour)

	// Pre-check for the specific conflict message. The partial unique indexes
	// close the race between this check and the insert.
	hasOpen, err := s.assignmentRepo.HasOpenAssignment(ctx, assignmentDate, req.VehicleID, req.CashierNik, req.DriverNik)
	if err != nil {
		return nil, err
	}
	if hasOpen {
		return nil, fmt.Errorf("%w: officer or vehicle already has an active assignment on this date", apperrors.ErrConflict)
	}

	status := domain.AssignmentReady
	if req.Status != nil {
		status = *req.Status
	}

	initialStock := req.InitialStock
	if initialStock == nil {
		initialStock = domain.DenominationLedger{}
	}

	now := time.Now().UTC()
	assignment := domain.Assignment{
		AssignmentID:     uuid.NewString(),
		AssignmentDate:   assignmentDate,
		VehicleID:        req.VehicleID,
		CashierNik:       req.CashierNik,
		DriverNik:        req.DriverNik,
		InitialStock:     initialStock,
		CurrentStock:     initialStock.Clone(), // independent copy, never a shared reference
		Status:           status,
		StoreCodes:       req.StoreCodes,
		CurrentStopIndex: 0,
		Revision:         0,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorNik,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorNik,
		},
	}

	// Only positive quantities move value: deducted from the warehouse and
	// credited onto the cashier's balances.
	handedOut := initialStock.Positive()
	coinValue, bigMoneyValue := handedOut.SplitValue()
	balanceDelta := domain.BalanceDelta{
		UserNik:       req.CashierNik,
		CoinDelta:     coinValue,
		BigMoneyDelta: bigMoneyValue,
	}

	if err := s.assignmentRepo.CreateAssignment(ctx, assignment, handedOut.Negate(), balanceDelta); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: officer or vehicle already has an active assignment on this date", apperrors.ErrConflict)
		}
		logger.Error("failed to create assignment", slog.String("cashier_nik", req.CashierNik), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("assignment created",
		slog.String("assignment_id", assignment.AssignmentID),
		slog.String("cashier_nik", assignment.CashierNik),
		slog.String("vehicle_id", assignment.VehicleID))

	return s.assignmentRepo.FindAssignmentByID(ctx, assignment.AssignmentID)
}

// UpdateAssignment applies a raw field patch with no stock side effects. It
// carries status transitions (READY to ACTIVE on field acceptance) and stop
// index advancement during route progress.
func (s *assignmentService) UpdateAssignment(ctx context.Context, assignmentID string, req dto.UpdateAssignmentRequest, updaterNik string) (*domain.Assignment, error) {
	assignment, err := s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		assignment.AssignmentDate = req.Date.UTC().Truncate(24 * time.Hour)
	}
	if req.VehicleID != nil {
		assignment.VehicleID = *req.VehicleID
	}
	if req.CashierNik != nil {
		assignment.CashierNik = *req.CashierNik
	}
	if req.DriverNik != nil {
		assignment.DriverNik = *req.DriverNik
	}
	if req.InitialStock != nil {
		assignment.InitialStock = *req.InitialStock
	}
	if req.CurrentStock != nil {
		assignment.CurrentStock = *req.CurrentStock
	}
	if req.Status != nil {
		assignment.Status = *req.Status
	}
	if req.StoreCodes != nil {
		assignment.StoreCodes = *req.StoreCodes
	}
	if req.CurrentStopIndex != nil {
		if *req.CurrentStopIndex < assignment.CurrentStopIndex {
			return nil, fmt.Errorf("%w: currentStopIndex may not move backwards", apperrors.ErrValidation)
		}
		assignment.CurrentStopIndex = *req.CurrentStopIndex
	}

	now := time.Now().UTC()
	assignment.LastUpdatedAt = now
	assignment.LastUpdatedBy = updaterNik

	if err := s.assignmentRepo.UpdateAssignment(ctx, *assignment); err != nil {
		return nil, err
	}

	return s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
}

// CompleteAssignment returns the remaining stock to the warehouse, debits the
// cashier's balances by the returned value and marks the assignment
// COMPLETED. Completing an already COMPLETED assignment is rejected, so stock
// can never be double-returned.
func (s *assignmentService) CompleteAssignment(ctx context.Context, assignmentID string, req dto.CompleteAssignmentRequest, updaterNik string) (*domain.Assignment, domain.DenominationLedger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assignment, err := s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, nil, err
	}
	if assignment.IsCompleted() {
		return nil, nil, fmt.Errorf("%w: assignment %s is already completed", apperrors.ErrConflict, assignmentID)
	}

	remainingStock := req.RemainingStock
	if remainingStock == nil {
		remainingStock = domain.DenominationLedger{}
	}

	// Denominations absent from the initial float are still accepted back;
	// the warehouse takes whatever the crew returns.
	returnedStock := remainingStock.Positive()
	returnedCoin, returnedBigMoney := returnedStock.SplitValue()
	balanceDelta := domain.BalanceDelta{
		UserNik:       assignment.CashierNik,
		CoinDelta:     returnedCoin.Neg(),
		BigMoneyDelta: returnedBigMoney.Neg(),
	}

	now := time.Now().UTC()
	assignment.Status = domain.AssignmentCompleted
	assignment.CurrentStock = remainingStock.Clone()
	assignment.LastUpdatedAt = now
	assignment.LastUpdatedBy = updaterNik

	if err := s.assignmentRepo.CompleteAssignment(ctx, *assignment, returnedStock, balanceDelta); err != nil {
		logger.Error("failed to complete assignment", slog.String("assignment_id", assignmentID), slog.String("error", err.Error()))
		return nil, nil, err
	}

	logger.Info("assignment completed",
		slog.String("assignment_id", assignmentID),
		slog.String("cashier_nik", assignment.CashierNik))

	updated, err := s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, nil, err
	}
	return updated, returnedStock, nil
}

// DeleteAssignment hard-deletes an assignment. The initial stock is unwound
// back to the warehouse only when the assignment is ACTIVE; a READY
// assignment's float stays deducted, and the cashier's balances are never
// adjusted on delete.
func (s *assignmentService) DeleteAssignment(ctx context.Context, assignmentID string, deleterNik string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	assignment, err := s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return err
	}

	var unwoundStock domain.DenominationLedger
	if assignment.Status == domain.AssignmentActive {
		unwoundStock = assignment.InitialStock.Positive()
	}

	if err := s.assignmentRepo.DeleteAssignment(ctx, assignmentID, unwoundStock, deleterNik); err != nil {
		return err
	}

	logger.Info("assignment deleted",
		slog.String("assignment_id", assignmentID),
		slog.String("deleted_by", deleterNik),
		slog.Bool("stock_unwound", len(unwoundStock) > 0))
	return nil
}
