package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tukarkoin/tukar_koin_app/internal/apperrors"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	portsrepo "github.com/tukarkoin/tukar_koin_app/internal/core/ports/repositories"
	portssvc "github.com/tukarkoin/tukar_koin_app/internal/core/ports/services"
	"github.com/tukarkoin/tukar_koin_app/internal/dto"
	"github.com/tukarkoin/tukar_koin_app/internal/middleware"
)

// defaultStockSwapRetries bounds the read-validate-write loop a field
// transaction runs when it loses the revision race to a concurrent exchange
// on the same assignment.
const defaultStockSwapRetries = 5

// transactionService validates and records exchanges. Field transactions
// consume the cashier's assignment float under optimistic concurrency;
// walk-ins adjust the warehouse directly.
type transactionService struct {
	txnRepo          portsrepo.TransactionRepositoryFacade
	assignmentRepo   portsrepo.AssignmentRepositoryFacade
	stockSwapRetries int
}

// NewTransactionService creates a new TransactionService. stockSwapRetries
// values below one fall back to the default.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, assignmentRepo portsrepo.AssignmentRepositoryFacade, stockSwapRetries int) portssvc.TransactionSvcFacade {
	if stockSwapRetries < 1 {
		stockSwapRetries = defaultStockSwapRetries
	}
	return &transactionService{
		txnRepo:          txnRepo,
		assignmentRepo:   assignmentRepo,
		stockSwapRetries: stockSwapRetries,
	}
}

// Ensure transactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// RecordTransaction records an exchange for the caller (or req.UserNik when
// set). The field path validates coin consumption against the user's ACTIVE
// assignment all-or-nothing; the walk-in path applies signed warehouse deltas
// with no sufficiency check.
func (s *transactionService) RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest, callerNik string) (*domain.Transaction, error) {
	userNik := req.UserNik
	if userNik == "" {
		userNik = callerNik
	}

	details := domain.MergeDetails(req.ToDomainDetails())
	coinValue, bigMoneyValue := domain.DetailValues(details)

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserNik:         userNik,
		StoreCode:       req.StoreCode,
		TransactionDate: now,
		Details:         details,
		CoinValue:       coinValue,
		BigMoneyValue:   bigMoneyValue,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     callerNik,
			LastUpdatedAt: now,
			LastUpdatedBy: callerNik,
		},
	}

	switch strings.ToLower(req.Source) {
	case "field":
		txn.Source = domain.SourceField
		if err := s.recordFieldTransaction(ctx, &txn); err != nil {
			return nil, err
		}
	case "walk_in":
		txn.Source = domain.SourceWalkIn
		if err := s.recordWalkInTransaction(ctx, &txn); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: source must be field or walk_in", apperrors.ErrValidation)
	}

	return s.txnRepo.FindTransactionByID(ctx, txn.TransactionID)
}

// recordFieldTransaction runs the read-validate-write loop against the user's
// ACTIVE assignment. The sufficiency check and the decrement operate on a
// working copy; the swap is compare-and-swap on the assignment revision, and a
// lost race re-reads and re-validates from scratch so no partial consumption
// can ever land.
func (s *transactionService) recordFieldTransaction(ctx context.Context, txn *domain.Transaction) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	for attempt := 0; attempt < s.stockSwapRetries; attempt++ {
		assignment, err := s.assignmentRepo.FindActiveAssignmentByCashier(ctx, txn.UserNik)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.ErrNoActiveAssignment
			}
			return err
		}

		workingStock := assignment.CurrentStock.Clone()

		// All-or-nothing: validate and decrement in one pass over the working
		// copy so cumulative consumption across lines of the same denomination
		// is checked, not each line against the untouched float.
		for _, line := range txn.CoinDetails() {
			available := workingStock.Quantity(line.Denomination)
			if available < line.Quantity {
				return apperrors.NewInsufficientStockError(line.Denomination, available, line.Quantity)
			}
			workingStock[line.Denomination] -= line.Quantity
		}

		stockUpdate := portsrepo.AssignmentStockUpdate{
			AssignmentID:     assignment.AssignmentID,
			NewStock:         workingStock,
			ExpectedRevision: assignment.Revision,
		}
		balanceDelta := domain.BalanceDelta{
			UserNik:       assignment.CashierNik,
			CoinDelta:     txn.CoinValue.Neg(),
			BigMoneyDelta: txn.BigMoneyValue,
		}

		err = s.txnRepo.SaveFieldTransaction(ctx, *txn, stockUpdate, balanceDelta)
		if err == nil {
			logger.Info("field transaction recorded",
				slog.String("transaction_id", txn.TransactionID),
				slog.String("assignment_id", assignment.AssignmentID),
				slog.Int("attempt", attempt+1))
			return nil
		}
		if !errors.Is(err, apperrors.ErrConcurrentUpdate) {
			return err
		}

		logger.Warn("field transaction lost stock swap race, retrying",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("assignment_id", assignment.AssignmentID),
			slog.Int("attempt", attempt+1))
	}

	return fmt.Errorf("%w: stock swap retries exhausted for user %s", apperrors.ErrConcurrentUpdate, txn.UserNik)
}

// recordWalkInTransaction applies signed warehouse deltas: coins handed out
// leave the warehouse, big money received enters it. There is no sufficiency
// check on this path.
func (s *transactionService) recordWalkInTransaction(ctx context.Context, txn *domain.Transaction) error {
	deltas := domain.DenominationLedger{}
	for _, line := range txn.CoinDetails() {
		deltas[line.Denomination] -= line.Quantity
	}
	for _, line := range txn.BigMoneyDetails() {
		deltas[line.Denomination] += line.Quantity
	}

	return s.txnRepo.SaveWalkInTransaction(ctx, *txn, deltas)
}

// GetTransactionByID retrieves one transaction with its detail lines.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

// ListTransactionsForUser retrieves a user's transactions newest first.
func (s *transactionService) ListTransactionsForUser(ctx context.Context, userNik string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	transactions, nextToken, err := s.txnRepo.ListTransactionsByUser(ctx, userNik, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}
