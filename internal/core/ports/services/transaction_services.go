package services

import (
	"context"

	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	"github.com/tukarkoin/tukar_koin_app/internal/dto"
)

// TransactionRecorderSvc validates and records exchanges.
type TransactionRecorderSvc interface {
	// RecordTransaction records an exchange. Field transactions are validated
	// against the cashier's ACTIVE assignment float all-or-nothing; walk-ins
	// adjust the warehouse directly with no sufficiency check.
	RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest, callerNik string) (*domain.Transaction, error)
}

// TransactionReaderSvc defines read operations for recorded transactions.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves one transaction with its detail lines.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsForUser retrieves a user's transactions newest first.
	ListTransactionsForUser(ctx context.Context, userNik string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionSvcFacade combines all transaction service interfaces.
type TransactionSvcFacade interface {
	TransactionRecorderSvc
	TransactionReaderSvc
}
