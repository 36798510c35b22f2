package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tukarkoin/tukar_koin_app/internal/apperrors"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	portssvc "github.com/tukarkoin/tukar_koin_app/internal/core/ports/services"
	"github.com/tukarkoin/tukar_koin_app/internal/dto"
	"github.com/tukarkoin/tukar_koin_app/internal/handlers"
	"github.com/tukarkoin/tukar_koin_app/internal/utils"
	"github.com/tukarkoin/tukar_koin_app/pkg/config"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

func (m *MockTransactionService) RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest, callerNik string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, callerNik)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactionsForUser(ctx context.Context, userNik string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userNik, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTransactionService
	jwtSecret   string
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockService = new(MockTransactionService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true,
	}
	services := &portssvc.ServiceContainer{
		Transaction: suite.mockService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *TransactionHandlerTestSuite) generateTestToken(nik string, role domain.UserRole) string {
	token, err := utils.GenerateJWT(nik, string(role), suite.jwtSecret, time.Hour, "tukar-koin-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *TransactionHandlerTestSuite) fieldRequestBody() []byte {
	body, _ := json.Marshal(dto.RecordTransactionRequest{
		StoreCode: "S-01",
		Source:    "field",
		Details: []dto.TransactionDetailRequest{
			{Denomination: 1000, Quantity: 30, Kind: "COIN"},
		},
	})
	return body
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestRecordTransaction_Success() {
	expected := &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserNik:       "C-1001",
		Source:        domain.SourceField,
	}

	suite.mockService.On("RecordTransaction", mock.Anything,
		mock.MatchedBy(func(r dto.RecordTransactionRequest) bool {
			return r.Source == "field" && len(r.Details) == 1
		}),
		"C-1001",
	).Return(expected, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(suite.fieldRequestBody()))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("C-1001", domain.RoleCashier))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.TransactionID, resp.TransactionID)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestRecordTransaction_InsufficientStock() {
	suite.mockService.On("RecordTransaction", mock.Anything, mock.Anything, "C-1001").
		Return(nil, apperrors.NewInsufficientStockError(1000, 70, 1000)).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(suite.fieldRequestBody()))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("C-1001", domain.RoleCashier))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	// The caller gets enough structured detail to render a specific message.
	var body map[string]any
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.EqualValues(1000, body["denomination"])
	suite.EqualValues(70, body["available"])
	suite.EqualValues(1000, body["requested"])
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestRecordTransaction_NoActiveAssignment() {
	suite.mockService.On("RecordTransaction", mock.Anything, mock.Anything, "C-1001").
		Return(nil, apperrors.ErrNoActiveAssignment).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(suite.fieldRequestBody()))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("C-1001", domain.RoleCashier))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestRecordTransaction_InvalidPayload() {
	// Unknown source value is rejected by binding before the service runs.
	body, _ := json.Marshal(dto.RecordTransactionRequest{
		Source: "mailorder",
		Details: []dto.TransactionDetailRequest{
			{Denomination: 1000, Quantity: 1, Kind: "COIN"},
		},
	})

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("C-1001", domain.RoleCashier))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "RecordTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestListMyTransactions_Success() {
	expected := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{TransactionID: uuid.NewString(), UserNik: "C-1001"},
		},
	}

	suite.mockService.On("ListTransactionsForUser", mock.Anything, "C-1001",
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool { return p.Limit == 10 })).
		Return(expected, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions?limit=10", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("C-1001", domain.RoleCashier))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListTransactionsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListUserTransactions_NonAdminForbidden() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions/user/C-2002", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("C-1001", domain.RoleCashier))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListTransactionsForUser", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
