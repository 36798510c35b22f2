package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tukarkoin/tukar_koin_app/internal/apperrors"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	portsrepo "github.com/tukarkoin/tukar_koin_app/internal/core/ports/repositories"
	portssvc "github.com/tukarkoin/tukar_koin_app/internal/core/ports/services"
	"github.com/tukarkoin/tukar_koin_app/internal/core/services"
	"github.com/tukarkoin/tukar_koin_app/internal/dto"
)

// --- Mock AssignmentRepository ---
type MockAssignmentRepository struct {
	mock.Mock
}

// Ensure MockAssignmentRepository implements portsrepo.AssignmentRepositoryFacade
var _ portsrepo.AssignmentRepositoryFacade = (*MockAssignmentRepository)(nil)

func (m *MockAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListAssignments(ctx context.Context, limit int, nextToken *string) ([]domain.Assignment, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Assignment), returnedNextToken, args.Error(2)
}

func (m *MockAssignmentRepository) FindActiveAssignmentByCashier(ctx context.Context, cashierNik string) (*domain.Assignment, error) {
	args := m.Called(ctx, cashierNik)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) HasOpenAssignment(ctx context.Context, date time.Time, vehicleID, cashierNik, driverNik string) (bool, error) {
	args := m.Called(ctx, date, vehicleID, cashierNik, driverNik)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepository) CreateAssignment(ctx context.Context, assignment domain.Assignment, warehouseDeltas domain.DenominationLedger, balanceDelta domain.BalanceDelta) error {
	args := m.Called(ctx, assignment, warehouseDeltas, balanceDelta)
	return args.Error(0)
}

func (m *MockAssignmentRepository) UpdateAssignment(ctx context.Context, assignment domain.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) CompleteAssignment(ctx context.Context, assignment domain.Assignment, returnedStock domain.DenominationLedger, balanceDelta domain.BalanceDelta) error {
	args := m.Called(ctx, assignment, returnedStock, balanceDelta)
	return args.Error(0)
}

func (m *MockAssignmentRepository) DeleteAssignment(ctx context.Context, assignmentID string, warehouseDeltas domain.DenominationLedger, deletedBy string) error {
	args := m.Called(ctx, assignmentID, warehouseDeltas, deletedBy)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AssignmentServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockAssignmentRepository
	service    portssvc.AssignmentSvcFacade
	cashierNik string
	driverNik  string
	vehicleID  string
	adminNik   string
}

func (suite *AssignmentServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAssignmentRepository)
	suite.service = services.NewAssignmentService(suite.mockRepo)

	suite.cashierNik = "C-1001"
	suite.driverNik = "D-2001"
	suite.vehicleID = uuid.NewString()
	suite.adminNik = "A-0001"
}

func (suite *AssignmentServiceTestSuite) activeAssignment() *domain.Assignment {
	return &domain.Assignment{
		AssignmentID:   uuid.NewString(),
		AssignmentDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		VehicleID:      suite.vehicleID,
		CashierNik:     suite.cashierNik,
		DriverNik:      suite.driverNik,
		InitialStock:   domain.DenominationLedger{1000: 100, 5000: 20},
		CurrentStock:   domain.DenominationLedger{1000: 100, 5000: 20},
		Status:         domain.AssignmentActive,
		StoreCodes:     []string{"S-01", "S-02"},
	}
}

// --- CreateAssignment ---

func (suite *AssignmentServiceTestSuite) TestCreateAssignment_Success() {
	ctx := context.Background()
	req := dto.CreateAssignmentRequest{
		Date:         time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		VehicleID:    suite.vehicleID,
		CashierNik:   suite.cashierNik,
		DriverNik:    suite.driverNik,
		InitialStock: domain.DenominationLedger{1000: 100, 5000: 20},
		StoreCodes:   []string{"S-01"},
	}

	suite.mockRepo.On("HasOpenAssignment", ctx, req.Date, suite.vehicleID, suite.cashierNik, suite.driverNik).Return(false, nil).Once()

	var saved domain.Assignment
	suite.mockRepo.On("CreateAssignment", ctx, mock.AnythingOfType("domain.Assignment"),
		// The whole float leaves the warehouse.
		domain.DenominationLedger{1000: -100, 5000: -20},
		// 1000x100 lands on the coin balance, 5000x20 on the big-money balance.
		mock.MatchedBy(func(d domain.BalanceDelta) bool {
			return d.UserNik == suite.cashierNik &&
				d.CoinDelta.Equal(decimal.NewFromInt(100000)) &&
				d.BigMoneyDelta.Equal(decimal.NewFromInt(100000))
		})).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Assignment)
		}).
		Return(nil).Once()
	suite.mockRepo.On("FindAssignmentByID", ctx, mock.AnythingOfType("string")).
		Return(suite.activeAssignment(), nil).Once()

	created, err := suite.service.CreateAssignment(ctx, req, suite.adminNik)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(saved.AssignmentID)
	suite.Equal(domain.AssignmentReady, saved.Status)
	suite.Equal(suite.adminNik, saved.CreatedBy)
	suite.Equal(int64(0), saved.Revision)
	suite.Equal(saved.InitialStock, saved.CurrentStock)
	suite.mockRepo.AssertExpectations(suite.T())

	// The live float must be an independent copy of the initial stock.
	saved.CurrentStock[1000] = 1
	suite.Equal(int64(100), saved.InitialStock[1000])
}

func (suite *AssignmentServiceTestSuite) TestCreateAssignment_NormalizesDateToUTCMidnight() {
	ctx := context.Background()
	jakarta := time.FixedZone("WIB", 7*3600)
	req := dto.CreateAssignmentRequest{
		// Same calendar day as an existing assignment, different time of day.
		Date:         time.Date(2025, 6, 2, 8, 30, 0, 0, jakarta),
		VehicleID:    suite.vehicleID,
		CashierNik:   suite.cashierNik,
		DriverNik:    suite.driverNik,
		InitialStock: domain.DenominationLedger{1000: 10},
	}
	wantDate := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// The per-day pre-check and the stored assignment both see UTC midnight,
	// so two creates on the same day cannot slip past each other on
	// time-of-day differences.
	suite.mockRepo.On("HasOpenAssignment", ctx, wantDate, suite.vehicleID, suite.cashierNik, suite.driverNik).Return(false, nil).Once()

	var saved domain.Assignment
	suite.mockRepo.On("CreateAssignment", ctx, mock.AnythingOfType("domain.Assignment"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Assignment)
		}).
		Return(nil).Once()
	suite.mockRepo.On("FindAssignmentByID", ctx, mock.AnythingOfType("string")).Return(suite.activeAssignment(), nil).Once()

	_, err := suite.service.CreateAssignment(ctx, req, suite.adminNik)

	suite.Require().NoError(err)
	suite.True(saved.AssignmentDate.Equal(wantDate))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestCreateAssignment_MissingFields() {
	ctx := context.Background()
	req := dto.CreateAssignmentRequest{
		Date:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		VehicleID: suite.vehicleID,
		// no cashier, no driver
	}

	_, err := suite.service.CreateAssignment(ctx, req, suite.adminNik)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateAssignment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestCreateAssignment_OpenAssignmentConflict() {
	ctx := context.Background()
	req := dto.CreateAssignmentRequest{
		Date:       time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		VehicleID:  suite.vehicleID,
		CashierNik: suite.cashierNik,
		DriverNik:  suite.driverNik,
	}

	suite.mockRepo.On("HasOpenAssignment", ctx, req.Date, suite.vehicleID, suite.cashierNik, suite.driverNik).Return(true, nil).Once()

	_, err := suite.service.CreateAssignment(ctx, req, suite.adminNik)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateAssignment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestCreateAssignment_InsertRaceConflict() {
	// The pre-check passes but the unique index rejects the insert because a
	// concurrent request won the race.
	ctx := context.Background()
	req := dto.CreateAssignmentRequest{
		Date:       time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		VehicleID:  suite.vehicleID,
		CashierNik: suite.cashierNik,
		DriverNik:  suite.driverNik,
	}

	suite.mockRepo.On("HasOpenAssignment", ctx, req.Date, suite.vehicleID, suite.cashierNik, suite.driverNik).Return(false, nil).Once()
	suite.mockRepo.On("CreateAssignment", ctx, mock.Anything, mock.Anything, mock.Anything).Return(apperrors.ErrConflict).Once()

	_, err := suite.service.CreateAssignment(ctx, req, suite.adminNik)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestCreateAssignment_EmptyInitialStock() {
	ctx := context.Background()
	req := dto.CreateAssignmentRequest{
		Date:       time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		VehicleID:  suite.vehicleID,
		CashierNik: suite.cashierNik,
		DriverNik:  suite.driverNik,
	}

	suite.mockRepo.On("HasOpenAssignment", ctx, req.Date, suite.vehicleID, suite.cashierNik, suite.driverNik).Return(false, nil).Once()
	suite.mockRepo.On("CreateAssignment", ctx, mock.AnythingOfType("domain.Assignment"),
		domain.DenominationLedger{},
		mock.MatchedBy(func(d domain.BalanceDelta) bool { return d.IsZero() })).
		Return(nil).Once()
	suite.mockRepo.On("FindAssignmentByID", ctx, mock.AnythingOfType("string")).
		Return(suite.activeAssignment(), nil).Once()

	_, err := suite.service.CreateAssignment(ctx, req, suite.adminNik)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- UpdateAssignment ---

func (suite *AssignmentServiceTestSuite) TestUpdateAssignment_Success() {
	ctx := context.Background()
	existing := suite.activeAssignment()
	existing.Status = domain.AssignmentReady
	newStatus := domain.AssignmentActive
	newStopIndex := 1

	suite.mockRepo.On("FindAssignmentByID", ctx, existing.AssignmentID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAssignment", ctx, mock.MatchedBy(func(a domain.Assignment) bool {
		return a.Status == domain.AssignmentActive && a.CurrentStopIndex == 1 && a.LastUpdatedBy == suite.cashierNik
	})).Return(nil).Once()
	suite.mockRepo.On("FindAssignmentByID", ctx, existing.AssignmentID).Return(existing, nil).Once()

	_, err := suite.service.UpdateAssignment(ctx, existing.AssignmentID, dto.UpdateAssignmentRequest{
		Status:           &newStatus,
		CurrentStopIndex: &newStopIndex,
	}, suite.cashierNik)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestUpdateAssignment_InitialStockPatch() {
	ctx := context.Background()
	existing := suite.activeAssignment()
	existing.Status = domain.AssignmentReady
	patched := domain.DenominationLedger{1000: 150, 2000: 40}

	suite.mockRepo.On("FindAssignmentByID", ctx, existing.AssignmentID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAssignment", ctx, mock.MatchedBy(func(a domain.Assignment) bool {
		return a.InitialStock[1000] == 150 && a.InitialStock[2000] == 40
	})).Return(nil).Once()
	suite.mockRepo.On("FindAssignmentByID", ctx, existing.AssignmentID).Return(existing, nil).Once()

	_, err := suite.service.UpdateAssignment(ctx, existing.AssignmentID, dto.UpdateAssignmentRequest{
		InitialStock: &patched,
	}, suite.adminNik)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestUpdateAssignment_DateNormalizedToUTCMidnight() {
	ctx := context.Background()
	existing := suite.activeAssignment()
	jakarta := time.FixedZone("WIB", 7*3600)
	newDate := time.Date(2025, 6, 3, 14, 45, 0, 0, jakarta)
	wantDate := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindAssignmentByID", ctx, existing.AssignmentID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAssignment", ctx, mock.MatchedBy(func(a domain.Assignment) bool {
		return a.AssignmentDate.Equal(wantDate)
	})).Return(nil).Once()
	suite.mockRepo.On("FindAssignmentByID", ctx, existing.AssignmentID).Return(existing, nil).Once()

	_, err := suite.service.UpdateAssignment(ctx, existing.AssignmentID, dto.UpdateAssignmentRequest{
		Date: &newDate,
	}, suite.adminNik)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestUpdateAssignment_StopIndexBackwards() {
	ctx := context.Background()
	existing := suite.activeAssignment()
	existing.CurrentStopIndex = 3
	backwards := 1

	suite.mockRepo.On("FindAssignmentByID", ctx, existing.AssignmentID).Return(existing, nil).Once()

	_, err := suite.service.UpdateAssignment(ctx, existing.AssignmentID, dto.UpdateAssignmentRequest{
		CurrentStopIndex: &backwards,
	}, suite.cashierNik)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAssignment", mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestUpdateAssignment_NotFound() {
	ctx := context.Background()
	assignmentID := uuid.NewString()

	suite.mockRepo.On("FindAssignmentByID", ctx, assignmentID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateAssignment(ctx, assignmentID, dto.UpdateAssignmentRequest{}, suite.cashierNik)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- CompleteAssignment ---

func (suite *AssignmentServiceTestSuite) TestCompleteAssignment_Success() {
	ctx := context.Background()
	existing := suite.activeAssignment()
	existing.CurrentStock = domain.DenominationLedger{1000: 70, 5000: 20}
	req := dto.CompleteAssignmentRequest{
		RemainingStock: domain.DenominationLedger{1000: 70, 5000: 20},
	}

	completed := *existing
	completed.Status = domain.AssignmentCompleted

	suite.mockRepo.On("FindAssignmentByID", ctx, existing.AssignmentID).Return(existing, nil).Once()
	suite.mockRepo.On("CompleteAssignment", ctx,
		mock.MatchedBy(func(a domain.Assignment) bool {
			return a.Status == domain.AssignmentCompleted && a.LastUpdatedBy == suite.adminNik
		}),
		domain.DenominationLedger{1000: 70, 5000: 20},
		// The returned value comes off the cashier's balances.
		mock.MatchedBy(func(d domain.BalanceDelta) bool {
			return d.UserNik == suite.cashierNik &&
				d.CoinDelta.Equal(decimal.NewFromInt(-70000)) &&
				d.BigMoneyDelta.Equal(decimal.NewFromInt(-100000))
		})).Return(nil).Once()
	suite.mockRepo.On("FindAssignmentByID", ctx, existing.AssignmentID).Return(&completed, nil).Once()

	updated, returnedStock, err := suite.service.CompleteAssignment(ctx, existing.AssignmentID, req, suite.adminNik)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Equal(domain.AssignmentCompleted, updated.Status)
	suite.Equal(domain.DenominationLedger{1000: 70, 5000: 20}, returnedStock)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestCompleteAssignment_AlreadyCompleted() {
	ctx := context.Background()
	existing := suite.activeAssignment()
	existing.Status = domain.AssignmentCompleted

	suite.mockRepo.On("FindAssignmentByID", ctx, existing.AssignmentID).Return(existing, nil).Once()

	_, _, err := suite.service.CompleteAssignment(ctx, existing.AssignmentID, dto.CompleteAssignmentRequest{}, suite.adminNik)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	// A second completion must never return stock again.
	suite.mockRepo.AssertNotCalled(suite.T(), "CompleteAssignment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestCompleteAssignment_EmptyRemainingStock() {
	ctx := context.Background()
	existing := suite.activeAssignment()

	suite.mockRepo.On("FindAssignmentByID", ctx, existing.AssignmentID).Return(existing, nil).Once()
	suite.mockRepo.On("CompleteAssignment", ctx, mock.AnythingOfType("domain.Assignment"),
		domain.DenominationLedger{},
		mock.MatchedBy(func(d domain.BalanceDelta) bool { return d.IsZero() })).Return(nil).Once()
	suite.mockRepo.On("FindAssignmentByID", ctx, existing.AssignmentID).Return(existing, nil).Once()

	_, returnedStock, err := suite.service.CompleteAssignment(ctx, existing.AssignmentID, dto.CompleteAssignmentRequest{}, suite.adminNik)

	suite.Require().NoError(err)
	suite.Empty(returnedStock)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- DeleteAssignment ---

func (suite *AssignmentServiceTestSuite) TestDeleteAssignment_ActiveUnwindsStock() {
	ctx := context.Background()
	existing := suite.activeAssignment()
	existing.InitialStock = domain.DenominationLedger{2000: 10}
	existing.Status = domain.AssignmentActive

	suite.mockRepo.On("FindAssignmentByID", ctx, existing.AssignmentID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteAssignment", ctx, existing.AssignmentID,
		domain.DenominationLedger{2000: 10}, suite.adminNik).Return(nil).Once()

	err := suite.service.DeleteAssignment(ctx, existing.AssignmentID, suite.adminNik)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestDeleteAssignment_ReadyLeavesStock() {
	ctx := context.Background()
	existing := suite.activeAssignment()
	existing.Status = domain.AssignmentReady

	suite.mockRepo.On("FindAssignmentByID", ctx, existing.AssignmentID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteAssignment", ctx, existing.AssignmentID,
		domain.DenominationLedger(nil), suite.adminNik).Return(nil).Once()

	err := suite.service.DeleteAssignment(ctx, existing.AssignmentID, suite.adminNik)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestDeleteAssignment_NotFound() {
	ctx := context.Background()
	assignmentID := uuid.NewString()

	suite.mockRepo.On("FindAssignmentByID", ctx, assignmentID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteAssignment(ctx, assignmentID, suite.adminNik)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAssignment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestAssignmentService(t *testing.T) {
	suite.Run(t, new(AssignmentServiceTestSuite))
}
