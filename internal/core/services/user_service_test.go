package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tukarkoin/tukar_koin_app/internal/apperrors"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	portsrepo "github.com/tukarkoin/tukar_koin_app/internal/core/ports/repositories"
	portssvc "github.com/tukarkoin/tukar_koin_app/internal/core/ports/services"
	"github.com/tukarkoin/tukar_koin_app/internal/core/services"
	"github.com/tukarkoin/tukar_koin_app/internal/dto"
	"github.com/tukarkoin/tukar_koin_app/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

// Ensure MockUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByNik(ctx context.Context, nik string) (*domain.User, error) {
	args := m.Called(ctx, nik)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock UserBalanceRepository ---
type MockUserBalanceRepository struct {
	mock.Mock
}

// Ensure MockUserBalanceRepository implements portsrepo.UserBalanceRepositoryFacade
var _ portsrepo.UserBalanceRepositoryFacade = (*MockUserBalanceRepository)(nil)

func (m *MockUserBalanceRepository) FindBalanceByUserNik(ctx context.Context, userNik string) (*domain.UserBalance, error) {
	args := m.Called(ctx, userNik)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserBalance), args.Error(1)
}

func (m *MockUserBalanceRepository) ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, delta domain.BalanceDelta, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, delta, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Test Suite Setup ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo    *MockUserRepository
	mockBalanceRepo *MockUserBalanceRepository
	service         portssvc.UserSvcFacade
	cashier         *domain.User
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockBalanceRepo = new(MockUserBalanceRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockBalanceRepo)

	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	suite.cashier = &domain.User{
		Nik:          "C-1001",
		Name:         "Siti",
		Role:         domain.RoleCashier,
		PasswordHash: hash,
	}
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Nik:      "C-3003",
		Name:     "Budi",
		Role:     "CASHIER",
		Password: "correct-horse",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Nik == req.Nik &&
			u.Role == domain.RoleCashier &&
			u.CreatedBy == "A-0001" &&
			utils.CheckPasswordHash(req.Password, u.PasswordHash)
	})).Return(nil).Once()

	created, err := suite.service.CreateUser(ctx, req, "A-0001")

	suite.Require().NoError(err)
	suite.Equal(req.Nik, created.Nik)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateNik() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Nik: suite.cashier.Nik, Name: "Siti", Role: "CASHIER", Password: "correct-horse"}

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrConflict).Once()

	_, err := suite.service.CreateUser(ctx, req, "A-0001")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *UserServiceTestSuite) TestGetUserBalance_Existing() {
	ctx := context.Background()
	balance := &domain.UserBalance{
		UserNik:         suite.cashier.Nik,
		BalanceCoin:     decimal.NewFromInt(70000),
		BalanceBigMoney: decimal.NewFromInt(100000),
	}

	suite.mockUserRepo.On("FindUserByNik", ctx, suite.cashier.Nik).Return(suite.cashier, nil).Once()
	suite.mockBalanceRepo.On("FindBalanceByUserNik", ctx, suite.cashier.Nik).Return(balance, nil).Once()

	got, err := suite.service.GetUserBalance(ctx, suite.cashier.Nik)

	suite.Require().NoError(err)
	suite.True(got.BalanceCoin.Equal(decimal.NewFromInt(70000)))
	suite.True(got.BalanceBigMoney.Equal(decimal.NewFromInt(100000)))
}

func (suite *UserServiceTestSuite) TestGetUserBalance_UntouchedUserGetsZeros() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByNik", ctx, suite.cashier.Nik).Return(suite.cashier, nil).Once()
	suite.mockBalanceRepo.On("FindBalanceByUserNik", ctx, suite.cashier.Nik).
		Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.GetUserBalance(ctx, suite.cashier.Nik)

	suite.Require().NoError(err)
	suite.True(got.BalanceCoin.IsZero())
	suite.True(got.BalanceBigMoney.IsZero())
}

func (suite *UserServiceTestSuite) TestGetUserBalance_UnknownUser() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByNik", ctx, "nobody").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetUserBalance(ctx, "nobody")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "FindBalanceByUserNik", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByNik", ctx, suite.cashier.Nik).Return(suite.cashier, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, suite.cashier.Nik, "correct-horse")

	suite.Require().NoError(err)
	suite.Equal(suite.cashier.Nik, user.Nik)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByNik", ctx, suite.cashier.Nik).Return(suite.cashier, nil).Once()

	_, err := suite.service.AuthenticateUser(ctx, suite.cashier.Nik, "wrong")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownNik() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByNik", ctx, "nobody").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthenticateUser(ctx, "nobody", "whatever")

	// Indistinguishable from a wrong password.
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- Run Test Suite ---
func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
