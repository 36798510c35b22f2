package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tukarkoin/tukar_koin_app/internal/apperrors"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	portsrepo "github.com/tukarkoin/tukar_koin_app/internal/core/ports/repositories"
	portssvc "github.com/tukarkoin/tukar_koin_app/internal/core/ports/services"
	"github.com/tukarkoin/tukar_koin_app/internal/dto"
	"github.com/tukarkoin/tukar_koin_app/internal/middleware"
	"github.com/tukarkoin/tukar_koin_app/internal/utils"
)

// userService handles employee master data, balances and authentication.
type userService struct {
	userRepo    portsrepo.UserRepositoryFacade
	balanceRepo portsrepo.UserBalanceRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, balanceRepo portsrepo.UserBalanceRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo:    userRepo,
		balanceRepo: balanceRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// GetUserByNik retrieves a user by NIK.
func (s *userService) GetUserByNik(ctx context.Context, nik string) (*domain.User, error) {
	return s.userRepo.FindUserByNik(ctx, nik)
}

// ListUsers retrieves a paginated list of users.
func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return s.userRepo.FindUsers(ctx, limit, offset)
}

// GetUserBalance retrieves a user's aggregate balances. Users never touched
// by an assignment or transaction get zero balances, not a not-found error.
func (s *userService) GetUserBalance(ctx context.Context, nik string) (*domain.UserBalance, error) {
	if _, err := s.userRepo.FindUserByNik(ctx, nik); err != nil {
		return nil, err
	}

	balance, err := s.balanceRepo.FindBalanceByUserNik(ctx, nik)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.UserBalance{
				UserNik:         nik,
				BalanceCoin:     decimal.Zero,
				BalanceBigMoney: decimal.Zero,
			}, nil
		}
		return nil, err
	}
	return balance, nil
}

// CreateUser registers a new employee with a bcrypt-hashed password.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorNik string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		Nik:          req.Nik,
		Name:         req.Name,
		Role:         domain.UserRole(req.Role),
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorNik,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorNik,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: user with NIK %s already exists", apperrors.ErrConflict, req.Nik)
		}
		return nil, err
	}

	logger.Info("user created", slog.String("nik", user.Nik), slog.String("role", string(user.Role)))
	return &user, nil
}

// AuthenticateUser verifies NIK and password. Both unknown NIK and wrong
// password surface as ErrUnauthorized so callers cannot probe for NIKs.
func (s *userService) AuthenticateUser(ctx context.Context, nik, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByNik(ctx, nik)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}
