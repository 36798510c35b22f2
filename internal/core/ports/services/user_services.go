package services

import (
	"context"

	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	"github.com/tukarkoin/tukar_koin_app/internal/dto"
)

// UserReaderSvc defines read operations for employee data.
type UserReaderSvc interface {
	// GetUserByNik retrieves a user by NIK.
	GetUserByNik(ctx context.Context, nik string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// GetUserBalance retrieves a user's aggregate balances. Users never
	// touched by an assignment or transaction get zero balances.
	GetUserBalance(ctx context.Context, nik string) (*domain.UserBalance, error)
}

// UserWriterSvc defines write operations for employee data.
type UserWriterSvc interface {
	// CreateUser registers a new employee.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorNik string) (*domain.User, error)
}

// UserAuthSvc defines authentication for employees.
type UserAuthSvc interface {
	// AuthenticateUser verifies NIK and password.
	AuthenticateUser(ctx context.Context, nik, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}

// VehicleSvcFacade exposes read-only vehicle master data.
type VehicleSvcFacade interface {
	GetVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, limit, offset int) ([]domain.Vehicle, error)
}

// StoreSvcFacade exposes read-only store master data.
type StoreSvcFacade interface {
	GetStoreByCode(ctx context.Context, storeCode string) (*domain.Store, error)
	ListStores(ctx context.Context, limit, offset int) ([]domain.Store, error)
}
