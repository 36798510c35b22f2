package repositories

import (
	"context"

	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
)

// UserReader defines read operations for employee master data.
type UserReader interface {
	// FindUserByNik retrieves a specific user by their NIK.
	FindUserByNik(ctx context.Context, nik string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for employee master data.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines user master-data interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// VehicleReader defines read operations for vehicle master data.
// The core never writes vehicles.
type VehicleReader interface {
	// FindVehicleByID retrieves a specific vehicle.
	FindVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error)

	// FindVehicles retrieves a paginated list of vehicles.
	FindVehicles(ctx context.Context, limit int, offset int) ([]domain.Vehicle, error)
}

// StoreReader defines read operations for store master data.
// The core never writes stores.
type StoreReader interface {
	// FindStoreByCode retrieves a specific store.
	FindStoreByCode(ctx context.Context, storeCode string) (*domain.Store, error)

	// FindStores retrieves a paginated list of stores.
	FindStores(ctx context.Context, limit int, offset int) ([]domain.Store, error)
}
