package services

import (
	"context"

	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	portsrepo "github.com/tukarkoin/tukar_koin_app/internal/core/ports/repositories"
	portssvc "github.com/tukarkoin/tukar_koin_app/internal/core/ports/services"
)

// vehicleService exposes read-only vehicle master data.
type vehicleService struct {
	vehicleRepo portsrepo.VehicleReader
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(vehicleRepo portsrepo.VehicleReader) portssvc.VehicleSvcFacade {
	return &vehicleService{vehicleRepo: vehicleRepo}
}

var _ portssvc.VehicleSvcFacade = (*vehicleService)(nil)

func (s *vehicleService) GetVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	return s.vehicleRepo.FindVehicleByID(ctx, vehicleID)
}

func (s *vehicleService) ListVehicles(ctx context.Context, limit, offset int) ([]domain.Vehicle, error) {
	return s.vehicleRepo.FindVehicles(ctx, limit, offset)
}

// storeService exposes read-only store master data.
type storeService struct {
	storeRepo portsrepo.StoreReader
}

// NewStoreService creates a new StoreService.
func NewStoreService(storeRepo portsrepo.StoreReader) portssvc.StoreSvcFacade {
	return &storeService{storeRepo: storeRepo}
}

var _ portssvc.StoreSvcFacade = (*storeService)(nil)

func (s *storeService) GetStoreByCode(ctx context.Context, storeCode string) (*domain.Store, error) {
	return s.storeRepo.FindStoreByCode(ctx, storeCode)
}

func (s *storeService) ListStores(ctx context.Context, limit, offset int) ([]domain.Store, error) {
	return s.storeRepo.FindStores(ctx, limit, offset)
}
