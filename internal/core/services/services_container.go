package services

import (
	portsrepo "github.com/tukarkoin/tukar_koin_app/internal/core/ports/repositories"
	portssvc "github.com/tukarkoin/tukar_koin_app/internal/core/ports/services"
	"github.com/tukarkoin/tukar_koin_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Assignment = NewAssignmentService(repos.AssignmentRepo)
	container.Transaction = NewTransactionService(repos.TxnRepo, repos.AssignmentRepo, cfg.StockSwapRetries)
	container.Warehouse = NewWarehouseService(repos.StockRepo)
	container.User = NewUserService(repos.UserRepo, repos.BalanceRepo)
	container.Vehicle = NewVehicleService(repos.VehicleRepo)
	container.Store = NewStoreService(repos.StoreRepo)

	return container
}
