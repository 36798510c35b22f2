package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/tukarkoin/tukar_koin_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	stockRepo := newPgxWarehouseStockRepository(dbPool)
	balanceRepo := newPgxUserBalanceRepository(dbPool)
	assignmentRepo := newPgxAssignmentRepository(dbPool, stockRepo, balanceRepo)
	txnRepo := newPgxTransactionRepository(dbPool, stockRepo, balanceRepo)
	userRepo := newPgxUserRepository(dbPool)
	vehicleRepo := newPgxVehicleRepository(dbPool)
	storeRepo := newPgxStoreRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AssignmentRepo: assignmentRepo,
		StockRepo:      stockRepo,
		BalanceRepo:    balanceRepo,
		TxnRepo:        txnRepo,
		UserRepo:       userRepo,
		VehicleRepo:    vehicleRepo,
		StoreRepo:      storeRepo,
	}
}
