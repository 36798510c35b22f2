package repositories

// RepositoryProvider bundles all repository facades for dependency injection
// into the service layer.
type RepositoryProvider struct {
	AssignmentRepo AssignmentRepositoryFacade
	StockRepo      WarehouseStockRepositoryFacade
	BalanceRepo    UserBalanceRepositoryFacade
	TxnRepo        TransactionRepositoryFacade
	UserRepo       UserRepositoryFacade
	VehicleRepo    VehicleReader
	StoreRepo      StoreReader
}
