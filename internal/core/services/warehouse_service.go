package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tukarkoin/tukar_koin_app/internal/apperrors"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	portsrepo "github.com/tukarkoin/tukar_koin_app/internal/core/ports/repositories"
	portssvc "github.com/tukarkoin/tukar_koin_app/internal/core/ports/services"
	"github.com/tukarkoin/tukar_koin_app/internal/middleware"
)

// warehouseService exposes the central stock pool.
type warehouseService struct {
	stockRepo portsrepo.WarehouseStockRepositoryFacade
}

// NewWarehouseService creates a new WarehouseService.
func NewWarehouseService(stockRepo portsrepo.WarehouseStockRepositoryFacade) portssvc.WarehouseSvcFacade {
	return &warehouseService{stockRepo: stockRepo}
}

var _ portssvc.WarehouseSvcFacade = (*warehouseService)(nil)

// GetStock returns the warehouse ledger with every catalog denomination
// present, defaulting to zero.
func (s *warehouseService) GetStock(ctx context.Context) (domain.DenominationLedger, error) {
	stock, err := s.stockRepo.GetStock(ctx)
	if err != nil {
		return nil, err
	}
	return stock.ZeroFilledCatalog(), nil
}

// SetStock upserts absolute quantities and returns the full resulting ledger.
func (s *warehouseService) SetStock(ctx context.Context, quantities domain.DenominationLedger, updaterNik string) (domain.DenominationLedger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	for denomination := range quantities {
		if denomination <= 0 {
			return nil, fmt.Errorf("%w: denomination must be positive, got %d", apperrors.ErrValidation, denomination)
		}
	}

	if err := s.stockRepo.SetStockQuantities(ctx, quantities, updaterNik, time.Now().UTC()); err != nil {
		return nil, err
	}

	logger.Info("warehouse stock set",
		slog.Int("denominations", len(quantities)),
		slog.String("updated_by", updaterNik))

	return s.GetStock(ctx)
}
