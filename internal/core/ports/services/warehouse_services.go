package services

import (
	"context"

	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
)

// WarehouseSvcFacade exposes the central stock pool.
type WarehouseSvcFacade interface {
	// GetStock returns the warehouse ledger with every catalog denomination
	// present, defaulting to zero.
	GetStock(ctx context.Context) (domain.DenominationLedger, error)

	// SetStock upserts absolute quantities for the given denominations and
	// returns the full resulting ledger.
	SetStock(ctx context.Context, quantities domain.DenominationLedger, updaterNik string) (domain.DenominationLedger, error)
}
