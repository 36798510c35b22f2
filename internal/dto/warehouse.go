package dto

import "github.com/tukarkoin/tukar_koin_app/internal/core/domain"

// WarehouseStockResponse carries the full warehouse ledger, with every
// catalog denomination present (zero when untouched).
type WarehouseStockResponse struct {
	Stock domain.DenominationLedger `json:"stock"`
}
