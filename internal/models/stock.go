package models

// WarehouseStock is one row of the central stock pool, keyed by denomination.
// Rows are created lazily on first upsert and never deleted.
type WarehouseStock struct {
	Denomination int64 `json:"denomination"`
	Quantity     int64 `json:"quantity"`
	AuditFields
}
