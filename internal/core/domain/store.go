package domain

// Store is a master-data record for a retail stop on an assignment route.
// Read-only from the core's perspective.
type Store struct {
	StoreCode string `json:"storeCode"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	AuditFields
}
