package domain

// Vehicle is a master-data record for a float-carrying vehicle.
// Read-only from the core's perspective.
type Vehicle struct {
	VehicleID   string `json:"vehicleID"`
	PlateNumber string `json:"plateNumber"`
	Name        string `json:"name"`
	AuditFields
}
