package models

// User is the storage shape of an employee master-data record.
type User struct {
	Nik          string `json:"nik"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
	AuditFields
}

// Vehicle is the storage shape of a float-carrying vehicle.
type Vehicle struct {
	VehicleID   string `json:"vehicleID"`
	PlateNumber string `json:"plateNumber"`
	Name        string `json:"name"`
	AuditFields
}

// Store is the storage shape of a retail stop.
type Store struct {
	StoreCode string  `json:"storeCode"`
	Name      string  `json:"name"`
	Address   *string `json:"address,omitempty"`
	AuditFields
}
