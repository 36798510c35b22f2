package models

import "time"

// AssignmentStatus indicates where an assignment is in its lifecycle.
type AssignmentStatus string

const (
	AssignmentReady     AssignmentStatus = "READY"
	AssignmentActive    AssignmentStatus = "ACTIVE"
	AssignmentCompleted AssignmentStatus = "COMPLETED"
)

// Assignment is the storage shape of one vehicle-day dispatch. The stock
// ledgers and the store route are jsonb columns.
type Assignment struct {
	AssignmentID     string           `json:"assignmentID"`
	AssignmentDate   time.Time        `json:"assignmentDate"`
	VehicleID        string           `json:"vehicleID"`
	CashierNik       string           `json:"cashierNik"`
	DriverNik        string           `json:"driverNik"`
	InitialStock     map[int64]int64  `json:"initialStock"`
	CurrentStock     map[int64]int64  `json:"currentStock"`
	Status           AssignmentStatus `json:"status"`
	StoreCodes       []string         `json:"storeCodes"`
	CurrentStopIndex int              `json:"currentStopIndex"`
	Revision         int64            `json:"revision"`
	// Joined display columns, not part of the assignments table.
	VehicleName string `json:"vehicleName,omitempty"`
	CashierName string `json:"cashierName,omitempty"`
	DriverName  string `json:"driverName,omitempty"`
	AuditFields
}
