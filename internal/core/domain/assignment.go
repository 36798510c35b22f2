package domain

import "time"

// AssignmentStatus indicates where an assignment is in its lifecycle.
type AssignmentStatus string

const (
	AssignmentReady     AssignmentStatus = "READY"
	AssignmentActive    AssignmentStatus = "ACTIVE"
	AssignmentCompleted AssignmentStatus = "COMPLETED"
)

// Assignment binds a vehicle, a cashier, a driver, a store route and a coin
// float for one operating day.
type Assignment struct {
	AssignmentID     string             `json:"assignmentID"`
	AssignmentDate   time.Time          `json:"assignmentDate"`
	VehicleID        string             `json:"vehicleID"`
	CashierNik       string             `json:"cashierNik"`
	DriverNik        string             `json:"driverNik"`
	InitialStock     DenominationLedger `json:"initialStock"` // immutable after creation
	CurrentStock     DenominationLedger `json:"currentStock"` // live float, decremented per exchange
	Status           AssignmentStatus   `json:"status"`
	StoreCodes       []string           `json:"storeCodes"`
	CurrentStopIndex int                `json:"currentStopIndex"`
	// Revision guards the read-validate-write consumption sequence against
	// concurrent field transactions on the same assignment.
	Revision int64 `json:"-"`
	// Denormalized display info, resolved from master data on read.
	VehicleName string `json:"vehicleName,omitempty"`
	CashierName string `json:"cashierName,omitempty"`
	DriverName  string `json:"driverName,omitempty"`
	AuditFields
}

// IsCompleted reports whether the assignment reached its terminal status.
func (a *Assignment) IsCompleted() bool {
	return a.Status == AssignmentCompleted
}
