package dto

import (
	"time"

	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
)

// CreateAssignmentRequest defines the payload for dispatching a new assignment.
type CreateAssignmentRequest struct {
	Date       time.Time `json:"date" binding:"required"`
	VehicleID  string    `json:"vehicleID" binding:"required"`
	CashierNik string    `json:"cashierNik" binding:"required"`
	DriverNik  string    `json:"driverNik" binding:"required"`
	// InitialStock may be empty; the assignment then starts with a zero float.
	InitialStock domain.DenominationLedger `json:"initialStock"`
	StoreCodes   []string                  `json:"storeCodes"`
	// Status defaults to READY when omitted.
	Status *domain.AssignmentStatus `json:"status" binding:"omitempty,assignmentstatus"`
}

// UpdateAssignmentRequest defines the data allowed for patching an assignment.
// Pointers differentiate omitted fields from zero values. This is a raw field
// patch with no stock side effects.
type UpdateAssignmentRequest struct {
	Date             *time.Time                 `json:"date"`
	VehicleID        *string                    `json:"vehicleID"`
	CashierNik       *string                    `json:"cashierNik"`
	DriverNik        *string                    `json:"driverNik"`
	InitialStock     *domain.DenominationLedger `json:"initialStock"`
	CurrentStock     *domain.DenominationLedger `json:"currentStock"`
	Status           *domain.AssignmentStatus   `json:"status" binding:"omitempty,assignmentstatus"`
	StoreCodes       *[]string                  `json:"storeCodes"`
	CurrentStopIndex *int                       `json:"currentStopIndex"`
}

// CompleteAssignmentRequest carries the stock the crew brought back.
type CompleteAssignmentRequest struct {
	RemainingStock domain.DenominationLedger `json:"remainingStock"`
}

// ListAssignmentsParams defines query parameters for listing assignments.
type ListAssignmentsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// AssignmentResponse is the transport shape of an assignment.
type AssignmentResponse struct {
	AssignmentID     string                    `json:"assignmentID"`
	AssignmentDate   time.Time                 `json:"assignmentDate"`
	VehicleID        string                    `json:"vehicleID"`
	VehicleName      string                    `json:"vehicleName,omitempty"`
	CashierNik       string                    `json:"cashierNik"`
	CashierName      string                    `json:"cashierName,omitempty"`
	DriverNik        string                    `json:"driverNik"`
	DriverName       string                    `json:"driverName,omitempty"`
	InitialStock     domain.DenominationLedger `json:"initialStock"`
	CurrentStock     domain.DenominationLedger `json:"currentStock"`
	Status           domain.AssignmentStatus   `json:"status"`
	StoreCodes       []string                  `json:"storeCodes"`
	CurrentStopIndex int                       `json:"currentStopIndex"`
	CreatedAt        time.Time                 `json:"createdAt"`
}

// ToAssignmentResponse converts a domain Assignment to its response DTO.
func ToAssignmentResponse(a *domain.Assignment) AssignmentResponse {
	return AssignmentResponse{
		AssignmentID:     a.AssignmentID,
		AssignmentDate:   a.AssignmentDate,
		VehicleID:        a.VehicleID,
		VehicleName:      a.VehicleName,
		CashierNik:       a.CashierNik,
		CashierName:      a.CashierName,
		DriverNik:        a.DriverNik,
		DriverName:       a.DriverName,
		InitialStock:     a.InitialStock,
		CurrentStock:     a.CurrentStock,
		Status:           a.Status,
		StoreCodes:       a.StoreCodes,
		CurrentStopIndex: a.CurrentStopIndex,
		CreatedAt:        a.CreatedAt,
	}
}

// ListAssignmentsResponse wraps a page of assignments.
type ListAssignmentsResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
	NextToken   *string              `json:"nextToken,omitempty"`
}

// CompleteAssignmentResponse confirms a completion and echoes the stock that
// was returned to the warehouse.
type CompleteAssignmentResponse struct {
	Message       string                    `json:"message"`
	Assignment    AssignmentResponse        `json:"assignment"`
	ReturnedStock domain.DenominationLedger `json:"returnedStock"`
}
