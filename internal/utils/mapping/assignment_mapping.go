package mapping

import (
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	"github.com/tukarkoin/tukar_koin_app/internal/models"
)

// ToModelAssignment converts a domain Assignment to a model Assignment.
func ToModelAssignment(d domain.Assignment) models.Assignment {
	return models.Assignment{
		AssignmentID:     d.AssignmentID,
		AssignmentDate:   d.AssignmentDate,
		VehicleID:        d.VehicleID,
		CashierNik:       d.CashierNik,
		DriverNik:        d.DriverNik,
		InitialStock:     map[int64]int64(d.InitialStock),
		CurrentStock:     map[int64]int64(d.CurrentStock),
		Status:           models.AssignmentStatus(d.Status),
		StoreCodes:       d.StoreCodes,
		CurrentStopIndex: d.CurrentStopIndex,
		Revision:         d.Revision,
		VehicleName:      d.VehicleName,
		CashierName:      d.CashierName,
		DriverName:       d.DriverName,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAssignment converts a model Assignment to a domain Assignment.
func ToDomainAssignment(m models.Assignment) domain.Assignment {
	return domain.Assignment{
		AssignmentID:     m.AssignmentID,
		AssignmentDate:   m.AssignmentDate,
		VehicleID:        m.VehicleID,
		CashierNik:       m.CashierNik,
		DriverNik:        m.DriverNik,
		InitialStock:     domain.DenominationLedger(m.InitialStock),
		CurrentStock:     domain.DenominationLedger(m.CurrentStock),
		Status:           domain.AssignmentStatus(m.Status),
		StoreCodes:       m.StoreCodes,
		CurrentStopIndex: m.CurrentStopIndex,
		Revision:         m.Revision,
		VehicleName:      m.VehicleName,
		CashierName:      m.CashierName,
		DriverName:       m.DriverName,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAssignmentSlice converts a slice of model Assignments.
func ToDomainAssignmentSlice(ms []models.Assignment) []domain.Assignment {
	ds := make([]domain.Assignment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAssignment(m)
	}
	return ds
}
