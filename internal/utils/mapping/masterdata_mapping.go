package mapping

import (
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	"github.com/tukarkoin/tukar_koin_app/internal/models"
)

// ToModelUser converts a domain User to a model User.
func ToModelUser(d domain.User) models.User {
	return models.User{
		Nik:          d.Nik,
		Name:         d.Name,
		Role:         string(d.Role),
		PasswordHash: d.PasswordHash,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		Nik:          m.Nik,
		Name:         m.Name,
		Role:         domain.UserRole(m.Role),
		PasswordHash: m.PasswordHash,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUserSlice converts a slice of model Users.
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}

// ToDomainVehicle converts a model Vehicle to a domain Vehicle.
func ToDomainVehicle(m models.Vehicle) domain.Vehicle {
	return domain.Vehicle{
		VehicleID:   m.VehicleID,
		PlateNumber: m.PlateNumber,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStore converts a model Store to a domain Store.
func ToDomainStore(m models.Store) domain.Store {
	address := ""
	if m.Address != nil {
		address = *m.Address
	}
	return domain.Store{
		StoreCode:   m.StoreCode,
		Name:        m.Name,
		Address:     address,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
