package dto

import "github.com/tukarkoin/tukar_koin_app/internal/core/domain"

// VehicleResponse is the transport shape of a vehicle record.
type VehicleResponse struct {
	VehicleID   string `json:"vehicleID"`
	PlateNumber string `json:"plateNumber"`
	Name        string `json:"name"`
}

// ToVehicleResponse converts a domain Vehicle to its response DTO.
func ToVehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		VehicleID:   v.VehicleID,
		PlateNumber: v.PlateNumber,
		Name:        v.Name,
	}
}

// StoreResponse is the transport shape of a store record.
type StoreResponse struct {
	StoreCode string `json:"storeCode"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
}

// ToStoreResponse converts a domain Store to its response DTO.
func ToStoreResponse(s *domain.Store) StoreResponse {
	return StoreResponse{
		StoreCode: s.StoreCode,
		Name:      s.Name,
		Address:   s.Address,
	}
}

// ListParams defines limit/offset query parameters for master-data listings.
type ListParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
