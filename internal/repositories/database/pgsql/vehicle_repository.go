package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tukarkoin/tukar_koin_app/internal/apperrors"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	portsrepo "github.com/tukarkoin/tukar_koin_app/internal/core/ports/repositories"
	"github.com/tukarkoin/tukar_koin_app/internal/models"
	"github.com/tukarkoin/tukar_koin_app/internal/utils/mapping"
)

type PgxVehicleRepository struct {
	BaseRepository
}

// newPgxVehicleRepository creates a new read-only repository for vehicle
// master data. Vehicles are seeded by migrations or operations tooling.
func newPgxVehicleRepository(pool *pgxpool.Pool) portsrepo.VehicleReader {
	return &PgxVehicleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.VehicleReader = (*PgxVehicleRepository)(nil)

// FindVehicleByID retrieves a vehicle by its ID.
func (r *PgxVehicleRepository) FindVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	query := `
		SELECT vehicle_id, plate_number, name, created_at, created_by, last_updated_at, last_updated_by
		FROM vehicles
		WHERE vehicle_id = $1;
	`
	var m models.Vehicle
	err := r.Pool.QueryRow(ctx, query, vehicleID).Scan(
		&m.VehicleID,
		&m.PlateNumber,
		&m.Name,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find vehicle by ID "+vehicleID, err)
	}

	d := mapping.ToDomainVehicle(m)
	return &d, nil
}

// FindVehicles retrieves a page of vehicles ordered by ID.
func (r *PgxVehicleRepository) FindVehicles(ctx context.Context, limit int, offset int) ([]domain.Vehicle, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT vehicle_id, plate_number, name, created_at, created_by, last_updated_at, last_updated_by
		FROM vehicles
		ORDER BY vehicle_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query vehicles", err)
	}
	defer rows.Close()

	vehicles := []domain.Vehicle{}
	for rows.Next() {
		var m models.Vehicle
		if err := rows.Scan(
			&m.VehicleID,
			&m.PlateNumber,
			&m.Name,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan vehicle row", err)
		}
		vehicles = append(vehicles, mapping.ToDomainVehicle(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating vehicle rows", err)
	}

	return vehicles, nil
}
