package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"infinite-experiment/shiplog/internal/constants"
	"infinite-experiment/shiplog/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// ShipmentPorts pairs a shipment's resolved origin and destination
type ShipmentPorts struct {
	Origin      entities.Port `json:"origin"`
	Destination entities.Port `json:"destination"`
}

// ShipmentRepository handles shipments table lookups and resolves a
// shipment's foreign keys
type ShipmentRepository struct {
	db      *sqlx.DB
	ports   *PortRepository
	vessels *VesselRepository
}

func NewShipmentRepository(db *sqlx.DB) *ShipmentRepository {
	return &ShipmentRepository{
		db:      db,
		ports:   NewPortRepository(db),
		vessels: NewVesselRepository(db),
	}
}

func (r *ShipmentRepository) GetByID(ctx context.Context, id string) (*entities.Shipment, error) {
	var shipment entities.Shipment
	err := r.db.GetContext(ctx, &shipment, r.db.Rebind(constants.GetShipmentByID), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch shipment %s: %w", id, err)
	}
	return &shipment, nil
}

func (r *ShipmentRepository) All(ctx context.Context) ([]entities.Shipment, error) {
	shipments := []entities.Shipment{}
	if err := r.db.SelectContext(ctx, &shipments, constants.GetAllShipments); err != nil {
		return nil, fmt.Errorf("failed to fetch shipments: %w", err)
	}
	return shipments, nil
}

// Ports resolves origin then destination. Either one missing is an error.
func (r *ShipmentRepository) Ports(ctx context.Context, s entities.Shipment) (*ShipmentPorts, error) {
	origin, err := r.ports.Resolve(ctx, s.Origin)
	if err != nil {
		return nil, err
	}
	destination, err := r.ports.Resolve(ctx, s.Destination)
	if err != nil {
		return nil, err
	}
	return &ShipmentPorts{Origin: *origin, Destination: *destination}, nil
}

func (r *ShipmentRepository) Vessel(ctx context.Context, s entities.Shipment) (*entities.Vessel, error) {
	return r.vessels.Resolve(ctx, s.Vessel)
}
