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

// VesselRepository handles vessels table lookups
type VesselRepository struct {
	db *sqlx.DB
}

func NewVesselRepository(db *sqlx.DB) *VesselRepository {
	return &VesselRepository{db}
}

// GetByIMO returns the vessel or nil if no row has that IMO number
func (r *VesselRepository) GetByIMO(ctx context.Context, imo int64) (*entities.Vessel, error) {
	var vessel entities.Vessel
	err := r.db.GetContext(ctx, &vessel, r.db.Rebind(constants.GetVesselByIMO), imo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch vessel %d: %w", imo, err)
	}
	return &vessel, nil
}

// Resolve is GetByIMO for foreign keys: a missing row is a ReferenceNotFoundError
func (r *VesselRepository) Resolve(ctx context.Context, imo int64) (*entities.Vessel, error) {
	vessel, err := r.GetByIMO(ctx, imo)
	if err != nil {
		return nil, err
	}
	if vessel == nil {
		return nil, entities.VesselNotFound(imo)
	}
	return vessel, nil
}

func (r *VesselRepository) All(ctx context.Context) ([]entities.Vessel, error) {
	vessels := []entities.Vessel{}
	if err := r.db.SelectContext(ctx, &vessels, constants.GetAllVessels); err != nil {
		return nil, fmt.Errorf("failed to fetch vessels: %w", err)
	}
	return vessels, nil
}

func (r *VesselRepository) ShipmentIDs(ctx context.Context, imo int64) ([]string, error) {
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, r.db.Rebind(constants.GetShipmentIDsByVessel), imo); err != nil {
		return nil, fmt.Errorf("failed to fetch shipments for vessel %d: %w", imo, err)
	}
	return ids, nil
}
