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

// PortRepository handles ports table lookups
type PortRepository struct {
	db *sqlx.DB
}

func NewPortRepository(db *sqlx.DB) *PortRepository {
	return &PortRepository{db}
}

// GetByID returns the port or nil if no row has that id
func (r *PortRepository) GetByID(ctx context.Context, id string) (*entities.Port, error) {
	var port entities.Port
	err := r.db.GetContext(ctx, &port, r.db.Rebind(constants.GetPortByID), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch port %s: %w", id, err)
	}
	return &port, nil
}

// Resolve is GetByID for foreign keys: a missing row is a ReferenceNotFoundError
func (r *PortRepository) Resolve(ctx context.Context, id string) (*entities.Port, error) {
	port, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if port == nil {
		return nil, entities.PortNotFound(id)
	}
	return port, nil
}

func (r *PortRepository) All(ctx context.Context) ([]entities.Port, error) {
	ports := []entities.Port{}
	if err := r.db.SelectContext(ctx, &ports, constants.GetAllPorts); err != nil {
		return nil, fmt.Errorf("failed to fetch ports: %w", err)
	}
	return ports, nil
}

// ShipmentIDs lists shipments that start or end at the port
func (r *PortRepository) ShipmentIDs(ctx context.Context, id string) ([]string, error) {
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, r.db.Rebind(constants.GetShipmentIDsByPort), id, id); err != nil {
		return nil, fmt.Errorf("failed to fetch shipments for port %s: %w", id, err)
	}
	return ids, nil
}
