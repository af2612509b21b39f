package services

import (
	"context"
	"errors"
	"fmt"

	"infinite-experiment/shiplog/internal/constants"
	"infinite-experiment/shiplog/internal/db/repositories"
	"infinite-experiment/shiplog/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// ShipmentService answers single-shipment questions: the shipment with its
// resolved ports and vessel, unit conversions and fuel cost.
type ShipmentService struct {
	shipments *repositories.ShipmentRepository
}

func NewShipmentService(conn *sqlx.DB) *ShipmentService {
	return &ShipmentService{shipments: repositories.NewShipmentRepository(conn)}
}

type SummaryOptions struct {
	SpeedUnit      constants.SpeedUnit
	DistanceUnit   constants.DistanceUnit
	DurationFormat constants.DurationFormat
	PricePerLiter  float64
}

type ShipmentSummary struct {
	Shipment        entities.Shipment `json:"shipment"`
	Origin          entities.Port     `json:"origin"`
	Destination     entities.Port     `json:"destination"`
	Vessel          entities.Vessel   `json:"vessel"`
	Speed           float64           `json:"speed"`
	SpeedUnit       string            `json:"speed_unit"`
	Distance        float64           `json:"distance"`
	DistanceUnit    string            `json:"distance_unit"`
	Duration        string            `json:"duration"`
	FuelConsumption *float64          `json:"fuel_consumption,omitempty"`
	FuelCost        *float64          `json:"fuel_cost,omitempty"`
}

// Summary returns nil when the shipment does not exist. A shipment whose
// ports or vessel cannot be resolved is an error.
func (s *ShipmentService) Summary(ctx context.Context, id string, opts SummaryOptions) (*ShipmentSummary, error) {
	shipment, err := s.shipments.GetByID(ctx, id)
	if err != nil || shipment == nil {
		return nil, err
	}

	ports, err := s.shipments.Ports(ctx, *shipment)
	if err != nil {
		return nil, fmt.Errorf("shipment %s: %w", id, err)
	}
	vessel, err := s.shipments.Vessel(ctx, *shipment)
	if err != nil {
		return nil, fmt.Errorf("shipment %s: %w", id, err)
	}

	opts = opts.withDefaults()
	summary := &ShipmentSummary{
		Shipment:     *shipment,
		Origin:       ports.Origin,
		Destination:  ports.Destination,
		Vessel:       *vessel,
		SpeedUnit:    opts.SpeedUnit.String(),
		DistanceUnit: opts.DistanceUnit.String(),
	}

	if summary.Speed, err = shipment.ConvertSpeed(opts.SpeedUnit); err != nil {
		return nil, err
	}
	if summary.Distance, err = shipment.ConvertDistance(opts.DistanceUnit); err != nil {
		return nil, err
	}
	if summary.Duration, err = shipment.ConvertDuration(opts.DurationFormat); err != nil {
		return nil, err
	}

	// A vessel without net tonnage has no fuel figures; that only fails the
	// summary when a fuel cost was asked for.
	consumption, err := vessel.FuelConsumption(shipment.DistanceNaut)
	switch {
	case err == nil:
		summary.FuelConsumption = &consumption
	case !errors.Is(err, entities.ErrInvalidTonnage) || opts.PricePerLiter > 0:
		return nil, fmt.Errorf("shipment %s: %w", id, err)
	}
	if opts.PricePerLiter > 0 {
		cost, err := shipment.FuelCost(opts.PricePerLiter, *vessel)
		if err != nil {
			return nil, err
		}
		summary.FuelCost = &cost
	}
	return summary, nil
}

func (o SummaryOptions) withDefaults() SummaryOptions {
	if o.SpeedUnit == "" {
		o.SpeedUnit = constants.SpeedKnots
	}
	if o.DistanceUnit == "" {
		o.DistanceUnit = constants.DistanceNauticalMiles
	}
	if o.DurationFormat == "" {
		o.DurationFormat = constants.DurationDaysHours
	}
	return o
}
