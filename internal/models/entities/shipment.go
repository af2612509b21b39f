package entities

import (
	"fmt"

	"infinite-experiment/shiplog/internal/common"
	"infinite-experiment/shiplog/internal/constants"
)

var speedFactors = map[constants.SpeedUnit]float64{
	constants.SpeedKnots: 1.0,
	constants.SpeedMph:   1.15078,
	constants.SpeedKmph:  1.852,
}

var distanceFactors = map[constants.DistanceUnit]float64{
	constants.DistanceNauticalMiles: 1.0,
	constants.DistanceMeters:        1852,
	constants.DistanceKilometers:    1.852,
	constants.DistanceMiles:         1.15078,
	constants.DistanceYards:         2025.3718,
}

type Shipment struct {
	ID            string  `db:"id" json:"id"`
	Date          string  `db:"date" json:"date"`
	CargoWeight   int64   `db:"cargo_weight" json:"cargo_weight"`
	DistanceNaut  float64 `db:"distance_naut" json:"distance_naut"`
	DurationHours float64 `db:"duration_hours" json:"duration_hours"`
	AverageSpeed  float64 `db:"average_speed" json:"average_speed"`
	Origin        string  `db:"origin" json:"origin"`
	Destination   string  `db:"destination" json:"destination"`
	Vessel        int64   `db:"vessel" json:"vessel"`
}

// FuelCost is duration * fuel consumption over the shipment distance * price,
// rounded to three decimals.
func (s Shipment) FuelCost(pricePerLiter float64, vessel Vessel) (float64, error) {
	consumption, err := vessel.FuelConsumption(s.DistanceNaut)
	if err != nil {
		return 0, err
	}
	return common.Round(s.DurationHours*consumption*pricePerLiter, 3), nil
}

func (s Shipment) ConvertSpeed(unit constants.SpeedUnit) (float64, error) {
	factor, ok := speedFactors[unit]
	if !ok {
		return 0, &UnsupportedUnitError{Quantity: "speed", Unit: string(unit)}
	}
	return common.Round(s.AverageSpeed*factor, 6), nil
}

func (s Shipment) ConvertDistance(unit constants.DistanceUnit) (float64, error) {
	factor, ok := distanceFactors[unit]
	if !ok {
		return 0, &UnsupportedUnitError{Quantity: "distance", Unit: string(unit)}
	}
	return common.Round(s.DistanceNaut*factor, 6), nil
}

// ConvertDuration renders the duration. Partial units are truncated, never
// rounded: 150.9 hours is "150 hours".
func (s Shipment) ConvertDuration(format constants.DurationFormat) (string, error) {
	switch format {
	case constants.DurationDaysHours:
		days := int(common.FloorDiv(s.DurationHours, 24))
		hours := int(common.FloorMod(s.DurationHours, 24))
		return fmt.Sprintf("%d days : %d hours", days, hours), nil
	case constants.DurationHours:
		return fmt.Sprintf("%d hours", int(s.DurationHours)), nil
	case constants.DurationMinutes:
		return fmt.Sprintf("%d minutes", int(s.DurationHours*60)), nil
	default:
		return "", &UnsupportedFormatError{Format: string(format)}
	}
}

func (s Shipment) String() string {
	return fmt.Sprintf("Shipment(id=%s, date=%s, cargo_weight=%d, distance_naut=%v, duration_hours=%v, average_speed=%v, origin=%s, destination=%s, vessel=%d)",
		s.ID, s.Date, s.CargoWeight, s.DistanceNaut, s.DurationHours, s.AverageSpeed, s.Origin, s.Destination, s.Vessel)
}
