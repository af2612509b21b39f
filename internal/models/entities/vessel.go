package entities

import (
	"fmt"
	"strconv"

	"infinite-experiment/shiplog/internal/common"
)

// VesselFields is the export column order for vessels.
var VesselFields = []string{"imo", "mmsi", "name", "country", "type", "build", "gross", "netto", "length", "beam"}

// DefaultEfficiency applies to any vessel type missing from the table.
const DefaultEfficiency = 0.4

var efficiencyByType = map[string]float64{
	"Aggregates Carrier":            0.4,
	"Bulk Carrier":                  0.35,
	"Bulk/Oil Carrier":              0.35,
	"Cement Carrier":                0.4,
	"Container Ship":                0.3,
	"Deck Cargo Ship":               0.4,
	"General Cargo Ship":            0.4,
	"Heavy Load Carrier":            0.4,
	"Landing Craft":                 0.4,
	"Nuclear Fuel Carrier":          0.35,
	"Palletised Cargo Ship":         0.4,
	"Passenger/Container Ship":      0.3,
	"Ro-Ro Cargo Ship":              0.4,
	"Self Discharging Bulk Carrier": 0.35,
	"Vehicles Carrier":              0.35,
	"Wood Chips Carrier":            0.4,
}

// Efficiency returns the fuel efficiency factor for a vessel type.
func Efficiency(vesselType string) float64 {
	if e, ok := efficiencyByType[vesselType]; ok {
		return e
	}
	return DefaultEfficiency
}

type Vessel struct {
	IMO     int64  `db:"imo" json:"imo"`
	MMSI    int64  `db:"mmsi" json:"mmsi"`
	Name    string `db:"name" json:"name"`
	Country string `db:"country" json:"country"`
	Type    string `db:"type" json:"type"`
	Build   int    `db:"build" json:"build"`
	Gross   int64  `db:"gross" json:"gross"`
	Netto   int64  `db:"netto" json:"netto"`
	Length  int    `db:"length" json:"length"`
	Beam    int    `db:"beam" json:"beam"`
}

// FuelConsumption is efficiency * (gross / netto) * distance, rounded to five
// decimals.
func (v Vessel) FuelConsumption(distance float64) (float64, error) {
	if v.Netto == 0 {
		return 0, fmt.Errorf("vessel %d: %w", v.IMO, ErrInvalidTonnage)
	}
	consumption := Efficiency(v.Type) * (float64(v.Gross) / float64(v.Netto)) * distance
	return common.Round(consumption, 5), nil
}

// Record returns the vessel as an export row keyed by VesselFields.
func (v Vessel) Record() map[string]string {
	return map[string]string{
		"imo":     strconv.FormatInt(v.IMO, 10),
		"mmsi":    strconv.FormatInt(v.MMSI, 10),
		"name":    v.Name,
		"country": v.Country,
		"type":    v.Type,
		"build":   strconv.Itoa(v.Build),
		"gross":   strconv.FormatInt(v.Gross, 10),
		"netto":   strconv.FormatInt(v.Netto, 10),
		"length":  strconv.Itoa(v.Length),
		"beam":    strconv.Itoa(v.Beam),
	}
}

func (v Vessel) String() string {
	return fmt.Sprintf("Vessel(imo=%d, mmsi=%d, name=%s, country=%s, type=%s, build=%d, gross=%d, netto=%d, length=%d, beam=%d)",
		v.IMO, v.MMSI, v.Name, v.Country, v.Type, v.Build, v.Gross, v.Netto, v.Length, v.Beam)
}
