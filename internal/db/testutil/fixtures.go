package testutil

import (
	"context"
	"fmt"
	"testing"

	gormModels "infinite-experiment/shiplog/internal/models/gorm"

	"gorm.io/gorm"
)

func SeedPort(tb testing.TB, ctx context.Context, tx *gorm.DB, id string, country string) *gormModels.Port {
	tb.Helper()
	p := &gormModels.Port{
		ID:       id,
		Code:     int64(len(id)) * 1000,
		Name:     "Port " + id,
		City:     "City " + id,
		Province: "Province " + id,
		Country:  country,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed port: %v", err)
	}
	return p
}

// VesselSpec overrides the dimensions of a seeded vessel; zero values keep
// the defaults.
type VesselSpec struct {
	Type    string
	Country string
	Length  int
	Beam    int
	Gross   int64
	Netto   int64
}

func SeedVessel(tb testing.TB, ctx context.Context, tx *gorm.DB, imo int64, spec VesselSpec) *gormModels.Vessel {
	tb.Helper()
	v := &gormModels.Vessel{
		IMO:     imo,
		MMSI:    imo * 10,
		Name:    fmt.Sprintf("VESSEL %d", imo),
		Country: "Malta",
		Type:    "General Cargo Ship",
		Build:   2010,
		Gross:   10000,
		Netto:   5000,
		Length:  150,
		Beam:    25,
	}
	if spec.Type != "" {
		v.Type = spec.Type
	}
	if spec.Country != "" {
		v.Country = spec.Country
	}
	if spec.Length != 0 {
		v.Length = spec.Length
	}
	if spec.Beam != 0 {
		v.Beam = spec.Beam
	}
	if spec.Gross != 0 {
		v.Gross = spec.Gross
	}
	if spec.Netto != 0 {
		v.Netto = spec.Netto
	}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed vessel: %v", err)
	}
	return v
}

func SeedShipment(tb testing.TB, ctx context.Context, tx *gorm.DB, id, date, origin, destination string, vessel int64, distance float64) *gormModels.Shipment {
	tb.Helper()
	s := &gormModels.Shipment{
		ID:            id,
		Date:          date,
		CargoWeight:   20000,
		DistanceNaut:  distance,
		DurationHours: 150,
		AverageSpeed:  15,
		Origin:        origin,
		Destination:   destination,
		Vessel:        vessel,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed shipment: %v", err)
	}
	return s
}
