package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"infinite-experiment/shiplog/internal/constants"
	"infinite-experiment/shiplog/internal/logging"
	"infinite-experiment/shiplog/internal/metrics"
	gormModels "infinite-experiment/shiplog/internal/models/gorm"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const loadBatchSize = 100

var validate = newRecordValidator()

func newRecordValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("vessel_size", func(fl validator.FieldLevel) bool {
		_, _, err := parseVesselSize(fl.Field().String())
		return err == nil
	})
	return v
}

// ShipmentLoaderService loads shipment records, with their ports and vessels,
// from a JSON document into the store.
type ShipmentLoaderService struct {
	db      *gorm.DB
	metrics *metrics.MetricsRegistry
}

// RawPort is a port as it appears inside a shipment record
type RawPort struct {
	ID       string `json:"id" validate:"required"`
	Code     int64  `json:"code"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
}

// RawVessel is a vessel as it appears inside a shipment record. Size is
// "<length> / <beam>".
type RawVessel struct {
	IMO     int64  `json:"imo" validate:"required"`
	MMSI    int64  `json:"mmsi"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Type    string `json:"type"`
	Build   int    `json:"build"`
	Gross   int64  `json:"gross" validate:"gte=0"`
	Netto   int64  `json:"netto" validate:"gt=0"`
	Size    string `json:"size" validate:"vessel_size"`
}

// RawShipment is one entry of the shipments JSON array
type RawShipment struct {
	TrackingNumber string    `json:"tracking_number" validate:"required"`
	Date           string    `json:"date" validate:"required,datetime=2006-01-02"`
	CargoWeight    int64     `json:"cargo_weight"`
	DistanceNaut   float64   `json:"distance_naut" validate:"gte=0"`
	DurationHours  float64   `json:"duration_hours" validate:"gte=0"`
	AverageSpeed   float64   `json:"average_speed" validate:"gte=0"`
	Origin         RawPort   `json:"origin"`
	Destination    RawPort   `json:"destination"`
	Vessel         RawVessel `json:"vessel"`
}

// NewShipmentLoaderService creates a loader writing through db. m may be nil.
func NewShipmentLoaderService(db *gorm.DB, m *metrics.MetricsRegistry) *ShipmentLoaderService {
	return &ShipmentLoaderService{db: db, metrics: m}
}

// Initialize loads path when any of ports, vessels or shipments is empty and
// returns the status message and the number of shipments inserted.
func (s *ShipmentLoaderService) Initialize(ctx context.Context, path string) (string, int, error) {
	empty, err := s.anyTableEmpty(ctx)
	if err != nil {
		return constants.StatusLoadFailed, 0, err
	}
	if !empty {
		logging.Info(constants.StatusAlreadyPopulated)
		return constants.StatusAlreadyPopulated, 0, nil
	}

	logging.Info("Populating the database with JSON data", "file", path)
	f, err := os.Open(path)
	if err != nil {
		return constants.StatusLoadFailed, 0, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	n, err := s.LoadFromJSON(ctx, f)
	if err != nil {
		return constants.StatusLoadFailed, 0, err
	}
	return constants.StatusPopulated, n, nil
}

func (s *ShipmentLoaderService) anyTableEmpty(ctx context.Context) (bool, error) {
	for _, model := range []interface{}{&gormModels.Vessel{}, &gormModels.Port{}, &gormModels.Shipment{}} {
		var count int64
		if err := s.db.WithContext(ctx).Model(model).Count(&count).Error; err != nil {
			return false, fmt.Errorf("count rows: %w", err)
		}
		if count == 0 {
			return true, nil
		}
	}
	return false, nil
}

// LoadFromJSON parses an array of shipment records and inserts them in one
// transaction. Ports and vessels already present are left untouched, the
// first occurrence in the document wins. Records failing validation are
// skipped. Returns the number of shipments inserted.
func (s *ShipmentLoaderService) LoadFromJSON(ctx context.Context, reader io.Reader) (int, error) {
	var raw []RawShipment
	if err := json.NewDecoder(reader).Decode(&raw); err != nil {
		return 0, fmt.Errorf("failed to decode JSON: %w", err)
	}
	if len(raw) == 0 {
		return 0, errors.New(constants.MsgNoShipmentsInFile)
	}

	logging.Info("Read shipment records", "count", len(raw))

	var (
		ports     []gormModels.Port
		vessels   []gormModels.Vessel
		shipments []gormModels.Shipment
		seenPort  = map[string]bool{}
		seenImo   = map[int64]bool{}
	)
	addPort := func(p RawPort) {
		id := strings.TrimSpace(p.ID)
		if seenPort[id] {
			return
		}
		seenPort[id] = true
		ports = append(ports, gormModels.Port{
			ID:       id,
			Code:     p.Code,
			Name:     p.Name,
			City:     p.City,
			Province: p.Province,
			Country:  p.Country,
		})
	}

	for i, r := range raw {
		if err := validate.Struct(r); err != nil {
			logging.Warn("Skipping invalid shipment record",
				"index", i,
				"tracking_number", r.TrackingNumber,
				"error", err.Error(),
				"code", constants.ErrCodeInvalidRecord,
			)
			continue
		}
		length, beam, _ := parseVesselSize(r.Vessel.Size)

		addPort(r.Origin)
		addPort(r.Destination)
		if !seenImo[r.Vessel.IMO] {
			seenImo[r.Vessel.IMO] = true
			vessels = append(vessels, gormModels.Vessel{
				IMO:     r.Vessel.IMO,
				MMSI:    r.Vessel.MMSI,
				Name:    r.Vessel.Name,
				Country: r.Vessel.Country,
				Type:    r.Vessel.Type,
				Build:   r.Vessel.Build,
				Gross:   r.Vessel.Gross,
				Netto:   r.Vessel.Netto,
				Length:  length,
				Beam:    beam,
			})
		}
		shipments = append(shipments, gormModels.Shipment{
			ID:            strings.TrimSpace(r.TrackingNumber),
			Date:          r.Date,
			CargoWeight:   r.CargoWeight,
			DistanceNaut:  r.DistanceNaut,
			DurationHours: r.DurationHours,
			AverageSpeed:  r.AverageSpeed,
			Origin:        strings.TrimSpace(r.Origin.ID),
			Destination:   strings.TrimSpace(r.Destination.ID),
			Vessel:        r.Vessel.IMO,
		})
	}

	if len(shipments) == 0 {
		return 0, errors.New(constants.MsgNoValidShipments)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ignore := tx.Clauses(clause.OnConflict{DoNothing: true})
		if err := ignore.CreateInBatches(ports, loadBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert ports: %w", err)
		}
		if err := ignore.CreateInBatches(vessels, loadBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert vessels: %w", err)
		}
		if err := tx.CreateInBatches(shipments, loadBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert shipments: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.ShipmentsLoadTotal.Add(float64(len(shipments)))
	}
	logging.Info("Imported shipments",
		"shipments", len(shipments),
		"ports", len(ports),
		"vessels", len(vessels),
	)
	return len(shipments), nil
}

// parseVesselSize splits "<length> / <beam>" into its integer parts.
func parseVesselSize(size string) (int, int, error) {
	parts := strings.Split(size, " / ")
	if len(parts) != 2 {
		return 0, 0, errors.New(constants.MsgInvalidVesselSize)
	}
	length, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, errors.New(constants.MsgInvalidVesselSize)
	}
	beam, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, errors.New(constants.MsgInvalidVesselSize)
	}
	return length, beam, nil
}
