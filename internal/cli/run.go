package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"infinite-experiment/shiplog/internal/common"
	"infinite-experiment/shiplog/internal/config"
	"infinite-experiment/shiplog/internal/constants"
	"infinite-experiment/shiplog/internal/db"
	"infinite-experiment/shiplog/internal/export"
	"infinite-experiment/shiplog/internal/logging"
	"infinite-experiment/shiplog/internal/metrics"
	"infinite-experiment/shiplog/internal/models/entities"
	"infinite-experiment/shiplog/internal/services"
)

type exportResult struct {
	Exported string `json:"exported"`
}

// Execute runs inv against the configured store and writes the result to out
// as indented JSON. The returned error carries the exit code, see ExitCode.
func Execute(ctx context.Context, inv Invocation, cfg *config.Config, m *metrics.MetricsRegistry, out io.Writer) error {
	if m == nil {
		m = metrics.NewMetricsRegistry()
	}

	var (
		result any
		err    error
	)
	switch inv.Command {
	case CommandInit:
		result, err = runInit(ctx, cfg, m)
	case CommandShipment:
		result, err = runShipment(ctx, inv, cfg)
	default:
		err = services.WithShipmentReporter(ctx, cfg, m, func(r *services.ShipmentReporter) error {
			var rerr error
			result, rerr = runReport(ctx, inv, cfg, r)
			return rerr
		})
	}
	if err != nil {
		return classify(err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func runInit(ctx context.Context, cfg *config.Config, m *metrics.MetricsRegistry) (any, error) {
	store, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if err := db.Migrate(store.ORM); err != nil {
		return nil, err
	}

	loader := common.NewShipmentLoaderService(store.ORM, m)
	status, n, err := loader.Initialize(ctx, cfg.Data.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", status, err)
	}
	return map[string]any{"status": status, "shipments_loaded": n}, nil
}

func runShipment(ctx context.Context, inv Invocation, cfg *config.Config) (any, error) {
	store, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	summary, err := services.NewShipmentService(store.SQL).Summary(ctx, inv.ShipmentID, services.SummaryOptions{
		SpeedUnit:      inv.SpeedUnit,
		DistanceUnit:   inv.DistanceUnit,
		DurationFormat: inv.DurationFormat,
		PricePerLiter:  inv.Price,
	})
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, notFoundf("no shipment found with tracking number %s", inv.ShipmentID)
	}
	return summary, nil
}

func runReport(ctx context.Context, inv Invocation, cfg *config.Config, r *services.ShipmentReporter) (any, error) {
	switch inv.Command {
	case CommandVesselCount:
		count, err := r.TotalVesselCount(ctx)
		return map[string]int{"vessel_count": count}, err

	case CommandLongestShipment:
		return r.LongestShipment(ctx)

	case CommandVesselLengths:
		longest, shortest, err := r.LongestAndShortestVessels(ctx)
		return map[string]*entities.Vessel{"longest": longest, "shortest": shortest}, err

	case CommandVesselBeams:
		widest, smallest, err := r.WidestAndSmallestVessels(ctx)
		return map[string]*entities.Vessel{"widest": widest, "smallest": smallest}, err

	case CommandBusiestVessels:
		return r.VesselsWithMostShipments(ctx)

	case CommandBusiestPorts:
		return r.PortsWithMostShipments(ctx)

	case CommandFirstShipmentPorts:
		return r.PortsWithFirstShipment(ctx, inv.VesselType)

	case CommandLatestShipmentPorts:
		return r.PortsWithLatestShipment(ctx, inv.VesselType)

	case CommandDockedVessels:
		port, err := r.Port(ctx, inv.Port)
		if err != nil {
			return nil, err
		}
		if port == nil {
			return nil, notFoundf("no port found with ID %s", inv.Port)
		}
		vessels, err := r.VesselsThatDockedPortBetween(ctx, *port, inv.From, inv.To, inv.CSV)
		if err != nil || !inv.CSV {
			return vessels, err
		}
		name := fmt.Sprintf(constants.ExportDockedVesselsFile, port.ID,
			inv.From.Format(constants.DateLayout), inv.To.Format(constants.DateLayout))
		return exported(cfg, name), nil

	case CommandPortsInCountry:
		ports, err := r.PortsInCountry(ctx, inv.Country, inv.CSV)
		if err != nil || !inv.CSV {
			return ports, err
		}
		return exported(cfg, fmt.Sprintf(constants.ExportPortsInCountryFile, inv.Country)), nil

	case CommandVesselsFromCountry:
		vessels, err := r.VesselsFromCountry(ctx, inv.Country, inv.CSV)
		if err != nil || !inv.CSV {
			return vessels, err
		}
		return exported(cfg, fmt.Sprintf(constants.ExportVesselsFromCountryFile, inv.Country)), nil
	}
	return nil, invalidInvocationf("unknown command %q", inv.Command)
}

func exported(cfg *config.Config, name string) exportResult {
	return exportResult{Exported: export.NewCSVSink(cfg.Export.Dir).Path(name)}
}

// classify turns domain errors into InvocationErrors with the matching exit
// code. Everything else is left as an internal error.
func classify(err error) error {
	var invErr *InvocationError
	if errors.As(err, &invErr) {
		return err
	}

	code := entities.ErrorCode(err)
	switch {
	case errors.Is(err, entities.ErrReferenceNotFound):
		return domainError(ExitNotFound, code, err)
	case errors.Is(err, entities.ErrUnsupportedUnit), errors.Is(err, entities.ErrUnsupportedFormat):
		return domainError(ExitInvalidInvocation, code, err)
	case errors.Is(err, entities.ErrInvalidTonnage):
		return domainError(ExitInvalidData, code, err)
	}
	logging.Error("Command failed", "error", err.Error(), "code", code)
	return err
}

func domainError(exitCode int, code string, err error) error {
	return &InvocationError{
		ExitCode: exitCode,
		Message:  fmt.Sprintf("%s: %v", constants.GetErrorMessage(code), err),
	}
}
