package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"infinite-experiment/shiplog/internal/config"
	"infinite-experiment/shiplog/internal/constants"
	"infinite-experiment/shiplog/internal/db"
	"infinite-experiment/shiplog/internal/db/repositories"
	"infinite-experiment/shiplog/internal/export"
	"infinite-experiment/shiplog/internal/logging"
	"infinite-experiment/shiplog/internal/metrics"
	"infinite-experiment/shiplog/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// ShipmentReporter runs the analytical queries over ports, vessels and
// shipments. It never writes to the store.
type ShipmentReporter struct {
	db      *sqlx.DB
	ports   *repositories.PortRepository
	vessels *repositories.VesselRepository
	sink    export.Sink
	metrics *metrics.MetricsRegistry

	// set when the reporter opened the store itself
	store *db.Store
}

type vesselCount struct {
	VesselKey     int64 `db:"vessel_key"`
	ShipmentCount int   `db:"shipment_count"`
}

type portCount struct {
	PortKey       string `db:"port_key"`
	ShipmentCount int    `db:"shipment_count"`
}

type portDate struct {
	PortKey      string `db:"port_key"`
	ShipmentDate string `db:"shipment_date"`
}

// NewShipmentReporter builds a reporter over an open connection. The caller
// keeps ownership of conn. sink may be nil when no report is exported.
func NewShipmentReporter(conn *sqlx.DB, sink export.Sink, m *metrics.MetricsRegistry) *ShipmentReporter {
	if m == nil {
		m = metrics.NewMetricsRegistry()
	}
	return &ShipmentReporter{
		db:      conn,
		ports:   repositories.NewPortRepository(conn),
		vessels: repositories.NewVesselRepository(conn),
		sink:    sink,
		metrics: m,
	}
}

// OpenShipmentReporter opens the configured store and returns a reporter that
// owns it. Close releases the store.
func OpenShipmentReporter(ctx context.Context, cfg *config.Config, m *metrics.MetricsRegistry) (*ShipmentReporter, error) {
	store, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	r := NewShipmentReporter(store.SQL, export.NewCSVSink(cfg.Export.Dir), m)
	r.store = store
	return r, nil
}

// WithShipmentReporter opens a reporter, hands it to fn and closes it however
// fn returns.
func WithShipmentReporter(ctx context.Context, cfg *config.Config, m *metrics.MetricsRegistry, fn func(*ShipmentReporter) error) (err error) {
	r, err := OpenShipmentReporter(ctx, cfg, m)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(r)
}

// Close releases the store if the reporter opened it.
func (r *ShipmentReporter) Close() error {
	if r.store == nil {
		return nil
	}
	err := r.store.Close()
	r.store = nil
	return err
}

// Port returns the port with the given id, or nil when there is none.
func (r *ShipmentReporter) Port(ctx context.Context, id string) (*entities.Port, error) {
	return r.ports.GetByID(ctx, id)
}

func (r *ShipmentReporter) observeQuery(name string, start time.Time) {
	r.metrics.DBQueriesTotal.WithLabelValues(name).Inc()
	r.metrics.DBQueryDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}

func (r *ShipmentReporter) selectRows(ctx context.Context, name string, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	defer r.observeQuery(name, start)

	if err := r.db.SelectContext(ctx, dest, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("query %s: %w", name, err)
	}
	return nil
}

// getRow scans a single row into dest and reports whether one was found.
func (r *ShipmentReporter) getRow(ctx context.Context, name string, dest interface{}, query string, args ...interface{}) (bool, error) {
	start := time.Now()
	defer r.observeQuery(name, start)

	err := r.db.GetContext(ctx, dest, r.db.Rebind(query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("query %s: %w", name, err)
	}
	return true, nil
}

func (r *ShipmentReporter) finish(report constants.ReportName, start time.Time, rows int, exported bool, err error) {
	outcome := metrics.OutcomeOK
	switch {
	case err != nil:
		outcome = metrics.OutcomeError
		code := entities.ErrorCode(err)
		logging.Error("Report failed",
			"report", report,
			"error", err.Error(),
			"code", code,
			"message", constants.GetErrorMessage(code),
		)
	case exported:
		outcome = metrics.OutcomeExported
		r.metrics.RowsExportedTotal.WithLabelValues(string(report)).Add(float64(rows))
	}
	r.metrics.ReportsTotal.WithLabelValues(string(report), outcome).Inc()

	logging.Debug("Report finished",
		"report", report,
		"rows", rows,
		"exported", exported,
		"duration", GetResponseTime(start),
	)
}

func (r *ShipmentReporter) export(name string, fields []string, rows []map[string]string) error {
	if r.sink == nil {
		return fmt.Errorf("%s: no export sink configured", constants.ErrCodeExportFailed)
	}
	if err := r.sink.Write(name, fields, rows); err != nil {
		return fmt.Errorf("%s: %w", constants.ErrCodeExportFailed, err)
	}
	logging.Info("Report exported", "file", name, "rows", len(rows))
	return nil
}

// TotalVesselCount returns the number of vessels
func (r *ShipmentReporter) TotalVesselCount(ctx context.Context) (count int, err error) {
	start := time.Now()
	defer func() { r.finish(constants.ReportVesselCount, start, 1, false, err) }()

	if _, err = r.getRow(ctx, "count_vessels", &count, constants.CountVessels); err != nil {
		return 0, err
	}
	return count, nil
}

// LongestShipment returns the shipment with the greatest distance, or nil when
// there are no shipments.
func (r *ShipmentReporter) LongestShipment(ctx context.Context) (_ *entities.Shipment, err error) {
	start := time.Now()
	rows := 0
	defer func() { r.finish(constants.ReportLongestShipment, start, rows, false, err) }()

	var s entities.Shipment
	found, err := r.getRow(ctx, "longest_shipment", &s, constants.LongestShipment)
	if err != nil || !found {
		return nil, err
	}
	rows = 1
	return &s, nil
}

// LongestAndShortestVessels returns the vessels with the greatest and
// smallest length. Each side is one row; when several vessels tie, which one
// comes back is up to the database.
func (r *ShipmentReporter) LongestAndShortestVessels(ctx context.Context) (longest, shortest *entities.Vessel, err error) {
	start := time.Now()
	defer func() { r.finish(constants.ReportVesselLengths, start, countNonNil(longest, shortest), false, err) }()

	longest, err = r.singleVessel(ctx, "longest_vessel", constants.LongestVessel)
	if err != nil {
		return nil, nil, err
	}
	shortest, err = r.singleVessel(ctx, "shortest_vessel", constants.ShortestVessel)
	if err != nil {
		return nil, nil, err
	}
	return longest, shortest, nil
}

// WidestAndSmallestVessels is LongestAndShortestVessels by beam.
func (r *ShipmentReporter) WidestAndSmallestVessels(ctx context.Context) (widest, smallest *entities.Vessel, err error) {
	start := time.Now()
	defer func() { r.finish(constants.ReportVesselBeams, start, countNonNil(widest, smallest), false, err) }()

	widest, err = r.singleVessel(ctx, "widest_vessel", constants.WidestVessel)
	if err != nil {
		return nil, nil, err
	}
	smallest, err = r.singleVessel(ctx, "smallest_vessel", constants.SmallestVessel)
	if err != nil {
		return nil, nil, err
	}
	return widest, smallest, nil
}

func (r *ShipmentReporter) singleVessel(ctx context.Context, name, query string) (*entities.Vessel, error) {
	var v entities.Vessel
	found, err := r.getRow(ctx, name, &v, query)
	if err != nil || !found {
		return nil, err
	}
	return &v, nil
}

func countNonNil(vessels ...*entities.Vessel) int {
	n := 0
	for _, v := range vessels {
		if v != nil {
			n++
		}
	}
	return n
}

// VesselsWithMostShipments returns every vessel tied at the highest shipment
// count, in the order the grouped query yields them.
func (r *ShipmentReporter) VesselsWithMostShipments(ctx context.Context) (_ []entities.Vessel, err error) {
	start := time.Now()
	vessels := []entities.Vessel{}
	defer func() { r.finish(constants.ReportBusiestVessels, start, len(vessels), false, err) }()

	var counts []vesselCount
	if err = r.selectRows(ctx, "shipment_count_by_vessel", &counts, constants.ShipmentCountByVessel); err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return vessels, nil
	}

	l := newLookup(r.ports, r.vessels)
	top := counts[0].ShipmentCount
	for _, c := range counts {
		if c.ShipmentCount != top {
			continue
		}
		v, lerr := l.vessel(ctx, c.VesselKey)
		if lerr != nil {
			err = lerr
			return nil, err
		}
		vessels = append(vessels, v)
	}
	return vessels, nil
}

// PortsWithMostShipments counts shipments per origin port only and returns
// every port tied at the maximum, ascending by port id.
func (r *ShipmentReporter) PortsWithMostShipments(ctx context.Context) (_ []entities.Port, err error) {
	start := time.Now()
	ports := []entities.Port{}
	defer func() { r.finish(constants.ReportBusiestPorts, start, len(ports), false, err) }()

	var counts []portCount
	if err = r.selectRows(ctx, "shipment_count_by_origin", &counts, constants.ShipmentCountByOrigin); err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return ports, nil
	}

	l := newLookup(r.ports, r.vessels)
	top := counts[0].ShipmentCount
	for _, c := range counts {
		if c.ShipmentCount != top {
			continue
		}
		p, lerr := l.port(ctx, c.PortKey)
		if lerr != nil {
			err = lerr
			return nil, err
		}
		ports = append(ports, p)
	}
	return ports, nil
}

// PortsWithFirstShipment returns the origin ports whose earliest shipment
// falls on the overall earliest date. A non-empty vesselType restricts the
// shipments considered to vessels of exactly that type.
func (r *ShipmentReporter) PortsWithFirstShipment(ctx context.Context, vesselType string) (_ []entities.Port, err error) {
	start := time.Now()
	var ports []entities.Port
	defer func() { r.finish(constants.ReportFirstShipmentPorts, start, len(ports), false, err) }()

	query, args := constants.FirstShipmentByOrigin, []interface{}{}
	if vesselType != "" {
		query, args = constants.FirstShipmentByOriginForType, []interface{}{vesselType}
	}

	ports, err = r.portsAtExtremeDate(ctx, "first_shipment_by_origin", query, args...)
	return ports, err
}

// PortsWithLatestShipment mirrors PortsWithFirstShipment on the latest date.
// The query runs newest first and the result is then reversed, so tied ports
// come back in the opposite order to the query's tie-break.
func (r *ShipmentReporter) PortsWithLatestShipment(ctx context.Context, vesselType string) (_ []entities.Port, err error) {
	start := time.Now()
	var ports []entities.Port
	defer func() { r.finish(constants.ReportLatestShipmentPort, start, len(ports), false, err) }()

	query, args := constants.LatestShipmentByOrigin, []interface{}{}
	if vesselType != "" {
		query, args = constants.LatestShipmentByOriginForType, []interface{}{vesselType}
	}

	ports, err = r.portsAtExtremeDate(ctx, "latest_shipment_by_origin", query, args...)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(ports)-1; i < j; i, j = i+1, j-1 {
		ports[i], ports[j] = ports[j], ports[i]
	}
	return ports, nil
}

// portsAtExtremeDate keeps the ports whose date equals the first row's date.
func (r *ShipmentReporter) portsAtExtremeDate(ctx context.Context, name, query string, args ...interface{}) ([]entities.Port, error) {
	var dates []portDate
	if err := r.selectRows(ctx, name, &dates, query, args...); err != nil {
		return nil, err
	}

	ports := []entities.Port{}
	if len(dates) == 0 {
		return ports, nil
	}

	l := newLookup(r.ports, r.vessels)
	extreme := dates[0].ShipmentDate
	for _, d := range dates {
		if d.ShipmentDate != extreme {
			continue
		}
		p, err := l.port(ctx, d.PortKey)
		if err != nil {
			return nil, err
		}
		ports = append(ports, p)
	}
	return ports, nil
}

// VesselsThatDockedPortBetween returns the distinct vessels with a shipment
// starting or ending at port dated within [from, to], ascending by IMO. With
// exportToFile the vessels are written to the sink and an empty slice is
// returned.
func (r *ShipmentReporter) VesselsThatDockedPortBetween(ctx context.Context, port entities.Port, from, to time.Time, exportToFile bool) (_ []entities.Vessel, err error) {
	start := time.Now()
	vessels := []entities.Vessel{}
	defer func() { r.finish(constants.ReportDockedVessels, start, len(vessels), exportToFile, err) }()

	fromDate := from.Format(constants.DateLayout)
	toDate := to.Format(constants.DateLayout)

	if err = r.selectRows(ctx, "vessels_docked_between", &vessels, constants.VesselsDockedBetween,
		port.ID, port.ID, fromDate, toDate); err != nil {
		return nil, err
	}

	if exportToFile {
		name := fmt.Sprintf(constants.ExportDockedVesselsFile, port.ID, fromDate, toDate)
		if err = r.export(name, entities.VesselFields, vesselRecords(vessels)); err != nil {
			return nil, err
		}
		return []entities.Vessel{}, nil
	}
	return vessels, nil
}

// PortsInCountry returns the ports in country, ascending by id. With
// exportToFile the ports are written to the sink and an empty slice is
// returned.
func (r *ShipmentReporter) PortsInCountry(ctx context.Context, country string, exportToFile bool) (_ []entities.Port, err error) {
	start := time.Now()
	ports := []entities.Port{}
	defer func() { r.finish(constants.ReportPortsInCountry, start, len(ports), exportToFile, err) }()

	if err = r.selectRows(ctx, "ports_in_country", &ports, constants.PortsInCountry, country); err != nil {
		return nil, err
	}

	if exportToFile {
		rows := make([]map[string]string, 0, len(ports))
		for _, p := range ports {
			rows = append(rows, p.Record())
		}
		if err = r.export(fmt.Sprintf(constants.ExportPortsInCountryFile, country), entities.PortFields, rows); err != nil {
			return nil, err
		}
		return []entities.Port{}, nil
	}
	return ports, nil
}

// VesselsFromCountry returns the vessels flagged in country in storage order.
// With exportToFile the vessels are written to the sink and an empty slice is
// returned.
func (r *ShipmentReporter) VesselsFromCountry(ctx context.Context, country string, exportToFile bool) (_ []entities.Vessel, err error) {
	start := time.Now()
	vessels := []entities.Vessel{}
	defer func() { r.finish(constants.ReportVesselsFromCountry, start, len(vessels), exportToFile, err) }()

	if err = r.selectRows(ctx, "vessels_from_country", &vessels, constants.VesselsFromCountry, country); err != nil {
		return nil, err
	}

	if exportToFile {
		if err = r.export(fmt.Sprintf(constants.ExportVesselsFromCountryFile, country), entities.VesselFields, vesselRecords(vessels)); err != nil {
			return nil, err
		}
		return []entities.Vessel{}, nil
	}
	return vessels, nil
}

func vesselRecords(vessels []entities.Vessel) []map[string]string {
	rows := make([]map[string]string, 0, len(vessels))
	for _, v := range vessels {
		rows = append(rows, v.Record())
	}
	return rows
}
