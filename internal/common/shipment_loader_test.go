package common

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"infinite-experiment/shiplog/internal/constants"
	"infinite-experiment/shiplog/internal/db/testutil"
	"infinite-experiment/shiplog/internal/metrics"
	gormModels "infinite-experiment/shiplog/internal/models/gorm"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedJSON = `[
  {
    "tracking_number": "MYTPP-TRGEM-0001",
    "date": "2023-01-10",
    "cargo_weight": 20000,
    "distance_naut": 7500,
    "duration_hours": 150,
    "average_speed": 15,
    "origin": {"id": "MYTPP", "code": 55793, "name": "Tanjung Pelepas", "city": "Tanjung Pelepas", "province": "Johor", "country": "Malaysia"},
    "destination": {"id": "TRGEM", "code": 48947, "name": "Gemlik", "city": "Gemlik", "province": "Bursa", "country": "Turkey"},
    "vessel": {"imo": 9913547, "mmsi": 538009876, "name": "Sea Mule", "country": "Marshall Islands", "type": "Deck Cargo Ship", "build": 2021, "gross": 23040, "netto": 26200, "size": "199 / 32"}
  },
  {
    "tracking_number": "TRGEM-MYTPP-0002",
    "date": "2023-02-01",
    "cargo_weight": 18000,
    "distance_naut": 7500,
    "duration_hours": 160,
    "average_speed": 14,
    "origin": {"id": "TRGEM", "code": 1, "name": "Renamed Gemlik", "city": "Gemlik", "province": "Bursa", "country": "Turkey"},
    "destination": {"id": "MYTPP", "code": 55793, "name": "Tanjung Pelepas", "city": "Tanjung Pelepas", "province": "Johor", "country": "Malaysia"},
    "vessel": {"imo": 9913547, "mmsi": 538009876, "name": "Sea Mule", "country": "Marshall Islands", "type": "Deck Cargo Ship", "build": 2021, "gross": 23040, "netto": 26200, "size": "199 / 32"}
  },
  {
    "tracking_number": "BAD-SIZE",
    "date": "2023-03-01",
    "origin": {"id": "MYTPP"},
    "destination": {"id": "TRGEM"},
    "vessel": {"imo": 1234567, "size": "199x32"}
  },
  {
    "tracking_number": "BAD-DATE",
    "date": "01/03/2023",
    "origin": {"id": "MYTPP"},
    "destination": {"id": "TRGEM"},
    "vessel": {"imo": 1234567, "size": "100 / 20"}
  }
]`

func TestParseVesselSize(t *testing.T) {
	length, beam, err := parseVesselSize("199 / 32")
	require.NoError(t, err)
	assert.Equal(t, 199, length)
	assert.Equal(t, 32, beam)

	for _, bad := range []string{"", "199/32", "199 / ", "a / 32", "1 / 2 / 3"} {
		_, _, err := parseVesselSize(bad)
		assert.Error(t, err, bad)
	}
}

func TestShipmentLoader_LoadFromJSON(t *testing.T) {
	store := testutil.NewStore(t)
	m := metrics.NewMetricsRegistry()
	loader := NewShipmentLoaderService(store.ORM, m)
	ctx := context.Background()

	n, err := loader.LoadFromJSON(ctx, strings.NewReader(seedJSON))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2.0, promtestutil.ToFloat64(m.ShipmentsLoadTotal))

	var vessel gormModels.Vessel
	require.NoError(t, store.ORM.First(&vessel, "imo = ?", 9913547).Error)
	assert.Equal(t, 199, vessel.Length)
	assert.Equal(t, 32, vessel.Beam)
	assert.Equal(t, int64(26200), vessel.Netto)

	// first occurrence wins
	var port gormModels.Port
	require.NoError(t, store.ORM.First(&port, "id = ?", "TRGEM").Error)
	assert.Equal(t, "Gemlik", port.Name)
	assert.Equal(t, int64(48947), port.Code)

	var shipments, vessels, ports int64
	store.ORM.Model(&gormModels.Shipment{}).Count(&shipments)
	store.ORM.Model(&gormModels.Vessel{}).Count(&vessels)
	store.ORM.Model(&gormModels.Port{}).Count(&ports)
	assert.Equal(t, int64(2), shipments)
	assert.Equal(t, int64(1), vessels)
	assert.Equal(t, int64(2), ports)
}

func TestShipmentLoader_ExistingRowsIgnored(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()
	testutil.SeedPort(t, ctx, store.ORM, "MYTPP", "Somewhere")

	_, err := NewShipmentLoaderService(store.ORM, nil).LoadFromJSON(ctx, strings.NewReader(seedJSON))
	require.NoError(t, err)

	var port gormModels.Port
	require.NoError(t, store.ORM.First(&port, "id = ?", "MYTPP").Error)
	assert.Equal(t, "Somewhere", port.Country)
}

func TestShipmentLoader_DuplicateShipmentRollsBack(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()
	testutil.SeedShipment(t, ctx, store.ORM, "TRGEM-MYTPP-0002", "2022-01-01", "X", "Y", 1, 1)

	_, err := NewShipmentLoaderService(store.ORM, nil).LoadFromJSON(ctx, strings.NewReader(seedJSON))
	require.Error(t, err)

	var ports int64
	store.ORM.Model(&gormModels.Port{}).Count(&ports)
	assert.Zero(t, ports)
}

func TestShipmentLoader_Rejects(t *testing.T) {
	store := testutil.NewStore(t)
	loader := NewShipmentLoaderService(store.ORM, nil)
	ctx := context.Background()

	_, err := loader.LoadFromJSON(ctx, strings.NewReader(`{"not": "an array"}`))
	assert.Error(t, err)

	_, err = loader.LoadFromJSON(ctx, strings.NewReader(`[]`))
	assert.EqualError(t, err, constants.MsgNoShipmentsInFile)

	_, err = loader.LoadFromJSON(ctx, strings.NewReader(`[{"tracking_number": "X", "date": "2023-01-01"}]`))
	assert.EqualError(t, err, constants.MsgNoValidShipments)
}

func TestShipmentLoader_Initialize(t *testing.T) {
	store := testutil.NewStore(t)
	loader := NewShipmentLoaderService(store.ORM, nil)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "shipments.json")
	require.NoError(t, os.WriteFile(path, []byte(seedJSON), 0o644))

	status, n, err := loader.Initialize(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusPopulated, status)
	assert.Equal(t, 2, n)

	status, n, err = loader.Initialize(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusAlreadyPopulated, status)
	assert.Zero(t, n)
}

func TestShipmentLoader_InitializeMissingFile(t *testing.T) {
	store := testutil.NewStore(t)

	status, _, err := NewShipmentLoaderService(store.ORM, nil).Initialize(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.Equal(t, constants.StatusLoadFailed, status)
}

func TestShipmentLoader_SkipsZeroNetTonnage(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	records := `[
	  {"tracking_number": "ZERO", "date": "2023-01-01", "origin": {"id": "AAAAA"}, "destination": {"id": "BBBBB"},
	   "vessel": {"imo": 1000001, "gross": 100, "netto": 0, "size": "100 / 20"}},
	  {"tracking_number": "OK", "date": "2023-01-02", "origin": {"id": "AAAAA"}, "destination": {"id": "BBBBB"},
	   "vessel": {"imo": 1000002, "gross": 100, "netto": 50, "size": "100 / 20"}}
	]`
	n, err := NewShipmentLoaderService(store.ORM, nil).LoadFromJSON(ctx, strings.NewReader(records))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var vessels []gormModels.Vessel
	require.NoError(t, store.ORM.Find(&vessels).Error)
	require.Len(t, vessels, 1)
	assert.Equal(t, int64(1000002), vessels[0].IMO)
}
