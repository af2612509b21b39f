package repositories

import (
	"context"
	"errors"
	"testing"

	"infinite-experiment/shiplog/internal/db/testutil"
	"infinite-experiment/shiplog/internal/models/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	testutil.SeedPort(t, ctx, store.ORM, "MYTPP", "Malaysia")

	repo := NewPortRepository(store.SQL)

	port, err := repo.GetByID(ctx, "MYTPP")
	require.NoError(t, err)
	require.NotNil(t, port)
	assert.Equal(t, "Malaysia", port.Country)
	assert.Equal(t, "Port MYTPP", port.Name)

	missing, err := repo.GetByID(ctx, "NOPE1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.Resolve(ctx, "NOPE1")
	assert.True(t, errors.Is(err, entities.ErrReferenceNotFound))
}

func TestPortRepository_ShipmentIDs(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	testutil.SeedPort(t, ctx, store.ORM, "MYTPP", "Malaysia")
	testutil.SeedPort(t, ctx, store.ORM, "TRGEM", "Turkey")
	testutil.SeedPort(t, ctx, store.ORM, "NLRTM", "Netherlands")
	testutil.SeedVessel(t, ctx, store.ORM, 9913547, testutil.VesselSpec{})
	testutil.SeedShipment(t, ctx, store.ORM, "S-1", "2023-01-01", "MYTPP", "TRGEM", 9913547, 100)
	testutil.SeedShipment(t, ctx, store.ORM, "S-2", "2023-01-02", "NLRTM", "MYTPP", 9913547, 100)
	testutil.SeedShipment(t, ctx, store.ORM, "S-3", "2023-01-03", "NLRTM", "TRGEM", 9913547, 100)

	ids, err := NewPortRepository(store.SQL).ShipmentIDs(ctx, "MYTPP")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"S-1", "S-2"}, ids)
	assert.NotContains(t, ids, "SHIP-456")

	ids, err = NewVesselRepository(store.SQL).ShipmentIDs(ctx, 9913547)
	require.NoError(t, err)
	assert.Len(t, ids, 3)
}

func TestVesselRepository_GetByIMO(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	testutil.SeedVessel(t, ctx, store.ORM, 9913547, testutil.VesselSpec{Type: "Deck Cargo Ship", Gross: 23040, Netto: 26200})

	repo := NewVesselRepository(store.SQL)
	vessel, err := repo.GetByIMO(ctx, 9913547)
	require.NoError(t, err)
	require.NotNil(t, vessel)
	assert.Equal(t, "Deck Cargo Ship", vessel.Type)
	assert.Equal(t, int64(26200), vessel.Netto)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = repo.Resolve(ctx, 1)
	var refErr *entities.ReferenceNotFoundError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "1", refErr.Key)
}

func TestShipmentRepository_PortsAndVessel(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	testutil.SeedPort(t, ctx, store.ORM, "MYTPP", "Malaysia")
	testutil.SeedPort(t, ctx, store.ORM, "TRGEM", "Turkey")
	testutil.SeedVessel(t, ctx, store.ORM, 9913547, testutil.VesselSpec{})
	testutil.SeedShipment(t, ctx, store.ORM, "SHIP-456", "2023-05-15", "MYTPP", "TRGEM", 9913547, 7500)

	repo := NewShipmentRepository(store.SQL)
	shipment, err := repo.GetByID(ctx, "SHIP-456")
	require.NoError(t, err)
	require.NotNil(t, shipment)
	assert.Equal(t, 7500.0, shipment.DistanceNaut)

	ports, err := repo.Ports(ctx, *shipment)
	require.NoError(t, err)
	assert.Equal(t, "MYTPP", ports.Origin.ID)
	assert.Equal(t, "TRGEM", ports.Destination.ID)

	vessel, err := repo.Vessel(ctx, *shipment)
	require.NoError(t, err)
	assert.Equal(t, int64(9913547), vessel.IMO)
}

func TestShipmentRepository_DanglingReferences(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	testutil.SeedPort(t, ctx, store.ORM, "MYTPP", "Malaysia")
	testutil.SeedShipment(t, ctx, store.ORM, "SHIP-9", "2023-05-15", "MYTPP", "XXGHO", 42, 10)

	repo := NewShipmentRepository(store.SQL)
	shipment, err := repo.GetByID(ctx, "SHIP-9")
	require.NoError(t, err)

	_, err = repo.Ports(ctx, *shipment)
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrReferenceNotFound))
	assert.Contains(t, err.Error(), "XXGHO")

	_, err = repo.Vessel(ctx, *shipment)
	assert.True(t, errors.Is(err, entities.ErrReferenceNotFound))
	assert.Contains(t, err.Error(), "42")
}
