package services

import (
	"context"
	"errors"
	"testing"

	"infinite-experiment/shiplog/internal/common"
	"infinite-experiment/shiplog/internal/constants"
	"infinite-experiment/shiplog/internal/db/testutil"
	"infinite-experiment/shiplog/internal/models/entities"
	gormModels "infinite-experiment/shiplog/internal/models/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShipmentService_Summary(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()
	testutil.SeedPort(t, ctx, store.ORM, "MYTPP", "Malaysia")
	testutil.SeedPort(t, ctx, store.ORM, "TRGEM", "Turkey")
	testutil.SeedVessel(t, ctx, store.ORM, 9913547, testutil.VesselSpec{
		Type: "Deck Cargo Ship", Gross: 23040, Netto: 26200,
	})
	testutil.SeedShipment(t, ctx, store.ORM, "MYTPP-TRGEM", "2023-01-10", "MYTPP", "TRGEM", 9913547, 7500)

	svc := NewShipmentService(store.SQL)

	t.Run("defaults", func(t *testing.T) {
		summary, err := svc.Summary(ctx, "MYTPP-TRGEM", SummaryOptions{})
		require.NoError(t, err)
		require.NotNil(t, summary)

		assert.Equal(t, "MYTPP", summary.Origin.ID)
		assert.Equal(t, "TRGEM", summary.Destination.ID)
		assert.Equal(t, int64(9913547), summary.Vessel.IMO)
		assert.Equal(t, "Knts", summary.SpeedUnit)
		assert.Equal(t, 15.0, summary.Speed)
		assert.Equal(t, "NM", summary.DistanceUnit)
		assert.Equal(t, 7500.0, summary.Distance)
		assert.Equal(t, "6 days : 6 hours", summary.Duration)
		require.NotNil(t, summary.FuelConsumption)
		assert.Equal(t, common.Round(0.4*(23040.0/26200.0)*7500, 5), *summary.FuelConsumption)
		assert.Nil(t, summary.FuelCost)
	})

	t.Run("converted with price", func(t *testing.T) {
		summary, err := svc.Summary(ctx, "MYTPP-TRGEM", SummaryOptions{
			SpeedUnit:      constants.SpeedKmph,
			DistanceUnit:   constants.DistanceKilometers,
			DurationFormat: constants.DurationMinutes,
			PricePerLiter:  2,
		})
		require.NoError(t, err)
		require.NotNil(t, summary)

		assert.Equal(t, 27.78, summary.Speed)
		assert.Equal(t, 13890.0, summary.Distance)
		assert.Equal(t, "9000 minutes", summary.Duration)
		require.NotNil(t, summary.FuelCost)
		require.NotNil(t, summary.FuelConsumption)
		assert.Equal(t, common.Round(150*(*summary.FuelConsumption)*2, 3), *summary.FuelCost)
	})

	t.Run("missing shipment", func(t *testing.T) {
		summary, err := svc.Summary(ctx, "NOPE", SummaryOptions{})
		require.NoError(t, err)
		assert.Nil(t, summary)
	})

	t.Run("unsupported unit", func(t *testing.T) {
		_, err := svc.Summary(ctx, "MYTPP-TRGEM", SummaryOptions{SpeedUnit: "furlongs"})
		assert.True(t, errors.Is(err, entities.ErrUnsupportedUnit))
	})
}

func TestShipmentService_SummaryDanglingVessel(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()
	testutil.SeedPort(t, ctx, store.ORM, "MYTPP", "Malaysia")
	testutil.SeedPort(t, ctx, store.ORM, "TRGEM", "Turkey")
	testutil.SeedShipment(t, ctx, store.ORM, "S1", "2023-01-10", "MYTPP", "TRGEM", 1234567, 100)

	_, err := NewShipmentService(store.SQL).Summary(ctx, "S1", SummaryOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrReferenceNotFound))
	assert.Equal(t, constants.ErrCodeReferenceNotFound, entities.ErrorCode(err))
}

func TestShipmentService_SummaryZeroNetTonnage(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()
	testutil.SeedPort(t, ctx, store.ORM, "MYTPP", "Malaysia")
	testutil.SeedPort(t, ctx, store.ORM, "TRGEM", "Turkey")
	testutil.SeedVessel(t, ctx, store.ORM, 1000001, testutil.VesselSpec{})
	require.NoError(t, store.ORM.Model(&gormModels.Vessel{}).Where("imo = ?", 1000001).Update("netto", 0).Error)
	testutil.SeedShipment(t, ctx, store.ORM, "S1", "2023-01-10", "MYTPP", "TRGEM", 1000001, 7500)

	svc := NewShipmentService(store.SQL)

	summary, err := svc.Summary(ctx, "S1", SummaryOptions{DurationFormat: constants.DurationHours})
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 15.0, summary.Speed)
	assert.Equal(t, 7500.0, summary.Distance)
	assert.Equal(t, "150 hours", summary.Duration)
	assert.Nil(t, summary.FuelConsumption)
	assert.Nil(t, summary.FuelCost)

	_, err = svc.Summary(ctx, "S1", SummaryOptions{PricePerLiter: 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrInvalidTonnage))
	assert.Equal(t, constants.ErrCodeInvalidTonnage, entities.ErrorCode(err))
}
