package cli

import (
	"testing"
	"time"

	"infinite-experiment/shiplog/internal/constants"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInvocation_DockedVessels(t *testing.T) {
	inv, err := ParseInvocation([]string{"docked-vessels", "--port", "MYTPP", "--from", "2023-01-01", "--to", "2023-12-31", "--csv"})
	require.NoError(t, err)

	assert.Equal(t, CommandDockedVessels, inv.Command)
	assert.Equal(t, "MYTPP", inv.Port)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), inv.From)
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), inv.To)
	assert.True(t, inv.CSV)
}

func TestParseInvocation_ShipmentDefaults(t *testing.T) {
	inv, err := ParseInvocation([]string{"shipment", "--id", "ABC"})
	require.NoError(t, err)

	assert.Equal(t, "ABC", inv.ShipmentID)
	assert.Equal(t, constants.SpeedKnots, inv.SpeedUnit)
	assert.Equal(t, constants.DistanceNauticalMiles, inv.DistanceUnit)
	assert.Equal(t, constants.DurationDaysHours, inv.DurationFormat)
	assert.Zero(t, inv.Price)
}

func TestParseInvocation_Errors(t *testing.T) {
	cases := map[string][]string{
		"no command":         {},
		"unknown command":    {"sail"},
		"extra positional":   {"vessel-count", "now"},
		"unknown flag":       {"vessel-count", "--loud"},
		"docked no port":     {"docked-vessels", "--from", "2023-01-01", "--to", "2023-01-02"},
		"docked no from":     {"docked-vessels", "--port", "X", "--to", "2023-01-02"},
		"docked bad date":    {"docked-vessels", "--port", "X", "--from", "01/01/2023", "--to", "2023-01-02"},
		"country missing":    {"ports-in-country"},
		"vessels no country": {"vessels-from-country", "--csv"},
		"shipment no id":     {"shipment"},
		"negative price":     {"shipment", "--id", "A", "--price", "-1"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseInvocation(args)
			require.Error(t, err)
			assert.Equal(t, ExitInvalidInvocation, ExitCode(err))
		})
	}
}

func TestInvocation_BindConfig(t *testing.T) {
	inv, err := ParseInvocation([]string{"vessel-count", "--db", "/tmp/other.db"})
	require.NoError(t, err)

	v := viper.New()
	v.SetDefault("database.path", "shipments.db")
	v.SetDefault("export.dir", ".")
	require.NoError(t, inv.BindConfig(v))

	assert.Equal(t, "/tmp/other.db", v.GetString("database.path"))
	assert.Equal(t, ".", v.GetString("export.dir"))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitNotFound, ExitCode(notFoundf("gone")))
	assert.Equal(t, ExitInvalidInvocation, ExitCode(&InvocationError{Message: "no code"}))
	assert.Equal(t, ExitInternalError, ExitCode(assert.AnError))
}

func TestParseInvocation_MissingParamMessage(t *testing.T) {
	_, err := ParseInvocation([]string{"ports-in-country"})
	require.Error(t, err)
	assert.Equal(t, constants.MsgMissingReportParam+": --country", err.Error())

	_, err = ParseInvocation([]string{"docked-vessels", "--port", "X", "--from", "2023-01-01"})
	require.Error(t, err)
	assert.Equal(t, constants.MsgMissingReportParam+": --to", err.Error())
}
