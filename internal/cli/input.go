package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"infinite-experiment/shiplog/internal/constants"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ExitSuccess           = 0
	ExitInternalError     = 1
	ExitInvalidInvocation = 2
	ExitNotFound          = 3
	ExitInvalidData       = 4
)

type Command string

const (
	CommandInit                Command = "init"
	CommandVesselCount         Command = "vessel-count"
	CommandLongestShipment     Command = "longest-shipment"
	CommandVesselLengths       Command = "vessel-lengths"
	CommandVesselBeams         Command = "vessel-beams"
	CommandBusiestVessels      Command = "busiest-vessels"
	CommandBusiestPorts        Command = "busiest-ports"
	CommandFirstShipmentPorts  Command = "first-shipment-ports"
	CommandLatestShipmentPorts Command = "latest-shipment-ports"
	CommandDockedVessels       Command = "docked-vessels"
	CommandPortsInCountry      Command = "ports-in-country"
	CommandVesselsFromCountry  Command = "vessels-from-country"
	CommandShipment            Command = "shipment"
)

var commands = []Command{
	CommandInit,
	CommandVesselCount,
	CommandLongestShipment,
	CommandVesselLengths,
	CommandVesselBeams,
	CommandBusiestVessels,
	CommandBusiestPorts,
	CommandFirstShipmentPorts,
	CommandLatestShipmentPorts,
	CommandDockedVessels,
	CommandPortsInCountry,
	CommandVesselsFromCountry,
	CommandShipment,
}

// Invocation is one parsed command line.
type Invocation struct {
	Command    Command
	ConfigFile string

	VesselType string
	Port       string
	From       time.Time
	To         time.Time
	Country    string
	CSV        bool

	ShipmentID     string
	Price          float64
	SpeedUnit      constants.SpeedUnit
	DistanceUnit   constants.DistanceUnit
	DurationFormat constants.DurationFormat

	// flags holds the parsed set so config keys can be bound to it
	flags *pflag.FlagSet
}

type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

func missingParam(flag string) error {
	return invalidInvocationf("%s: --%s", constants.MsgMissingReportParam, flag)
}

func notFoundf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitNotFound, Message: fmt.Sprintf(format, args...)}
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("shiplog", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.String("config", "", "Path to a config file (toml, yaml or json)")
	fs.String("db", "", "SQLite database path")
	fs.String("seed-file", "", "Shipments JSON used by init")
	fs.String("export-dir", "", "Directory CSV exports are written to")
	fs.String("metrics-textfile", "", "Write Prometheus metrics to this file on exit")

	fs.String("vessel-type", "", "Only consider vessels of exactly this type")
	fs.String("port", "", "Port id")
	fs.String("from", "", "Start date, YYYY-MM-DD, inclusive")
	fs.String("to", "", "End date, YYYY-MM-DD, inclusive")
	fs.String("country", "", "Country name, exact match")
	fs.Bool("csv", false, "Write the result to a CSV file instead of stdout")

	fs.String("id", "", "Shipment tracking number")
	fs.Float64("price", 0, "Fuel price per liter")
	fs.String("speed-unit", string(constants.SpeedKnots), "Knts|Mph|Kmph")
	fs.String("distance-unit", string(constants.DistanceNauticalMiles), "NM|M|KM|MI|YD")
	fs.String("duration-format", string(constants.DurationDaysHours), "%D:%H|%H|%M")
	return fs
}

// ParseInvocation parses "<command> [flags]" and checks the flags the command
// needs. It does not touch config, the environment or the database.
func ParseInvocation(args []string) (Invocation, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return Invocation{}, invalidInvocationf("%v", err)
	}
	if fs.NArg() == 0 {
		return Invocation{}, invalidInvocationf("missing command (expected one of %s)", commandList())
	}
	if fs.NArg() > 1 {
		return Invocation{}, invalidInvocationf("unexpected positional arguments: %q", strings.Join(fs.Args()[1:], " "))
	}

	cmd, err := parseCommand(fs.Arg(0))
	if err != nil {
		return Invocation{}, err
	}

	inv := Invocation{Command: cmd, flags: fs}
	inv.ConfigFile, _ = fs.GetString("config")
	inv.VesselType, _ = fs.GetString("vessel-type")
	inv.Port, _ = fs.GetString("port")
	inv.Country, _ = fs.GetString("country")
	inv.CSV, _ = fs.GetBool("csv")
	inv.ShipmentID, _ = fs.GetString("id")
	inv.Price, _ = fs.GetFloat64("price")

	speed, _ := fs.GetString("speed-unit")
	distance, _ := fs.GetString("distance-unit")
	duration, _ := fs.GetString("duration-format")
	inv.SpeedUnit = constants.SpeedUnit(speed)
	inv.DistanceUnit = constants.DistanceUnit(distance)
	inv.DurationFormat = constants.DurationFormat(duration)

	switch cmd {
	case CommandDockedVessels:
		if inv.Port == "" {
			return Invocation{}, missingParam("port")
		}
		if inv.From, err = parseDate(fs, "from"); err != nil {
			return Invocation{}, err
		}
		if inv.To, err = parseDate(fs, "to"); err != nil {
			return Invocation{}, err
		}
	case CommandPortsInCountry, CommandVesselsFromCountry:
		if inv.Country == "" {
			return Invocation{}, missingParam("country")
		}
	case CommandShipment:
		if inv.ShipmentID == "" {
			return Invocation{}, missingParam("id")
		}
		if inv.Price < 0 {
			return Invocation{}, invalidInvocationf("--price must not be negative")
		}
	}

	return inv, nil
}

func parseCommand(raw string) (Command, error) {
	for _, c := range commands {
		if Command(raw) == c {
			return c, nil
		}
	}
	return "", invalidInvocationf("unknown command %q (expected one of %s)", raw, commandList())
}

func commandList() string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = string(c)
	}
	return strings.Join(names, "|")
}

func parseDate(fs *pflag.FlagSet, name string) (time.Time, error) {
	raw, _ := fs.GetString(name)
	if raw == "" {
		return time.Time{}, missingParam(name)
	}
	d, err := time.Parse(constants.DateLayout, raw)
	if err != nil {
		return time.Time{}, invalidInvocationf("invalid --%s %q (expected YYYY-MM-DD)", name, raw)
	}
	return d, nil
}

// BindConfig lets flags override the matching config keys.
func (inv Invocation) BindConfig(v *viper.Viper) error {
	if inv.flags == nil {
		return nil
	}
	bindings := map[string]string{
		"database.path":    "db",
		"data.seed_file":   "seed-file",
		"export.dir":       "export-dir",
		"metrics.textfile": "metrics-textfile",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, inv.flags.Lookup(flag)); err != nil {
			return fmt.Errorf("bind --%s: %w", flag, err)
		}
	}
	return nil
}

// ExitCode extracts a semantic exit code from an error returned by this
// package. Unknown errors map to ExitInternalError.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr != nil {
		if invErr.ExitCode != 0 {
			return invErr.ExitCode
		}
		return ExitInvalidInvocation
	}
	return ExitInternalError
}
