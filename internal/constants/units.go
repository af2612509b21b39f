package constants

// SpeedUnit is a speed conversion target.
type SpeedUnit string

// DistanceUnit is a distance conversion target.
type DistanceUnit string

// DurationFormat is a duration rendering format.
type DurationFormat string

const (
	SpeedKnots SpeedUnit = "Knts"
	SpeedMph   SpeedUnit = "Mph"
	SpeedKmph  SpeedUnit = "Kmph"

	DistanceNauticalMiles DistanceUnit = "NM"
	DistanceMeters        DistanceUnit = "M"
	DistanceKilometers    DistanceUnit = "KM"
	DistanceMiles         DistanceUnit = "MI"
	DistanceYards         DistanceUnit = "YD"

	DurationDaysHours DurationFormat = "%D:%H"
	DurationHours     DurationFormat = "%H"
	DurationMinutes   DurationFormat = "%M"
)

func (u SpeedUnit) String() string      { return string(u) }
func (u DistanceUnit) String() string   { return string(u) }
func (f DurationFormat) String() string { return string(f) }
