package constants

type (
	ReportName  string
	CachePrefix string
)

// DateLayout is the on-disk shipment date format. Lexicographic order on it is
// date order, which the range queries rely on.
const DateLayout = "2006-01-02"

const (
	ReportVesselCount        ReportName = "vessel_count"
	ReportLongestShipment    ReportName = "longest_shipment"
	ReportVesselLengths      ReportName = "vessel_lengths"
	ReportVesselBeams        ReportName = "vessel_beams"
	ReportBusiestVessels     ReportName = "busiest_vessels"
	ReportBusiestPorts       ReportName = "busiest_ports"
	ReportFirstShipmentPorts ReportName = "first_shipment_ports"
	ReportLatestShipmentPort ReportName = "latest_shipment_ports"
	ReportDockedVessels      ReportName = "docked_vessels"
	ReportPortsInCountry     ReportName = "ports_in_country"
	ReportVesselsFromCountry ReportName = "vessels_from_country"

	CachePrefixPort   CachePrefix = "PORT_"
	CachePrefixVessel CachePrefix = "VESSEL_"
)

// Export file names observed by downstream consumers.
const (
	ExportDockedVesselsFile      = "Vessels docking Port %s between %s and %s.csv"
	ExportPortsInCountryFile     = "Ports in country %s.csv"
	ExportVesselsFromCountryFile = "Vessels from country %s.csv"
)
