package constants

const (
	StatusPopulated        = "Database populated from JSON"
	StatusAlreadyPopulated = "Database is already populated"
	StatusLoadFailed       = "Unable to load shipment data"
)

const (
	MsgNoShipmentsInFile  = "No shipment records found in JSON"
	MsgNoValidShipments   = "No valid shipment records found after parsing"
	MsgInvalidVesselSize  = "Vessel size must look like '<length> / <beam>'"
	MsgMissingReportParam = "Missing required parameter"
)
