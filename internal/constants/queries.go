package constants

// Column lists are spelled out so rows map onto entity fields by name.
const (
	PortColumns     = `id, code, name, city, province, country`
	VesselColumns   = `imo, mmsi, name, country, type, build, gross, netto, length, beam`
	ShipmentColumns = `id, date, cargo_weight, distance_naut, duration_hours, average_speed, origin, destination, vessel`
)

// Single-row and fetch-all lookups.
const (
	GetPortByID = `
	SELECT ` + PortColumns + ` FROM ports WHERE id = ?
	`

	GetVesselByIMO = `
	SELECT ` + VesselColumns + ` FROM vessels WHERE imo = ?
	`

	GetShipmentByID = `
	SELECT ` + ShipmentColumns + ` FROM shipments WHERE id = ?
	`

	GetAllPorts     = `SELECT ` + PortColumns + ` FROM ports`
	GetAllVessels   = `SELECT ` + VesselColumns + ` FROM vessels`
	GetAllShipments = `SELECT ` + ShipmentColumns + ` FROM shipments`

	GetShipmentIDsByPort = `
	SELECT id FROM shipments WHERE origin = ? OR destination = ?
	`

	GetShipmentIDsByVessel = `
	SELECT id FROM shipments WHERE vessel = ?
	`
)

// Reporter queries.
const (
	CountVessels = `SELECT COUNT(*) FROM vessels`

	LongestShipment = `
	SELECT ` + ShipmentColumns + ` FROM shipments ORDER BY distance_naut DESC LIMIT 1
	`

	LongestVessel  = `SELECT ` + VesselColumns + ` FROM vessels ORDER BY length DESC LIMIT 1`
	ShortestVessel = `SELECT ` + VesselColumns + ` FROM vessels ORDER BY length ASC LIMIT 1`
	WidestVessel   = `SELECT ` + VesselColumns + ` FROM vessels ORDER BY beam DESC LIMIT 1`
	SmallestVessel = `SELECT ` + VesselColumns + ` FROM vessels ORDER BY beam ASC LIMIT 1`

	ShipmentCountByVessel = `
	SELECT vessel AS vessel_key, COUNT(*) AS shipment_count
	FROM shipments
	GROUP BY vessel
	ORDER BY shipment_count DESC
	`

	ShipmentCountByOrigin = `
	SELECT origin AS port_key, COUNT(*) AS shipment_count
	FROM shipments
	GROUP BY origin
	ORDER BY shipment_count DESC, origin ASC
	`

	FirstShipmentByOrigin = `
	SELECT origin AS port_key, MIN(date) AS shipment_date
	FROM shipments
	GROUP BY origin
	ORDER BY shipment_date ASC, origin ASC
	`

	FirstShipmentByOriginForType = `
	SELECT shipments.origin AS port_key, MIN(shipments.date) AS shipment_date
	FROM shipments
	JOIN vessels ON shipments.vessel = vessels.imo
	WHERE vessels.type = ?
	GROUP BY shipments.origin
	ORDER BY shipment_date ASC, shipments.origin ASC
	`

	LatestShipmentByOrigin = `
	SELECT origin AS port_key, MAX(date) AS shipment_date
	FROM shipments
	GROUP BY origin
	ORDER BY shipment_date DESC, origin ASC
	`

	LatestShipmentByOriginForType = `
	SELECT shipments.origin AS port_key, MAX(shipments.date) AS shipment_date
	FROM shipments
	JOIN vessels ON shipments.vessel = vessels.imo
	WHERE vessels.type = ?
	GROUP BY shipments.origin
	ORDER BY shipment_date DESC, shipments.origin ASC
	`

	VesselsDockedBetween = `
	SELECT DISTINCT vessels.imo, vessels.mmsi, vessels.name, vessels.country, vessels.type,
		vessels.build, vessels.gross, vessels.netto, vessels.length, vessels.beam
	FROM shipments
	JOIN vessels ON shipments.vessel = vessels.imo
	WHERE (shipments.origin = ? OR shipments.destination = ?)
	AND shipments.date BETWEEN ? AND ?
	ORDER BY vessels.imo
	`

	PortsInCountry = `
	SELECT ` + PortColumns + ` FROM ports WHERE country = ? ORDER BY id
	`

	VesselsFromCountry = `
	SELECT ` + VesselColumns + ` FROM vessels WHERE country = ?
	`
)
