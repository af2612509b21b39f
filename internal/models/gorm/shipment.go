package gorm

// Shipment represents a shipment row. Origin and Destination reference
// ports.id, Vessel references vessels.imo. Date is stored as YYYY-MM-DD text.
type Shipment struct {
	ID            string  `gorm:"column:id;primaryKey;type:text"`
	Date          string  `gorm:"column:date;type:text;index"`
	CargoWeight   int64   `gorm:"column:cargo_weight"`
	DistanceNaut  float64 `gorm:"column:distance_naut"`
	DurationHours float64 `gorm:"column:duration_hours"`
	AverageSpeed  float64 `gorm:"column:average_speed"`
	Origin        string  `gorm:"column:origin;type:text;index"`
	Destination   string  `gorm:"column:destination;type:text;index"`
	Vessel        int64   `gorm:"column:vessel;index"`
}

// TableName specifies the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}
