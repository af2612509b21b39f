package gorm

// Vessel represents a vessel row keyed by IMO number
type Vessel struct {
	IMO     int64  `gorm:"column:imo;primaryKey;autoIncrement:false"`
	MMSI    int64  `gorm:"column:mmsi"`
	Name    string `gorm:"column:name;type:text"`
	Country string `gorm:"column:country;type:text;index"`
	Type    string `gorm:"column:type;type:text"`
	Build   int    `gorm:"column:build"`
	Gross   int64  `gorm:"column:gross"`
	Netto   int64  `gorm:"column:netto"`
	Length  int    `gorm:"column:length"`
	Beam    int    `gorm:"column:beam"`
}

// TableName specifies the table name for GORM
func (Vessel) TableName() string {
	return "vessels"
}
