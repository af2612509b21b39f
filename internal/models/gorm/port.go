package gorm

// Port represents a port row keyed by its UN/LOCODE-style identifier
type Port struct {
	ID       string `gorm:"column:id;primaryKey;type:text"`
	Code     int64  `gorm:"column:code;type:integer"`
	Name     string `gorm:"column:name;type:text"`
	City     string `gorm:"column:city;type:text"`
	Province string `gorm:"column:province;type:text"`
	Country  string `gorm:"column:country;type:text;index"`
}

// TableName specifies the table name for GORM
func (Port) TableName() string {
	return "ports"
}
