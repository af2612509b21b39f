package entities

import (
	"fmt"
	"strconv"
)

// PortFields is the export column order for ports.
var PortFields = []string{"id", "code", "name", "city", "province", "country"}

type Port struct {
	ID       string `db:"id" json:"id"`
	Code     int64  `db:"code" json:"code"`
	Name     string `db:"name" json:"name"`
	City     string `db:"city" json:"city"`
	Province string `db:"province" json:"province"`
	Country  string `db:"country" json:"country"`
}

// Record returns the port as an export row keyed by PortFields.
func (p Port) Record() map[string]string {
	return map[string]string{
		"id":       p.ID,
		"code":     strconv.FormatInt(p.Code, 10),
		"name":     p.Name,
		"city":     p.City,
		"province": p.Province,
		"country":  p.Country,
	}
}

func (p Port) String() string {
	return fmt.Sprintf("Port(id=%s, code=%d, name=%s, city=%s, province=%s, country=%s)",
		p.ID, p.Code, p.Name, p.City, p.Province, p.Country)
}
