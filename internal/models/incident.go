package models

import (
	"database/sql"
	"time"
)

// Incident is one wildfire event from the source archive, enriched with the
// display labels resolved from the reference workbook. Numeric fields keep
// "missing" distinct from zero: a value that failed coercion stays invalid.
type Incident struct {
	Date         time.Time
	Year         int
	RegionCode   sql.NullFloat64
	RegionName   string
	ProvinceCode sql.NullFloat64
	ProvinceName string
	CauseCode    sql.NullFloat64
	CauseText    string
	Municipality string
	AreaHa       sql.NullFloat64 // superficie, hectares
	CostEur      sql.NullFloat64 // gastos, extinction cost
	LossEur      sql.NullFloat64 // perdidas, economic losses
	Lat          sql.NullFloat64
	Lng          sql.NullFloat64
}
