package models

// Summary holds the four headline figures for the current filter selection.
// Cost and loss sums treat missing values as zero; the area sum skips missing
// values, which for a plain sum amounts to the same thing.
type Summary struct {
	Incidents int     `json:"incidents"`
	AreaHa    float64 `json:"areaHa"`
	CostEur   float64 `json:"costEur"`
	LossEur   float64 `json:"lossEur"`

	// Distribution figures over the non-missing areas of the filtered set.
	MedianAreaHa float64 `json:"medianAreaHa"`
	P95AreaHa    float64 `json:"p95AreaHa"`
}

// LatLng is a plain coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MapPoint is one incident drawn on the map, with the popup fields and the
// severity color band precomputed server-side.
type MapPoint struct {
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	Municipality string   `json:"municipality"`
	Province     string   `json:"province"`
	AreaHa       *float64 `json:"areaHa,omitempty"`
	Cause        string   `json:"cause"`
	Color        string   `json:"color"`
}

// MapView is the rendered map payload. Total counts every plottable incident
// in the filtered set even when the point list was truncated to the cap.
type MapView struct {
	Points    []MapPoint `json:"points"`
	Total     int        `json:"total"`
	Truncated bool       `json:"truncated"`
	Notice    string     `json:"notice,omitempty"`
	Center    *LatLng    `json:"center,omitempty"`
	SpanKm    float64    `json:"spanKm"`
}

// YearBucket is one point of the annual burned-area series.
type YearBucket struct {
	Year   int     `json:"year"`
	AreaHa float64 `json:"areaHa"`
}

// CauseSlice is one segment of the cause-frequency breakdown.
type CauseSlice struct {
	Cause string  `json:"cause"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// FilterOptions lists the selectable values for the dashboard controls.
// The categorical lists cascade: each one reflects the year range and every
// preceding selector, not the unfiltered base table.
type FilterOptions struct {
	Years          []int    `json:"years"`
	Regions        []string `json:"regions"`
	Provinces      []string `json:"provinces"`
	Municipalities []string `json:"municipalities"`
}
