package models

import "fmt"

// FilterAll is the sentinel a selector sends when it should not narrow the
// result set. An empty value means the same thing.
const FilterAll = "All"

// IncidentFilter represents filter parameters for querying incidents
type IncidentFilter struct {
	YearFrom     int    `form:"yearFrom"`     // Inclusive; 0 = unbounded
	YearTo       int    `form:"yearTo"`       // Inclusive; 0 = unbounded
	Region       string `form:"region"`       // Resolved region name
	Province     string `form:"province"`     // Resolved province name
	Municipality string `form:"municipality"` // Municipality name
}

func selected(v string) bool {
	return v != "" && v != FilterAll
}

// HasRegion reports whether the region selector narrows the result set.
func (f IncidentFilter) HasRegion() bool { return selected(f.Region) }

// HasProvince reports whether the province selector narrows the result set.
func (f IncidentFilter) HasProvince() bool { return selected(f.Province) }

// HasMunicipality reports whether the municipality selector narrows the result set.
func (f IncidentFilter) HasMunicipality() bool { return selected(f.Municipality) }

// Validate rejects inverted year ranges.
func (f IncidentFilter) Validate() error {
	if f.YearFrom > 0 && f.YearTo > 0 && f.YearFrom > f.YearTo {
		return fmt.Errorf("yearFrom %d is after yearTo %d", f.YearFrom, f.YearTo)
	}
	return nil
}
