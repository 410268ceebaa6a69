package service

import (
	"fmt"

	"github.com/dgallego/incendios-backend-go/internal/models"
	"github.com/dgallego/incendios-backend-go/internal/repository"
	"github.com/dgallego/incendios-backend-go/internal/spatial"
	"github.com/dgallego/incendios-backend-go/internal/stats"
)

// MapPointCap bounds how many points a single map render returns. Larger
// filtered sets are truncated in dataset order with a notice.
const MapPointCap = 1000

// Burned-area thresholds for the map's three severity color bands, in
// hectares.
const (
	severityHighHa   = 50.0
	severityMediumHa = 10.0
)

// DefaultCauseLimit is the number of slices the cause chart shows.
const DefaultCauseLimit = 10

// DefaultNearbyRadiusKm is used when a nearby query gives no radius.
const DefaultNearbyRadiusKm = 50.0

// DashboardService handles business logic for the dashboard endpoints.
type DashboardService struct {
	repo *repository.IncidentRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repo *repository.IncidentRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// GetSummary retrieves the headline figures for a filter selection, plus the
// median and 95th-percentile burned area of the non-missing values.
func (s *DashboardService) GetSummary(f models.IncidentFilter) (*models.Summary, error) {
	summary, err := s.repo.Summary(f)
	if err != nil {
		return nil, err
	}

	areas, err := s.repo.AreaValues(f)
	if err != nil {
		return nil, err
	}
	summary.MedianAreaHa = stats.Median(areas)
	summary.P95AreaHa = stats.Percentile(areas, 95)
	return summary, nil
}

// GetMap builds the map payload: capped point list with severity colors, a
// truncation notice when the cap bites, and a center/span zoom hint.
func (s *DashboardService) GetMap(f models.IncidentFilter) (*models.MapView, error) {
	points, total, err := s.repo.MapPoints(f, MapPointCap)
	if err != nil {
		return nil, err
	}

	view := &models.MapView{Points: points, Total: total}
	for i := range view.Points {
		view.Points[i].Color = severityColor(view.Points[i].AreaHa)
	}
	if total > len(points) {
		view.Truncated = true
		view.Notice = fmt.Sprintf("%d incidents have coordinates; showing the first %d", total, len(points))
	}
	if len(points) > 0 {
		center := meanCenter(points)
		view.Center = &center
		view.SpanKm = spanKm(center, points)
	}
	return view, nil
}

// GetNearby returns the incidents within radiusKm of a point, subject to the
// same cap as the map.
func (s *DashboardService) GetNearby(f models.IncidentFilter, lat, lng, radiusKm float64) (*models.MapView, error) {
	if radiusKm <= 0 {
		radiusKm = DefaultNearbyRadiusKm
	}

	points, _, err := s.repo.MapPoints(f, -1)
	if err != nil {
		return nil, err
	}

	var within []models.MapPoint
	for _, p := range points {
		if spatial.HaversineDistance(lat, lng, p.Lat, p.Lng) <= radiusKm*1000 {
			p.Color = severityColor(p.AreaHa)
			within = append(within, p)
		}
	}

	view := &models.MapView{Total: len(within), SpanKm: radiusKm}
	if len(within) > MapPointCap {
		view.Truncated = true
		view.Notice = fmt.Sprintf("%d incidents within %.0f km; showing the first %d", len(within), radiusKm, MapPointCap)
		within = within[:MapPointCap]
	}
	view.Points = within
	view.Center = &models.LatLng{Lat: lat, Lng: lng}
	return view, nil
}

// GetTimeseries returns annual burned-area sums with gap years zero-filled,
// so the chart buckets a calendar range rather than only the years present.
func (s *DashboardService) GetTimeseries(f models.IncidentFilter) ([]models.YearBucket, error) {
	buckets, err := s.repo.YearlyArea(f)
	if err != nil {
		return nil, err
	}
	if len(buckets) == 0 {
		return []models.YearBucket{}, nil
	}

	filled := make([]models.YearBucket, 0, len(buckets))
	next := buckets[0].Year
	for _, b := range buckets {
		for ; next < b.Year; next++ {
			filled = append(filled, models.YearBucket{Year: next})
		}
		filled = append(filled, b)
		next = b.Year + 1
	}
	return filled, nil
}

// GetCauses returns the top-limit cause frequencies with each slice's share
// of the shown total, which is what the proportion chart displays.
func (s *DashboardService) GetCauses(f models.IncidentFilter, limit int) ([]models.CauseSlice, error) {
	if limit <= 0 {
		limit = DefaultCauseLimit
	}
	slices, err := s.repo.CauseCounts(f, limit)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, sl := range slices {
		total += sl.Count
	}
	if total > 0 {
		for i := range slices {
			slices[i].Share = float64(slices[i].Count) / float64(total)
		}
	}
	if slices == nil {
		slices = []models.CauseSlice{}
	}
	return slices, nil
}

// GetOptions retrieves the cascading selector lists with the "All" sentinel
// prepended to each categorical one.
func (s *DashboardService) GetOptions(f models.IncidentFilter) (*models.FilterOptions, error) {
	opts, err := s.repo.Options(f)
	if err != nil {
		return nil, err
	}
	opts.Regions = append([]string{models.FilterAll}, opts.Regions...)
	opts.Provinces = append([]string{models.FilterAll}, opts.Provinces...)
	opts.Municipalities = append([]string{models.FilterAll}, opts.Municipalities...)
	return opts, nil
}

// severityColor bands burned area into the three-tier quick-glance cue.
// Missing area falls through to the lowest tier.
func severityColor(areaHa *float64) string {
	switch {
	case areaHa != nil && *areaHa > severityHighHa:
		return "darkred"
	case areaHa != nil && *areaHa > severityMediumHa:
		return "orange"
	default:
		return "green"
	}
}

func meanCenter(points []models.MapPoint) models.LatLng {
	var latSum, lngSum float64
	for _, p := range points {
		latSum += p.Lat
		lngSum += p.Lng
	}
	n := float64(len(points))
	return models.LatLng{Lat: latSum / n, Lng: lngSum / n}
}

// spanKm is the distance from the center to the farthest shown point, a zoom
// hint for the client map.
func spanKm(center models.LatLng, points []models.MapPoint) float64 {
	var max float64
	for _, p := range points {
		if d := spatial.HaversineDistance(center.Lat, center.Lng, p.Lat, p.Lng); d > max {
			max = d
		}
	}
	return max / 1000
}
