package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/dgallego/incendios-backend-go/internal/models"
)

// IncidentRepository handles read queries against the loaded incident table.
// The table is immutable after startup, so every method is a pure derived
// view of it.
type IncidentRepository struct {
	db *sql.DB
}

// NewIncidentRepository creates a new incident repository
func NewIncidentRepository(db *sql.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

// buildWhere translates a filter into a WHERE clause. Predicates follow the
// dashboard's cascade order: year range first, then region, province,
// municipality. A selector set to the "All" sentinel contributes nothing.
func buildWhere(f models.IncidentFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if f.YearFrom > 0 {
		conditions = append(conditions, "year >= ?")
		args = append(args, f.YearFrom)
	}
	if f.YearTo > 0 {
		conditions = append(conditions, "year <= ?")
		args = append(args, f.YearTo)
	}
	if f.HasRegion() {
		conditions = append(conditions, "nombre_comunidad = ?")
		args = append(args, f.Region)
	}
	if f.HasProvince() {
		conditions = append(conditions, "nombre_provincia = ?")
		args = append(args, f.Province)
	}
	if f.HasMunicipality() {
		conditions = append(conditions, "municipio = ?")
		args = append(args, f.Municipality)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// andCond appends one more condition to a possibly empty WHERE clause.
func andCond(where, cond string) string {
	if where == "" {
		return " WHERE " + cond
	}
	return where + " AND " + cond
}

// Summary computes the headline aggregates for a filter selection. SQL SUM
// skips NULL magnitudes, which matches zero-filling missing cost and loss
// values before summing.
func (r *IncidentRepository) Summary(f models.IncidentFilter) (*models.Summary, error) {
	where, args := buildWhere(f)
	query := `SELECT COUNT(*),
		COALESCE(SUM(superficie), 0),
		COALESCE(SUM(gastos), 0),
		COALESCE(SUM(perdidas), 0)
		FROM incidents` + where

	s := &models.Summary{}
	err := r.db.QueryRow(query, args...).Scan(&s.Incidents, &s.AreaHa, &s.CostEur, &s.LossEur)
	if err != nil {
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}
	return s, nil
}

// MapPoints returns up to limit plottable incidents in dataset order, plus
// the total number of filtered incidents that carry both coordinates. A
// negative limit returns everything.
func (r *IncidentRepository) MapPoints(f models.IncidentFilter, limit int) ([]models.MapPoint, int, error) {
	where, args := buildWhere(f)
	where = andCond(where, "lat IS NOT NULL AND lng IS NOT NULL")

	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM incidents`+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count map points: %w", err)
	}

	query := `SELECT lat, lng, COALESCE(municipio, ''), nombre_provincia, superficie, causa_texto
		FROM incidents` + where + ` ORDER BY id LIMIT ?`
	rows, err := r.db.Query(query, append(args, limit)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query map points: %w", err)
	}
	defer rows.Close()

	var points []models.MapPoint
	for rows.Next() {
		var p models.MapPoint
		var area sql.NullFloat64
		if err := rows.Scan(&p.Lat, &p.Lng, &p.Municipality, &p.Province, &area, &p.Cause); err != nil {
			return nil, 0, fmt.Errorf("failed to scan map point: %w", err)
		}
		if area.Valid {
			v := area.Float64
			p.AreaHa = &v
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read map points: %w", err)
	}
	return points, total, nil
}

// AreaValues returns the non-missing burned areas of the filtered set, in
// dataset order. Missing values are excluded, not zero-filled.
func (r *IncidentRepository) AreaValues(f models.IncidentFilter) ([]float64, error) {
	where, args := buildWhere(f)
	where = andCond(where, "superficie IS NOT NULL")
	rows, err := r.db.Query(`SELECT superficie FROM incidents`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query area values: %w", err)
	}
	defer rows.Close()

	var values []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan area value: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read area values: %w", err)
	}
	return values, nil
}

// YearlyArea sums burned area per year present in the filtered set.
func (r *IncidentRepository) YearlyArea(f models.IncidentFilter) ([]models.YearBucket, error) {
	where, args := buildWhere(f)
	query := `SELECT year, COALESCE(SUM(superficie), 0)
		FROM incidents` + where + `
		GROUP BY year ORDER BY year`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query yearly area: %w", err)
	}
	defer rows.Close()

	var buckets []models.YearBucket
	for rows.Next() {
		var b models.YearBucket
		if err := rows.Scan(&b.Year, &b.AreaHa); err != nil {
			return nil, fmt.Errorf("failed to scan year bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read yearly area: %w", err)
	}
	return buckets, nil
}

// CauseCounts returns cause-label frequencies, most common first, ties broken
// alphabetically for a stable order.
func (r *IncidentRepository) CauseCounts(f models.IncidentFilter, limit int) ([]models.CauseSlice, error) {
	where, args := buildWhere(f)
	query := `SELECT causa_texto, COUNT(*) AS n
		FROM incidents` + where + `
		GROUP BY causa_texto ORDER BY n DESC, causa_texto LIMIT ?`

	rows, err := r.db.Query(query, append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cause counts: %w", err)
	}
	defer rows.Close()

	var slices []models.CauseSlice
	for rows.Next() {
		var s models.CauseSlice
		if err := rows.Scan(&s.Cause, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan cause slice: %w", err)
		}
		slices = append(slices, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cause counts: %w", err)
	}
	return slices, nil
}

// Years lists the distinct years of the base table, ascending. The year
// selector always spans the whole dataset, not the filtered view.
func (r *IncidentRepository) Years() ([]int, error) {
	rows, err := r.db.Query(`SELECT DISTINCT year FROM incidents ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("failed to query years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		years = append(years, y)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read years: %w", err)
	}
	return years, nil
}

// distinct lists the non-empty values of one column within a filter scope.
// Column names come from the fixed set of callers below, never from input.
func (r *IncidentRepository) distinct(column string, f models.IncidentFilter) ([]string, error) {
	where, args := buildWhere(f)
	where = andCond(where, column+" != ''")
	query := fmt.Sprintf(`SELECT DISTINCT %s FROM incidents%s ORDER BY %s`, column, where, column)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s options: %w", column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s option: %w", column, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s options: %w", column, err)
	}
	return values, nil
}

// Options derives the cascading selector lists. Each list is scoped by the
// year range plus every selector before it in the cascade, so the province
// options reflect only the chosen region, and so on.
func (r *IncidentRepository) Options(f models.IncidentFilter) (*models.FilterOptions, error) {
	years, err := r.Years()
	if err != nil {
		return nil, err
	}

	regionScope := models.IncidentFilter{YearFrom: f.YearFrom, YearTo: f.YearTo}
	regions, err := r.distinct("nombre_comunidad", regionScope)
	if err != nil {
		return nil, err
	}

	provinceScope := regionScope
	provinceScope.Region = f.Region
	provinces, err := r.distinct("nombre_provincia", provinceScope)
	if err != nil {
		return nil, err
	}

	municipalityScope := provinceScope
	municipalityScope.Province = f.Province
	municipalities, err := r.distinct("municipio", municipalityScope)
	if err != nil {
		return nil, err
	}

	return &models.FilterOptions{
		Years:          years,
		Regions:        regions,
		Provinces:      provinces,
		Municipalities: municipalities,
	}, nil
}
