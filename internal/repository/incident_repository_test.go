package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallego/incendios-backend-go/internal/database"
	"github.com/dgallego/incendios-backend-go/internal/models"
)

func newTestRepo(t *testing.T, incidents []models.Incident) *IncidentRepository {
	t.Helper()

	db, err := database.Open(database.DefaultPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.InsertIncidents(db, incidents))
	return NewIncidentRepository(db)
}

func valid(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

func testIncident(year int, region, province, municipality, cause string, area sql.NullFloat64) models.Incident {
	return models.Incident{
		Date:         time.Date(year, 7, 15, 0, 0, 0, 0, time.UTC),
		Year:         year,
		RegionName:   region,
		ProvinceName: province,
		Municipality: municipality,
		CauseText:    cause,
		AreaHa:       area,
	}
}

// The fixture mirrors the canonical worked example: three incidents, one in
// 2019 and two in 2020.
func exampleFixture() []models.Incident {
	return []models.Incident{
		testIncident(2019, "Galicia", "Lugo", "Sarria", "Rayo", valid(5)),
		testIncident(2020, "Galicia", "A Coruña", "Negreira", "Intencionado", valid(10)),
		testIncident(2020, "Andalucía", "Sevilla", "Écija", "Intencionado", valid(20)),
	}
}

func TestSummaryYearRange(t *testing.T) {
	repo := newTestRepo(t, exampleFixture())

	s, err := repo.Summary(models.IncidentFilter{YearFrom: 2020, YearTo: 2020})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Incidents)
	assert.Equal(t, 30.0, s.AreaHa)
}

func TestYearBoundsCommute(t *testing.T) {
	repo := newTestRepo(t, exampleFixture())

	both, err := repo.Summary(models.IncidentFilter{YearFrom: 2019, YearTo: 2019})
	require.NoError(t, err)
	lowerOnly, err := repo.Summary(models.IncidentFilter{YearFrom: 2019})
	require.NoError(t, err)
	upperOnly, err := repo.Summary(models.IncidentFilter{YearTo: 2019})
	require.NoError(t, err)

	// Both single-bound counts cover the two-bound result, and the years of
	// the bounded result stay inside the range.
	assert.Equal(t, 1, both.Incidents)
	assert.Equal(t, 3, lowerOnly.Incidents)
	assert.Equal(t, 1, upperOnly.Incidents)

	buckets, err := repo.YearlyArea(models.IncidentFilter{YearFrom: 2019, YearTo: 2019})
	require.NoError(t, err)
	for _, b := range buckets {
		assert.GreaterOrEqual(t, b.Year, 2019)
		assert.LessOrEqual(t, b.Year, 2019)
	}
}

func TestAllSentinelIsNoOp(t *testing.T) {
	repo := newTestRepo(t, exampleFixture())

	unfiltered, err := repo.Summary(models.IncidentFilter{})
	require.NoError(t, err)

	all, err := repo.Summary(models.IncidentFilter{
		Region:       models.FilterAll,
		Province:     models.FilterAll,
		Municipality: models.FilterAll,
	})
	require.NoError(t, err)

	assert.Equal(t, unfiltered, all)
}

func TestCascadingOptions(t *testing.T) {
	repo := newTestRepo(t, exampleFixture())

	opts, err := repo.Options(models.IncidentFilter{Region: "Galicia"})
	require.NoError(t, err)

	assert.Equal(t, []int{2019, 2020}, opts.Years)
	assert.Equal(t, []string{"Andalucía", "Galicia"}, opts.Regions)
	// Province options reflect only the chosen region.
	assert.Equal(t, []string{"A Coruña", "Lugo"}, opts.Provinces)
	assert.NotContains(t, opts.Provinces, "Sevilla")
}

func TestCascadingOptionsProvinceScopesMunicipalities(t *testing.T) {
	repo := newTestRepo(t, exampleFixture())

	opts, err := repo.Options(models.IncidentFilter{Region: "Galicia", Province: "Lugo"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Sarria"}, opts.Municipalities)
}

func TestMapPointsLimitAndTotal(t *testing.T) {
	incidents := exampleFixture()
	for i := range incidents {
		incidents[i].Lat = valid(40 + float64(i))
		incidents[i].Lng = valid(-3)
	}
	// One more without coordinates; it must not be plottable.
	incidents = append(incidents, testIncident(2020, "Galicia", "Lugo", "Monforte", "Rayo", valid(1)))

	repo := newTestRepo(t, incidents)

	points, total, err := repo.MapPoints(models.IncidentFilter{}, 2)
	require.NoError(t, err)
	assert.Len(t, points, 2)
	assert.Equal(t, 3, total)

	all, total, err := repo.MapPoints(models.IncidentFilter{}, -1)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 3, total)
}

func TestSummaryMissingCostIsZeroFilled(t *testing.T) {
	incidents := exampleFixture()
	incidents[0].CostEur = valid(1000)
	incidents[1].CostEur = sql.NullFloat64{} // missing
	incidents[2].CostEur = valid(500)

	repo := newTestRepo(t, incidents)

	s, err := repo.Summary(models.IncidentFilter{})
	require.NoError(t, err)

	// Missing cost contributes zero, so the sum equals the valid values.
	assert.Equal(t, 1500.0, s.CostEur)
}

func TestAreaValuesSkipMissing(t *testing.T) {
	incidents := exampleFixture()
	incidents[1].AreaHa = sql.NullFloat64{}

	repo := newTestRepo(t, incidents)

	values, err := repo.AreaValues(models.IncidentFilter{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []float64{5, 20}, values)
}

func TestCauseCountsOrderAndLimit(t *testing.T) {
	repo := newTestRepo(t, exampleFixture())

	slices, err := repo.CauseCounts(models.IncidentFilter{}, 10)
	require.NoError(t, err)

	require.Len(t, slices, 2)
	assert.Equal(t, "Intencionado", slices[0].Cause)
	assert.Equal(t, 2, slices[0].Count)
	assert.Equal(t, "Rayo", slices[1].Cause)

	top1, err := repo.CauseCounts(models.IncidentFilter{}, 1)
	require.NoError(t, err)
	assert.Len(t, top1, 1)
}
