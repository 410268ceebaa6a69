package dataset

import (
	"archive/zip"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/dgallego/incendios-backend-go/internal/metadata"
	"github.com/dgallego/incendios-backend-go/internal/models"
)

// Placeholder labels used when a code, column, or mapping is unavailable.
const (
	labelUnknown      = "Desconocido"
	labelNotSpecified = "No especificado"
)

// causeColumns is the fixed priority order for locating the cause code
// column. Evaluated once, first hit wins, no retries.
var causeColumns = []string{"causa", "idcausa", "causa_desc"}

var (
	loadOnce sync.Once
	loaded   []models.Incident
	loadErr  error
)

// Load reads and enriches the incident archive exactly once per process
// lifetime. Later calls return the memoized result regardless of arguments;
// there is no invalidation.
func Load(zipPath string, lk metadata.Lookups) ([]models.Incident, error) {
	loadOnce.Do(func() {
		loaded, loadErr = read(zipPath, lk)
	})
	return loaded, loadErr
}

// read opens the archive and parses its first csv member. Any failure here is
// the hard-failure path: the error propagates and the caller halts.
func read(zipPath string, lk metadata.Lookups) ([]models.Incident, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open incident archive: %w", err)
	}
	defer zr.Close()

	member := pickCSV(zr.File)
	if member == nil {
		return nil, fmt.Errorf("no csv member in %s", zipPath)
	}

	rc, err := member.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", member.Name, err)
	}
	defer rc.Close()

	incidents, err := parse(rc, lk)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", member.Name, err)
	}
	return incidents, nil
}

// pickCSV returns the first .csv member, skipping macOS resource-fork
// artifacts the original extracts tend to carry.
func pickCSV(files []*zip.File) *zip.File {
	for _, f := range files {
		if strings.HasSuffix(f.Name, ".csv") && !strings.Contains(f.Name, "__MACOSX") {
			return f
		}
	}
	return nil
}

func parse(r io.Reader, lk metadata.Lookups) ([]models.Incident, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := headerIndex(header)

	if _, ok := cols["fecha"]; !ok {
		return nil, fmt.Errorf("required column fecha is missing")
	}
	causeIdx, causeOK := resolveCauseColumn(cols)

	var incidents []models.Incident
	dropped := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		date, ok := parseDate(cell(row, cols["fecha"]))
		if !ok {
			dropped++
			continue
		}

		inc := models.Incident{Date: date, Year: date.Year()}

		inc.RegionCode = numberAt(row, cols, "idcomunidad")
		inc.RegionName = resolveAdmin(inc.RegionCode, lk.Regions)
		inc.ProvinceCode = numberAt(row, cols, "idprovincia")
		inc.ProvinceName = resolveAdmin(inc.ProvinceCode, lk.Provinces)

		if causeOK {
			inc.CauseCode = toNumber(cell(row, causeIdx))
			inc.CauseText = resolveCause(inc.CauseCode, lk.Causes)
		} else {
			inc.CauseText = labelNotSpecified
		}

		if mi, ok := cols["municipio"]; ok {
			inc.Municipality = strings.TrimSpace(cell(row, mi))
		}
		inc.AreaHa = numberAt(row, cols, "superficie")
		inc.CostEur = numberAt(row, cols, "gastos")
		inc.LossEur = numberAt(row, cols, "perdidas")
		inc.Lat = numberAt(row, cols, "lat")
		inc.Lng = numberAt(row, cols, "lng")

		incidents = append(incidents, inc)
	}

	if dropped > 0 {
		log.Printf("WARN: dropped %d rows with an unparseable fecha", dropped)
	}
	return incidents, nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

// resolveCauseColumn walks the causeColumns priority list once.
func resolveCauseColumn(cols map[string]int) (int, bool) {
	for _, name := range causeColumns {
		if i, ok := cols[name]; ok {
			return i, true
		}
	}
	return 0, false
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func numberAt(row []string, cols map[string]int, name string) sql.NullFloat64 {
	i, ok := cols[name]
	if !ok {
		return sql.NullFloat64{}
	}
	return toNumber(cell(row, i))
}

// resolveAdmin resolves a region or province code. Mapped codes get their
// name, unmapped codes show verbatim, and a missing code or missing mapping
// degrades to the fixed placeholder.
func resolveAdmin(code sql.NullFloat64, lookup map[float64]string) string {
	if !code.Valid || lookup == nil {
		return labelUnknown
	}
	if name, ok := lookup[code.Float64]; ok {
		return name
	}
	return formatCode(code.Float64)
}

// resolveCause follows the cause-specific rules: unmapped codes get a
// "Causa N" placeholder, and with no mapping at all the raw code is shown
// verbatim rather than a placeholder.
func resolveCause(code sql.NullFloat64, lookup map[float64]string) string {
	if !code.Valid {
		return labelNotSpecified
	}
	if lookup == nil {
		return formatCode(code.Float64)
	}
	if label, ok := lookup[code.Float64]; ok {
		return label
	}
	return "Causa " + formatCode(code.Float64)
}
