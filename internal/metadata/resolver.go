package metadata

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Lookups maps coded dataset fields to display labels. A nil map means the
// reference workbook had no usable column pair for that field and the caller
// must fall back to raw codes.
type Lookups struct {
	Regions   map[float64]string
	Provinces map[float64]string
	Causes    map[float64]string
}

// Load reads the reference workbook and builds the code-to-label lookups.
// Failures never propagate: a missing or unreadable workbook just means the
// dashboard shows raw codes, so every error path returns empty Lookups after
// logging a warning.
func Load(path string) Lookups {
	var lk Lookups

	if _, err := os.Stat(path); err != nil {
		log.Printf("WARN: reference workbook %s not found, labels will show raw codes", path)
		return lk
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		log.Printf("WARN: reading reference workbook %s: %v", path, err)
		return lk
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		log.Printf("WARN: reference workbook %s has no sheets", path)
		return lk
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		log.Printf("WARN: reading reference workbook %s: %v", path, err)
		return lk
	}
	if len(rows) == 0 {
		return lk
	}

	cols := headerIndex(rows[0])
	lk.Regions = pairColumn(rows, cols, "idcomunidad", "comunidad")
	lk.Provinces = pairColumn(rows, cols, "idprovincia", "provincia")
	lk.Causes = pairColumn(rows, cols, "causa", "causa_label")
	return lk
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

// pairColumn builds one code-to-label map from a (code, label) column pair,
// or nil when either column is absent. Rows with a blank label or a
// non-numeric code are skipped, never fatal.
func pairColumn(rows [][]string, cols map[string]int, codeCol, labelCol string) map[float64]string {
	ci, okCode := cols[codeCol]
	li, okLabel := cols[labelCol]
	if !okCode || !okLabel {
		return nil
	}

	m := make(map[float64]string)
	for _, row := range rows[1:] {
		if ci >= len(row) || li >= len(row) {
			continue
		}
		code, err := strconv.ParseFloat(strings.TrimSpace(row[ci]), 64)
		if err != nil {
			continue
		}
		label := strings.TrimSpace(row[li])
		if label == "" {
			continue
		}
		m[code] = label
	}
	return m
}
