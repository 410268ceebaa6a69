package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, header []interface{}, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "master_data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full workbook", func(t *testing.T) {
		path := writeWorkbook(t,
			[]interface{}{"idcomunidad", "comunidad", "idprovincia", "provincia", "causa", "causa_label"},
			[][]interface{}{
				{1, "Galicia", 15, "A Coruña", 4, "Intencionado"},
				{16, "País Vasco", 27, "Lugo", 1, "Rayo"},
			})

		lk := Load(path)

		require.NotNil(t, lk.Regions)
		require.NotNil(t, lk.Provinces)
		require.NotNil(t, lk.Causes)
		assert.Equal(t, "Galicia", lk.Regions[1])
		assert.Equal(t, "País Vasco", lk.Regions[16])
		assert.Equal(t, "Lugo", lk.Provinces[27])
		assert.Equal(t, "Rayo", lk.Causes[1])
	})

	t.Run("missing cause pair degrades partially", func(t *testing.T) {
		path := writeWorkbook(t,
			[]interface{}{"idcomunidad", "comunidad", "idprovincia", "provincia"},
			[][]interface{}{{1, "Galicia", 15, "A Coruña"}})

		lk := Load(path)

		assert.NotNil(t, lk.Regions)
		assert.NotNil(t, lk.Provinces)
		assert.Nil(t, lk.Causes)
	})

	t.Run("skips rows with bad codes or blank labels", func(t *testing.T) {
		path := writeWorkbook(t,
			[]interface{}{"idcomunidad", "comunidad"},
			[][]interface{}{
				{1, "Galicia"},
				{"abc", "Nunca"},
				{3, ""},
			})

		lk := Load(path)

		require.NotNil(t, lk.Regions)
		assert.Len(t, lk.Regions, 1)
		assert.Equal(t, "Galicia", lk.Regions[1])
	})

	t.Run("missing file returns empty lookups", func(t *testing.T) {
		lk := Load(filepath.Join(t.TempDir(), "missing.xlsx"))

		assert.Nil(t, lk.Regions)
		assert.Nil(t, lk.Provinces)
		assert.Nil(t, lk.Causes)
	})

	t.Run("unreadable file returns empty lookups", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "master_data.xlsx")
		require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))

		lk := Load(path)

		assert.Nil(t, lk.Regions)
		assert.Nil(t, lk.Provinces)
		assert.Nil(t, lk.Causes)
	})
}
