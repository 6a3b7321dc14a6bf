package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Accessors(t *testing.T) {
	tbl := &Table{
		Columns: []string{"iso3", "year"},
		Rows:    [][]string{{"afg", "2015"}, {"zwe"}},
	}

	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumCols())

	idx, ok := tbl.ColumnIndex("year")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = tbl.ColumnIndex("nope")
	assert.False(t, ok)

	assert.Equal(t, "afg", tbl.Cell(0, 0))
	// Short row reads as missing, out-of-range reads as missing.
	assert.Equal(t, Missing, tbl.Cell(1, 1))
	assert.Equal(t, Missing, tbl.Cell(5, 0))
	assert.Equal(t, Missing, tbl.Cell(0, -1))

	years, ok := tbl.Column("year")
	require.True(t, ok)
	assert.Equal(t, []string{"2015", Missing}, years)
}

func TestTable_Reslice(t *testing.T) {
	tbl := &Table{
		Columns: []string{"a1", "a2"},
		Rows: [][]string{
			{"b1", "b2"},
			{"iso3", "stuff"},
			{"c1", "c2"},
		},
	}

	tests := []struct {
		name     string
		skip     int
		wantCols []string
		wantRows int
	}{
		{"zero skip is identity", 0, []string{"a1", "a2"}, 3},
		{"skip promotes the marker row", 2, []string{"iso3", "stuff"}, 1},
		{"skip beyond data empties the table", 4, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tbl.Reslice(tt.skip)
			assert.Equal(t, tt.wantCols, got.Columns)
			assert.Equal(t, tt.wantRows, got.NumRows())
		})
	}

	t.Run("promoted header cells are trimmed", func(t *testing.T) {
		padded := &Table{
			Columns: []string{"a1", "a2"},
			Rows: [][]string{
				{"iso3 ", " Year"},
				{"afg", "2015"},
			},
		}
		got := padded.Reslice(1)
		assert.Equal(t, []string{"iso3", "Year"}, got.Columns)
	})
}

func TestDatasetSpec_ColumnClasses(t *testing.T) {
	spec := DatasetSpec{
		TextColumns: []string{"iso3", "Source"},
		NoRescale:   []string{"Year"},
	}

	assert.True(t, spec.IsTextColumn("iso3"))
	assert.False(t, spec.IsTextColumn("Year"))

	assert.False(t, spec.IsRescaled("iso3"))
	assert.False(t, spec.IsRescaled("Year"))
	assert.True(t, spec.IsRescaled("Coverage (%)"))
}
