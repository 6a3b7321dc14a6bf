package operations

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierrors "mhtidy/internal/errors"
	"mhtidy/internal/store"
	"mhtidy/pkg/contracts/domain"
)

const goodExport = `database export,,,,
generated 2023,,,,
iso3,Country/Territory,Year,Coverage (%),Source
afg,Afghanistan,2015,59,DHS
alb,Albania,2018,88,MICS
zwe,Zimbabwe,2019,93,MICS
footnote,,,,
`

// brokenExport has no iso3 marker anywhere, so skip detection must fail.
const brokenExport = `database export,,,,
code,Country/Territory,Year,Coverage (%),Source
afg,Afghanistan,2015,59,DHS
`

func testSpec(name, path string) domain.DatasetSpec {
	return domain.DatasetSpec{
		Name:        name,
		SourceFile:  path,
		KeyColumn:   "iso3",
		Marker:      "iso3",
		FirstKey:    "afg",
		LastKey:     "zwe",
		DropColumns: []string{"Country/Territory"},
		TextColumns: []string{"iso3", "Source"},
		NoRescale:   []string{"Year"},
		Renames: map[string]string{
			"Year":         "year",
			"Source":       "source",
			"Coverage (%)": "coverage",
		},
	}
}

func setupRun(t *testing.T) (*store.Store, string) {
	t.Helper()
	sourceDir := t.TempDir()
	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	return st, sourceDir
}

func writeExport(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunner_RunAll(t *testing.T) {
	st, sourceDir := setupRun(t)
	specs := []domain.DatasetSpec{
		testSpec("antenatal_care", writeExport(t, sourceDir, "anc.csv", goodExport)),
		testSpec("delivery_care", writeExport(t, sourceDir, "delivery.csv", goodExport)),
	}

	runner := NewRunner(st, slog.Default(), nil)
	summary, err := runner.RunAll(context.Background(), specs)
	require.NoError(t, err)

	require.Len(t, summary.Results, 2)
	assert.Empty(t, summary.Failed())
	assert.NoError(t, summary.Err())
	assert.NotEmpty(t, summary.RunID)

	for _, res := range summary.Results {
		assert.Equal(t, 3, res.Rows)
		assert.True(t, st.Exists(res.Name))
	}

	got, err := st.Get("antenatal_care")
	require.NoError(t, err)
	assert.Equal(t, []string{"iso3", "year", "coverage", "source"}, got.Columns)
}

func TestRunner_IsolatesFailures(t *testing.T) {
	st, sourceDir := setupRun(t)
	specs := []domain.DatasetSpec{
		testSpec("antenatal_care", writeExport(t, sourceDir, "broken.csv", brokenExport)),
		testSpec("delivery_care", writeExport(t, sourceDir, "good.csv", goodExport)),
	}

	runner := NewRunner(st, slog.Default(), nil)
	summary, err := runner.RunAll(context.Background(), specs)
	require.NoError(t, err)

	failed := summary.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "antenatal_care", failed[0].Name)
	assert.Equal(t, ierrors.StageDetect, failed[0].Stage)
	assert.ErrorIs(t, summary.Err(), ierrors.ErrMarkerNotFound)

	// The broken dataset was not persisted; the good one still was.
	assert.False(t, st.Exists("antenatal_care"))
	assert.True(t, st.Exists("delivery_care"))
}

func TestRunner_FailureKeepsPreviousStoredValue(t *testing.T) {
	st, sourceDir := setupRun(t)

	prior := &domain.Table{Columns: []string{"iso3"}, Rows: [][]string{{"afg"}}}
	require.NoError(t, st.Put("antenatal_care", prior))
	before, err := os.ReadFile(st.Path("antenatal_care"))
	require.NoError(t, err)

	specs := []domain.DatasetSpec{
		testSpec("antenatal_care", writeExport(t, sourceDir, "broken.csv", brokenExport)),
	}
	runner := NewRunner(st, slog.Default(), nil)
	summary, err := runner.RunAll(context.Background(), specs)
	require.NoError(t, err)
	require.Len(t, summary.Failed(), 1)

	after, err := os.ReadFile(st.Path("antenatal_care"))
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed run must not touch the stored entry")
}

func TestRunner_BatchIdempotent(t *testing.T) {
	st, sourceDir := setupRun(t)
	specs := []domain.DatasetSpec{
		testSpec("antenatal_care", writeExport(t, sourceDir, "anc.csv", goodExport)),
	}
	runner := NewRunner(st, slog.Default(), nil)

	_, err := runner.RunAll(context.Background(), specs)
	require.NoError(t, err)
	first, err := os.ReadFile(st.Path("antenatal_care"))
	require.NoError(t, err)

	_, err = runner.RunAll(context.Background(), specs)
	require.NoError(t, err)
	second, err := os.ReadFile(st.Path("antenatal_care"))
	require.NoError(t, err)

	assert.Equal(t, first, second, "unchanged inputs must produce byte-identical stored tables")
}

func TestRunner_RejectsBadManifest(t *testing.T) {
	st, _ := setupRun(t)
	runner := NewRunner(st, slog.Default(), nil)

	_, err := runner.RunAll(context.Background(), nil)
	assert.Error(t, err)

	bad := testSpec("antenatal_care", "a.csv")
	bad.Marker = ""
	_, err = runner.RunAll(context.Background(), []domain.DatasetSpec{bad})
	assert.Error(t, err)
}
