package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mhtidy/pkg/contracts/domain"
)

func testTable() *domain.Table {
	return &domain.Table{
		Columns: []string{"iso3", "year", "coverage"},
		Rows: [][]string{
			{"afg", "2015", "0.59"},
			{"zwe", "2019", "0.93"},
		},
	}
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, st.Put("antenatal_care", testTable()))
	require.True(t, st.Exists("antenatal_care"))

	got, err := st.Get("antenatal_care")
	require.NoError(t, err)
	assert.Equal(t, testTable(), got)
}

func TestStore_PutOverwritesIdempotently(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, st.Put("delivery_care", testTable()))
	first, err := os.ReadFile(st.Path("delivery_care"))
	require.NoError(t, err)

	// Re-running with unchanged input yields byte-identical output.
	require.NoError(t, st.Put("delivery_care", testTable()))
	second, err := os.ReadFile(st.Path("delivery_care"))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Changed input replaces the whole entry.
	changed := testTable()
	changed.Rows = changed.Rows[:1]
	require.NoError(t, st.Put("delivery_care", changed))
	got, err := st.Get("delivery_care")
	require.NoError(t, err)
	assert.Equal(t, 1, got.NumRows())
}

func TestStore_InvalidNames(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "UPPER", "has space", "../escape", "1starts_with_digit"} {
		assert.Error(t, st.Put(name, testTable()), "name %q", name)
		assert.False(t, st.Exists(name), "name %q", name)
	}
}

func TestStore_List(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)

	names, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, st.Put("postnatal_care", testTable()))
	require.NoError(t, st.Put("antenatal_care", testTable()))

	// A stray non-store file is ignored.
	require.NoError(t, os.WriteFile(filepath.Join(st.Dir(), "README.txt"), []byte("x"), 0644))

	names, err = st.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"antenatal_care", "postnatal_care"}, names)
}

func TestStore_GetMissing(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = st.Get("never_stored")
	assert.Error(t, err)
}
