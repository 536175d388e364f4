package kvstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolcompare/pkg/errors"
)

func TestParseDriver(t *testing.T) {
	tests := []struct {
		in      string
		want    Driver
		wantErr bool
	}{
		{in: "", want: DriverFile},
		{in: "file", want: DriverFile},
		{in: " BOLT ", want: DriverBolt},
		{in: "sqlite", want: DriverSQLite},
		{in: "memory", want: DriverMemory},
		{in: "redis", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDriver(tt.in)
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStoreContract(t *testing.T) {
	for _, driver := range Drivers() {
		t.Run(string(driver), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "store")
			s, err := Open(driver, path)
			require.NoError(t, err)

			_, found, err := s.Get("comparisonTools")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, s.Set("comparisonTools", `[{"id":"a"}]`))
			require.NoError(t, s.Set("other", "x"))
			require.NoError(t, s.Set("comparisonTools", `[]`))

			v, found, err := s.Get("comparisonTools")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, `[]`, v)

			v, found, err = s.Get("other")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "x", v)

			require.NoError(t, s.Close())
			require.NoError(t, s.Close(), "close is idempotent")

			_, _, err = s.Get("other")
			assert.ErrorIs(t, err, errors.ErrClosed)
			assert.ErrorIs(t, s.Set("other", "y"), errors.ErrClosed)
		})
	}
}

func TestSQLiteStampsUpdates(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "comparison.sqlite"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("comparisonTools", `[]`))

	var updatedAt string
	require.NoError(t, s.db.QueryRow(`SELECT updated_at FROM kv WHERE key = ?`, "comparisonTools").Scan(&updatedAt))
	stamped, err := utc.ParseRFC3339(updatedAt)
	require.NoError(t, err)
	assert.False(t, stamped.IsZero())
}

func TestStoreSurvivesReopen(t *testing.T) {
	for _, driver := range []Driver{DriverFile, DriverBolt, DriverSQLite} {
		t.Run(string(driver), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "store")

			s, err := Open(driver, path)
			require.NoError(t, err)
			require.NoError(t, s.Set("k", "persisted"))
			require.NoError(t, s.Close())

			s, err = Open(driver, path)
			require.NoError(t, err)
			defer s.Close()

			v, found, err := s.Get("k")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "persisted", v)
		})
	}
}

func TestFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comparison.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := OpenFile(path)
	require.NoError(t, err)

	_, _, err = s.Get("k")
	assert.True(t, errors.IsLocalStoreCorrupt(err))

	// A write replaces the corrupt file.
	require.NoError(t, s.Set("k", "v"))
	v, found, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	p, err := DefaultPath(DriverBolt)
	require.NoError(t, err)
	assert.Equal(t, "comparison.db", filepath.Base(p))
	assert.Equal(t, "toolcompare", filepath.Base(filepath.Dir(p)))

	p, err = DefaultPath(DriverMemory)
	require.NoError(t, err)
	assert.Empty(t, p)
}
