package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xaberico/monitor-empleo-santafe/internal/domain"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "empleos_anteriores.json"))
}

func TestLoadMissingFile(t *testing.T) {
	s := tempStore(t)
	assert.Empty(t, s.Load())
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empleos_anteriores.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewStore(path)
	assert.Empty(t, s.Load())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := tempStore(t)

	in := []domain.Listing{
		{
			Title:       "Enfermero/a",
			Employer:    "Hospital Iturraspe",
			Location:    "Santa Fe",
			URL:         "https://www.santafe.gob.ar/ofertas/1",
			DetectedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			Fingerprint: "abc123",
		},
		{Title: "Chofer", Employer: domain.DefaultEmployer, Fingerprint: "def456"},
	}

	require.NoError(t, s.Save(in))
	assert.Equal(t, in, s.Load())
}

func TestSaveOverwritesPriorContent(t *testing.T) {
	s := tempStore(t)

	require.NoError(t, s.Save([]domain.Listing{{Title: "a", Fingerprint: "1"}, {Title: "b", Fingerprint: "2"}}))
	require.NoError(t, s.Save([]domain.Listing{{Title: "c", Fingerprint: "3"}}))

	got := s.Load()
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].Title)
}

func TestSpanishJSONFieldNames(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Save([]domain.Listing{{Title: "Chofer", Employer: "Gobierno de Santa Fe"}}))

	raw, err := os.ReadFile(s.path)
	require.NoError(t, err)

	// Snapshots must stay readable by tooling written against the previous
	// monitor's file format.
	assert.Contains(t, string(raw), `"titulo"`)
	assert.Contains(t, string(raw), `"empresa"`)
	assert.Contains(t, string(raw), `"hash"`)
}

func TestTryLockExcludesSecondHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empleos_anteriores.json")

	a := NewStore(path)
	ok, err := a.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	defer a.Unlock()

	b := NewStore(path)
	ok, err = b.TryLock()
	require.NoError(t, err)
	assert.False(t, ok)
}
