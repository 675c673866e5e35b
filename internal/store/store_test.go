package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardwatch/tokyo-ward-stats/internal/domain"
	"github.com/wardwatch/tokyo-ward-stats/internal/snapshot"
)

func writeSnapshot(t *testing.T, path string, wardCodes ...string) {
	t.Helper()
	var observations []domain.RawObservation
	for _, code := range wardCodes {
		observations = append(observations,
			domain.RawObservation{Area: code, IndicatorCode: domain.CodeTotalPop, Period: "2020000000", Value: "100000"},
		)
	}
	table, _ := domain.Collect(observations)
	snap, _ := domain.BuildSnapshot(table, nil, wardCodes)
	require.NoError(t, snapshot.Write(path, snap))
}

func TestStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wards.json")
	s := New(path)

	t.Run("not ready before first load", func(t *testing.T) {
		_, ok := s.Snapshot()
		assert.False(t, ok)
		assert.ErrorIs(t, s.CheckReadiness(), ErrNotLoaded)
	})

	t.Run("reload of a missing file fails and stays not ready", func(t *testing.T) {
		require.Error(t, s.Reload())
		assert.ErrorIs(t, s.CheckReadiness(), ErrNotLoaded)
	})

	t.Run("successful reload serves the snapshot", func(t *testing.T) {
		writeSnapshot(t, path, "13101", "13102")
		require.NoError(t, s.Reload())

		snap, ok := s.Snapshot()
		require.True(t, ok)
		assert.Len(t, snap.Wards, 2)
		assert.NoError(t, s.CheckReadiness())
	})

	t.Run("failed reload keeps the previous snapshot", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))
		require.Error(t, s.Reload())

		snap, ok := s.Snapshot()
		require.True(t, ok)
		assert.Len(t, snap.Wards, 2)
	})

	t.Run("reload replaces wholesale", func(t *testing.T) {
		writeSnapshot(t, path, "13101")
		require.NoError(t, s.Reload())

		snap, _ := s.Snapshot()
		assert.Len(t, snap.Wards, 1)
	})
}
