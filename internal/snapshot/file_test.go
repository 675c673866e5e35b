package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardwatch/tokyo-ward-stats/internal/domain"
)

func buildTestSnapshot(t *testing.T) *domain.Snapshot {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	observations := []domain.RawObservation{
		{Area: "13101", IndicatorCode: domain.CodeTotalPop, Period: "2020000000", Value: "66680"},
		{Area: "13101", IndicatorCode: domain.CodeNurseries, Period: "2021000000", Value: "30"},
		{Area: "13102", IndicatorCode: domain.CodeTotalPop, Period: "2020000000", Value: "147620"},
		{Area: "13102", IndicatorCode: domain.CodeNurseries, Period: "2021000000", Value: "60"},
	}
	table, _ := domain.Collect(observations)
	trends := domain.BuildTrendSeries(observations[:1])

	snap, _ := domain.BuildSnapshot(table, trends, []string{"13101", "13102"})
	return snap
}

func TestWriteRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "wards.json")
	original := buildTestSnapshot(t)

	require.NoError(t, Write(path, original))

	loaded, err := Read(path)
	require.NoError(t, err)

	// Order and values survive the file boundary exactly.
	assert.Equal(t, original.GeneratedAt, loaded.GeneratedAt)
	assert.Equal(t, original.Avg23Scores, loaded.Avg23Scores)
	assert.Equal(t, original.Wards, loaded.Wards)
}

func TestWrite_ReplacesWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wards.json")
	snap := buildTestSnapshot(t)

	require.NoError(t, Write(path, snap))
	require.NoError(t, Write(path, snap))

	// No stray temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestRead_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wards.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse snapshot")
}
