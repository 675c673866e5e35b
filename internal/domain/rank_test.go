package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankedWard(code string, population float64, childcare int) WardRecord {
	return WardRecord{
		City:   CityData{Code: code, Population: PopulationData{Total: population}},
		Scores: ScoreSet{Childcare: childcare},
	}
}

func TestAssignRankings(t *testing.T) {
	wards := []WardRecord{
		rankedWard("13101", 66680, 40),
		rankedWard("13102", 147620, 70),
		rankedWard("13103", 260486, 55),
	}

	AssignRankings(wards)

	t.Run("highest score ranks first", func(t *testing.T) {
		assert.Equal(t, 3, wards[0].Rankings.Childcare)
		assert.Equal(t, 1, wards[1].Rankings.Childcare)
		assert.Equal(t, 2, wards[2].Rankings.Childcare)
	})

	t.Run("population ranking", func(t *testing.T) {
		assert.Equal(t, 3, wards[0].Rankings.Population)
		assert.Equal(t, 2, wards[1].Rankings.Population)
		assert.Equal(t, 1, wards[2].Rankings.Population)
	})
}

func TestAssignRankings_Permutation(t *testing.T) {
	wards := []WardRecord{
		rankedWard("13101", 100, 50),
		rankedWard("13102", 100, 50),
		rankedWard("13103", 200, 50),
		rankedWard("13104", 50, 60),
	}

	AssignRankings(wards)

	for _, kind := range CategoryKinds {
		seen := make(map[int]bool)
		for i := range wards {
			seen[wards[i].Rankings.Get(kind)] = true
		}
		for rank := 1; rank <= len(wards); rank++ {
			assert.True(t, seen[rank], "category %s missing rank %d", kind, rank)
		}
	}
}

func TestAssignRankings_TiesArePositional(t *testing.T) {
	wards := []WardRecord{
		rankedWard("13101", 100, 50),
		rankedWard("13102", 100, 50),
	}

	AssignRankings(wards)

	// Equal scores: earlier input position wins the lower rank.
	require.Equal(t, 1, wards[0].Rankings.Childcare)
	require.Equal(t, 2, wards[1].Rankings.Childcare)
	require.Equal(t, 1, wards[0].Rankings.Population)
	require.Equal(t, 2, wards[1].Rankings.Population)
}
