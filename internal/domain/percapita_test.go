package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testWard builds a minimal record with one metric per category.
func testWard(code string, population float64, perCategory map[CategoryKind]StatItem) WardRecord {
	city := CityData{Code: code, Name: WardNames[code], Population: PopulationData{Total: population}}
	for kind, item := range perCategory {
		blockDef := Categories[kind]
		*city.Category(kind) = CategoryBlock{
			Emoji: blockDef.Emoji, Label: blockDef.Label, Color: blockDef.Color,
			Items: []StatItem{item},
		}
	}
	return WardRecord{City: city}
}

func countItem(value float64) StatItem { return StatItem{Value: value, Unit: "か所"} }
func moneyItem(value float64) StatItem { return StatItem{Value: value, Unit: "万円"} }
func caseItem(value float64) StatItem  { return StatItem{Value: value, Unit: "件"} }

func TestPerCapitaScorer(t *testing.T) {
	wards := []WardRecord{
		testWard("13101", 10000, map[CategoryKind]StatItem{
			CategoryChildcare: countItem(100),
			CategorySafety:    caseItem(100),
			CategoryEconomy:   moneyItem(500),
		}),
		testWard("13102", 20000, map[CategoryKind]StatItem{
			CategoryChildcare: countItem(100),
			CategorySafety:    caseItem(100),
			CategoryEconomy:   moneyItem(300),
		}),
	}
	scorer := PerCapitaScorer{}

	t.Run("ratio against the cross-ward mean", func(t *testing.T) {
		// Per-10k childcare: 100 vs 50, mean 75 → 50*100/75 ≈ 67.
		scores := scorer.Scores(wards, "13101")
		assert.Equal(t, 67, scores.Childcare)
		assert.Equal(t, 33, scorer.Scores(wards, "13102").Childcare)
	})

	t.Run("safety ratio is inverted", func(t *testing.T) {
		// 13101 has more incidents per resident, so it scores below 50.
		assert.Equal(t, 38, scorer.Scores(wards, "13101").Safety)
		assert.Equal(t, 75, scorer.Scores(wards, "13102").Safety)
	})

	t.Run("万円 passes through without population conversion", func(t *testing.T) {
		// 500 vs 300 regardless of population: mean 400 → 50*500/400 ≈ 63.
		assert.Equal(t, 63, scorer.Scores(wards, "13101").Economy)
	})

	t.Run("category without data scores neutral", func(t *testing.T) {
		// No ward carries education metrics, so the mean is zero.
		assert.Equal(t, 50, scorer.Scores(wards, "13101").Education)
	})

	t.Run("scores always in range", func(t *testing.T) {
		for _, w := range wards {
			scores := scorer.Scores(wards, w.City.Code)
			for _, kind := range CategoryKinds {
				assert.GreaterOrEqual(t, scores.Get(kind), 0)
				assert.LessOrEqual(t, scores.Get(kind), 100)
			}
		}
	})
}

func TestPerCapitaScorer_Fallbacks(t *testing.T) {
	scorer := PerCapitaScorer{}

	t.Run("empty collection", func(t *testing.T) {
		scores, ok := scorer.ScoresOK(nil, "13101")
		assert.False(t, ok)
		assert.Equal(t, NeutralScores(), scores)
	})

	t.Run("unknown target", func(t *testing.T) {
		wards := []WardRecord{testWard("13101", 10000, nil)}
		scores, ok := scorer.ScoresOK(wards, "13199")
		assert.False(t, ok)
		assert.Equal(t, NeutralScores(), scores)
	})

	t.Run("zero population does not divide by zero", func(t *testing.T) {
		wards := []WardRecord{
			testWard("13101", 0, map[CategoryKind]StatItem{CategoryChildcare: countItem(100)}),
			testWard("13102", 10000, map[CategoryKind]StatItem{CategoryChildcare: countItem(100)}),
		}
		scores, ok := scorer.ScoresOK(wards, "13101")
		require.True(t, ok)
		assert.GreaterOrEqual(t, scores.Childcare, 0)
		assert.LessOrEqual(t, scores.Childcare, 100)
	})

	t.Run("cross-ward average is fifty by construction", func(t *testing.T) {
		assert.Equal(t, NeutralScores(), scorer.Avg23Scores())
	})
}
