package domain

import "math"

// noConversionUnits lists units that are already population-independent and
// must not be divided by population before cross-ward comparison.
var noConversionUnits = map[string]bool{
	"万円": true,
	"%":  true,
	"":   true,
}

// toPerCapita scales a raw count to a per-10,000-residents basis.
func toPerCapita(value, population float64) float64 {
	if population == 0 {
		return 0
	}
	return value / population * 10000
}

// categoryPerCapita is the mean of a category's metric values after per-10k
// normalization (units in the no-conversion set pass through unchanged).
func categoryPerCapita(block *CategoryBlock, population float64) float64 {
	if len(block.Items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range block.Items {
		if noConversionUnits[item.Unit] {
			total += item.Value
			continue
		}
		total += toPerCapita(item.Value, population)
	}
	return total / float64(len(block.Items))
}

// PerCapitaScorer scores categories by comparing each ward's
// population-normalized category value against the cross-ward mean:
// 50*value/mean, flipped for the safety category where fewer incidents is
// better. Scores are clamped to [0,100] and rounded. The cross-ward mean of
// the output is exactly 50 for every category by construction, so the
// 23-ward average score set is defined as all 50s.
//
// This method is robust where raw variance mostly tracks population size
// (facility counts), which is why serving prefers it over the persisted
// deviation scores whenever ward records are loaded.
type PerCapitaScorer struct{}

// Scores implements CategoryScorer. An empty collection or unknown target
// yields the neutral all-50 set.
func (s PerCapitaScorer) Scores(wards []WardRecord, targetCode string) ScoreSet {
	scores, _ := s.ScoresOK(wards, targetCode)
	return scores
}

// ScoresOK is Scores with an explicit flag: false means the target was not
// comparable (no records, or the code is absent) and the neutral set was
// returned, so callers may fall back to persisted deviation scores.
func (PerCapitaScorer) ScoresOK(wards []WardRecord, targetCode string) (ScoreSet, bool) {
	if len(wards) == 0 {
		return NeutralScores(), false
	}

	normalized := make(map[string]map[CategoryKind]float64, len(wards))
	for i := range wards {
		city := &wards[i].City
		perKind := make(map[CategoryKind]float64, len(CategoryKinds))
		for _, kind := range CategoryKinds {
			perKind[kind] = categoryPerCapita(city.Category(kind), city.Population.Total)
		}
		normalized[city.Code] = perKind
	}

	target, ok := normalized[targetCode]
	if !ok {
		return NeutralScores(), false
	}

	var scores ScoreSet
	for _, kind := range CategoryKinds {
		mean := 0.0
		for _, perKind := range normalized {
			mean += perKind[kind]
		}
		mean /= float64(len(normalized))

		if mean == 0 {
			scores.Set(kind, 50)
			continue
		}

		var score float64
		if kind == CategorySafety {
			// Fewer incidents per resident is better, so the ratio flips.
			if target[kind] == 0 {
				scores.Set(kind, 50)
				continue
			}
			score = 50 * mean / target[kind]
		} else {
			score = 50 * target[kind] / mean
		}
		scores.Set(kind, int(math.Round(clamp(score, 0, 100))))
	}
	return scores, true
}

// Avg23Scores returns the cross-ward average score set for this method,
// which is 50 in every category by construction.
func (PerCapitaScorer) Avg23Scores() ScoreSet {
	return NeutralScores()
}
