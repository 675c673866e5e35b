package domain

import "math"

// DeviationScore converts one area's indicator values into a 0-100 score by
// T-score normalization against the cross-area distribution.
//
// Per indicator: all area values are collected; the indicator is skipped when
// fewer than two areas report it, when the population standard deviation is
// exactly zero, or when the target area lacks a value. Surviving indicators
// contribute (x-μ)/σ*10+50, inverted to 100-d for lower-is-better codes. The
// mean of the contributions is clamped to [0,100] and rounded half-up; if no
// indicator survives the score is the neutral 50.
func DeviationScore(table AreaIndicatorTable, areaCode string, refs []IndicatorRef) int {
	indicators, ok := table[areaCode]
	if !ok {
		return 50
	}

	total, count := 0.0, 0
	for _, ref := range refs {
		values := make([]float64, 0, len(table))
		for _, m := range table {
			if v, ok := m[ref.Code]; ok {
				values = append(values, v)
			}
		}
		if len(values) < 2 {
			continue
		}

		mean := 0.0
		for _, v := range values {
			mean += v
		}
		mean /= float64(len(values))

		variance := 0.0
		for _, v := range values {
			variance += (v - mean) * (v - mean)
		}
		stdDev := math.Sqrt(variance / float64(len(values)))
		if stdDev == 0 {
			continue
		}

		areaValue, ok := indicators[ref.Code]
		if !ok {
			continue
		}

		d := (areaValue-mean)/stdDev*10 + 50
		if ref.Invert {
			d = 100 - d
		}
		total += d
		count++
	}

	if count == 0 {
		return 50
	}
	return int(math.Round(clamp(total/float64(count), 0, 100)))
}

// DeviationScores computes all six category scores for one area.
func DeviationScores(table AreaIndicatorTable, areaCode string) ScoreSet {
	var scores ScoreSet
	for _, kind := range CategoryKinds {
		scores.Set(kind, DeviationScore(table, areaCode, Categories[kind].Scoring))
	}
	return scores
}

// DeviationScorer adapts the build-time deviation scoring to the
// CategoryScorer interface. It scores from its captured raw indicator table;
// the ward records are not consulted.
type DeviationScorer struct {
	Table AreaIndicatorTable
}

func (s DeviationScorer) Scores(_ []WardRecord, targetCode string) ScoreSet {
	return DeviationScores(s.Table, targetCode)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
