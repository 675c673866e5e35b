package domain

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// TrendMinYear is the earliest census year kept in population trend series.
const TrendMinYear = 2000

// RawObservation is one row as returned by the statistics source: a
// string-encoded value for one (area, indicator) pair in one survey period.
type RawObservation struct {
	Area          string
	IndicatorCode string
	Period        string // first four characters are the year
	Value         string
}

// AreaIndicatorTable maps area code → indicator code → latest value. An
// absent key means no data for that pair; zero is a real value, never a
// sentinel.
type AreaIndicatorTable map[string]map[string]float64

// Value returns the latest value for the pair and whether it exists.
func (t AreaIndicatorTable) Value(area, code string) (float64, bool) {
	m, ok := t[area]
	if !ok {
		return 0, false
	}
	v, ok := m[code]
	return v, ok
}

// DisplayValue returns the latest value, substituting 0 when absent. Display
// only; scoring must use [AreaIndicatorTable.Value] so gaps stay gaps.
func (t AreaIndicatorTable) DisplayValue(area, code string) float64 {
	v, _ := t.Value(area, code)
	return v
}

// Collect folds raw observations into the table, keeping the most recent
// year per (area, indicator) pair. Observations whose value or year does not
// parse are dropped silently; the second return value counts them.
//
// Observations are sorted by year ascending before folding so that equal
// years resolve deterministically regardless of source ordering.
func Collect(observations []RawObservation) (AreaIndicatorTable, int) {
	type parsed struct {
		area, code string
		year       int
		value      float64
	}

	rows := make([]parsed, 0, len(observations))
	dropped := 0
	for _, obs := range observations {
		year, value, ok := parseObservation(obs)
		if !ok {
			dropped++
			continue
		}
		rows = append(rows, parsed{area: obs.Area, code: obs.IndicatorCode, year: year, value: value})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].year < rows[j].year })

	table := make(AreaIndicatorTable)
	years := make(map[string]map[string]int)
	for _, row := range rows {
		if table[row.area] == nil {
			table[row.area] = make(map[string]float64)
			years[row.area] = make(map[string]int)
		}
		if prev, ok := years[row.area][row.code]; ok && row.year < prev {
			continue
		}
		table[row.area][row.code] = row.value
		years[row.area][row.code] = row.year
	}
	return table, dropped
}

// BuildTrendSeries folds population observations into per-area census trend
// series, ascending by year, dropping years before [TrendMinYear] and any
// row that does not parse.
func BuildTrendSeries(observations []RawObservation) map[string][]TrendPoint {
	byArea := make(map[string][]TrendPoint)
	for _, obs := range observations {
		year, value, ok := parseObservation(obs)
		if !ok || year < TrendMinYear {
			continue
		}
		byArea[obs.Area] = append(byArea[obs.Area], TrendPoint{Year: year, Population: int(value)})
	}
	for _, series := range byArea {
		sort.Slice(series, func(i, j int) bool { return series[i].Year < series[j].Year })
	}
	return byArea
}

// parseObservation extracts the year and numeric value from a raw row.
// e-Stat publishes gaps as "-", "..." or "X"; those fail the float parse and
// are reported as not ok.
func parseObservation(obs RawObservation) (year int, value float64, ok bool) {
	if len(obs.Period) < 4 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(obs.Period[:4])
	if err != nil {
		return 0, 0, false
	}
	value, err = strconv.ParseFloat(strings.TrimSpace(obs.Value), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, 0, false
	}
	return year, value, true
}

// Average is the unweighted mean of an indicator across all areas holding a
// value for it. Areas without the indicator contribute to neither numerator
// nor denominator; no reporting area at all yields 0.
func Average(table AreaIndicatorTable, code string) float64 {
	sum, count := 0.0, 0
	for _, indicators := range table {
		if v, ok := indicators[code]; ok {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// AverageRounded is Average rounded to two decimals for display. Scoring
// uses the full-precision [Average] so rounding error never compounds.
func AverageRounded(table AreaIndicatorTable, code string) float64 {
	return math.Round(Average(table, code)*100) / 100
}
