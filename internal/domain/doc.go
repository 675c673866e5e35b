// Package domain models per-ward statistics for the 23 Tokyo special wards.
//
// # Data Source
//
// Indicator values come from the e-Stat government statistics API
// (https://www.e-stat.go.jp), endpoint getStatsData. Each indicator is
// identified by a category code (cat01, e.g. "A1101" = total population) and
// lives in one statistics table (statsDataId, e.g. "0000020201" = the
// regional population table). A response row carries the area code, the
// category code, a time period, and a string-encoded value.
//
// # e-Stat Conventions
//
// Area codes:
//
//	Five-digit municipality codes. The 23 special wards are 13101 (千代田区)
//	through 13123 (江戸川区), consecutive.
//
// Time periods:
//
//	Strings whose first four characters are the calendar year, e.g.
//	"2020000000". Only the year is meaningful here; the same (area,
//	indicator) pair appears once per survey year, and the latest year wins.
//
// Values:
//
//	String-encoded numbers. Gaps are published as "-", "..." , "X" and the
//	like; anything that does not parse as a float is dropped, not an error.
//
// Units:
//
//	C120110 (taxable income) is published in thousand yen and displayed in
//	万円 (ten-thousand yen). D3201 (settled revenue) is displayed in 億円.
//	Units in the set {"万円", "%", ""} are already population-independent and
//	are never converted to a per-10,000-residents basis.
//
// # Scoring
//
// Two independent scorers produce 0-100 category scores over the same ward
// data, both usable through the [CategoryScorer] interface:
//
//   - [DeviationScorer] runs at build time from the raw indicator table. Each
//     indicator is T-score normalized ((x-μ)/σ*10+50, population σ) against
//     the cross-ward distribution, inverted for lower-is-better indicators
//     (crime and accident counts, elderly single households), averaged per
//     category, clamped to [0,100] and rounded. Indicators with fewer than
//     two reporting wards or zero spread contribute nothing; a category with
//     no surviving indicator scores the neutral 50.
//
//   - [PerCapitaScorer] runs at serve time from built ward records. Category
//     metric values are normalized to a per-10,000-residents basis, averaged,
//     and compared as a ratio against the cross-ward mean: 50*value/mean
//     (flipped for safety, where fewer incidents is better). The cross-ward
//     average score is exactly 50 for every category by construction.
//
// The population census runs every five years, so trend series are sparse;
// entries before the year 2000 are dropped.
package domain
