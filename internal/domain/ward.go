package domain

import "time"

// TrendPoint is one census observation in a ward's population time series.
type TrendPoint struct {
	Year       int `json:"year"`
	Population int `json:"population"`
}

// PopulationData is the demographic breakdown of one ward.
type PopulationData struct {
	Total      float64      `json:"total"`
	Male       float64      `json:"male"`
	Female     float64      `json:"female"`
	Under15    float64      `json:"under15"`
	Age15to64  float64      `json:"age15to64"`
	Over65     float64      `json:"over65"`
	Foreigners float64      `json:"foreigners"`
	Trend      []TrendPoint `json:"trend"`
}

// StatItem is a single displayed metric: its value for the ward and the
// unweighted 23-ward average for comparison.
type StatItem struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Avg23 float64 `json:"avg23"`
}

// CategoryBlock groups the displayed metrics of one category together with
// its presentation metadata.
type CategoryBlock struct {
	Emoji string     `json:"emoji"`
	Label string     `json:"label"`
	Color string     `json:"color"`
	Items []StatItem `json:"items"`
}

// CityData is the full normalized dataset of one ward.
type CityData struct {
	Code       string         `json:"code"`
	Name       string         `json:"name"`
	Population PopulationData `json:"population"`
	Childcare  CategoryBlock  `json:"childcare"`
	Medical    CategoryBlock  `json:"medical"`
	Safety     CategoryBlock  `json:"safety"`
	Economy    CategoryBlock  `json:"economy"`
	Education  CategoryBlock  `json:"education"`
	Living     CategoryBlock  `json:"living"`
}

// Category returns the block for the given category kind.
func (c *CityData) Category(kind CategoryKind) *CategoryBlock {
	switch kind {
	case CategoryChildcare:
		return &c.Childcare
	case CategoryMedical:
		return &c.Medical
	case CategorySafety:
		return &c.Safety
	case CategoryEconomy:
		return &c.Economy
	case CategoryEducation:
		return &c.Education
	case CategoryLiving:
		return &c.Living
	}
	return nil
}

// ScoreSet holds one 0-100 score per category.
type ScoreSet struct {
	Childcare int `json:"childcare"`
	Medical   int `json:"medical"`
	Safety    int `json:"safety"`
	Economy   int `json:"economy"`
	Education int `json:"education"`
	Living    int `json:"living"`
}

// Get returns the score for the given category kind.
func (s ScoreSet) Get(kind CategoryKind) int {
	switch kind {
	case CategoryChildcare:
		return s.Childcare
	case CategoryMedical:
		return s.Medical
	case CategorySafety:
		return s.Safety
	case CategoryEconomy:
		return s.Economy
	case CategoryEducation:
		return s.Education
	case CategoryLiving:
		return s.Living
	}
	return 0
}

// Set assigns the score for the given category kind.
func (s *ScoreSet) Set(kind CategoryKind, score int) {
	switch kind {
	case CategoryChildcare:
		s.Childcare = score
	case CategoryMedical:
		s.Medical = score
	case CategorySafety:
		s.Safety = score
	case CategoryEconomy:
		s.Economy = score
	case CategoryEducation:
		s.Education = score
	case CategoryLiving:
		s.Living = score
	}
}

// NeutralScores is the all-50 fallback used when scores cannot be computed.
func NeutralScores() ScoreSet {
	return ScoreSet{Childcare: 50, Medical: 50, Safety: 50, Economy: 50, Education: 50, Living: 50}
}

// RankingSet holds the ward's 1-based position among the 23 wards per score
// plus total population. 1 is best (highest score, largest population).
type RankingSet struct {
	Population int `json:"population"`
	Childcare  int `json:"childcare"`
	Medical    int `json:"medical"`
	Safety     int `json:"safety"`
	Economy    int `json:"economy"`
	Education  int `json:"education"`
	Living     int `json:"living"`
}

// Get returns the rank for the given category kind.
func (r RankingSet) Get(kind CategoryKind) int {
	switch kind {
	case CategoryChildcare:
		return r.Childcare
	case CategoryMedical:
		return r.Medical
	case CategorySafety:
		return r.Safety
	case CategoryEconomy:
		return r.Economy
	case CategoryEducation:
		return r.Education
	case CategoryLiving:
		return r.Living
	}
	return 0
}

// WardRecord is one ward's entry in the snapshot: normalized data, the
// build-time deviation scores, and rankings.
type WardRecord struct {
	City     CityData   `json:"city"`
	Scores   ScoreSet   `json:"scores"`
	Rankings RankingSet `json:"rankings"`
}

// Snapshot is the complete generated dataset for all wards at one point in
// time. It is immutable once written; a rebuild replaces it wholesale.
type Snapshot struct {
	GeneratedAt time.Time    `json:"generatedAt"`
	Avg23Scores ScoreSet     `json:"avg23Scores"`
	Wards       []WardRecord `json:"wards"`
}

// Ward returns the record for the given area code, or nil if absent.
func (s *Snapshot) Ward(code string) *WardRecord {
	for i := range s.Wards {
		if s.Wards[i].City.Code == code {
			return &s.Wards[i]
		}
	}
	return nil
}

// CategoryScorer computes a full set of category scores for one target area
// from the built ward records. Both scoring strategies implement it so they
// can be swapped or compared without touching the data model.
type CategoryScorer interface {
	Scores(wards []WardRecord, targetCode string) ScoreSet
}
