package domain

import "math"

// BuildWardRecord assembles one ward's record from the collected indicator
// table and the population trend series. The boolean is false when the area
// has no entry in the table at all; such areas are excluded from the snapshot
// rather than emitted as all-zero records. Individual missing indicators
// within a present area display as 0.
//
// Rankings are left zero; [AssignRankings] fills them once all records exist.
func BuildWardRecord(areaCode string, table AreaIndicatorTable, trends map[string][]TrendPoint) (WardRecord, bool) {
	if _, ok := table[areaCode]; !ok {
		return WardRecord{}, false
	}

	name, ok := WardNames[areaCode]
	if !ok {
		name = areaCode
	}

	value := func(code string) float64 { return table.DisplayValue(areaCode, code) }
	avg := func(code string) float64 { return AverageRounded(table, code) }
	item := func(code string) StatItem {
		def := Indicators[code]
		return StatItem{Label: def.Label, Value: value(code), Unit: def.Unit, Avg23: avg(code)}
	}

	city := CityData{
		Code: areaCode,
		Name: name,
		Population: PopulationData{
			Total:      value(CodeTotalPop),
			Male:       value(CodeMalePop),
			Female:     value(CodeFemalePop),
			Under15:    value(CodeUnder15),
			Age15to64:  value(CodeAge15to64),
			Over65:     value(CodeOver65),
			Foreigners: value(CodeForeigners),
			Trend:      trendOrEmpty(trends, areaCode),
		},
		Childcare: block(CategoryChildcare, item(CodeNurseries), item(CodeChildWelfare)),
		Medical:   block(CategoryMedical, item(CodeHospitals), item(CodeClinics), item(CodeDoctors)),
		Safety:    block(CategorySafety, item(CodeCrimes), item(CodeTrafficAcc)),
		Economy: block(CategoryEconomy,
			StatItem{
				Label: "1人あたり課税所得",
				Value: perCapitaTaxIncome(value(CodeTaxIncome), value(CodeTaxpayers)),
				Unit:  "万円",
				Avg23: averagePerCapitaTaxIncome(table),
			},
			item(CodeBusinesses),
			StatItem{
				Label: "歳入決算総額",
				Value: math.Round(value(CodeRevenue) / 100000),
				Unit:  "億円",
				Avg23: averageRevenueOku(table),
			},
		),
		Education: block(CategoryEducation, item(CodeElemSchools), item(CodeMidSchools), item(CodeLibraries)),
		Living: block(CategoryLiving,
			item(CodeHouseholds),
			item(CodeNewHousing),
			StatItem{
				Label: "65歳以上単独世帯率",
				Value: elderSingleRate(value(CodeElderSingle), value(CodeHouseholds)),
				Unit:  "%",
				Avg23: averageElderSingleRate(table),
			},
		),
	}

	return WardRecord{
		City:   city,
		Scores: DeviationScores(table, areaCode),
	}, true
}

// BuildSnapshot builds the full snapshot: one record per area in the given
// order, cross-ward average scores, and rankings. GeneratedAt comes from the
// package clock. The second return value lists areas that had no data at all
// and were excluded.
func BuildSnapshot(table AreaIndicatorTable, trends map[string][]TrendPoint, areaCodes []string) (*Snapshot, []string) {
	wards := make([]WardRecord, 0, len(areaCodes))
	var missing []string
	for _, code := range areaCodes {
		record, ok := BuildWardRecord(code, table, trends)
		if !ok {
			missing = append(missing, code)
			continue
		}
		wards = append(wards, record)
	}

	AssignRankings(wards)

	return &Snapshot{
		GeneratedAt: clock.Now().UTC(),
		Avg23Scores: averageScores(wards),
		Wards:       wards,
	}, missing
}

// averageScores is the per-category mean of the wards' deviation scores,
// rounded to the nearest integer.
func averageScores(wards []WardRecord) ScoreSet {
	var avg ScoreSet
	if len(wards) == 0 {
		return avg
	}
	for _, kind := range CategoryKinds {
		sum := 0
		for i := range wards {
			sum += wards[i].Scores.Get(kind)
		}
		avg.Set(kind, int(math.Round(float64(sum)/float64(len(wards)))))
	}
	return avg
}

func block(kind CategoryKind, items ...StatItem) CategoryBlock {
	def := Categories[kind]
	return CategoryBlock{Emoji: def.Emoji, Label: def.Label, Color: def.Color, Items: items}
}

func trendOrEmpty(trends map[string][]TrendPoint, areaCode string) []TrendPoint {
	if series, ok := trends[areaCode]; ok {
		return series
	}
	return []TrendPoint{}
}

// perCapitaTaxIncome converts total taxable income (thousand yen) and
// taxpayer count into 万円 per taxpayer, rounded. Zero taxpayers means no
// data, not an error.
func perCapitaTaxIncome(taxIncome, taxpayers float64) float64 {
	if taxpayers == 0 {
		return 0
	}
	return math.Round(taxIncome / taxpayers / 10)
}

// elderSingleRate is the share of elderly single households in percent, one
// decimal. Zero households means no data.
func elderSingleRate(elderSingle, households float64) float64 {
	if households == 0 {
		return 0
	}
	return math.Round(elderSingle/households*1000) / 10
}

// averagePerCapitaTaxIncome averages the per-area ratio across areas holding
// both inputs with a positive taxpayer count. Averaging the ratios, not the
// ratio of averages: the metric describes the distribution of per-area
// values, and summing numerators and denominators separately would weight
// large wards.
func averagePerCapitaTaxIncome(table AreaIndicatorTable) float64 {
	sum, count := 0.0, 0
	for area := range table {
		income, okIncome := table.Value(area, CodeTaxIncome)
		payers, okPayers := table.Value(area, CodeTaxpayers)
		if !okIncome || !okPayers || payers <= 0 {
			continue
		}
		sum += income / payers / 10
		count++
	}
	if count == 0 {
		return 0
	}
	return math.Round(sum / float64(count))
}

// averageElderSingleRate averages the per-area rate the same compound way,
// rounded to one decimal.
func averageElderSingleRate(table AreaIndicatorTable) float64 {
	sum, count := 0.0, 0
	for area := range table {
		elder, okElder := table.Value(area, CodeElderSingle)
		households, okHouseholds := table.Value(area, CodeHouseholds)
		if !okElder || !okHouseholds || households <= 0 {
			continue
		}
		sum += elder / households * 100
		count++
	}
	if count == 0 {
		return 0
	}
	return math.Round(sum/float64(count)*10) / 10
}

// averageRevenueOku averages settled revenue converted to 億円, rounded.
func averageRevenueOku(table AreaIndicatorTable) float64 {
	sum, count := 0.0, 0
	for area := range table {
		if v, ok := table.Value(area, CodeRevenue); ok {
			sum += v / 100000
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return math.Round(sum / float64(count))
}
