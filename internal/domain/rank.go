package domain

import "sort"

// AssignRankings fills each record's RankingSet: for every category score and
// for total population, wards are stable-sorted descending and rank is the
// 1-based position. Ties take distinct sequential ranks in input order
// (positional ranking, not competition ranking); with insertion order being
// ascending area code, the lower code wins a tie.
func AssignRankings(wards []WardRecord) {
	// Each metric sorts a fresh copy so ties always break on the original
	// input order, not on whatever the previous metric left behind.
	byInput := func() []*WardRecord {
		order := make([]*WardRecord, len(wards))
		for i := range wards {
			order[i] = &wards[i]
		}
		return order
	}

	for _, kind := range CategoryKinds {
		order := byInput()
		sort.SliceStable(order, func(i, j int) bool {
			return order[i].Scores.Get(kind) > order[j].Scores.Get(kind)
		})
		for pos, w := range order {
			setRank(&w.Rankings, kind, pos+1)
		}
	}

	order := byInput()
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].City.Population.Total > order[j].City.Population.Total
	})
	for pos, w := range order {
		w.Rankings.Population = pos + 1
	}
}

func setRank(r *RankingSet, kind CategoryKind, rank int) {
	switch kind {
	case CategoryChildcare:
		r.Childcare = rank
	case CategoryMedical:
		r.Medical = rank
	case CategorySafety:
		r.Safety = rank
	case CategoryEconomy:
		r.Economy = rank
	case CategoryEducation:
		r.Education = rank
	case CategoryLiving:
		r.Living = rank
	}
}
