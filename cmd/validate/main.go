// Command validate performs integrity checks on a snapshot file: ward
// coverage and ordering, score ranges for both scoring methods, ranking
// permutations, cross-ward average consistency, and serialization stability.
//
// Usage:
//
//	go run ./cmd/validate -snapshot data/wards.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"reflect"

	"github.com/wardwatch/tokyo-ward-stats/internal/domain"
	"github.com/wardwatch/tokyo-ward-stats/internal/snapshot"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	snapshotPath := flag.String("snapshot", "", "path to the snapshot file")
	flag.Parse()

	if *snapshotPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*snapshotPath); code != 0 {
		os.Exit(code)
	}
}

func run(snapshotPath string) int {
	fmt.Println("=== Ward Snapshot Integrity Validation ===")
	fmt.Println()

	snap, err := snapshot.Read(snapshotPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load snapshot: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateStructure(snap),
		validateDeviationScores(snap),
		validatePerCapitaScores(snap),
		validateRankings(snap),
		validateSerialization(snap),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Snapshot: %d wards, generated %s\n", len(snap.Wards), snap.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// validateStructure checks ward coverage, ordering, names, and timestamps.
func validateStructure(snap *domain.Snapshot) *phase {
	p := &phase{name: "Structure (coverage, order, names)"}

	if snap.GeneratedAt.IsZero() {
		p.errorf("generatedAt is zero")
	}

	codes := domain.WardCodes()
	if len(snap.Wards) != len(codes) {
		p.errorf("expected %d wards, got %d", len(codes), len(snap.Wards))
	}
	for i, ward := range snap.Wards {
		if i >= len(codes) {
			break
		}
		if ward.City.Code != codes[i] {
			p.errorf("ward %d: expected code %s, got %s", i, codes[i], ward.City.Code)
			continue
		}
		if want := domain.WardNames[ward.City.Code]; ward.City.Name != want {
			p.errorf("ward %s: expected name %s, got %s", ward.City.Code, want, ward.City.Name)
		}
		if ward.City.Population.Total <= 0 {
			p.errorf("ward %s: non-positive population %v", ward.City.Code, ward.City.Population.Total)
		}
	}
	return p
}

// validateDeviationScores checks persisted score ranges and the 23-ward
// average consistency.
func validateDeviationScores(snap *domain.Snapshot) *phase {
	p := &phase{name: "Deviation scores (range, averages)"}

	for _, kind := range domain.CategoryKinds {
		sum := 0
		for _, ward := range snap.Wards {
			score := ward.Scores.Get(kind)
			if score < 0 || score > 100 {
				p.errorf("ward %s %s: score %d out of range", ward.City.Code, kind, score)
			}
			sum += score
		}
		if len(snap.Wards) == 0 {
			continue
		}
		want := int(math.Round(float64(sum) / float64(len(snap.Wards))))
		if got := snap.Avg23Scores.Get(kind); got != want {
			p.errorf("%s: avg23 score %d, recomputed %d", kind, got, want)
		}
	}
	return p
}

// validatePerCapitaScores recomputes per-capita scores for every ward and
// checks they stay in range.
func validatePerCapitaScores(snap *domain.Snapshot) *phase {
	p := &phase{name: "Per-capita scores (recompute, range)"}

	var scorer domain.PerCapitaScorer
	for _, ward := range snap.Wards {
		scores, ok := scorer.ScoresOK(snap.Wards, ward.City.Code)
		if !ok {
			p.errorf("ward %s: per-capita recompute fell back to neutral", ward.City.Code)
			continue
		}
		for _, kind := range domain.CategoryKinds {
			if score := scores.Get(kind); score < 0 || score > 100 {
				p.errorf("ward %s %s: per-capita score %d out of range", ward.City.Code, kind, score)
			}
		}
	}
	return p
}

// validateRankings checks each ranking metric is a permutation of 1..N.
func validateRankings(snap *domain.Snapshot) *phase {
	p := &phase{name: "Rankings (permutation per metric)"}

	metrics := []struct {
		name string
		rank func(domain.RankingSet) int
	}{
		{"population", func(r domain.RankingSet) int { return r.Population }},
	}
	for _, kind := range domain.CategoryKinds {
		metrics = append(metrics, struct {
			name string
			rank func(domain.RankingSet) int
		}{string(kind), func(r domain.RankingSet) int { return r.Get(kind) }})
	}

	for _, metric := range metrics {
		seen := make(map[int]string, len(snap.Wards))
		for _, ward := range snap.Wards {
			rank := metric.rank(ward.Rankings)
			if rank < 1 || rank > len(snap.Wards) {
				p.errorf("ward %s %s: rank %d out of range", ward.City.Code, metric.name, rank)
				continue
			}
			if other, dup := seen[rank]; dup {
				p.errorf("%s: rank %d held by both %s and %s", metric.name, rank, other, ward.City.Code)
			}
			seen[rank] = ward.City.Code
		}
	}
	return p
}

// validateSerialization checks the snapshot survives a marshal/unmarshal
// round trip unchanged.
func validateSerialization(snap *domain.Snapshot) *phase {
	p := &phase{name: "Serialization (round-trip stability)"}

	data, err := json.Marshal(snap)
	if err != nil {
		p.errorf("marshal: %v", err)
		return p
	}
	var reread domain.Snapshot
	if err := json.Unmarshal(data, &reread); err != nil {
		p.errorf("unmarshal: %v", err)
		return p
	}
	if !snap.GeneratedAt.Equal(reread.GeneratedAt) {
		p.errorf("generatedAt changed across round trip")
	}
	if !reflect.DeepEqual(snap.Avg23Scores, reread.Avg23Scores) {
		p.errorf("avg23Scores changed across round trip")
	}
	if !reflect.DeepEqual(snap.Wards, reread.Wards) {
		p.errorf("wards changed across round trip")
	}
	return p
}
