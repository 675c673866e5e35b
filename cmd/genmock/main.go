// Command genmock generates deterministic mock fixtures: a raw e-Stat
// observation dump and the snapshot built from it. It uses the actual domain
// package so the fixtures match real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -raw-out data/mock/observations.json \
//	  -snapshot-out data/mock/wards.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/wardwatch/tokyo-ward-stats/internal/domain"
	"github.com/wardwatch/tokyo-ward-stats/internal/snapshot"
)

// baseValues gives each indicator a plausible magnitude; per-ward variation
// is applied on top so scores spread without leaving realistic ranges.
var baseValues = map[string]float64{
	domain.CodeTotalPop:     250000,
	domain.CodeMalePop:      123000,
	domain.CodeFemalePop:    127000,
	domain.CodeUnder15:      28000,
	domain.CodeAge15to64:    170000,
	domain.CodeOver65:       52000,
	domain.CodeForeigners:   12000,
	domain.CodeHouseholds:   140000,
	domain.CodeElderSingle:  16000,
	domain.CodeTaxIncome:    600000000,
	domain.CodeTaxpayers:    130000,
	domain.CodeBusinesses:   18000,
	domain.CodeRevenue:      110000000,
	domain.CodeElemSchools:  40,
	domain.CodeMidSchools:   22,
	domain.CodeLibraries:    8,
	domain.CodeNewHousing:   3500,
	domain.CodeHospitals:    14,
	domain.CodeClinics:      450,
	domain.CodeDoctors:      900,
	domain.CodeNurseries:    80,
	domain.CodeChildWelfare: 95,
	domain.CodeTrafficAcc:   900,
	domain.CodeCrimes:       2800,
}

var censusYears = []int{2000, 2005, 2010, 2015, 2020}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rawOut := flag.String("raw-out", "", "output path for the raw observation fixture")
	snapOut := flag.String("snapshot-out", "", "output path for the snapshot fixture")
	flag.Parse()

	if *rawOut == "" || *snapOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -raw-out, -snapshot-out")
	}

	// Fixed clock so generatedAt is reproducible across runs.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	observations := generate()
	log.Printf("generated %d observations", len(observations))

	table, dropped := domain.Collect(observations)
	if dropped > 0 {
		return fmt.Errorf("fixture generator produced %d unparsable observations", dropped)
	}
	trends := domain.BuildTrendSeries(filterByCode(observations, domain.CodeTotalPop))

	snap, missing := domain.BuildSnapshot(table, trends, domain.WardCodes())
	if len(missing) > 0 {
		return fmt.Errorf("fixture snapshot missing wards: %v", missing)
	}

	if err := writeJSON(*rawOut, observations); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	if err := snapshot.Write(*snapOut, snap); err != nil {
		return fmt.Errorf("writing snapshot fixture: %w", err)
	}

	log.Printf("wrote %s and %s (%d wards)", *rawOut, *snapOut, len(snap.Wards))
	return nil
}

// generate produces observations for every indicator and ward, including the
// full census series for the population total so trends are populated. The
// seed is fixed so the fixture is identical across runs.
func generate() []domain.RawObservation {
	rng := rand.New(rand.NewSource(20260301))

	codes := make([]string, 0, len(baseValues))
	for code := range baseValues {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var observations []domain.RawObservation
	for _, area := range domain.WardCodes() {
		for _, code := range codes {
			base := baseValues[code]
			// Between 0.6x and 1.4x of the base per ward.
			scale := 0.6 + rng.Float64()*0.8

			if code == domain.CodeTotalPop {
				// Census series growing toward the latest value.
				latest := base * scale
				for i, year := range censusYears {
					growth := 0.82 + 0.045*float64(i)
					observations = append(observations, domain.RawObservation{
						Area:          area,
						IndicatorCode: code,
						Period:        strconv.Itoa(year) + "100000",
						Value:         strconv.Itoa(int(latest * growth)),
					})
				}
				continue
			}

			observations = append(observations, domain.RawObservation{
				Area:          area,
				IndicatorCode: code,
				Period:        "2020100000",
				Value:         strconv.FormatFloat(base*scale, 'f', 0, 64),
			})
		}
	}
	return observations
}

func filterByCode(observations []domain.RawObservation, code string) []domain.RawObservation {
	var out []domain.RawObservation
	for _, obs := range observations {
		if obs.IndicatorCode == code {
			out = append(out, obs)
		}
	}
	return out
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
