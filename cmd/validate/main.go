// Command validate performs integrity checks on an AMAT archive directory
// before it is deployed behind the dashboard: the station file parses, the
// unified row count matches the sum of the yearly files, the join leaves
// no unexpected orphans, and coercion rates stay within bounds.
//
// Usage:
//
//	go run ./cmd/validate -data-dir ./data
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/milan-air-quality/internal/adapter/archive"
	"github.com/couchcryptid/milan-air-quality/internal/dataset"
	"github.com/couchcryptid/milan-air-quality/internal/domain"
	"github.com/couchcryptid/milan-air-quality/internal/observability"
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
	dataDir := flag.String("data-dir", "./data", "archive directory to validate")
	stationsFile := flag.String("stations-file", "qaria_stazione.geojson", "station metadata file name")
	flag.Parse()

	phases := validate(*dataDir, *stationsFile)

	failed := false
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS %s\n", p.name)
			continue
		}
		failed = true
		fmt.Printf("FAIL %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("     %s\n", e)
		}
	}
	if failed {
		os.Exit(1)
	}
}

func validate(dataDir, stationsFile string) []*phase {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	source := archive.NewReader(dataDir, stationsFile, logger)

	load := &phase{name: "load"}
	loader := dataset.NewLoader(source, logger, observability.NewMetrics(), clockwork.NewRealClock())
	ds, err := loader.Load(context.Background())
	if err != nil {
		load.errorf("load failed: %v", err)
		return []*phase{load}
	}

	counts := &phase{name: "row counts"}
	expected := 0
	for _, year := range domain.Years() {
		name, data, ok, err := source.Year(year)
		if err != nil {
			counts.errorf("read %d: %v", year, err)
			continue
		}
		if !ok {
			continue
		}
		_, stats, err := domain.ParseMeasurements(name, data)
		if err != nil {
			counts.errorf("parse %s: %v", name, err)
			continue
		}
		expected += stats.Total - stats.Dropped
	}
	if ds.Len() != expected {
		counts.errorf("unified table has %d rows, yearly files sum to %d", ds.Len(), expected)
	}

	join := &phase{name: "join"}
	orphans := 0
	for _, r := range ds.Records() {
		if !r.HasStation {
			orphans++
		}
	}
	if orphans > 0 {
		join.errorf("%d rows have no matching station metadata", orphans)
	}

	coercion := &phase{name: "coercion rates"}
	stats := ds.Stats()
	if stats.Total > 0 {
		missingRate := float64(stats.ValueCoercions) / float64(stats.Total)
		if missingRate > 0.10 {
			coercion.errorf("%.1f%% of values are non-numeric (threshold 10%%)", missingRate*100)
		}
		if stats.DateCoercions > 0 {
			coercion.errorf("%d records have unparsable dates", stats.DateCoercions)
		}
	}

	return []*phase{load, counts, join, coercion}
}
