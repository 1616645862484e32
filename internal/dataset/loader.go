// Package dataset builds and serves the unified air-quality table: station
// metadata joined onto a decade of measurement records, loaded once per
// process and queried by the dashboard handlers.
package dataset

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/milan-air-quality/internal/domain"
	"github.com/couchcryptid/milan-air-quality/internal/observability"
)

// Source supplies raw source file contents. The archive adapter implements
// it against the filesystem; tests implement it in memory.
type Source interface {
	// Stations returns the station metadata file. Absence is a
	// *domain.SourceNotFoundError.
	Stations() (name string, data []byte, err error)
	// Year returns one yearly archive. ok is false when the year has no
	// file, which is a silent skip.
	Year(year int) (name string, data []byte, ok bool, err error)
}

// Loader runs the read-parse-join pipeline that produces a Dataset.
type Loader struct {
	source  Source
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// NewLoader creates a Loader over the given source.
func NewLoader(source Source, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Loader {
	return &Loader{source: source, logger: logger, metrics: metrics, clock: clock}
}

// Load reads every source, normalizes types and keys, and left-joins
// measurements with station metadata. Fatal errors (missing station file,
// malformed JSON, station schema gaps) abort with no partial dataset.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	l.metrics.LoadsTotal.Inc()

	ds, err := l.load(ctx)
	if err != nil {
		l.metrics.LoadErrorsTotal.Inc()
		return nil, err
	}

	l.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	l.metrics.RecordsLoaded.Set(float64(ds.Len()))
	l.metrics.RecordsDropped.Set(float64(ds.Stats().Dropped))
	l.metrics.ValueCoercions.Set(float64(ds.Stats().ValueCoercions))
	l.metrics.DateCoercions.Set(float64(ds.Stats().DateCoercions))

	l.logger.Info("dataset loaded",
		"records", ds.Len(),
		"stations", len(ds.stations),
		"dropped", ds.Stats().Dropped,
		"value_coercions", ds.Stats().ValueCoercions,
		"date_coercions", ds.Stats().DateCoercions,
		"duration", time.Since(start),
	)
	return ds, nil
}

func (l *Loader) load(ctx context.Context) (*Dataset, error) {
	stationsName, stationsData, err := l.source.Stations()
	if err != nil {
		return nil, err
	}
	stations, err := domain.ParseStations(stationsName, stationsData)
	if err != nil {
		return nil, err
	}
	stations, dupes := domain.DedupeStations(stations)
	if dupes > 0 {
		l.logger.Warn("duplicate station ids in metadata, keeping last occurrence",
			"file", stationsName, "duplicates", dupes)
	}

	var (
		measurements []domain.Measurement
		stats        domain.ParseStats
		skipped      int
	)
	for _, year := range domain.Years() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name, data, ok, err := l.source.Year(year)
		if err != nil {
			return nil, err
		}
		if !ok {
			skipped++
			l.logger.Debug("year archive absent, skipping", "year", year)
			continue
		}

		ms, yearStats, err := domain.ParseMeasurements(name, data)
		if err != nil {
			return nil, err
		}
		if yearStats.Dropped > 0 {
			l.logger.Warn("measurement records dropped for missing fields",
				"file", name, "dropped", yearStats.Dropped)
		}
		measurements = append(measurements, ms...)
		stats.Add(yearStats)
		l.logger.Debug("year archive parsed", "year", year, "records", len(ms))
	}
	l.metrics.YearsSkipped.Set(float64(skipped))

	records := domain.Join(measurements, stations)
	return newDataset(records, stations, stats, l.clock.Now()), nil
}
