package dataset

import (
	"sort"
	"time"

	"github.com/couchcryptid/milan-air-quality/internal/domain"
)

// Dataset is the unified table. It is immutable after construction: query
// methods return copies, and callers must never mutate what they receive.
type Dataset struct {
	records  []domain.Record
	stations []domain.Station
	stats    domain.ParseStats
	loadedAt time.Time
}

// MonthMean is the mean value for one calendar month of a selection.
type MonthMean struct {
	Month int     `json:"month"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// StationMean is the mean value at one station over a selection.
type StationMean struct {
	Station string  `json:"station"`
	Mean    float64 `json:"mean"`
	Count   int     `json:"count"`
}

func newDataset(records []domain.Record, stations []domain.Station, stats domain.ParseStats, loadedAt time.Time) *Dataset {
	return &Dataset{records: records, stations: stations, stats: stats, loadedAt: loadedAt}
}

// Len returns the unified table's row count.
func (d *Dataset) Len() int { return len(d.records) }

// Stats returns the normalization counters from the load.
func (d *Dataset) Stats() domain.ParseStats { return d.stats }

// LoadedAt returns when the dataset was built.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Records returns a copy of every unified row.
func (d *Dataset) Records() []domain.Record {
	out := make([]domain.Record, len(d.records))
	copy(out, d.records)
	return out
}

// Stations returns the deduplicated station metadata.
func (d *Dataset) Stations() []domain.Station {
	out := make([]domain.Station, len(d.stations))
	copy(out, d.stations)
	return out
}

// CountByYear returns row counts per derived year. Records with an
// unparsable date fall under year 0.
func (d *Dataset) CountByYear() map[int]int {
	counts := make(map[int]int)
	for _, r := range d.records {
		counts[r.Year]++
	}
	return counts
}

// FilterYear returns the rows for one derived year.
func (d *Dataset) FilterYear(year int) []domain.Record {
	return d.filter(func(r domain.Record) bool { return r.Year == year })
}

// FilterPollutant returns the rows for one pollutant.
func (d *Dataset) FilterPollutant(pollutant string) []domain.Record {
	return d.filter(func(r domain.Record) bool { return r.Pollutant == pollutant })
}

// FilterStationName returns the rows measured at the named station.
func (d *Dataset) FilterStationName(name string) []domain.Record {
	return d.filter(func(r domain.Record) bool { return r.HasStation && r.StationName == name })
}

func (d *Dataset) filter(keep func(domain.Record) bool) []domain.Record {
	var out []domain.Record
	for _, r := range d.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// MonthlyMean returns per-month means of one pollutant in one year, sorted
// by month. Missing values are excluded; months with no usable values are
// absent, so an empty result means "no data for this selection".
func (d *Dataset) MonthlyMean(year int, pollutant string) []MonthMean {
	return monthlyMean(d.records, func(r domain.Record) bool {
		return r.Year == year && r.Pollutant == pollutant
	})
}

// MonthlyMeanForStation is MonthlyMean narrowed to one station.
func (d *Dataset) MonthlyMeanForStation(station, pollutant string, year int) []MonthMean {
	return monthlyMean(d.records, func(r domain.Record) bool {
		return r.HasStation && r.StationName == station &&
			r.Pollutant == pollutant && r.Year == year
	})
}

func monthlyMean(records []domain.Record, keep func(domain.Record) bool) []MonthMean {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, r := range records {
		if !keep(r) || r.Value == nil || r.Month == 0 {
			continue
		}
		sums[r.Month] += *r.Value
		counts[r.Month]++
	}

	out := make([]MonthMean, 0, len(sums))
	for month, sum := range sums {
		out = append(out, MonthMean{Month: month, Mean: sum / float64(counts[month]), Count: counts[month]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// StationMean returns per-station means of one pollutant over the whole
// decade, sorted by mean descending (name ascending on ties). Rows without
// station metadata are excluded: they have no name to rank under.
func (d *Dataset) StationMean(pollutant string) []StationMean {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range d.records {
		if !r.HasStation || r.Pollutant != pollutant || r.Value == nil {
			continue
		}
		sums[r.StationName] += *r.Value
		counts[r.StationName]++
	}

	out := make([]StationMean, 0, len(sums))
	for name, sum := range sums {
		out = append(out, StationMean{Station: name, Mean: sum / float64(counts[name]), Count: counts[name]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}
		return out[i].Station < out[j].Station
	})
	return out
}

// Pollutants returns the sorted distinct pollutant labels.
func (d *Dataset) Pollutants() []string {
	return d.distinct(func(r domain.Record) (string, bool) {
		return r.Pollutant, true
	})
}

// PollutantsForYear returns the sorted distinct pollutants observed in one year.
func (d *Dataset) PollutantsForYear(year int) []string {
	return d.distinct(func(r domain.Record) (string, bool) {
		return r.Pollutant, r.Year == year
	})
}

// PollutantsForStation returns the sorted distinct pollutants measured at
// the named station.
func (d *Dataset) PollutantsForStation(station string) []string {
	return d.distinct(func(r domain.Record) (string, bool) {
		return r.Pollutant, r.HasStation && r.StationName == station
	})
}

// StationNames returns the sorted distinct names of stations with data.
func (d *Dataset) StationNames() []string {
	return d.distinct(func(r domain.Record) (string, bool) {
		return r.StationName, r.HasStation
	})
}

func (d *Dataset) distinct(key func(domain.Record) (string, bool)) []string {
	seen := make(map[string]struct{})
	for _, r := range d.records {
		if k, ok := key(r); ok {
			seen[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
