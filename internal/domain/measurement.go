package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// rawMeasurement mirrors one record of a yearly archive file. The AMAT
// exports are inconsistent about valore: it may be a JSON number or a
// string, and string values may be non-numeric sentinels like "n/d".
type rawMeasurement struct {
	StationID any    `json:"stazione_id"`
	Pollutant string `json:"inquinante"`
	Date      string `json:"data"`
	Value     any    `json:"valore"`
}

// Measurement is one pollutant reading at a station on a given date.
// Value is nil when the source value could not be coerced to a number;
// such readings still count toward "observations received" but are
// excluded from every mean. Year and Month are derived from Date and are
// zero when the source date string did not parse.
type Measurement struct {
	StationID string    `json:"station_id"`
	Pollutant string    `json:"pollutant"`
	Date      time.Time `json:"date"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Value     *float64  `json:"value,omitempty"`
}

// ParseStats counts what normalization did to a batch of raw records.
type ParseStats struct {
	Total          int // records present in the source
	Dropped        int // records missing station_id, pollutant, or date
	ValueCoercions int // non-numeric valore coerced to missing
	DateCoercions  int // unparsable data kept with zero date
}

// Add accumulates another batch's stats, used when merging yearly files.
func (s *ParseStats) Add(o ParseStats) {
	s.Total += o.Total
	s.Dropped += o.Dropped
	s.ValueCoercions += o.ValueCoercions
	s.DateCoercions += o.DateCoercions
}

// ParseMeasurements decodes one yearly archive into measurements. The name
// parameter identifies the source file in error messages. Malformed JSON
// is a *ParseError. Records missing stazione_id, inquinante, or data are
// dropped and counted; non-numeric valore and unparsable dates are kept
// with the field marked missing so received totals stay accurate.
func ParseMeasurements(name string, data []byte) ([]Measurement, ParseStats, error) {
	var raws []rawMeasurement
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, ParseStats{}, &ParseError{File: name, Err: err}
	}

	stats := ParseStats{Total: len(raws)}
	out := make([]Measurement, 0, len(raws))
	for _, r := range raws {
		id, ok := CanonicalStationID(r.StationID)
		if !ok || r.Pollutant == "" || strings.TrimSpace(r.Date) == "" {
			stats.Dropped++
			continue
		}

		m := Measurement{StationID: id, Pollutant: r.Pollutant}

		if date, ok := parseDate(r.Date); ok {
			m.Date = date
			m.Year = date.Year()
			m.Month = int(date.Month())
		} else {
			stats.DateCoercions++
		}

		if v, ok := coerceValue(r.Value); ok {
			m.Value = &v
		} else if r.Value != nil {
			stats.ValueCoercions++
		}

		out = append(out, m)
	}
	return out, stats, nil
}

// parseDate accepts the calendar-date prefix of the source string, so
// plain dates ("2020-03-15") and timestamped variants
// ("2020-03-15T00:00:00") both resolve to the same day.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// coerceValue extracts a float from valore, which may arrive as a JSON
// number or a numeric string. Sentinels like "n/d" and empty strings
// coerce to missing rather than raising.
func coerceValue(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case json.Number:
		f, err := value.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
