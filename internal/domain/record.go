package domain

// Supported archive range. Yearly files outside this window are ignored;
// files missing inside it are skipped without error (the archive may be
// incomplete for the current year).
const (
	FirstYear = 2016
	LastYear  = 2025
)

// Years returns the supported archive years in ascending order.
func Years() []int {
	years := make([]int, 0, LastYear-FirstYear+1)
	for y := FirstYear; y <= LastYear; y++ {
		years = append(years, y)
	}
	return years
}

// Record is one row of the unified table: a measurement with its station
// metadata attached by a left join on the canonical station id. When no
// station matches, HasStation is false and the name/coordinate fields are
// zero; the measurement row is still retained.
type Record struct {
	Measurement
	StationName string  `json:"station_name,omitempty"`
	Lon         float64 `json:"lon,omitempty"`
	Lat         float64 `json:"lat,omitempty"`
	HasStation  bool    `json:"has_station"`
}

// Join left-joins measurements with stations on the canonical station id.
// Every measurement row appears in the result exactly once; stations must
// already be deduplicated (see DedupeStations) or later duplicates win.
func Join(measurements []Measurement, stations []Station) []Record {
	byID := make(map[string]Station, len(stations))
	for _, s := range stations {
		byID[s.ID] = s
	}

	records := make([]Record, 0, len(measurements))
	for _, m := range measurements {
		r := Record{Measurement: m}
		if s, ok := byID[m.StationID]; ok {
			r.StationName = s.Name
			r.Lon = s.Lon
			r.Lat = s.Lat
			r.HasStation = true
		}
		records = append(records, r)
	}
	return records
}
