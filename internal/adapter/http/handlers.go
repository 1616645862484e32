package http

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/couchcryptid/milan-air-quality/internal/dataset"
	"github.com/couchcryptid/milan-air-quality/internal/domain"
)

type yearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

type summaryResponse struct {
	TotalRecords  int         `json:"total_records"`
	RecordsByYear []yearCount `json:"records_by_year"`
	Stations      []string    `json:"stations"`
	Pollutants    []string    `json:"pollutants"`
	LoadedAt      time.Time   `json:"loaded_at"`
}

type trendResponse struct {
	Year      int                 `json:"year"`
	Pollutant string              `json:"pollutant"`
	Months    []dataset.MonthMean `json:"months"`
	NoData    bool                `json:"no_data"`
}

type rankingResponse struct {
	Pollutant string                `json:"pollutant"`
	Stations  []dataset.StationMean `json:"stations"`
	NoData    bool                  `json:"no_data"`
}

type detailResponse struct {
	Station   string              `json:"station"`
	Pollutant string              `json:"pollutant"`
	Year      int                 `json:"year"`
	Months    []dataset.MonthMean `json:"months"`
	NoData    bool                `json:"no_data"`
}

// getDataset fetches the memoized dataset, writing a 500 and returning nil
// when the load fails (lazy-load mode surfaces archive problems here).
func (s *Server) getDataset(w http.ResponseWriter, r *http.Request) *dataset.Dataset {
	ds, err := s.provider.Get(r.Context())
	if err != nil {
		s.logger.Error("dataset load failed", "error", err)
		writeError(w, http.StatusInternalServerError, "dataset unavailable")
		return nil
	}
	return ds
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ds := s.getDataset(w, r)
	if ds == nil {
		return
	}

	counts := ds.CountByYear()
	byYear := make([]yearCount, 0, len(counts))
	for year, n := range counts {
		byYear = append(byYear, yearCount{Year: year, Count: n})
	}
	sort.Slice(byYear, func(i, j int) bool { return byYear[i].Year < byYear[j].Year })

	writeJSON(w, http.StatusOK, summaryResponse{
		TotalRecords:  ds.Len(),
		RecordsByYear: byYear,
		Stations:      ds.StationNames(),
		Pollutants:    ds.Pollutants(),
		LoadedAt:      ds.LoadedAt(),
	})
}

func (s *Server) handlePollutants(w http.ResponseWriter, r *http.Request) {
	ds := s.getDataset(w, r)
	if ds == nil {
		return
	}

	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, ok := parseYear(w, yearStr)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, ds.PollutantsForYear(year))
		return
	}
	writeJSON(w, http.StatusOK, ds.Pollutants())
}

func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	ds := s.getDataset(w, r)
	if ds == nil {
		return
	}
	writeJSON(w, http.StatusOK, ds.StationNames())
}

func (s *Server) handleStationPollutants(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name parameter is required")
		return
	}

	ds := s.getDataset(w, r)
	if ds == nil {
		return
	}
	writeJSON(w, http.StatusOK, ds.PollutantsForStation(name))
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	year, ok := parseYear(w, r.URL.Query().Get("year"))
	if !ok {
		return
	}
	pollutant := r.URL.Query().Get("pollutant")
	if pollutant == "" {
		writeError(w, http.StatusBadRequest, "pollutant parameter is required")
		return
	}

	ds := s.getDataset(w, r)
	if ds == nil {
		return
	}

	months := ds.MonthlyMean(year, pollutant)
	writeJSON(w, http.StatusOK, trendResponse{
		Year:      year,
		Pollutant: pollutant,
		Months:    emptyNotNil(months),
		NoData:    len(months) == 0,
	})
}

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	pollutant := r.URL.Query().Get("pollutant")
	if pollutant == "" {
		writeError(w, http.StatusBadRequest, "pollutant parameter is required")
		return
	}

	ds := s.getDataset(w, r)
	if ds == nil {
		return
	}

	stations := ds.StationMean(pollutant)
	writeJSON(w, http.StatusOK, rankingResponse{
		Pollutant: pollutant,
		Stations:  emptyNotNil(stations),
		NoData:    len(stations) == 0,
	})
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	station := r.URL.Query().Get("station")
	pollutant := r.URL.Query().Get("pollutant")
	if station == "" || pollutant == "" {
		writeError(w, http.StatusBadRequest, "station and pollutant parameters are required")
		return
	}
	year, ok := parseYear(w, r.URL.Query().Get("year"))
	if !ok {
		return
	}

	ds := s.getDataset(w, r)
	if ds == nil {
		return
	}

	months := ds.MonthlyMeanForStation(station, pollutant, year)
	writeJSON(w, http.StatusOK, detailResponse{
		Station:   station,
		Pollutant: pollutant,
		Year:      year,
		Months:    emptyNotNil(months),
		NoData:    len(months) == 0,
	})
}

// parseYear validates a year query parameter against the supported archive
// range, writing a 400 on failure.
func parseYear(w http.ResponseWriter, s string) (int, bool) {
	if s == "" {
		writeError(w, http.StatusBadRequest, "year parameter is required")
		return 0, false
	}
	year, err := strconv.Atoi(s)
	if err != nil || year < domain.FirstYear || year > domain.LastYear {
		writeError(w, http.StatusBadRequest, "year must be between "+
			strconv.Itoa(domain.FirstYear)+" and "+strconv.Itoa(domain.LastYear))
		return 0, false
	}
	return year, true
}

// emptyNotNil keeps empty JSON arrays rendering as [] instead of null.
func emptyNotNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
