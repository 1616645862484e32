// Command genarchive writes a synthetic AMAT-style archive for local
// development and demos: a GeoJSON station file plus one measurement file
// per year, with seasonal variation and a sprinkle of "n/d" readings so
// the dashboard exercises its missing-value handling.
//
// Usage:
//
//	go run ./cmd/genarchive -out ./data -seed 1
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/couchcryptid/milan-air-quality/internal/adapter/archive"
	"github.com/couchcryptid/milan-air-quality/internal/domain"
)

type genStation struct {
	id   int
	name string
	lon  float64
	lat  float64
}

var stations = []genStation{
	{id: 500, name: "Via Senato", lon: 9.1973, lat: 45.4707},
	{id: 501, name: "Viale Marche", lon: 9.1903, lat: 45.4961},
	{id: 502, name: "Verziere", lon: 9.1954, lat: 45.4628},
	{id: 503, name: "Piazza Abbiategrasso", lon: 9.1755, lat: 45.4215},
	{id: 504, name: "Viale Liguria", lon: 9.1682, lat: 45.4432},
	{id: 505, name: "Parco Lambro", lon: 9.2333, lat: 45.4921},
}

// pollutant baselines in µg/m³, roughly matching Milan magnitudes.
var pollutants = map[string]float64{
	"NO2":   45,
	"O3":    60,
	"PM10":  35,
	"PM2.5": 25,
	"SO2":   5,
	"C6H6":  1.5,
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "./data", "output directory for the archive")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(*seed))

	if err := writeStations(*out); err != nil {
		return err
	}
	for _, year := range domain.Years() {
		if err := writeYear(*out, year, rng); err != nil {
			return err
		}
	}

	fmt.Printf("archive written to %s (%d stations, years %d-%d)\n",
		*out, len(stations), domain.FirstYear, domain.LastYear)
	return nil
}

func writeStations(dir string) error {
	type properties struct {
		ID   int    `json:"id_amat"`
		Name string `json:"nome"`
	}
	type geometry struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	}
	type feature struct {
		Type       string     `json:"type"`
		Properties properties `json:"properties"`
		Geometry   geometry   `json:"geometry"`
	}

	features := make([]feature, 0, len(stations))
	for _, s := range stations {
		features = append(features, feature{
			Type:       "Feature",
			Properties: properties{ID: s.id, Name: s.name},
			Geometry:   geometry{Type: "Point", Coordinates: []float64{s.lon, s.lat}},
		})
	}

	return writeJSON(filepath.Join(dir, "qaria_stazione.geojson"), map[string]any{
		"type":     "FeatureCollection",
		"features": features,
	})
}

func writeYear(dir string, year int, rng *rand.Rand) error {
	type record struct {
		StationID int    `json:"stazione_id"`
		Pollutant string `json:"inquinante"`
		Date      string `json:"data"`
		Value     any    `json:"valore"`
	}

	var records []record
	for _, s := range stations {
		for pollutant, base := range pollutants {
			for month := 1; month <= 12; month++ {
				// O3 peaks in summer; the rest peak in winter.
				season := math.Cos(float64(month-1) / 11 * 2 * math.Pi)
				if pollutant == "O3" {
					season = -season
				}
				value := base * (1 + 0.4*season + 0.15*rng.NormFloat64())
				value = math.Max(value, 0.1)

				var encoded any = math.Round(value*10) / 10
				// Occasional outages report "n/d" instead of a number.
				if rng.Float64() < 0.02 {
					encoded = "n/d"
				}

				records = append(records, record{
					StationID: s.id,
					Pollutant: pollutant,
					Date:      fmt.Sprintf("%d-%02d-%02d", year, month, 1+rng.Intn(28)),
					Value:     encoded,
				})
			}
		}
	}

	return writeJSON(filepath.Join(dir, archive.YearFileName(year)), records)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
