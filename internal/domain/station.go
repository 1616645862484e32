package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Station is one fixed monitoring location from the AMAT network metadata.
// ID is the canonical string form of the id_amat property, used as the
// join key against measurement records.
type Station struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
}

// geoFeatureCollection mirrors the subset of the GeoJSON station file the
// loader consumes: properties.id_amat, properties.nome and
// geometry.coordinates per feature.
type geoFeatureCollection struct {
	Features []geoFeature `json:"features"`
}

type geoFeature struct {
	Properties struct {
		ID   any     `json:"id_amat"`
		Name *string `json:"nome"`
	} `json:"properties"`
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
}

// ParseStations decodes a GeoJSON feature collection into stations. The
// name parameter identifies the source file in error messages. Every
// feature must carry an id, a name, and a 2-element coordinate pair;
// a gap in any of them is a *SchemaError.
func ParseStations(name string, data []byte) ([]Station, error) {
	var fc geoFeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, &ParseError{File: name, Err: err}
	}

	stations := make([]Station, 0, len(fc.Features))
	for i, f := range fc.Features {
		id, ok := CanonicalStationID(f.Properties.ID)
		if !ok {
			return nil, &SchemaError{File: name, Field: "properties.id_amat", Index: i}
		}
		if f.Properties.Name == nil {
			return nil, &SchemaError{File: name, Field: "properties.nome", Index: i}
		}
		if len(f.Geometry.Coordinates) != 2 {
			return nil, &SchemaError{File: name, Field: "geometry.coordinates", Index: i}
		}
		stations = append(stations, Station{
			ID:   id,
			Name: *f.Properties.Name,
			Lon:  f.Geometry.Coordinates[0],
			Lat:  f.Geometry.Coordinates[1],
		})
	}
	return stations, nil
}

// DedupeStations collapses duplicate station ids so the join never fans
// out one measurement row into several. The last occurrence in source
// order wins; rows keep the position of the first occurrence. Returns the
// deduplicated slice and the number of duplicates removed.
func DedupeStations(stations []Station) ([]Station, int) {
	seen := make(map[string]int, len(stations))
	out := make([]Station, 0, len(stations))
	dropped := 0
	for _, s := range stations {
		if i, ok := seen[s.ID]; ok {
			out[i] = s
			dropped++
			continue
		}
		seen[s.ID] = len(out)
		out = append(out, s)
	}
	return out, dropped
}

// CanonicalStationID normalizes a station identifier to its canonical
// string form so that a numeric 12 and the string "12" compare equal
// regardless of which source encoded it. Returns false when the value is
// absent or not representable as an identifier.
func CanonicalStationID(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		s := strings.TrimSpace(id)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case json.Number:
		return id.String(), true
	case int:
		return strconv.Itoa(id), true
	case int64:
		return strconv.FormatInt(id, 10), true
	case nil:
		return "", false
	default:
		return fmt.Sprintf("%v", id), true
	}
}
