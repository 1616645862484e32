package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGeoFile = "qaria_stazione.geojson"

func TestParseStations(t *testing.T) {
	t.Run("valid feature collection", func(t *testing.T) {
		data := []byte(`{"features":[
			{"properties":{"id_amat":500,"nome":"Via Test"},"geometry":{"coordinates":[9.19,45.46]}},
			{"properties":{"id_amat":"501","nome":"Viale Marche"},"geometry":{"coordinates":[9.1903,45.4961]}}
		]}`)

		stations, err := ParseStations(testGeoFile, data)
		require.NoError(t, err)
		require.Len(t, stations, 2)

		assert.Equal(t, Station{ID: "500", Name: "Via Test", Lon: 9.19, Lat: 45.46}, stations[0])
		assert.Equal(t, "501", stations[1].ID)
		assert.Equal(t, "Viale Marche", stations[1].Name)
	})

	t.Run("empty collection", func(t *testing.T) {
		stations, err := ParseStations(testGeoFile, []byte(`{"features":[]}`))
		require.NoError(t, err)
		assert.Empty(t, stations)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := ParseStations(testGeoFile, []byte(`{"features":[`))

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, testGeoFile, parseErr.File)
		assert.Contains(t, err.Error(), testGeoFile)
	})

	t.Run("missing id", func(t *testing.T) {
		data := []byte(`{"features":[{"properties":{"nome":"Via Test"},"geometry":{"coordinates":[9.19,45.46]}}]}`)
		_, err := ParseStations(testGeoFile, data)

		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "properties.id_amat", schemaErr.Field)
		assert.Equal(t, 0, schemaErr.Index)
	})

	t.Run("missing name", func(t *testing.T) {
		data := []byte(`{"features":[{"properties":{"id_amat":500},"geometry":{"coordinates":[9.19,45.46]}}]}`)
		_, err := ParseStations(testGeoFile, data)

		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "properties.nome", schemaErr.Field)
	})

	t.Run("missing coordinates", func(t *testing.T) {
		data := []byte(`{"features":[{"properties":{"id_amat":500,"nome":"Via Test"},"geometry":{}}]}`)
		_, err := ParseStations(testGeoFile, data)

		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "geometry.coordinates", schemaErr.Field)
	})

	t.Run("one-element coordinates", func(t *testing.T) {
		data := []byte(`{"features":[{"properties":{"id_amat":500,"nome":"Via Test"},"geometry":{"coordinates":[9.19]}}]}`)
		_, err := ParseStations(testGeoFile, data)

		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
	})

	t.Run("schema error names the feature", func(t *testing.T) {
		data := []byte(`{"features":[
			{"properties":{"id_amat":500,"nome":"Via Test"},"geometry":{"coordinates":[9.19,45.46]}},
			{"properties":{"id_amat":501},"geometry":{"coordinates":[9.2,45.5]}}
		]}`)
		_, err := ParseStations(testGeoFile, data)

		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, 1, schemaErr.Index)
	})
}

func TestDedupeStations(t *testing.T) {
	t.Run("no duplicates", func(t *testing.T) {
		in := []Station{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}
		out, dropped := DedupeStations(in)

		assert.Equal(t, in, out)
		assert.Zero(t, dropped)
	})

	t.Run("last occurrence wins", func(t *testing.T) {
		in := []Station{
			{ID: "1", Name: "old"},
			{ID: "2", Name: "B"},
			{ID: "1", Name: "new"},
		}
		out, dropped := DedupeStations(in)

		require.Len(t, out, 2)
		assert.Equal(t, 1, dropped)
		assert.Equal(t, "new", out[0].Name)
		assert.Equal(t, "B", out[1].Name)
	})
}

func TestCanonicalStationID(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
		ok   bool
	}{
		{"string", "12", "12", true},
		{"string with spaces", " 12 ", "12", true},
		{"float without fraction", float64(12), "12", true},
		{"float with fraction", 12.5, "12.5", true},
		{"empty string", "", "", false},
		{"blank string", "   ", "", false},
		{"nil", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CanonicalStationID(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("numeric and string forms compare equal", func(t *testing.T) {
		fromJSON, _ := CanonicalStationID(float64(500))
		fromString, _ := CanonicalStationID("500")
		assert.Equal(t, fromJSON, fromString)
	})
}
