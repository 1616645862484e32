// Package domain models the Milan AMAT air-quality monitoring archive.
//
// # Data Sources
//
// Station metadata comes from the Comune di Milano open-data portal as a
// GeoJSON feature collection (qaria_stazione.geojson). Each feature carries
// the station identifier in properties.id_amat, the display name in
// properties.nome, and a WGS-84 [longitude, latitude] pair in
// geometry.coordinates.
//
// Measurements come from one JSON file per year, named <year>_stazioni.json,
// covering 2016 through 2025. Each record is an object with:
//
//	stazione_id  station identifier; number or string depending on export
//	inquinante   pollutant label, e.g. "NO2", "O3", "PM10"
//	data         calendar date string, "2006-01-02" with optional time suffix
//	valore       measured concentration; number, numeric string, or a
//	             non-numeric sentinel such as "n/d" when the reading is
//	             unavailable
//
// # Normalization Conventions
//
// Station identifiers are join keys and must compare equal across both
// sources, so a numeric 12 and the string "12" normalize to the same
// canonical form (see [CanonicalStationID]).
//
// Non-numeric valore coerces to a missing value, never an error and never
// zero: means exclude missing values, and a group with only missing values
// yields no result at all. Unparsable dates likewise keep the record with
// the date marked missing, so counts over "observations received" stay
// accurate even when "observations usable" shrinks.
//
// Records missing stazione_id, inquinante, or data cannot participate in
// the join or any time bucket and are dropped during parsing, with the
// drop counted in [ParseStats].
package domain
