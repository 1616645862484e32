package dataset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/milan-air-quality/internal/domain"
)

// fakeSource serves fixture bytes from memory, keeping loader tests off
// the filesystem.
type fakeSource struct {
	stationsData []byte
	stationsErr  error
	years        map[int][]byte
}

func (f *fakeSource) Stations() (string, []byte, error) {
	if f.stationsErr != nil {
		return "", nil, f.stationsErr
	}
	return "qaria_stazione.geojson", f.stationsData, nil
}

func (f *fakeSource) Year(year int) (string, []byte, bool, error) {
	data, ok := f.years[year]
	if !ok {
		return "", nil, false, nil
	}
	return "test_year.json", data, true, nil
}

const oneStationGeo = `{"features":[{"properties":{"id_amat":"500","nome":"Via Test"},"geometry":{"coordinates":[9.19,45.46]}}]}`

func TestLoad_EndToEnd(t *testing.T) {
	src := &fakeSource{
		stationsData: []byte(oneStationGeo),
		years: map[int][]byte{
			2020: []byte(`[{"stazione_id":"500","inquinante":"NO2","data":"2020-03-15","valore":"42.5"}]`),
		},
	}

	ds, err := newTestLoader(src).Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, ds.Len())
	r := ds.FilterYear(2020)[0]
	assert.Equal(t, "Via Test", r.StationName)
	assert.Equal(t, 2020, r.Year)
	assert.Equal(t, 3, r.Month)
	require.NotNil(t, r.Value)
	assert.Equal(t, 42.5, *r.Value)
	assert.Equal(t, testLoadTime, ds.LoadedAt())
}

func TestLoad_NonNumericValueYieldsNoData(t *testing.T) {
	src := &fakeSource{
		stationsData: []byte(oneStationGeo),
		years: map[int][]byte{
			2020: []byte(`[{"stazione_id":"500","inquinante":"NO2","data":"2020-03-15","valore":"n/d"}]`),
		},
	}

	ds, err := newTestLoader(src).Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, ds.Len())
	assert.Nil(t, ds.FilterYear(2020)[0].Value)

	// A monthly mean over only the missing reading is "no data", not zero.
	assert.Empty(t, ds.MonthlyMean(2020, "NO2"))
}

func TestLoad_CompletenessAcrossYears(t *testing.T) {
	src := &fakeSource{
		stationsData: []byte(oneStationGeo),
		years: map[int][]byte{
			2018: []byte(`[
				{"stazione_id":"500","inquinante":"NO2","data":"2018-01-01","valore":1},
				{"stazione_id":"500","inquinante":"NO2","data":"2018-01-02","valore":2}
			]`),
			2020: []byte(`[{"stazione_id":"500","inquinante":"O3","data":"2020-06-01","valore":3}]`),
		},
	}

	ds, err := newTestLoader(src).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, map[int]int{2018: 2, 2020: 1}, ds.CountByYear())
}

func TestLoad_MissingYearTolerance(t *testing.T) {
	years := map[int][]byte{
		2019: []byte(`[{"stazione_id":"500","inquinante":"NO2","data":"2019-05-01","valore":7}]`),
		2020: []byte(`[{"stazione_id":"500","inquinante":"NO2","data":"2020-05-01","valore":8}]`),
	}
	src := &fakeSource{stationsData: []byte(oneStationGeo), years: years}

	ds, err := newTestLoader(src).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	// Removing one yearly file drops exactly its records and does not error.
	delete(years, 2019)
	ds, err = newTestLoader(src).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
}

func TestLoad_MissingStationFileIsFatal(t *testing.T) {
	src := &fakeSource{stationsErr: &domain.SourceNotFoundError{Path: "data/qaria_stazione.geojson"}}

	_, err := newTestLoader(src).Load(context.Background())

	var notFound *domain.SourceNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestLoad_MalformedYearFileIsFatal(t *testing.T) {
	src := &fakeSource{
		stationsData: []byte(oneStationGeo),
		years:        map[int][]byte{2020: []byte(`[{"broken`)},
	}

	_, err := newTestLoader(src).Load(context.Background())

	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "test_year.json", parseErr.File)
}

func TestLoad_DuplicateStationKeepsLast(t *testing.T) {
	src := &fakeSource{
		stationsData: []byte(`{"features":[
			{"properties":{"id_amat":"500","nome":"Old Name"},"geometry":{"coordinates":[9.0,45.0]}},
			{"properties":{"id_amat":"500","nome":"New Name"},"geometry":{"coordinates":[9.19,45.46]}}
		]}`),
		years: map[int][]byte{
			2020: []byte(`[{"stazione_id":"500","inquinante":"NO2","data":"2020-03-15","valore":10}]`),
		},
	}

	ds, err := newTestLoader(src).Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "New Name", ds.FilterYear(2020)[0].StationName)
}

func TestLoad_NumericIDMatchesStringID(t *testing.T) {
	src := &fakeSource{
		stationsData: []byte(`{"features":[{"properties":{"id_amat":500,"nome":"Via Test"},"geometry":{"coordinates":[9.19,45.46]}}]}`),
		years: map[int][]byte{
			2020: []byte(`[{"stazione_id":"500","inquinante":"NO2","data":"2020-03-15","valore":10}]`),
		},
	}

	ds, err := newTestLoader(src).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ds.FilterYear(2020)[0].HasStation)
}

func TestLoad_UnknownStationRetained(t *testing.T) {
	src := &fakeSource{
		stationsData: []byte(oneStationGeo),
		years: map[int][]byte{
			2020: []byte(`[{"stazione_id":"999","inquinante":"NO2","data":"2020-03-15","valore":10}]`),
		},
	}

	ds, err := newTestLoader(src).Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, ds.Len())
	r := ds.FilterYear(2020)[0]
	assert.False(t, r.HasStation)
	assert.Empty(t, r.StationName)
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{stationsData: []byte(oneStationGeo)}
	_, err := newTestLoader(src).Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
