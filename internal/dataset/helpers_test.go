package dataset

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/milan-air-quality/internal/observability"
)

var testLoadTime = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

func observabilityForTest() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testLogger() *slog.Logger { return slog.Default() }

func testClock() clockwork.Clock { return clockwork.NewFakeClockAt(testLoadTime) }

func newTestLoader(src Source) *Loader {
	return NewLoader(src, testLogger(), observabilityForTest(), testClock())
}
