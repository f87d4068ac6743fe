package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowAlignment(t *testing.T) {
	ref := time.Date(2024, 1, 1, 10, 37, 22, 0, time.UTC)

	cases := []struct {
		g          Granularity
		begin, end string
	}{
		{GranularityMinute, "2024-01-01 10:35:00", "2024-01-01 10:39:59"},
		{GranularityHour, "2024-01-01 10:00:00", "2024-01-01 10:59:59"},
		{GranularityDay, "2024-01-01 00:00:00", "2024-01-01 23:59:59"},
	}
	for _, tc := range cases {
		begin, end := tc.g.Window(ref)
		assert.Equal(t, tc.begin, begin.Format("2006-01-02 15:04:05"), tc.g)
		assert.Equal(t, tc.end, end.Format("2006-01-02 15:04:05"), tc.g)
	}
}

func TestWindowMinuteEdges(t *testing.T) {
	// ровно на границе 5 минут
	ref := time.Date(2024, 1, 1, 10, 55, 0, 0, time.UTC)
	begin, end := GranularityMinute.Window(ref)
	assert.Equal(t, 55, begin.Minute())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())
}

func TestTruncate(t *testing.T) {
	ref := time.Date(2024, 1, 1, 10, 37, 22, 0, time.UTC)

	assert.Equal(t, "10:35:00", GranularityMinute.Truncate(ref).Format("15:04:05"))
	assert.Equal(t, "10:00:00", GranularityHour.Truncate(ref).Format("15:04:05"))
	assert.Equal(t, "00:00:00", GranularityDay.Truncate(ref).Format("15:04:05"))
}

func TestBackfillOrdering(t *testing.T) {
	anchor := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	times := Backfill(GranularityHour, anchor, 3)
	require.Len(t, times, 3)
	assert.Equal(t, "2024-01-01 21:00", times[0].Format("2006-01-02 15:04"))
	assert.Equal(t, "2024-01-01 22:00", times[1].Format("2006-01-02 15:04"))
	assert.Equal(t, "2024-01-01 23:00", times[2].Format("2006-01-02 15:04"))
}

func TestBackfillExcludesCurrentWindow(t *testing.T) {
	// 14:00 — текущий (неполный) час не бэкфиллится
	now := time.Date(2024, 1, 2, 14, 0, 0, 0, time.UTC)

	times := Backfill(GranularityHour, now, 24)
	require.Len(t, times, 24)
	assert.Equal(t, "2024-01-01 15:00", times[0].Format("2006-01-02 15:04"))
	assert.Equal(t, "2024-01-02 13:00", times[23].Format("2006-01-02 15:04"))
}

func TestBackfillMinuteAnchorsToFloor(t *testing.T) {
	now := time.Date(2024, 1, 2, 14, 7, 30, 0, time.UTC)

	times := Backfill(GranularityMinute, now, 2)
	require.Len(t, times, 2)
	assert.Equal(t, "13:55", times[0].Format("15:04"))
	assert.Equal(t, "14:00", times[1].Format("15:04"))
}

func TestBackfillDay(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

	times := Backfill(GranularityDay, now, 7)
	require.Len(t, times, 7)
	assert.Equal(t, "2024-03-03", times[0].Format("2006-01-02"))
	assert.Equal(t, "2024-03-09", times[6].Format("2006-01-02"))
	for _, d := range times {
		assert.Equal(t, "00:00:00", d.Format("15:04:05"))
	}
}

func TestFormatCompact(t *testing.T) {
	ref := time.Date(2024, 1, 1, 10, 35, 0, 0, time.UTC)
	assert.Equal(t, "20240101103500", FormatCompact(ref))
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("5min")
	require.NoError(t, err)
	assert.Equal(t, GranularityMinute, g)

	_, err = ParseGranularity("week")
	assert.Error(t, err)
}

func TestTierLabels(t *testing.T) {
	assert.Equal(t, "frequent", TierFrequentAccess.Label())
	assert.Equal(t, "infrequent", TierInfrequentAccess.Label())
	assert.Equal(t, "archive-direct", TierArchiveDirect.Label())
	assert.Equal(t, 4, int(TierArchiveDirect))
}
