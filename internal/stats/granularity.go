package stats

import (
	"fmt"
	"time"
)

// Granularity — разрешение статистики; значение совпадает с параметром g
// метрического API.
type Granularity string

const (
	GranularityMinute Granularity = "5min"
	GranularityHour   Granularity = "hour"
	GranularityDay    Granularity = "day"
)

// CompactLayout is the timestamp format the metering API expects for
// begin/end parameters.
const CompactLayout = "20060102150405"

func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityMinute, GranularityHour, GranularityDay:
		return Granularity(s), nil
	}
	return "", fmt.Errorf("unknown granularity %q (want 5min|hour|day)", s)
}

func (g Granularity) String() string { return string(g) }

// Window returns the aligned [begin, end] range containing t.
func (g Granularity) Window(t time.Time) (begin, end time.Time) {
	y, mo, d := t.Date()
	switch g {
	case GranularityMinute:
		m0 := t.Minute() / 5 * 5
		begin = time.Date(y, mo, d, t.Hour(), m0, 0, 0, t.Location())
		end = time.Date(y, mo, d, t.Hour(), m0+4, 59, 0, t.Location())
	case GranularityHour:
		begin = time.Date(y, mo, d, t.Hour(), 0, 0, 0, t.Location())
		end = time.Date(y, mo, d, t.Hour(), 59, 59, 0, t.Location())
	default: // day
		begin = time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
		end = time.Date(y, mo, d, 23, 59, 59, 0, t.Location())
	}
	return begin, end
}

// Truncate aligns t down to the granularity's natural boundary.
func (g Granularity) Truncate(t time.Time) time.Time {
	begin, _ := g.Window(t)
	return begin
}

// stepBack shifts the anchor n windows into the past. Дни через AddDate,
// чтобы не ломаться на переводе часов.
func (g Granularity) stepBack(anchor time.Time, n int) time.Time {
	switch g {
	case GranularityMinute:
		return anchor.Add(-time.Duration(n) * 5 * time.Minute)
	case GranularityHour:
		return anchor.Add(-time.Duration(n) * time.Hour)
	default:
		return anchor.AddDate(0, 0, -n)
	}
}

// Backfill enumerates the n fully elapsed window starts before now, in
// ascending order. The current partial window is excluded.
func Backfill(g Granularity, now time.Time, n int) []time.Time {
	anchor := g.Truncate(now)
	times := make([]time.Time, 0, n)
	for i := n; i >= 1; i-- {
		times = append(times, g.stepBack(anchor, i))
	}
	return times
}

// FormatCompact renders t for the metering API (YYYYMMDDHHmmss).
func FormatCompact(t time.Time) string {
	return t.Format(CompactLayout)
}
