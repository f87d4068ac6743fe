package qiniu

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/DanikLP1/qiniu-stats/internal/auth"
	"github.com/DanikLP1/qiniu-stats/internal/stats"
)

// BucketRef carries what a metering call needs from a bucket row.
type BucketRef struct {
	Name  string
	Creds auth.Credentials
}

// Metrics fetches per-bucket usage counters from the metering API. Every
// getter is fail-soft: любая ошибка логируется и превращается в 0, чтобы
// один сломанный счётчик не валил весь sync.
type Metrics struct {
	client *Client
	logger *slog.Logger
}

func NewMetrics(client *Client, logger *slog.Logger) *Metrics {
	return &Metrics{
		client: client,
		logger: logger.With(slog.String("comp", "metrics")),
	}
}

// ----- storage volumes, bytes -----

func (m *Metrics) StandardStorage(ctx context.Context, g stats.Granularity, b BucketRef, begin, end string) int64 {
	return m.fetch(ctx, g, b, begin, end, "space", "standard storage")
}

func (m *Metrics) LineStorage(ctx context.Context, g stats.Granularity, b BucketRef, begin, end string) int64 {
	return m.fetch(ctx, g, b, begin, end, "space_line", "line storage")
}

func (m *Metrics) ArchiveStorage(ctx context.Context, g stats.Granularity, b BucketRef, begin, end string) int64 {
	return m.fetch(ctx, g, b, begin, end, "space_archive", "archive storage")
}

func (m *Metrics) ArchiveIrStorage(ctx context.Context, g stats.Granularity, b BucketRef, begin, end string) int64 {
	return m.fetch(ctx, g, b, begin, end, "space_archive_ir", "archive-ir storage")
}

func (m *Metrics) DeepArchiveStorage(ctx context.Context, g stats.Granularity, b BucketRef, begin, end string) int64 {
	return m.fetch(ctx, g, b, begin, end, "space_deep_archive", "deep-archive storage")
}

// IntelligentTieringStorage fetches one access tier's volume. Тир влияет
// только на метку: путь метрики у провайдера общий.
func (m *Metrics) IntelligentTieringStorage(ctx context.Context, g stats.Granularity, b BucketRef, begin, end string, tier stats.IntelligentTieringTier) int64 {
	label := fmt.Sprintf("intelligent-tiering storage (%s)", tier.Label())
	return m.fetch(ctx, g, b, begin, end, "space_intelligent_tiering", label)
}

// ----- file counts -----

func (m *Metrics) StandardCount(ctx context.Context, g stats.Granularity, b BucketRef, begin, end string) int64 {
	return m.fetch(ctx, g, b, begin, end, "count", "standard count")
}

func (m *Metrics) LineCount(ctx context.Context, g stats.Granularity, b BucketRef, begin, end string) int64 {
	return m.fetch(ctx, g, b, begin, end, "count_line", "line count")
}

func (m *Metrics) ArchiveCount(ctx context.Context, g stats.Granularity, b BucketRef, begin, end string) int64 {
	return m.fetch(ctx, g, b, begin, end, "count_archive", "archive count")
}

func (m *Metrics) ArchiveIrCount(ctx context.Context, g stats.Granularity, b BucketRef, begin, end string) int64 {
	return m.fetch(ctx, g, b, begin, end, "count_archive_ir", "archive-ir count")
}

func (m *Metrics) DeepArchiveCount(ctx context.Context, g stats.Granularity, b BucketRef, begin, end string) int64 {
	return m.fetch(ctx, g, b, begin, end, "count_deep_archive", "deep-archive count")
}

func (m *Metrics) IntelligentTieringCount(ctx context.Context, g stats.Granularity, b BucketRef, begin, end string, tier stats.IntelligentTieringTier) int64 {
	label := fmt.Sprintf("intelligent-tiering count (%s)", tier.Label())
	return m.fetch(ctx, g, b, begin, end, "count_intelligent_tiering", label)
}

func (m *Metrics) IntelligentTieringMonitorCount(ctx context.Context, g stats.Granularity, b BucketRef, begin, end string) int64 {
	return m.fetch(ctx, g, b, begin, end, "count_intelligent_tiering_monitor", "intelligent-tiering monitor count")
}

// ----- requests and traffic -----

func (m *Metrics) PutRequests(ctx context.Context, g stats.Granularity, b BucketRef, begin, end string) int64 {
	return m.fetch(ctx, g, b, begin, end, "rs_put", "PUT requests")
}

func (m *Metrics) GetRequests(ctx context.Context, g stats.Granularity, b BucketRef, begin, end string) int64 {
	return m.fetchSelector(ctx, g, b, begin, end, "hits", "hits", "GET requests")
}

func (m *Metrics) InternetTraffic(ctx context.Context, g stats.Granularity, b BucketRef, begin, end string) int64 {
	return m.fetchSelector(ctx, g, b, begin, end, "flow", "flow_out", "internet traffic")
}

func (m *Metrics) CdnTraffic(ctx context.Context, g stats.Granularity, b BucketRef, begin, end string) int64 {
	return m.fetchSelector(ctx, g, b, begin, end, "flow", "cdn_flow_out", "cdn traffic")
}

// fetch hits the path-style endpoint /{metric}?bucket=&begin=&end=&g= and
// takes the last element of the "datas" array.
func (m *Metrics) fetch(ctx context.Context, g stats.Granularity, b BucketRef, begin, end, metric, label string) int64 {
	start := time.Now()
	log := m.logger.With(slog.String("bucket", b.Name), slog.String("metric", label))
	log.Info("metrics.fetch_begin")

	url := fmt.Sprintf("%s/%s?bucket=%s&begin=%s&end=%s&g=%s",
		m.client.BaseURL(), metric, b.Name, begin, end, g)

	var out struct {
		Datas []any `json:"datas"`
	}
	if err := m.client.getJSON(ctx, b.Creds, url, &out); err != nil {
		log.Error("metrics.fetch_fail", "err", err, "dur_ms", time.Since(start).Milliseconds())
		return 0
	}

	var value int64
	if n := len(out.Datas); n > 0 {
		value = coerceInt(out.Datas[n-1])
	}
	log.Info("metrics.fetch_ok", "value", value, "dur_ms", time.Since(start).Milliseconds())
	return value
}

// fetchSelector hits /v6/blob_io with select/$metric query parameters and
// reads values.<sel> from the first element.
func (m *Metrics) fetchSelector(ctx context.Context, g stats.Granularity, b BucketRef, begin, end, sel, metric, label string) int64 {
	start := time.Now()
	log := m.logger.With(slog.String("bucket", b.Name), slog.String("metric", label))
	log.Info("metrics.fetch_begin")

	url := fmt.Sprintf("%s/v6/blob_io?begin=%s&end=%s&g=%s&select=%s&$metric=%s&$bucket=%s",
		m.client.BaseURL(), begin, end, g, sel, metric, b.Name)

	var out []struct {
		Values map[string]any `json:"values"`
	}
	if err := m.client.getJSON(ctx, b.Creds, url, &out); err != nil {
		log.Error("metrics.fetch_fail", "err", err, "dur_ms", time.Since(start).Milliseconds())
		return 0
	}

	var value int64
	if len(out) > 0 {
		value = coerceInt(out[0].Values[sel])
	}
	log.Info("metrics.fetch_ok", "value", value, "dur_ms", time.Since(start).Milliseconds())
	return value
}

// coerceInt повторяет is_numeric-поведение: число или числовая строка,
// иначе 0.
func coerceInt(v any) int64 {
	switch x := v.(type) {
	case float64:
		return int64(x)
	case string:
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return int64(f)
		}
	}
	return 0
}
