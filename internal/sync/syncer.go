package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/DanikLP1/qiniu-stats/internal/auth"
	"github.com/DanikLP1/qiniu-stats/internal/db"
	"github.com/DanikLP1/qiniu-stats/internal/qiniu"
	"github.com/DanikLP1/qiniu-stats/internal/stats"
)

// Syncer drives statistics collection: buckets × windows → one upserted
// record per (bucket, time) в таблице гранулярности.
type Syncer struct {
	db      *db.DB
	client  *qiniu.Client
	metrics *qiniu.Metrics
	logger  *slog.Logger
	clock   clockwork.Clock
}

func New(database *db.DB, client *qiniu.Client, metrics *qiniu.Metrics, logger *slog.Logger, clock clockwork.Clock) *Syncer {
	return &Syncer{
		db:      database,
		client:  client,
		metrics: metrics,
		logger:  logger.With(slog.String("comp", "sync")),
		clock:   clock,
	}
}

// SyncBucketStatistic collects all tracked metrics for one (bucket, window)
// pair and upserts the record. Ошибки гасятся здесь: сломанное окно не
// должно останавливать соседние.
func (s *Syncer) SyncBucketStatistic(ctx context.Context, g stats.Granularity, t time.Time, bucket db.Bucket, rep Reporter) {
	text(rep, fmt.Sprintf("syncing bucket [%s] statistics (%s)", bucket.Name, t.Format("2006-01-02 15:04")))

	log := s.logger.With(
		slog.String("bucket", bucket.Name),
		slog.String("time", t.Format("2006-01-02 15:04:05")),
		slog.String("granularity", string(g)),
	)
	log.Info("sync.window_begin")

	if err := s.syncWindow(ctx, g, t, bucket); err != nil {
		msg := fmt.Sprintf("sync of bucket [%s] statistics failed: %v", bucket.Name, err)
		log.Error("sync.window_fail", "err", err)
		reportErr(rep, msg)
		return
	}
	log.Info("sync.window_ok")
}

func (s *Syncer) syncWindow(ctx context.Context, g stats.Granularity, t time.Time, bucket db.Bucket) error {
	beginTime, endTime := g.Window(t)
	begin := stats.FormatCompact(beginTime)
	end := stats.FormatCompact(endTime)

	b := qiniu.BucketRef{
		Name: bucket.Name,
		Creds: auth.Credentials{
			AccessKey: bucket.Account.AccessKey,
			SecretKey: bucket.Account.SecretKey,
		},
	}

	// объёмы по классам хранения
	standardStorage := s.metrics.StandardStorage(ctx, g, b, begin, end)
	lineStorage := s.metrics.LineStorage(ctx, g, b, begin, end)
	archiveStorage := s.metrics.ArchiveStorage(ctx, g, b, begin, end)
	archiveIrStorage := s.metrics.ArchiveIrStorage(ctx, g, b, begin, end)
	deepArchiveStorage := s.metrics.DeepArchiveStorage(ctx, g, b, begin, end)
	itFrequentStorage := s.metrics.IntelligentTieringStorage(ctx, g, b, begin, end, stats.TierFrequentAccess)
	itInfrequentStorage := s.metrics.IntelligentTieringStorage(ctx, g, b, begin, end, stats.TierInfrequentAccess)
	itArchiveStorage := s.metrics.IntelligentTieringStorage(ctx, g, b, begin, end, stats.TierArchiveDirect)

	// количество файлов
	standardCount := s.metrics.StandardCount(ctx, g, b, begin, end)
	lineCount := s.metrics.LineCount(ctx, g, b, begin, end)
	archiveCount := s.metrics.ArchiveCount(ctx, g, b, begin, end)
	archiveIrCount := s.metrics.ArchiveIrCount(ctx, g, b, begin, end)
	deepArchiveCount := s.metrics.DeepArchiveCount(ctx, g, b, begin, end)
	itFrequentCount := s.metrics.IntelligentTieringCount(ctx, g, b, begin, end, stats.TierFrequentAccess)
	itInfrequentCount := s.metrics.IntelligentTieringCount(ctx, g, b, begin, end, stats.TierInfrequentAccess)
	itArchiveCount := s.metrics.IntelligentTieringCount(ctx, g, b, begin, end, stats.TierArchiveDirect)
	itMonitorCount := s.metrics.IntelligentTieringMonitorCount(ctx, g, b, begin, end)

	// запросы и трафик
	putRequests := s.metrics.PutRequests(ctx, g, b, begin, end)
	getRequests := s.metrics.GetRequests(ctx, g, b, begin, end)
	internetTraffic := s.metrics.InternetTraffic(ctx, g, b, begin, end)
	cdnTraffic := s.metrics.CdnTraffic(ctx, g, b, begin, end)

	rec, err := s.db.FindOrCreateStatistic(g, bucket.ID, t)
	if err != nil {
		return fmt.Errorf("find statistic record: %w", err)
	}

	f := rec.Stats()
	f.StandardStorage = standardStorage
	f.LineStorage = lineStorage
	f.ArchiveStorage = archiveStorage
	f.ArchiveIrStorage = archiveIrStorage
	f.DeepArchiveStorage = deepArchiveStorage
	f.IntelligentTieringFrequentStorage = itFrequentStorage
	f.IntelligentTieringInfrequentStorage = itInfrequentStorage
	f.IntelligentTieringArchiveStorage = itArchiveStorage
	// суммы только производные, отдельной метрики у провайдера нет
	f.IntelligentTieringStorage = itFrequentStorage + itInfrequentStorage + itArchiveStorage

	f.StandardCount = standardCount
	f.LineCount = lineCount
	f.ArchiveCount = archiveCount
	f.ArchiveIrCount = archiveIrCount
	f.DeepArchiveCount = deepArchiveCount
	f.IntelligentTieringFrequentCount = itFrequentCount
	f.IntelligentTieringInfrequentCount = itInfrequentCount
	f.IntelligentTieringArchiveCount = itArchiveCount
	f.IntelligentTieringCount = itFrequentCount + itInfrequentCount + itArchiveCount
	f.IntelligentTieringMonitorCount = itMonitorCount

	f.InternetTraffic = internetTraffic
	f.CdnTraffic = cdnTraffic
	f.GetRequests = getRequests
	f.PutRequests = putRequests
	f.StorageTypeConversions = 0

	if err := s.db.SaveStatistic(rec); err != nil {
		return fmt.Errorf("save statistic record: %w", err)
	}
	return nil
}

// Run backfills n windows of granularity g for every valid bucket. Отмена
// контекста проверяется между окнами; текущее окно всегда дорабатывает.
func (s *Syncer) Run(ctx context.Context, g stats.Granularity, n int, rep Reporter) error {
	if n < 1 {
		return fmt.Errorf("window count must be positive, got %d", n)
	}

	runID := uuid.NewString()
	log := s.logger.With(slog.String("run_id", runID), slog.String("granularity", string(g)))

	buckets, err := s.db.ListValidBuckets()
	if err != nil {
		return fmt.Errorf("list buckets: %w", err)
	}
	if len(buckets) == 0 {
		log.Warn("sync.no_valid_buckets")
		text(rep, "no valid buckets configured")
		return nil
	}

	times := stats.Backfill(g, s.clock.Now(), n)
	log.Info("sync.run_begin", "buckets", len(buckets), "windows", len(times))
	start := s.clock.Now()

	for _, bucket := range buckets {
		section(rep, fmt.Sprintf("syncing bucket [%s]", bucket.Name), len(times))

		for _, t := range times {
			select {
			case <-ctx.Done():
				log.Info("sync.run_canceled", "reason", ctx.Err())
				return ctx.Err()
			default:
			}

			s.SyncBucketStatistic(ctx, g, t, bucket, rep)
			step(rep, fmt.Sprintf("synced %s", t.Format("2006-01-02 15:04")))
		}

		text(rep, fmt.Sprintf("bucket [%s] statistics synced", bucket.Name))
	}

	log.Info("sync.run_end", "dur_ms", s.clock.Since(start).Milliseconds())
	text(rep, "all bucket statistics synced")
	return nil
}
