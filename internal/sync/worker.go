package sync

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanikLP1/qiniu-stats/internal/stats"
)

// Worker периодически запускает бэкфилл одной гранулярности.
type Worker struct {
	s       *Syncer
	g       stats.Granularity
	every   time.Duration
	periods int
	logger  *slog.Logger
}

// StartWorker launches a ticker loop that re-syncs the last `periods`
// windows of granularity g every `every`. Остановка — через контекст.
func (s *Syncer) StartWorker(ctx context.Context, g stats.Granularity, every time.Duration, periods int) {
	w := &Worker{
		s: s, g: g, every: every, periods: periods,
		logger: s.logger.With(slog.String("comp", "worker"), slog.String("granularity", string(g))),
	}
	go w.run(ctx)
}

func (w *Worker) run(ctx context.Context) {
	t := time.NewTicker(w.every)
	defer t.Stop()
	w.logger.Info("worker.started", "every", w.every.String(), "periods", w.periods)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker.stopped", "reason", "context canceled")
			return
		case <-t.C:
			w.onePass(ctx)
		}
	}
}

func (w *Worker) onePass(ctx context.Context) {
	start := time.Now()
	if err := w.s.Run(ctx, w.g, w.periods, nil); err != nil {
		w.logger.Error("worker.pass_fail", "err", err)
		return
	}
	w.logger.Info("worker.pass_ok", "dur_ms", time.Since(start).Milliseconds())
}
