package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DanikLP1/qiniu-stats/internal/stats"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run periodic sync workers for all granularities",
	Long: `Starts three background workers that keep the minute, hour and day
statistic tables fresh. Cadence per granularity is configurable via
SYNC_MINUTE_EVERY, SYNC_HOUR_EVERY and SYNC_DAY_EVERY. Stops on
SIGINT/SIGTERM.`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a.logger.Info("daemon.started",
			"minute_every", cfg.MinuteEvery.String(),
			"hour_every", cfg.HourEvery.String(),
			"day_every", cfg.DayEvery.String(),
		)

		a.syncer.StartWorker(ctx, stats.GranularityMinute, cfg.MinuteEvery, defaultMinutePeriods)
		a.syncer.StartWorker(ctx, stats.GranularityHour, cfg.HourEvery, defaultHourPeriods)
		a.syncer.StartWorker(ctx, stats.GranularityDay, cfg.DayEvery, defaultDayPeriods)

		<-ctx.Done()
		a.logger.Info("daemon.stopped")
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}
