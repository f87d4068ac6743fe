package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DanikLP1/qiniu-stats/internal/stats"
)

// сколько окон бэкфиллим по умолчанию
const (
	defaultMinutePeriods = 12
	defaultHourPeriods   = 24
	defaultDayPeriods    = 7
)

var (
	minutePeriods int
	hourPeriods   int
	dayPeriods    int
)

var syncMinuteCmd = &cobra.Command{
	Use:   "sync-minute",
	Short: "Sync 5-minute statistics for all valid buckets",
	Run: func(cmd *cobra.Command, args []string) {
		runStatisticsSync(cmd, stats.GranularityMinute, minutePeriods, "number of 5-minute periods")
	},
}

var syncHourCmd = &cobra.Command{
	Use:   "sync-hour",
	Short: "Sync hourly statistics for all valid buckets",
	Run: func(cmd *cobra.Command, args []string) {
		runStatisticsSync(cmd, stats.GranularityHour, hourPeriods, "number of hours")
	},
}

var syncDayCmd = &cobra.Command{
	Use:   "sync-day",
	Short: "Sync daily statistics for all valid buckets",
	Run: func(cmd *cobra.Command, args []string) {
		runStatisticsSync(cmd, stats.GranularityDay, dayPeriods, "number of days")
	},
}

func runStatisticsSync(cmd *cobra.Command, g stats.Granularity, periods int, what string) {
	// конфиг-ошибка: падаем сразу, до любой работы
	if periods < 1 {
		fmt.Fprintf(os.Stderr, "error: %s must be greater than 0\n", what)
		os.Exit(1)
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	rep := &cliReporter{}
	if err := a.syncer.Run(cmd.Context(), g, periods, rep); err != nil {
		rep.finish()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	rep.finish()
}

func init() {
	syncMinuteCmd.Flags().IntVarP(&minutePeriods, "periods", "m", defaultMinutePeriods, "number of 5-minute periods to backfill")
	syncHourCmd.Flags().IntVarP(&hourPeriods, "hours", "H", defaultHourPeriods, "number of hours to backfill")
	syncDayCmd.Flags().IntVarP(&dayPeriods, "days", "d", defaultDayPeriods, "number of days to backfill")

	rootCmd.AddCommand(syncMinuteCmd, syncHourCmd, syncDayCmd)
}
