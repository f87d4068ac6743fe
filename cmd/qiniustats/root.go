package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/DanikLP1/qiniu-stats/internal/config"
	"github.com/DanikLP1/qiniu-stats/internal/db"
	"github.com/DanikLP1/qiniu-stats/internal/logging"
	"github.com/DanikLP1/qiniu-stats/internal/qiniu"
	"github.com/DanikLP1/qiniu-stats/internal/sync"
)

var (
	cfg      config.Config
	dbPath   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "qiniustats",
	Short: "Qiniu bucket usage statistics collector",
	Long: `Collects per-bucket usage statistics (storage volume, file counts,
requests, traffic) from the Qiniu metering API at 5-minute, hour and day
granularity and stores them in a SQLite database.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default $DB_PATH or stats.db)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error")
}

func initConfig() {
	cfg = config.New()
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
}

// app — общая обвязка команд: логгер, база, клиент, синхронизатор
type app struct {
	logger *slog.Logger
	db     *db.DB
	syncer *sync.Syncer
}

func newApp() (*app, error) {
	logger := logging.New(logging.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	client := qiniu.NewClient(logger,
		qiniu.WithBaseURL(cfg.APIBaseURL),
		qiniu.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
	)
	metrics := qiniu.NewMetrics(client, logger)
	syncer := sync.New(database, client, metrics, logger, clockwork.NewRealClock())

	return &app{logger: logger, db: database, syncer: syncer}, nil
}
