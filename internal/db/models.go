package db

import "time"

// Account — ключи доступа к облаку, один аккаунт на пару ключей
type Account struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:50;not null"`
	AccessKey string    `gorm:"uniqueIndex;size:100;not null"`
	SecretKey string    `gorm:"size:100;not null"`
	Valid     bool      `gorm:"index;not null;default:false"`
	Remark    string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Bucket — storage-контейнер аккаунта; обновляется только discovery-флоу
type Bucket struct {
	ID           uint   `gorm:"primaryKey"`
	AccountID    uint   `gorm:"uniqueIndex:ux_bucket_account_name,priority:1;not null"`
	Name         string `gorm:"uniqueIndex:ux_bucket_account_name,priority:2;size:50;not null"`
	Region       string `gorm:"size:50"`
	Domain       string `gorm:"size:255"`
	Private      bool   `gorm:"not null;default:false"`
	Valid        bool   `gorm:"index;not null;default:false"`
	LastSyncTime *time.Time
	Remark       string    `gorm:"size:255"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`

	Account Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// StatisticFields — общие колонки трёх таблиц статистики.
// IntelligentTieringStorage/Count всегда пересчитываются как сумма трёх
// уровней, см. sync.
type StatisticFields struct {
	// объёмы, байты
	StandardStorage                     int64 `gorm:"not null;default:0"`
	LineStorage                         int64 `gorm:"not null;default:0"`
	ArchiveStorage                      int64 `gorm:"not null;default:0"`
	ArchiveIrStorage                    int64 `gorm:"not null;default:0"`
	DeepArchiveStorage                  int64 `gorm:"not null;default:0"`
	IntelligentTieringStorage           int64 `gorm:"not null;default:0"`
	IntelligentTieringFrequentStorage   int64 `gorm:"not null;default:0"`
	IntelligentTieringInfrequentStorage int64 `gorm:"not null;default:0"`
	IntelligentTieringArchiveStorage    int64 `gorm:"not null;default:0"`

	// количество файлов
	StandardCount                     int64 `gorm:"not null;default:0"`
	LineCount                         int64 `gorm:"not null;default:0"`
	ArchiveCount                      int64 `gorm:"not null;default:0"`
	ArchiveIrCount                    int64 `gorm:"not null;default:0"`
	DeepArchiveCount                  int64 `gorm:"not null;default:0"`
	IntelligentTieringCount           int64 `gorm:"not null;default:0"`
	IntelligentTieringFrequentCount   int64 `gorm:"not null;default:0"`
	IntelligentTieringInfrequentCount int64 `gorm:"not null;default:0"`
	IntelligentTieringArchiveCount    int64 `gorm:"not null;default:0"`
	IntelligentTieringMonitorCount    int64 `gorm:"not null;default:0"`

	// трафик, байты
	InternetTraffic int64 `gorm:"not null;default:0"`
	CdnTraffic      int64 `gorm:"not null;default:0"`

	// запросы
	GetRequests int64 `gorm:"not null;default:0"`
	PutRequests int64 `gorm:"not null;default:0"`

	// пока всегда 0, провайдер не отдаёт
	StorageTypeConversions int64 `gorm:"not null;default:0"`
}

// BucketMinuteStatistic — 5-минутная гранулярность
type BucketMinuteStatistic struct {
	ID       uint      `gorm:"primaryKey"`
	BucketID uint      `gorm:"uniqueIndex:ux_minute_bucket_time,priority:1;not null"`
	Time     time.Time `gorm:"uniqueIndex:ux_minute_bucket_time,priority:2;not null"`
	StatisticFields `gorm:"embedded"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Bucket Bucket `gorm:"foreignKey:BucketID;constraint:OnDelete:CASCADE"`
}

// BucketHourStatistic — часовая гранулярность
type BucketHourStatistic struct {
	ID       uint      `gorm:"primaryKey"`
	BucketID uint      `gorm:"uniqueIndex:ux_hour_bucket_time,priority:1;not null"`
	Time     time.Time `gorm:"uniqueIndex:ux_hour_bucket_time,priority:2;not null"`
	StatisticFields `gorm:"embedded"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Bucket Bucket `gorm:"foreignKey:BucketID;constraint:OnDelete:CASCADE"`
}

// BucketDayStatistic — дневная гранулярность
type BucketDayStatistic struct {
	ID       uint      `gorm:"primaryKey"`
	BucketID uint      `gorm:"uniqueIndex:ux_day_bucket_time,priority:1;not null"`
	Time     time.Time `gorm:"uniqueIndex:ux_day_bucket_time,priority:2;not null"`
	StatisticFields `gorm:"embedded"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Bucket Bucket `gorm:"foreignKey:BucketID;constraint:OnDelete:CASCADE"`
}

// StatisticRecord is implemented by the three granularity tables so the
// sync layer can fill them uniformly.
type StatisticRecord interface {
	Stats() *StatisticFields
	At() time.Time
}

func (s *BucketMinuteStatistic) Stats() *StatisticFields { return &s.StatisticFields }
func (s *BucketHourStatistic) Stats() *StatisticFields   { return &s.StatisticFields }
func (s *BucketDayStatistic) Stats() *StatisticFields    { return &s.StatisticFields }

func (s *BucketMinuteStatistic) At() time.Time { return s.Time }
func (s *BucketHourStatistic) At() time.Time   { return s.Time }
func (s *BucketDayStatistic) At() time.Time    { return s.Time }
