package db

import (
	"time"

	"github.com/DanikLP1/qiniu-stats/internal/stats"
)

// FindOrCreateStatistic loads the record for (bucket, time) in the table the
// granularity targets, or returns a fresh unsaved one. Save with
// SaveStatistic; the unique index на (bucket_id, time) страхует от дублей.
func (db *DB) FindOrCreateStatistic(g stats.Granularity, bucketID uint, t time.Time) (StatisticRecord, error) {
	switch g {
	case stats.GranularityMinute:
		rec := BucketMinuteStatistic{BucketID: bucketID, Time: t}
		err := db.Where("bucket_id = ? AND time = ?", bucketID, t).FirstOrInit(&rec).Error
		return &rec, err
	case stats.GranularityHour:
		rec := BucketHourStatistic{BucketID: bucketID, Time: t}
		err := db.Where("bucket_id = ? AND time = ?", bucketID, t).FirstOrInit(&rec).Error
		return &rec, err
	default:
		rec := BucketDayStatistic{BucketID: bucketID, Time: t}
		err := db.Where("bucket_id = ? AND time = ?", bucketID, t).FirstOrInit(&rec).Error
		return &rec, err
	}
}

func (db *DB) SaveStatistic(rec StatisticRecord) error {
	return db.Save(rec).Error
}

// RecentStatistics returns the newest records for one bucket at the given
// granularity, newest first.
func (db *DB) RecentStatistics(g stats.Granularity, bucketID uint, limit int) ([]StatisticRecord, error) {
	wrap := func(err error, recs []StatisticRecord) ([]StatisticRecord, error) {
		if err != nil {
			return nil, err
		}
		return recs, nil
	}

	switch g {
	case stats.GranularityMinute:
		var rows []BucketMinuteStatistic
		err := db.Where("bucket_id = ?", bucketID).Order("time desc").Limit(limit).Find(&rows).Error
		out := make([]StatisticRecord, len(rows))
		for i := range rows {
			out[i] = &rows[i]
		}
		return wrap(err, out)
	case stats.GranularityHour:
		var rows []BucketHourStatistic
		err := db.Where("bucket_id = ?", bucketID).Order("time desc").Limit(limit).Find(&rows).Error
		out := make([]StatisticRecord, len(rows))
		for i := range rows {
			out[i] = &rows[i]
		}
		return wrap(err, out)
	default:
		var rows []BucketDayStatistic
		err := db.Where("bucket_id = ?", bucketID).Order("time desc").Limit(limit).Find(&rows).Error
		out := make([]StatisticRecord, len(rows))
		for i := range rows {
			out[i] = &rows[i]
		}
		return wrap(err, out)
	}
}

// CountStatistics — сколько записей в таблице гранулярности для бакета
func (db *DB) CountStatistics(g stats.Granularity, bucketID uint) (int64, error) {
	var n int64
	var err error
	switch g {
	case stats.GranularityMinute:
		err = db.Model(&BucketMinuteStatistic{}).Where("bucket_id = ?", bucketID).Count(&n).Error
	case stats.GranularityHour:
		err = db.Model(&BucketHourStatistic{}).Where("bucket_id = ?", bucketID).Count(&n).Error
	default:
		err = db.Model(&BucketDayStatistic{}).Where("bucket_id = ?", bucketID).Count(&n).Error
	}
	return n, err
}
