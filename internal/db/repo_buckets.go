package db

import (
	"errors"

	"gorm.io/gorm"
)

// ListValidBuckets returns buckets eligible for statistics sync, with the
// owning account preloaded for signing.
func (db *DB) ListValidBuckets() ([]Bucket, error) {
	var out []Bucket
	if err := db.Preload("Account").Where("valid = ?", true).Order("name asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindOrCreateBucket — найти или создать по (account, name); используется
// discovery-флоу
func (db *DB) FindOrCreateBucket(accountID uint, name string) (*Bucket, error) {
	b := Bucket{AccountID: accountID, Name: name}
	if err := db.Where("account_id = ? AND name = ?", accountID, name).FirstOrCreate(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (db *DB) SaveBucket(b *Bucket) error {
	return db.Save(b).Error
}

func (db *DB) BucketByName(accountID uint, name string) (*Bucket, error) {
	var b Bucket
	if err := db.Where("account_id = ? AND name = ?", accountID, name).Take(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}
