package db

import (
	"errors"

	"gorm.io/gorm"
)

func (db *DB) ListValidAccounts() ([]Account, error) {
	var out []Account
	if err := db.Where("valid = ?", true).Order("id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (db *DB) FindAccountByAccessKey(accessKey string) (*Account, error) {
	var a Account
	if err := db.Where("access_key = ?", accessKey).Take(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// EnsureAccount — найти или создать (идемпотентно), для сидирования из CLI
func (db *DB) EnsureAccount(name, accessKey, secretKey string) (*Account, error) {
	a := Account{AccessKey: accessKey}
	if err := db.Where("access_key = ?", accessKey).FirstOrCreate(&a, Account{
		Name:      name,
		AccessKey: accessKey,
		SecretKey: secretKey,
		Valid:     true,
	}).Error; err != nil {
		return nil, err
	}
	return &a, nil
}
