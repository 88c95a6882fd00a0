package storage

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/storefront/internal/models"
)

// Storage is the local durable store: the string key/value table the auth
// state is mirrored into, plus the user registry for the mock signup flow.
// It is a per-install sqlite file, not a shared server database.
type Storage struct {
	DB *gorm.DB
}

func Open(path string) (*Storage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}
	if err := db.AutoMigrate(&models.KeyValue{}, &models.User{}); err != nil {
		return nil, fmt.Errorf("migrate local storage: %w", err)
	}
	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get returns the stored value and whether the key is present. An absent
// key is not an error.
func (s *Storage) Get(key string) (string, bool, error) {
	var kv models.KeyValue
	err := s.DB.Where("key = ?", key).First(&kv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return kv.Value, true, nil
}

func (s *Storage) Set(key, value string) error {
	kv := models.KeyValue{Key: key, Value: value}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&kv).Error
}

func (s *Storage) Delete(key string) error {
	return s.DB.Where("key = ?", key).Delete(&models.KeyValue{}).Error
}
