package store

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// GormStore is a Store on top of any GORM dialect. The CLI uses it with
// SQLite for a single-file database.
type GormStore struct {
	db *gorm.DB
}

// entry is one stored key.
type entry struct {
	Name      string `gorm:"primaryKey"`
	Data      []byte
	UpdatedAt time.Time
}

func (entry) TableName() string { return "kv_store" }

// NewGormStore creates the kv_store table if it doesn't exist. On error
// the caller still owns db.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrate kv_store: %w", err)
	}
	return &GormStore{db: db}, nil
}

// OpenSQLite opens (or creates) the SQLite database at path.
func OpenSQLite(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s, err := NewGormStore(db)
	if err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return s, nil
}

func (s *GormStore) Get(key string) ([]byte, bool, error) {
	e := &entry{}
	tx := s.db.Where("name = ?", key).Limit(1).Find(e)
	if tx.Error != nil || tx.RowsAffected == 0 {
		return nil, false, tx.Error
	}
	return e.Data, true, nil
}

func (s *GormStore) Set(key string, data []byte) error {
	e := &entry{Name: key, Data: data, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(e).Error
}

func (s *GormStore) Delete(key string) error {
	return s.db.Delete(&entry{}, "name = ?", key).Error
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
