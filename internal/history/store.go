// Package history keeps a local record of assistant exchanges in SQLite.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultLimit caps Recent when no limit is given
const DefaultLimit = 50

// Exchange is one prompt and the reply it produced
type Exchange struct {
	ID        uint      `gorm:"primaryKey" json:"id" yaml:"id"`
	UserText  string    `gorm:"not null" json:"user_text" yaml:"user_text"`
	Prompt    string    `gorm:"not null" json:"prompt" yaml:"prompt"`
	Reply     string    `gorm:"not null" json:"reply" yaml:"reply"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at" yaml:"created_at"`
}

// Store persists exchanges
type Store struct {
	db *gorm.DB
}

// Open opens (and migrates) the database at path, creating its directory
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.AutoMigrate(&Exchange{}); err != nil {
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record saves an exchange
func (s *Store) Record(userText, prompt, reply string) (*Exchange, error) {
	ex := &Exchange{UserText: userText, Prompt: prompt, Reply: reply}
	if result := s.db.Create(ex); result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to insert exchange")
	}
	return ex, nil
}

// Recent returns up to limit exchanges, newest first
func (s *Store) Recent(limit int) ([]Exchange, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var out []Exchange
	result := s.db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&out)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query exchanges")
	}
	return out, nil
}

// Clear deletes every exchange and returns how many were removed
func (s *Store) Clear() (int64, error) {
	result := s.db.Where("1 = 1").Delete(&Exchange{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to clear exchanges")
	}
	return result.RowsAffected, nil
}

// Close closes the underlying connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
