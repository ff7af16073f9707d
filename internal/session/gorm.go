package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dom/whatnot-go/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Record is one stored credential bundle.
type Record struct {
	Name            string         `gorm:"primaryKey;size:128"`
	UserID          string         `gorm:"index;size:64"`
	AccessExpiresAt time.Time      `gorm:"index"`
	Bundle          datatypes.JSON `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Record) TableName() string {
	return "whatnot_sessions"
}

// OpenDB connects to postgres or sqlite with gorm.
func OpenDB(driver, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%s session driver requires a DSN", driver)
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// GormStore keeps bundles in the whatnot_sessions table.
type GormStore struct {
	db    *gorm.DB
	name  string
	owned bool
}

// NewGorm migrates the sessions table and returns a store for name. When
// owned is set, Close closes the underlying connection pool.
func NewGorm(db *gorm.DB, name string, owned bool) (*GormStore, error) {
	if db == nil {
		return nil, errors.New("gorm session store requires database handle")
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("session.NewGorm: migrate: %w", err)
	}
	return &GormStore{db: db, name: name, owned: owned}, nil
}

func (s *GormStore) Load(ctx context.Context) (*domain.Credentials, error) {
	const op = "session.GormStore.Load"

	var rec Record
	err := s.db.WithContext(ctx).First(&rec, "name = ?", s.name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var creds domain.Credentials
	if err := json.Unmarshal(rec.Bundle, &creds); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &creds, nil
}

func (s *GormStore) Save(ctx context.Context, creds *domain.Credentials) error {
	const op = "session.GormStore.Save"

	if err := validate(op, creds); err != nil {
		return err
	}

	bundle, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rec := &Record{
		Name:            s.name,
		UserID:          creds.UserID,
		AccessExpiresAt: creds.AccessToken.ExpiresAt,
		Bundle:          datatypes.JSON(bundle),
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "access_expires_at", "bundle", "updated_at"}),
	}).Create(rec).Error
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Delete(&Record{}, "name = ?", s.name).Error; err != nil {
		return fmt.Errorf("session.GormStore.Delete: %w", err)
	}
	return nil
}

func (s *GormStore) Close() error {
	if !s.owned {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
