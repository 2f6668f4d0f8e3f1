package replica

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vnbcommerce/storefront-sync/internal/cart"
	pkgerrors "github.com/vnbcommerce/storefront-sync/pkg/errors"
)

type replicaRecord struct {
	Key       string `gorm:"primaryKey;column:key"`
	Payload   string `gorm:"column:payload"`
	UpdatedAt time.Time
}

func (replicaRecord) TableName() string { return "cart_replicas" }

// SQLiteStore is the default device-level replica backend, a single-row
// keyed table in a local database file (the browser localStorage analog).
type SQLiteStore struct {
	db  *gorm.DB
	key string
}

func NewSQLiteStore(path, key string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path required")
	}
	if key == "" {
		return nil, fmt.Errorf("replica key required")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open replica database: %w", err)
	}
	if err := db.AutoMigrate(&replicaRecord{}); err != nil {
		return nil, fmt.Errorf("migrate replica schema: %w", err)
	}
	return &SQLiteStore{db: db, key: key}, nil
}

func (s *SQLiteStore) Read(ctx context.Context) (*cart.Snapshot, error) {
	var record replicaRecord
	err := s.db.WithContext(ctx).First(&record, "key = ?", s.key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeReplica, err, "read replica")
	}
	var snap cart.Snapshot
	if err := json.Unmarshal([]byte(record.Payload), &snap); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeReplica, err, "decode replica")
	}
	return &snap, nil
}

func (s *SQLiteStore) Write(ctx context.Context, snap *cart.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeReplica, err, "encode replica")
	}
	record := replicaRecord{Key: s.key, Payload: string(raw), UpdatedAt: time.Now()}
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeReplica, err, "write replica")
	}
	return nil
}

func (s *SQLiteStore) Erase(ctx context.Context) error {
	err := s.db.WithContext(ctx).Delete(&replicaRecord{}, "key = ?", s.key).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeReplica, err, "erase replica")
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
