package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotRecord is the single-row-per-key persistence model for SQL backends.
type SnapshotRecord struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Payload   string    `gorm:"column:payload;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default gorm naming.
func (SnapshotRecord) TableName() string {
	return "catalog_snapshots"
}

// GormSnapshotStore keeps the serialized catalog in a key/payload table.
type GormSnapshotStore struct {
	db *gorm.DB
}

// NewGormSnapshotStore migrates the snapshot table and wraps the connection.
func NewGormSnapshotStore(db *gorm.DB) (*GormSnapshotStore, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm connection required")
	}
	if err := db.AutoMigrate(&SnapshotRecord{}); err != nil {
		return nil, fmt.Errorf("migrating catalog snapshots: %w", err)
	}
	return &GormSnapshotStore{db: db}, nil
}

func (s *GormSnapshotStore) Load(ctx context.Context, key string) (string, bool, error) {
	var record SnapshotRecord
	err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return record.Payload, true, nil
}

func (s *GormSnapshotStore) Save(ctx context.Context, key, payload string) error {
	record := SnapshotRecord{Key: key, Payload: payload}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&record).Error
}
