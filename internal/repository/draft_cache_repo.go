package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// DraftCacheRepository stores one JSON projection per configurator instance,
// overwritten on every mutation and deleted on successful submission.
type DraftCacheRepository struct {
	db *gorm.DB
}

func NewDraftCacheRepository(db *gorm.DB) *DraftCacheRepository {
	return &DraftCacheRepository{db: db}
}

type draftCacheModel struct {
	DraftID   string    `gorm:"column:draft_id;primaryKey"`
	Payload   []byte    `gorm:"column:payload"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (draftCacheModel) TableName() string { return "draft_cache" }

// Migrate creates the cache table when missing.
func (r *DraftCacheRepository) Migrate() error {
	return r.db.AutoMigrate(&draftCacheModel{})
}

func (r *DraftCacheRepository) Save(ctx context.Context, draftID string, payload []byte) error {
	m := draftCacheModel{DraftID: draftID, Payload: payload, UpdatedAt: time.Now().UTC()}

	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error == nil {
		return nil
	}
	if !isDuplicateKey(tx.Error) {
		return tx.Error
	}

	return r.db.WithContext(ctx).
		Model(&draftCacheModel{}).
		Where("draft_id = ?", draftID).
		Updates(map[string]interface{}{"payload": payload, "updated_at": m.UpdatedAt}).
		Error
}

func (r *DraftCacheRepository) Load(ctx context.Context, draftID string) ([]byte, error) {
	var m draftCacheModel
	tx := r.db.WithContext(ctx).First(&m, "draft_id = ?", draftID)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return m.Payload, nil
}

func (r *DraftCacheRepository) Delete(ctx context.Context, draftID string) error {
	return r.db.WithContext(ctx).Delete(&draftCacheModel{}, "draft_id = ?", draftID).Error
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
