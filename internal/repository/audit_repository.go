package repository

import (
	"time"

	"course_admin_gateway/internal/model"

	"gorm.io/gorm"
)

type AuditRepository struct {
	DB *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

func (r *AuditRepository) Create(rec *model.AuditRecord) error {
	return r.DB.Create(rec).Error
}

func (r *AuditRepository) ListRecent(limit int) ([]model.AuditRecord, error) {
	var records []model.AuditRecord
	err := r.DB.Order("created_at DESC").Limit(limit).Find(&records).Error
	return records, err
}

func (r *AuditRepository) PurgeOlderThan(cutoff time.Time) (int64, error) {
	res := r.DB.Unscoped().Where("created_at < ?", cutoff).Delete(&model.AuditRecord{})
	return res.RowsAffected, res.Error
}
