package repositories

import (
	"skillport_backend/internal/models"

	"gorm.io/gorm"
)

type AuditFilter struct {
	ActorID    string
	TargetID   string
	TargetType string
	Page       int
	PageSize   int
}

// AuditRepository is append-only: records are never updated or deleted.
type AuditRepository interface {
	WithTx(tx *gorm.DB) AuditRepository

	Append(log *models.AuditLog) error
	List(filter AuditFilter) ([]models.AuditLog, int64, error)
}

type AuditRepositoryImpl struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &AuditRepositoryImpl{db: db}
}

func (r *AuditRepositoryImpl) WithTx(tx *gorm.DB) AuditRepository {
	return &AuditRepositoryImpl{db: tx}
}

func (r *AuditRepositoryImpl) Append(log *models.AuditLog) error {
	return r.db.Create(log).Error
}

func (r *AuditRepositoryImpl) List(filter AuditFilter) ([]models.AuditLog, int64, error) {
	query := r.db.Model(&models.AuditLog{})

	if filter.ActorID != "" {
		query = query.Where("actor_id = ?", filter.ActorID)
	}
	if filter.TargetID != "" {
		query = query.Where("target_id = ?", filter.TargetID)
	}
	if filter.TargetType != "" {
		query = query.Where("target_type = ?", filter.TargetType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	offset := (filter.Page - 1) * filter.PageSize
	err := query.Order("created_at DESC").Limit(filter.PageSize).Offset(offset).Find(&logs).Error
	return logs, total, err
}
