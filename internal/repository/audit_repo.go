package repository

import (
	"go-dental-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusAuditRepository is intentionally append-and-list only: there is no
// update or delete path for audit rows.
type StatusAuditRepository interface {
	Append(row *model.StatusAudit) error
	ListByRecord(recordType model.RecordType, recordID uuid.UUID) ([]model.StatusAudit, error)
}

type statusAuditRepo struct {
	db *gorm.DB
}

func NewStatusAuditRepo(db *gorm.DB) StatusAuditRepository {
	return &statusAuditRepo{db}
}

func (r *statusAuditRepo) Append(row *model.StatusAudit) error {
	return r.db.Create(row).Error
}

func (r *statusAuditRepo) ListByRecord(recordType model.RecordType, recordID uuid.UUID) ([]model.StatusAudit, error) {
	var rows []model.StatusAudit
	err := r.db.
		Where("record_type = ? AND record_id = ?", recordType, recordID).
		Order("occurred_at DESC").
		Find(&rows).Error
	return rows, err
}
