package model

import (
	"time"

	"github.com/google/uuid"
)

// RecordType names the entity a StatusAudit row belongs to.
type RecordType string

const (
	RecordConsultedService RecordType = "consulted_service"
	RecordCustomerStage    RecordType = "customer_stage"
	RecordAppointment      RecordType = "appointment"
	RecordLaboOrder        RecordType = "labo_order"
)

// StatusAudit is one append-only transition history row. Rows are written in the
// same transaction as the transition they describe and are never updated or
// deleted; the only public mutation path is append.
type StatusAudit struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	RecordType RecordType `gorm:"type:varchar(40);not null;index:idx_audit_record" json:"record_type"`
	RecordID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_audit_record" json:"record_id"`
	FromState  *string    `gorm:"type:varchar(40)" json:"from_state"` // Nil for the very first transition
	ToState    string     `gorm:"type:varchar(40);not null" json:"to_state"`
	Reason     *string    `gorm:"type:varchar(255)" json:"reason,omitempty"`
	ActorID    uuid.UUID  `gorm:"type:uuid;not null" json:"actor_id"`
	OccurredAt time.Time  `gorm:"not null;index" json:"occurred_at"`
}

func (StatusAudit) TableName() string {
	return "status_audits"
}

// NewStatusAudit builds an audit row for one transition.
func NewStatusAudit(recordType RecordType, recordID uuid.UUID, from *string, to string, reason *string, actorID uuid.UUID, occurredAt time.Time) *StatusAudit {
	return &StatusAudit{
		ID:         uuid.New(),
		RecordType: recordType,
		RecordID:   recordID,
		FromState:  from,
		ToState:    to,
		Reason:     reason,
		ActorID:    actorID,
		OccurredAt: occurredAt,
	}
}
