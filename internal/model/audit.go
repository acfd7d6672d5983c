package model

import (
	"time"

	"course_admin_gateway/internal/view"

	"gorm.io/gorm"
)

type BaseModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Audit actions.
const (
	ActionCreate       = "create"
	ActionUpdate       = "update"
	ActionDelete       = "delete"
	ActionToggleActive = "toggle_active"
	ActionUpload       = "upload"
)

// AuditRecord is the gateway's own trail of staff mutations. It is the only
// locally persisted data; everything else is remote-owned.
type AuditRecord struct {
	BaseModel
	Actor      string `gorm:"size:128;index" json:"actor"`
	Action     string `gorm:"size:32;index" json:"action"`
	EntityType string `gorm:"size:64;index" json:"entityType"`
	EntityID   string `gorm:"size:64" json:"entityId"`
	Summary    string `gorm:"size:512" json:"summary"`
}

func (r AuditRecord) SearchText() []string {
	return []string{r.Actor, r.EntityType, r.EntityID, r.Summary}
}

func (r AuditRecord) FieldValue(key string) string {
	switch key {
	case "action":
		return r.Action
	case "entityType":
		return r.EntityType
	case "actor":
		return r.Actor
	}
	return ""
}

func (r AuditRecord) SortValue(key string) view.Value {
	if key == "actor" {
		return view.String(r.Actor)
	}
	return view.Time(r.CreatedAt)
}
