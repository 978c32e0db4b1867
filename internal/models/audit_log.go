package models

import "time"

type AuditAction string

const (
	AuditActionCreate    AuditAction = "create"
	AuditActionUpdate    AuditAction = "update"
	AuditActionDelete    AuditAction = "delete"
	AuditActionReorder   AuditAction = "reorder"
	AuditActionReset     AuditAction = "reset"
	AuditActionApprove   AuditAction = "approve"
	AuditActionReject    AuditAction = "reject"
	AuditActionAuthorize AuditAction = "authorize"
	AuditActionPublish   AuditAction = "publish"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// İşlemi yapan (admin_id ya da "anonim")
	Actor string `gorm:"size:100" json:"actor"`

	// Hangi entity? (ör: "kpi", "daily_report", "admin_device")
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint   `gorm:"index" json:"entity_id"`

	Action AuditAction `gorm:"size:20" json:"action"`

	// Opsiyonel açıklama (küçük bir özet)
	Description string `gorm:"size:255" json:"description"`

	// Önceki ve sonraki hal (JSON)
	BeforeData string `gorm:"type:jsonb" json:"before_data"`
	AfterData  string `gorm:"type:jsonb" json:"after_data"`
}
