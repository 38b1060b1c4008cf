package model

import (
	"time"

	"gorm.io/datatypes"
)

const AuditLogTableName = "audit_log"

// AuditLog 审计日志，记录对连接的变更操作
type AuditLog struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Event     string         `gorm:"size:64;not null;index" json:"event"`
	ConnID    string         `gorm:"column:conn_id;size:250;index" json:"conn_id"`
	Owner     string         `gorm:"size:128" json:"owner"`
	Extra     datatypes.JSON `gorm:"type:json" json:"extra,omitempty"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return AuditLogTableName
}
