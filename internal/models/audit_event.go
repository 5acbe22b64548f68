package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Audit actions recorded by the gateway.
const (
	AuditActionLogin        = "auth.login"
	AuditActionRegister     = "auth.register"
	AuditActionLogout       = "auth.logout"
	AuditActionForcedLogout = "auth.forced_logout"
)

// Audit results.
const (
	AuditResultSuccess = "success"
	AuditResultFailure = "failure"
)

// AuditEvent records an authentication-related action handled by the gateway.
type AuditEvent struct {
	ID        string         `gorm:"primaryKey;type:uuid" json:"id"`
	Action    string         `gorm:"not null;index" json:"action"`
	Result    string         `gorm:"not null" json:"result"`
	Email     string         `gorm:"index" json:"email"`
	Role      string         `json:"role"`
	IPAddress string         `json:"ip_address"`
	UserAgent string         `json:"user_agent"`
	Metadata  datatypes.JSON `json:"metadata"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}

func (e *AuditEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
