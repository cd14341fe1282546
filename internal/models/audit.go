// internal/models/audit.go
package models

import (
	"github.com/google/uuid"
)

// AuditLog records every admin mutation that reaches the API.
type AuditLog struct {
	BaseModel
	Subject      string     `json:"subject" gorm:"size:255;index"`
	Action       string     `json:"action" gorm:"size:100;not null;index"`
	ResourceType string     `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID   *uuid.UUID `json:"resource_id" gorm:"type:uuid;index"`
	NewValues    JSONB      `json:"new_values" gorm:"type:text"`
	IPAddress    string     `json:"ip_address" gorm:"size:45"`
	UserAgent    string     `json:"user_agent" gorm:"type:text"`
}
