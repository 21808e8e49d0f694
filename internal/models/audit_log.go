package models

// AuditLog records auth events and mutations on financial records. Entries
// are written best-effort and never read back by the API itself.
type AuditLog struct {
	Base
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	Action       string `gorm:"not null;size:64" json:"action"`
	ResourceType string `gorm:"not null;size:32" json:"resource_type"`
	ResourceID   uint   `json:"resource_id"`
	IPAddress    string `gorm:"size:45" json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
