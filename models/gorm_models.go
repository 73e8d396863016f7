package models

import "time"

// ImportJob records one CSV import run. Persisted through GORM so the job
// history survives restarts.
type ImportJob struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	FileName  string    `gorm:"size:255" json:"file_name"`
	Type      string    `gorm:"size:32" json:"type"`   // visit | task
	Status    string    `gorm:"size:32" json:"status"` // completed | failed
	Count     int       `json:"count"`
	Error     string    `gorm:"type:text" json:"error,omitempty"`
}

// TableName keeps the table name explicit rather than relying on pluralization.
func (ImportJob) TableName() string {
	return "import_jobs"
}
