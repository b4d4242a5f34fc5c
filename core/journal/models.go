package journal

import "time"

// SaveRecord is one persisted save attempt of a section.
type SaveRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Section      string    `gorm:"size:64;index:idx_save_target" json:"section"`
	ExperienceID string    `gorm:"size:128;index:idx_save_target" json:"experience_id"`
	Created      int       `json:"created"`
	Edited       int       `json:"edited"`
	Removed      int       `json:"removed"`
	Unchanged    int       `json:"unchanged"`
	Succeeded    bool      `json:"succeeded"`
	Partial      bool      `json:"partial"`
	Error        string    `gorm:"type:text" json:"error,omitempty"`
	StartedAt    time.Time `json:"started_at"`
	DurationMS   int64     `gorm:"column:duration_ms" json:"duration_ms"`

	Operations []OperationRecord `gorm:"foreignKey:SaveID;constraint:OnDelete:CASCADE" json:"operations,omitempty"`
}

func (SaveRecord) TableName() string { return "save_reports" }

// OperationRecord is the outcome of one remote mutation within a save.
type OperationRecord struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	SaveID    uint   `gorm:"index" json:"-"`
	Kind      string `gorm:"size:16" json:"kind"`
	EntityID  string `gorm:"size:160" json:"entity_id"`
	RemoteID  string `gorm:"size:160" json:"remote_id,omitempty"`
	Succeeded bool   `json:"succeeded"`
	Error     string `gorm:"type:text" json:"error,omitempty"`
}

func (OperationRecord) TableName() string { return "save_operations" }
