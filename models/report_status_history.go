package models

import "time"

// ReportStatusHistory records one accepted workflow transition.
type ReportStatusHistory struct {
	ID          uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time    `json:"createdAt"`
	ReportID    uint         `gorm:"not null;index" json:"reportId"`
	FromStatus  ReportStatus `gorm:"type:varchar(16);not null" json:"fromStatus"`
	ToStatus    ReportStatus `gorm:"type:varchar(16);not null" json:"toStatus"`
	ChangedByID uint         `gorm:"not null" json:"changedById"`
	ChangedBy   *User        `gorm:"foreignKey:ChangedByID" json:"changedBy,omitempty"`
	Remarks     string       `gorm:"type:text" json:"remarks"`
}

func (ReportStatusHistory) TableName() string {
	return "report_status_history"
}
