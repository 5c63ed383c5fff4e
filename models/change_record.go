package models

import (
	"time"
)

type ChangeType string

const (
	ChangeAdd    ChangeType = "add"
	ChangeDelete ChangeType = "delete"
	ChangeModify ChangeType = "modify"
)

type ChangeStatus string

const (
	ChangePending  ChangeStatus = "pending"
	ChangeApproved ChangeStatus = "approved"
	ChangeRejected ChangeStatus = "rejected"
)

// ChangeRecord is a tracked content delta awaiting admin approval.
// Status only ever moves pending -> approved or pending -> rejected.
type ChangeRecord struct {
	ID           uint         `json:"id" gorm:"primarykey"`
	ArticleID    uint         `json:"article_id" gorm:"not null;index"`
	VersionID    uint         `json:"version_id" gorm:"not null"`
	ChangeType   ChangeType   `json:"change_type" gorm:"not null"`
	OldText      *string      `json:"old_text" gorm:"type:text"`
	NewText      *string      `json:"new_text" gorm:"type:text"`
	Position     int          `json:"position" gorm:"default:0"`
	Status       ChangeStatus `json:"status" gorm:"default:'pending';index"`
	ResolvedByID *uint        `json:"resolved_by_id"`
	ResolvedAt   *time.Time   `json:"resolved_at"`
	RejectReason string       `json:"reject_reason,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// LineDiff is one differing line from the informational line comparator.
// It is never persisted and never becomes a ChangeRecord.
type LineDiff struct {
	Line int    `json:"line"`
	Old  string `json:"old"`
	New  string `json:"new"`
}
