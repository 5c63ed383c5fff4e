package models

import (
	"time"
)

type RevisionStatus string

const (
	RevisionPending  RevisionStatus = "pending"
	RevisionApproved RevisionStatus = "approved"
	RevisionRejected RevisionStatus = "rejected"
)

// RevisionRequest is the formal ask to rework a rejected article. An article
// has at most one pending request open at a time.
type RevisionRequest struct {
	ID             uint           `json:"id" gorm:"primarykey"`
	ArticleID      uint           `json:"article_id" gorm:"not null;index"`
	RequestedByID  uint           `json:"requested_by_id" gorm:"not null"`
	TargetAuthorID uint           `json:"target_author_id" gorm:"not null"`
	Reason         string         `json:"reason" gorm:"type:text"`
	Status         RevisionStatus `json:"status" gorm:"default:'pending'"`
	RejectReason   string         `json:"reject_reason,omitempty"`
	RequestedAt    time.Time      `json:"requested_at"`
	RespondedAt    *time.Time     `json:"responded_at"`
}
