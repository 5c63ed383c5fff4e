package models

import (
	"time"
)

type AssignmentStatus string

const (
	AssignmentAssigned  AssignmentStatus = "assigned"
	AssignmentCompleted AssignmentStatus = "completed"
)

type ReviewAssignment struct {
	ID           uint             `json:"id" gorm:"primarykey"`
	ArticleID    uint             `json:"article_id" gorm:"not null;index"`
	ReviewerID   uint             `json:"reviewer_id" gorm:"not null"`
	Reviewer     *User            `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID"`
	AssignedByID uint             `json:"assigned_by_id"`
	Status       AssignmentStatus `json:"status" gorm:"default:'assigned'"`
	AssignedAt   time.Time        `json:"assigned_at"`
	CompletedAt  *time.Time       `json:"completed_at"`
}

type ReviewVerdict string

const (
	VerdictAccept          ReviewVerdict = "accept"
	VerdictReject          ReviewVerdict = "reject"
	VerdictRequestRevision ReviewVerdict = "request_revision"
)

// ReviewDecision rows are append-only; an article accumulates one per
// completed review across assignment cycles.
type ReviewDecision struct {
	ID         uint          `json:"id" gorm:"primarykey"`
	ArticleID  uint          `json:"article_id" gorm:"not null;index"`
	ReviewerID uint          `json:"reviewer_id" gorm:"not null"`
	Reviewer   *User         `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID"`
	Decision   ReviewVerdict `json:"decision" gorm:"not null"`
	Feedback   string        `json:"feedback" gorm:"type:text"`
	CreatedAt  time.Time     `json:"created_at"`
}
