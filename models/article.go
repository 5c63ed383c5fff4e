package models

import (
	"time"

	"gorm.io/gorm"
)

type ArticleStatus string

const (
	StatusDraft             ArticleStatus = "draft"
	StatusSubmitted         ArticleStatus = "submitted"
	StatusUnderReview       ArticleStatus = "under_review"
	StatusRevisionRequested ArticleStatus = "revision_requested"
	StatusRejected          ArticleStatus = "rejected"
	StatusApproved          ArticleStatus = "approved"
	StatusPublished         ArticleStatus = "published"

	// Secondary statuses set by the change-approval and revision-request
	// flows. They live in the same column as the primary lifecycle.
	StatusReadyForReview   ArticleStatus = "ready_for_review"
	StatusRevisionPending  ArticleStatus = "revision_pending"
	StatusRevisionApproved ArticleStatus = "revision_approved"
)

type Article struct {
	ID        uint             `json:"id" gorm:"primarykey"`
	AuthorID  uint             `json:"author_id" gorm:"not null"`
	Author    User             `json:"author" gorm:"foreignKey:AuthorID"`
	Title     string           `json:"title" gorm:"not null"`
	Content   string           `json:"content" gorm:"type:text"`
	Status    ArticleStatus    `json:"status" gorm:"default:'draft';index"`
	Version   int              `json:"version" gorm:"not null;default:1"`
	Tags      []Tag            `json:"tags" gorm:"many2many:article_tags;"`
	Versions  []ArticleVersion `json:"versions,omitempty" gorm:"foreignKey:ArticleID"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `json:"-" gorm:"index"`
}
