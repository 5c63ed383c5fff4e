package models

import (
	"time"
)

// ArticleVersion is an immutable content snapshot. A new row is created for
// version 1 at article creation and for every content change after that;
// Article.Version always equals the highest VersionNumber of its snapshots.
type ArticleVersion struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	ArticleID     uint      `json:"article_id" gorm:"not null;index"`
	Article       *Article  `json:"article,omitempty" gorm:"foreignKey:ArticleID"`
	VersionNumber int       `json:"version_number" gorm:"not null"`
	Content       string    `json:"content" gorm:"type:text"`
	ChangeSummary string    `json:"change_summary"`
	CreatedByID   uint      `json:"created_by_id"`
	CreatedBy     *User     `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	CreatedAt     time.Time `json:"created_at"`
}
