package services

import (
	"editorial-cms/models"
)

// ArticlePolicy centralizes every capability check the workflow applies.
// Status preconditions beyond these ownership/role rules are enforced by the
// services themselves, so a failed check here always means Unauthorized and
// a failed precondition always means InvalidStateTransition.
type ArticlePolicy struct{}

func NewArticlePolicy() *ArticlePolicy {
	return &ArticlePolicy{}
}

// CanView: the article's author, any admin, or a reviewer holding an active
// assignment on it.
func (p *ArticlePolicy) CanView(actor models.Actor, article *models.Article, hasActiveAssignment bool) bool {
	if actor.IsAdmin() || actor.ID == article.AuthorID {
		return true
	}
	return actor.Role == models.RoleReviewer && hasActiveAssignment
}

func (p *ArticlePolicy) CanCreate(actor models.Actor) bool {
	return actor.Role == models.RoleAuthor || actor.IsAdmin()
}

// CanUpdate: the author while the article is editable (draft or
// revision_requested), an admin any time before publication.
func (p *ArticlePolicy) CanUpdate(actor models.Actor, article *models.Article) bool {
	if actor.IsAdmin() {
		return article.Status != models.StatusPublished
	}
	if actor.ID != article.AuthorID {
		return false
	}
	return article.Status == models.StatusDraft || article.Status == models.StatusRevisionRequested
}

func (p *ArticlePolicy) CanDelete(actor models.Actor, article *models.Article) bool {
	if actor.IsAdmin() {
		return article.Status != models.StatusPublished
	}
	return actor.ID == article.AuthorID && article.Status == models.StatusDraft
}

func (p *ArticlePolicy) CanSubmit(actor models.Actor, article *models.Article) bool {
	return actor.ID == article.AuthorID && !actor.IsAdmin()
}

// CanModerate covers the admin-only transitions: article-level approve and
// reject, publish, reviewer assignment, change approvals, revision rulings.
func (p *ArticlePolicy) CanModerate(actor models.Actor) bool {
	return actor.IsAdmin()
}
