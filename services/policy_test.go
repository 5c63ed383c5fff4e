package services

import (
	"testing"

	"editorial-cms/models"

	"github.com/stretchr/testify/assert"
)

func TestPolicyCanView(t *testing.T) {
	policy := NewArticlePolicy()
	article := &models.Article{ID: 1, AuthorID: 5, Status: models.StatusSubmitted}

	author := models.Actor{ID: 5, Role: models.RoleAuthor}
	admin := models.Actor{ID: 2, Role: models.RoleAdmin}
	reviewer := models.Actor{ID: 3, Role: models.RoleReviewer}
	stranger := models.Actor{ID: 9, Role: models.RoleAuthor}

	assert.True(t, policy.CanView(author, article, false))
	assert.True(t, policy.CanView(admin, article, false))
	assert.True(t, policy.CanView(reviewer, article, true))
	assert.False(t, policy.CanView(reviewer, article, false))
	assert.False(t, policy.CanView(stranger, article, false))
}

func TestPolicyCanUpdate(t *testing.T) {
	policy := NewArticlePolicy()
	author := models.Actor{ID: 5, Role: models.RoleAuthor}
	admin := models.Actor{ID: 2, Role: models.RoleAdmin}

	cases := []struct {
		status      models.ArticleStatus
		authorOK    bool
		adminOK     bool
		description string
	}{
		{models.StatusDraft, true, true, "draft"},
		{models.StatusRevisionRequested, true, true, "revision requested"},
		{models.StatusSubmitted, false, true, "submitted"},
		{models.StatusUnderReview, false, true, "under review"},
		{models.StatusApproved, false, true, "approved"},
		{models.StatusPublished, false, false, "published"},
	}

	for _, tc := range cases {
		article := &models.Article{ID: 1, AuthorID: 5, Status: tc.status}
		assert.Equal(t, tc.authorOK, policy.CanUpdate(author, article), "author on %s", tc.description)
		assert.Equal(t, tc.adminOK, policy.CanUpdate(admin, article), "admin on %s", tc.description)
	}
}

func TestPolicyCanDelete(t *testing.T) {
	policy := NewArticlePolicy()
	author := models.Actor{ID: 5, Role: models.RoleAuthor}
	admin := models.Actor{ID: 2, Role: models.RoleAdmin}

	draft := &models.Article{ID: 1, AuthorID: 5, Status: models.StatusDraft}
	submitted := &models.Article{ID: 1, AuthorID: 5, Status: models.StatusSubmitted}
	published := &models.Article{ID: 1, AuthorID: 5, Status: models.StatusPublished}

	assert.True(t, policy.CanDelete(author, draft))
	assert.False(t, policy.CanDelete(author, submitted))
	assert.True(t, policy.CanDelete(admin, submitted))
	assert.False(t, policy.CanDelete(admin, published))
}

func TestPolicyCanCreate(t *testing.T) {
	policy := NewArticlePolicy()

	assert.True(t, policy.CanCreate(models.Actor{ID: 1, Role: models.RoleAuthor}))
	assert.True(t, policy.CanCreate(models.Actor{ID: 1, Role: models.RoleAdmin}))
	assert.False(t, policy.CanCreate(models.Actor{ID: 1, Role: models.RoleReviewer}))
}

func TestPolicyCanSubmitRequiresOwnership(t *testing.T) {
	policy := NewArticlePolicy()
	article := &models.Article{ID: 1, AuthorID: 5, Status: models.StatusDraft}

	assert.True(t, policy.CanSubmit(models.Actor{ID: 5, Role: models.RoleAuthor}, article))
	assert.False(t, policy.CanSubmit(models.Actor{ID: 6, Role: models.RoleAuthor}, article))
	assert.False(t, policy.CanSubmit(models.Actor{ID: 2, Role: models.RoleAdmin}, article))
}
