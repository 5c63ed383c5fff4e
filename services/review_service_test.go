package services

import (
	"testing"

	"editorial-cms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submittedArticle(t *testing.T, env *testEnv, author models.Actor) *models.Article {
	t.Helper()
	article := createDraft(t, env, author)
	submitted, err := env.articleSvc.SubmitArticle(author, article.ID)
	require.NoError(t, err)
	return submitted
}

func TestAssignReviewerMovesArticleUnderReview(t *testing.T) {
	env := newTestEnv()
	author := env.addUser(models.RoleAuthor)
	admin := env.addUser(models.RoleAdmin)
	reviewer := env.addUser(models.RoleReviewer)
	article := submittedArticle(t, env, author)

	assignment, err := env.reviewSvc.AssignReviewer(admin, article.ID, reviewer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentAssigned, assignment.Status)
	assert.Equal(t, reviewer.ID, assignment.ReviewerID)

	current, err := env.articleSvc.GetArticle(admin, article.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnderReview, current.Status)
}

func TestAssignReviewerRejectsDuplicates(t *testing.T) {
	env := newTestEnv()
	author := env.addUser(models.RoleAuthor)
	admin := env.addUser(models.RoleAdmin)
	reviewer := env.addUser(models.RoleReviewer)
	article := submittedArticle(t, env, author)

	_, err := env.reviewSvc.AssignReviewer(admin, article.ID, reviewer.ID)
	require.NoError(t, err)

	_, err = env.reviewSvc.AssignReviewer(admin, article.ID, reviewer.ID)
	require.Error(t, err)
	assert.Equal(t, models.KindDuplicateAssignment, models.KindOf(err))
}

func TestAssignReviewerValidatesState(t *testing.T) {
	env := newTestEnv()
	author := env.addUser(models.RoleAuthor)
	admin := env.addUser(models.RoleAdmin)
	reviewer := env.addUser(models.RoleReviewer)
	article := createDraft(t, env, author)

	_, err := env.reviewSvc.AssignReviewer(admin, article.ID, reviewer.ID)
	require.Error(t, err)
	assert.Equal(t, models.KindInvalidStateTransition, models.KindOf(err))

	_, err = env.reviewSvc.AssignReviewer(author, article.ID, reviewer.ID)
	require.Error(t, err)
	assert.Equal(t, models.KindUnauthorized, models.KindOf(err))
}

func TestSubmitReviewFeedbackGate(t *testing.T) {
	env := newTestEnv()
	author := env.addUser(models.RoleAuthor)
	admin := env.addUser(models.RoleAdmin)
	reviewer := env.addUser(models.RoleReviewer)
	article := submittedArticle(t, env, author)

	_, err := env.reviewSvc.AssignReviewer(admin, article.ID, reviewer.ID)
	require.NoError(t, err)

	_, err = env.reviewSvc.SubmitReview(reviewer, article.ID, models.SubmitReviewRequest{
		Decision: models.VerdictReject,
		Feedback: "bad",
	})
	require.Error(t, err)
	assert.Equal(t, models.KindValidationFailed, models.KindOf(err))

	decision, err := env.reviewSvc.SubmitReview(reviewer, article.ID, models.SubmitReviewRequest{
		Decision: models.VerdictReject,
		Feedback: "the argument in section two is unsupported",
	})
	require.NoError(t, err)
	assert.Equal(t, models.VerdictReject, decision.Decision)

	current, err := env.articleSvc.GetArticle(admin, article.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, current.Status)
}

func TestSubmitReviewRequestRevision(t *testing.T) {
	env := newTestEnv()
	author := env.addUser(models.RoleAuthor)
	admin := env.addUser(models.RoleAdmin)
	reviewer := env.addUser(models.RoleReviewer)
	article := submittedArticle(t, env, author)

	_, err := env.reviewSvc.AssignReviewer(admin, article.ID, reviewer.ID)
	require.NoError(t, err)

	_, err = env.reviewSvc.SubmitReview(reviewer, article.ID, models.SubmitReviewRequest{
		Decision: models.VerdictRequestRevision,
		Feedback: "please expand the methodology section",
	})
	require.NoError(t, err)

	current, err := env.articleSvc.GetArticle(admin, article.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRevisionRequested, current.Status)
}

func TestSubmitReviewCompletesAssignment(t *testing.T) {
	env := newTestEnv()
	author := env.addUser(models.RoleAuthor)
	admin := env.addUser(models.RoleAdmin)
	reviewer := env.addUser(models.RoleReviewer)
	article := submittedArticle(t, env, author)

	_, err := env.reviewSvc.AssignReviewer(admin, article.ID, reviewer.ID)
	require.NoError(t, err)

	_, err = env.reviewSvc.SubmitReview(reviewer, article.ID, models.SubmitReviewRequest{
		Decision: models.VerdictAccept,
	})
	require.NoError(t, err)

	assignments, err := env.reviewSvc.GetAssignments(admin, article.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, models.AssignmentCompleted, assignments[0].Status)
	assert.NotNil(t, assignments[0].CompletedAt)
}

func TestSubmitReviewRequiresAssignmentForReviewers(t *testing.T) {
	env := newTestEnv()
	author := env.addUser(models.RoleAuthor)
	admin := env.addUser(models.RoleAdmin)
	reviewer := env.addUser(models.RoleReviewer)
	outsider := env.addUser(models.RoleReviewer)
	article := submittedArticle(t, env, author)

	_, err := env.reviewSvc.AssignReviewer(admin, article.ID, reviewer.ID)
	require.NoError(t, err)

	_, err = env.reviewSvc.SubmitReview(outsider, article.ID, models.SubmitReviewRequest{
		Decision: models.VerdictAccept,
	})
	require.Error(t, err)
	assert.Equal(t, models.KindUnauthorized, models.KindOf(err))

	// an admin may rule without holding an assignment
	_, err = env.reviewSvc.SubmitReview(admin, article.ID, models.SubmitReviewRequest{
		Decision: models.VerdictAccept,
	})
	assert.NoError(t, err)
}

func TestReassignRequiresCompletedAssignment(t *testing.T) {
	env := newTestEnv()
	author := env.addUser(models.RoleAuthor)
	admin := env.addUser(models.RoleAdmin)
	first := env.addUser(models.RoleReviewer)
	second := env.addUser(models.RoleReviewer)
	article := submittedArticle(t, env, author)

	_, err := env.reviewSvc.ReassignReviewer(admin, article.ID, second.ID)
	require.Error(t, err)
	assert.Equal(t, models.KindNoPriorAssignment, models.KindOf(err))

	_, err = env.reviewSvc.AssignReviewer(admin, article.ID, first.ID)
	require.NoError(t, err)
	_, err = env.reviewSvc.SubmitReview(first, article.ID, models.SubmitReviewRequest{
		Decision: models.VerdictRequestRevision,
		Feedback: "needs another pass on the data tables",
	})
	require.NoError(t, err)

	assignment, err := env.reviewSvc.ReassignReviewer(admin, article.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, assignment.ReviewerID)
	assert.Equal(t, models.AssignmentAssigned, assignment.Status)

	current, err := env.articleSvc.GetArticle(admin, article.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnderReview, current.Status)
}

func TestAssignReviewerRejectsNonReviewerUsers(t *testing.T) {
	env := newTestEnv()
	author := env.addUser(models.RoleAuthor)
	admin := env.addUser(models.RoleAdmin)
	otherAuthor := env.addUser(models.RoleAuthor)
	article := submittedArticle(t, env, author)

	_, err := env.reviewSvc.AssignReviewer(admin, article.ID, otherAuthor.ID)
	require.Error(t, err)
	assert.Equal(t, models.KindValidationFailed, models.KindOf(err))

	_, err = env.reviewSvc.AssignReviewer(admin, article.ID, 999)
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestAssignReviewerLostRaceLeavesNoAssignment(t *testing.T) {
	env := newTestEnv()
	author := env.addUser(models.RoleAuthor)
	admin := env.addUser(models.RoleAdmin)
	reviewer := env.addUser(models.RoleReviewer)
	article := submittedArticle(t, env, author)

	env.articles.staleSwaps = 1
	_, err := env.reviewSvc.AssignReviewer(admin, article.ID, reviewer.ID)
	require.Error(t, err)
	assert.Equal(t, models.KindInvalidStateTransition, models.KindOf(err))

	assignments, err := env.reviewSvc.GetAssignments(admin, article.ID)
	require.NoError(t, err)
	assert.Empty(t, assignments)

	// the loser left nothing behind, so the retry goes through
	assignment, err := env.reviewSvc.AssignReviewer(admin, article.ID, reviewer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentAssigned, assignment.Status)
}
