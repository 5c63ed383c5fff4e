package services

import (
	"errors"
	"time"

	"editorial-cms/models"
	"editorial-cms/repositories"

	"gorm.io/gorm"
)

const minFeedbackLength = 10

type ReviewService interface {
	AssignReviewer(actor models.Actor, articleID, reviewerID uint) (*models.ReviewAssignment, error)
	ReassignReviewer(actor models.Actor, articleID, reviewerID uint) (*models.ReviewAssignment, error)
	SubmitReview(actor models.Actor, articleID uint, req models.SubmitReviewRequest) (*models.ReviewDecision, error)
	GetAssignments(actor models.Actor, articleID uint) ([]models.ReviewAssignment, error)
	GetDecisions(actor models.Actor, articleID uint) ([]models.ReviewDecision, error)
}

type reviewService struct {
	articleRepo repositories.ArticleRepository
	reviewRepo  repositories.ReviewRepository
	userRepo    repositories.UserRepository
	policy      *ArticlePolicy
}

func NewReviewService(
	articleRepo repositories.ArticleRepository,
	reviewRepo repositories.ReviewRepository,
	userRepo repositories.UserRepository,
	policy *ArticlePolicy,
) ReviewService {
	return &reviewService{
		articleRepo: articleRepo,
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
		policy:      policy,
	}
}

func (s *reviewService) AssignReviewer(actor models.Actor, articleID, reviewerID uint) (*models.ReviewAssignment, error) {
	if !s.policy.CanModerate(actor) {
		return nil, models.ErrUnauthorized("only an admin can assign reviewers")
	}

	article, err := loadArticle(s.articleRepo, articleID)
	if err != nil {
		return nil, err
	}

	if article.Status != models.StatusSubmitted && article.Status != models.StatusUnderReview {
		return nil, models.ErrInvalidTransition(article.Status, "assign a reviewer to")
	}

	return s.createAssignment(actor, article, reviewerID)
}

// ReassignReviewer hands a reviewed article to another reviewer. It requires
// that at least one earlier assignment was completed.
func (s *reviewService) ReassignReviewer(actor models.Actor, articleID, reviewerID uint) (*models.ReviewAssignment, error) {
	if !s.policy.CanModerate(actor) {
		return nil, models.ErrUnauthorized("only an admin can reassign reviewers")
	}

	article, err := loadArticle(s.articleRepo, articleID)
	if err != nil {
		return nil, err
	}

	completed, err := s.reviewRepo.HasCompletedAssignment(articleID)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, models.NewWorkflowError(models.KindNoPriorAssignment,
			"article %d has no completed review assignment to reassign from", articleID)
	}

	return s.createAssignment(actor, article, reviewerID)
}

func (s *reviewService) createAssignment(actor models.Actor, article *models.Article, reviewerID uint) (*models.ReviewAssignment, error) {
	reviewer, err := s.userRepo.GetByID(reviewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound("reviewer %d not found", reviewerID)
		}
		return nil, err
	}
	if reviewer.Role != models.RoleReviewer {
		return nil, models.ErrValidation("user %d is not a reviewer", reviewerID)
	}

	if _, err := s.reviewRepo.GetActiveAssignment(article.ID, reviewerID); err == nil {
		return nil, models.NewWorkflowError(models.KindDuplicateAssignment,
			"reviewer %d is already assigned to article %d", reviewerID, article.ID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// CAS first: the loser of a concurrent transition must leave no
	// assignment row behind.
	if article.Status != models.StatusUnderReview {
		if err := transitionStatus(s.articleRepo, article, models.StatusUnderReview, "assign a reviewer to"); err != nil {
			return nil, err
		}
	}

	assignment := &models.ReviewAssignment{
		ArticleID:    article.ID,
		ReviewerID:   reviewerID,
		AssignedByID: actor.ID,
		Status:       models.AssignmentAssigned,
		AssignedAt:   time.Now(),
	}
	if err := s.reviewRepo.CreateAssignment(assignment); err != nil {
		return nil, err
	}

	return s.reviewRepo.GetAssignmentByID(assignment.ID)
}

// SubmitReview records a verdict for an article under review. Reviewers must
// hold an active assignment, which gets completed; an admin may rule without
// one. Reject and request_revision demand substantive feedback.
func (s *reviewService) SubmitReview(actor models.Actor, articleID uint, req models.SubmitReviewRequest) (*models.ReviewDecision, error) {
	switch req.Decision {
	case models.VerdictAccept, models.VerdictReject, models.VerdictRequestRevision:
	default:
		return nil, models.ErrValidation("unknown review decision %q", req.Decision)
	}

	if req.Decision != models.VerdictAccept && len(req.Feedback) < minFeedbackLength {
		return nil, models.ErrValidation("feedback of at least %d characters is required for %q",
			minFeedbackLength, req.Decision)
	}

	article, err := loadArticle(s.articleRepo, articleID)
	if err != nil {
		return nil, err
	}

	var assignment *models.ReviewAssignment
	if !s.policy.CanModerate(actor) {
		if actor.Role != models.RoleReviewer {
			return nil, models.ErrUnauthorized("role %q cannot submit reviews", actor.Role)
		}
		assignment, err = s.reviewRepo.GetActiveAssignment(articleID, actor.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrUnauthorized("reviewer %d holds no active assignment on article %d", actor.ID, articleID)
			}
			return nil, err
		}
	}

	if article.Status != models.StatusUnderReview {
		return nil, models.ErrInvalidTransition(article.Status, "review")
	}

	target := models.StatusApproved
	switch req.Decision {
	case models.VerdictReject:
		target = models.StatusRejected
	case models.VerdictRequestRevision:
		target = models.StatusRevisionRequested
	}

	if err := transitionStatus(s.articleRepo, article, target, "review"); err != nil {
		return nil, err
	}

	decision := &models.ReviewDecision{
		ArticleID:  articleID,
		ReviewerID: actor.ID,
		Decision:   req.Decision,
		Feedback:   req.Feedback,
	}
	if err := s.reviewRepo.CreateDecision(decision); err != nil {
		return nil, err
	}

	if assignment != nil {
		now := time.Now()
		assignment.Status = models.AssignmentCompleted
		assignment.CompletedAt = &now
		if err := s.reviewRepo.UpdateAssignment(assignment); err != nil {
			return nil, err
		}
	}

	return decision, nil
}

func (s *reviewService) GetAssignments(actor models.Actor, articleID uint) ([]models.ReviewAssignment, error) {
	if err := s.checkReadAccess(actor, articleID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetAssignmentsByArticle(articleID)
}

func (s *reviewService) GetDecisions(actor models.Actor, articleID uint) ([]models.ReviewDecision, error) {
	if err := s.checkReadAccess(actor, articleID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetDecisionsByArticle(articleID)
}

func (s *reviewService) checkReadAccess(actor models.Actor, articleID uint) error {
	article, err := loadArticle(s.articleRepo, articleID)
	if err != nil {
		return err
	}

	hasAssignment := false
	if actor.Role == models.RoleReviewer {
		if _, err := s.reviewRepo.GetActiveAssignment(articleID, actor.ID); err == nil {
			hasAssignment = true
		}
	}

	if !s.policy.CanView(actor, article, hasAssignment) {
		return models.ErrUnauthorized("not allowed to view reviews of article %d", articleID)
	}
	return nil
}
