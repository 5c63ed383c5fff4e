package services

import (
	"errors"
	"time"

	"editorial-cms/models"
	"editorial-cms/repositories"

	"gorm.io/gorm"
)

type RevisionService interface {
	RequestRevision(actor models.Actor, articleID uint, reason string) (*models.RevisionRequest, error)
	ApproveRevision(actor models.Actor, articleID uint) (*models.RevisionRequest, error)
	RejectRevision(actor models.Actor, articleID uint, reason string) (*models.RevisionRequest, error)
	CompleteRevision(actor models.Actor, requestID uint) (*models.Article, error)
	GetRequests(actor models.Actor, articleID uint) ([]models.RevisionRequest, error)
}

type revisionService struct {
	articleRepo  repositories.ArticleRepository
	revisionRepo repositories.RevisionRequestRepository
	policy       *ArticlePolicy
}

func NewRevisionService(
	articleRepo repositories.ArticleRepository,
	revisionRepo repositories.RevisionRequestRepository,
	policy *ArticlePolicy,
) RevisionService {
	return &revisionService{
		articleRepo:  articleRepo,
		revisionRepo: revisionRepo,
		policy:       policy,
	}
}

// RequestRevision opens a revision request on a rejected article. Only the
// article's author may ask, and only one request may be pending at a time.
func (s *revisionService) RequestRevision(actor models.Actor, articleID uint, reason string) (*models.RevisionRequest, error) {
	if reason == "" {
		return nil, models.ErrValidation("a revision reason is required")
	}

	article, err := loadArticle(s.articleRepo, articleID)
	if err != nil {
		return nil, err
	}

	if actor.ID != article.AuthorID {
		return nil, models.ErrUnauthorized("only the article's author can request a revision")
	}

	if article.Status != models.StatusRejected {
		return nil, models.ErrInvalidTransition(article.Status, "request a revision of")
	}

	if _, err := s.revisionRepo.GetPendingByArticle(articleID); err == nil {
		return nil, models.NewWorkflowError(models.KindDuplicatePendingRequest,
			"article %d already has a pending revision request", articleID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// CAS first: a lost race must not leave an orphaned pending request
	// blocking the author's retry.
	if err := transitionStatus(s.articleRepo, article, models.StatusRevisionPending, "request a revision of"); err != nil {
		return nil, err
	}

	request := &models.RevisionRequest{
		ArticleID:      articleID,
		RequestedByID:  actor.ID,
		TargetAuthorID: article.AuthorID,
		Reason:         reason,
		Status:         models.RevisionPending,
		RequestedAt:    time.Now(),
	}
	if err := s.revisionRepo.Create(request); err != nil {
		return nil, err
	}

	return request, nil
}

func (s *revisionService) ApproveRevision(actor models.Actor, articleID uint) (*models.RevisionRequest, error) {
	if !s.policy.CanModerate(actor) {
		return nil, models.ErrUnauthorized("only an admin can approve revision requests")
	}

	article, err := loadArticle(s.articleRepo, articleID)
	if err != nil {
		return nil, err
	}

	request, err := s.loadPending(articleID)
	if err != nil {
		return nil, err
	}

	if err := transitionStatus(s.articleRepo, article, models.StatusRevisionApproved, "approve the revision of"); err != nil {
		return nil, err
	}

	now := time.Now()
	request.Status = models.RevisionApproved
	request.RespondedAt = &now
	if err := s.revisionRepo.Update(request); err != nil {
		return nil, err
	}

	return request, nil
}

func (s *revisionService) RejectRevision(actor models.Actor, articleID uint, reason string) (*models.RevisionRequest, error) {
	if !s.policy.CanModerate(actor) {
		return nil, models.ErrUnauthorized("only an admin can reject revision requests")
	}

	if reason == "" {
		return nil, models.ErrValidation("a rejection reason is required")
	}

	article, err := loadArticle(s.articleRepo, articleID)
	if err != nil {
		return nil, err
	}

	request, err := s.loadPending(articleID)
	if err != nil {
		return nil, err
	}

	if err := transitionStatus(s.articleRepo, article, models.StatusRejected, "reject the revision of"); err != nil {
		return nil, err
	}

	now := time.Now()
	request.Status = models.RevisionRejected
	request.RejectReason = reason
	request.RespondedAt = &now
	if err := s.revisionRepo.Update(request); err != nil {
		return nil, err
	}

	return request, nil
}

// CompleteRevision is the author closing out their revision request: the
// request is marked approved and the article drops back to draft for rework.
func (s *revisionService) CompleteRevision(actor models.Actor, requestID uint) (*models.Article, error) {
	request, err := s.revisionRepo.GetByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound("revision request %d not found", requestID)
		}
		return nil, err
	}

	if actor.ID != request.TargetAuthorID {
		return nil, models.ErrUnauthorized("only the targeted author can complete revision request %d", requestID)
	}

	if request.Status != models.RevisionPending {
		return nil, models.NewWorkflowError(models.KindNotPending,
			"revision request %d is already %s", requestID, request.Status)
	}

	article, err := loadArticle(s.articleRepo, request.ArticleID)
	if err != nil {
		return nil, err
	}

	if err := transitionStatus(s.articleRepo, article, models.StatusDraft, "complete the revision of"); err != nil {
		return nil, err
	}

	now := time.Now()
	request.Status = models.RevisionApproved
	request.RespondedAt = &now
	if err := s.revisionRepo.Update(request); err != nil {
		return nil, err
	}

	return s.articleRepo.GetByID(article.ID)
}

func (s *revisionService) GetRequests(actor models.Actor, articleID uint) ([]models.RevisionRequest, error) {
	article, err := loadArticle(s.articleRepo, articleID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && actor.ID != article.AuthorID {
		return nil, models.ErrUnauthorized("not allowed to view revision requests of article %d", articleID)
	}

	return s.revisionRepo.GetByArticle(articleID)
}

func (s *revisionService) loadPending(articleID uint) (*models.RevisionRequest, error) {
	request, err := s.revisionRepo.GetPendingByArticle(articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound("article %d has no pending revision request", articleID)
		}
		return nil, err
	}
	return request, nil
}
