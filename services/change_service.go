package services

import (
	"errors"
	"fmt"
	"time"

	"editorial-cms/models"
	"editorial-cms/repositories"

	"gorm.io/gorm"
)

type ChangeService interface {
	TrackChanges(actor models.Actor, articleID uint, req models.TrackChangesRequest) (*models.ArticleVersion, []models.ChangeRecord, error)
	ApproveChange(actor models.Actor, changeID uint) (*models.ChangeRecord, error)
	RejectChange(actor models.Actor, changeID uint, reason string) (*models.ChangeRecord, error)
	ApproveAllChanges(actor models.Actor, articleID uint) error
	RejectAllChanges(actor models.Actor, articleID uint, reason string) error
	GetChanges(actor models.Actor, articleID uint) ([]models.ChangeRecord, error)
	GetPendingChanges(actor models.Actor, articleID uint) ([]models.ChangeRecord, error)
}

type changeService struct {
	articleRepo repositories.ArticleRepository
	versionRepo repositories.ArticleVersionRepository
	changeRepo  repositories.ChangeRecordRepository
	diff        DiffEngine
	policy      *ArticlePolicy
}

func NewChangeService(
	articleRepo repositories.ArticleRepository,
	versionRepo repositories.ArticleVersionRepository,
	changeRepo repositories.ChangeRecordRepository,
	diff DiffEngine,
	policy *ArticlePolicy,
) ChangeService {
	return &changeService{
		articleRepo: articleRepo,
		versionRepo: versionRepo,
		changeRepo:  changeRepo,
		diff:        diff,
		policy:      policy,
	}
}

// TrackChanges runs the coarse diff over the supplied contents, snapshots the
// new content as the next version, and files the resulting records as pending.
// Identical contents change nothing and return the current snapshot with an
// empty set.
func (s *changeService) TrackChanges(actor models.Actor, articleID uint, req models.TrackChangesRequest) (*models.ArticleVersion, []models.ChangeRecord, error) {
	article, err := loadArticle(s.articleRepo, articleID)
	if err != nil {
		return nil, nil, err
	}

	if !s.policy.CanUpdate(actor, article) {
		return nil, nil, models.ErrUnauthorized("not allowed to edit article %d in status %q", articleID, article.Status)
	}

	records := s.diff.ComputeChanges(req.OldContent, req.NewContent)
	if len(records) == 0 {
		latest, err := s.versionRepo.GetLatest(articleID)
		if err != nil {
			return nil, nil, err
		}
		return latest, []models.ChangeRecord{}, nil
	}

	summary := req.Summary
	if summary == "" {
		summary = fmt.Sprintf("tracked changes by user %d", actor.ID)
	}

	version := &models.ArticleVersion{
		ArticleID:     articleID,
		VersionNumber: article.Version + 1,
		Content:       req.NewContent,
		ChangeSummary: summary,
		CreatedByID:   actor.ID,
	}
	if err := s.versionRepo.Create(version); err != nil {
		return nil, nil, err
	}

	article.Content = req.NewContent
	article.Version = version.VersionNumber
	if err := s.articleRepo.Update(article); err != nil {
		return nil, nil, err
	}

	for i := range records {
		records[i].ArticleID = articleID
		records[i].VersionID = version.ID
	}
	if err := s.changeRepo.CreateBatch(records); err != nil {
		return nil, nil, err
	}

	return version, records, nil
}

func (s *changeService) ApproveChange(actor models.Actor, changeID uint) (*models.ChangeRecord, error) {
	if !s.policy.CanModerate(actor) {
		return nil, models.ErrUnauthorized("only an admin can approve changes")
	}

	record, err := s.loadChange(changeID)
	if err != nil {
		return nil, err
	}

	if record.Status != models.ChangePending {
		return nil, models.NewWorkflowError(models.KindNotPending,
			"change %d is already %s", changeID, record.Status)
	}

	now := time.Now()
	record.Status = models.ChangeApproved
	record.ResolvedByID = &actor.ID
	record.ResolvedAt = &now
	if err := s.changeRepo.Update(record); err != nil {
		return nil, err
	}

	// An approval that empties the pending set advances the article, even
	// when sibling records in the batch were rejected.
	pending, err := s.changeRepo.CountPending(record.ArticleID)
	if err != nil {
		return nil, err
	}
	if pending == 0 {
		if err := s.advanceToReadyForReview(record.ArticleID); err != nil {
			return nil, err
		}
	}

	return record, nil
}

func (s *changeService) RejectChange(actor models.Actor, changeID uint, reason string) (*models.ChangeRecord, error) {
	if !s.policy.CanModerate(actor) {
		return nil, models.ErrUnauthorized("only an admin can reject changes")
	}

	if reason == "" {
		return nil, models.ErrValidation("a rejection reason is required")
	}

	record, err := s.loadChange(changeID)
	if err != nil {
		return nil, err
	}

	if record.Status != models.ChangePending {
		return nil, models.NewWorkflowError(models.KindNotPending,
			"change %d is already %s", changeID, record.Status)
	}

	now := time.Now()
	record.Status = models.ChangeRejected
	record.ResolvedByID = &actor.ID
	record.ResolvedAt = &now
	record.RejectReason = reason
	if err := s.changeRepo.Update(record); err != nil {
		return nil, err
	}

	return record, nil
}

// ApproveAllChanges resolves every pending record for the article. With
// nothing pending it succeeds without touching anything.
func (s *changeService) ApproveAllChanges(actor models.Actor, articleID uint) error {
	if !s.policy.CanModerate(actor) {
		return models.ErrUnauthorized("only an admin can approve changes")
	}

	if _, err := loadArticle(s.articleRepo, articleID); err != nil {
		return err
	}

	resolved, err := s.changeRepo.ResolveAllPending(articleID, models.ChangeApproved, actor.ID, "")
	if err != nil {
		return err
	}
	if resolved == 0 {
		return nil
	}

	return s.advanceToReadyForReview(articleID)
}

func (s *changeService) RejectAllChanges(actor models.Actor, articleID uint, reason string) error {
	if !s.policy.CanModerate(actor) {
		return models.ErrUnauthorized("only an admin can reject changes")
	}

	if reason == "" {
		return models.ErrValidation("a rejection reason is required")
	}

	if _, err := loadArticle(s.articleRepo, articleID); err != nil {
		return err
	}

	_, err := s.changeRepo.ResolveAllPending(articleID, models.ChangeRejected, actor.ID, reason)
	return err
}

func (s *changeService) GetChanges(actor models.Actor, articleID uint) ([]models.ChangeRecord, error) {
	if err := s.checkReadAccess(actor, articleID); err != nil {
		return nil, err
	}
	return s.changeRepo.GetByArticle(articleID)
}

func (s *changeService) GetPendingChanges(actor models.Actor, articleID uint) ([]models.ChangeRecord, error) {
	if err := s.checkReadAccess(actor, articleID); err != nil {
		return nil, err
	}
	return s.changeRepo.GetPending(articleID)
}

func (s *changeService) checkReadAccess(actor models.Actor, articleID uint) error {
	article, err := loadArticle(s.articleRepo, articleID)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() && actor.ID != article.AuthorID {
		return models.ErrUnauthorized("not allowed to view changes of article %d", articleID)
	}
	return nil
}

func (s *changeService) loadChange(changeID uint) (*models.ChangeRecord, error) {
	record, err := s.changeRepo.GetByID(changeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound("change %d not found", changeID)
		}
		return nil, err
	}
	return record, nil
}

func (s *changeService) advanceToReadyForReview(articleID uint) error {
	article, err := loadArticle(s.articleRepo, articleID)
	if err != nil {
		return err
	}
	err = s.articleRepo.UpdateStatus(article.ID, article.Status, models.StatusReadyForReview)
	if errors.Is(err, repositories.ErrStaleStatus) {
		// another approver advanced it first
		return nil
	}
	return err
}
