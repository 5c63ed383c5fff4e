package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"editorial-cms/models"
	"editorial-cms/repositories"

	"gorm.io/gorm"
)

type ArticleService interface {
	CreateArticle(actor models.Actor, req models.CreateArticleRequest) (*models.Article, error)
	GetArticle(actor models.Actor, id uint) (*models.Article, error)
	GetPublicArticle(id uint) (*models.Article, error)
	GetArticles(actor models.Actor, params models.ArticleListParams, publicOnly bool) ([]models.Article, int64, error)
	UpdateArticle(actor models.Actor, id uint, req models.UpdateArticleRequest) (*models.Article, error)
	DeleteArticle(actor models.Actor, id uint) error
	SubmitArticle(actor models.Actor, id uint) (*models.Article, error)
	ApproveArticle(actor models.Actor, id uint) (*models.Article, error)
	RejectArticle(actor models.Actor, id uint, reason string) (*models.Article, error)
	PublishArticle(actor models.Actor, id uint) (*models.Article, error)
	GetArticleVersions(actor models.Actor, id uint) ([]models.ArticleVersion, error)
	GetArticleVersion(actor models.Actor, id uint, versionNumber int) (*models.ArticleVersion, error)
	CompareVersions(actor models.Actor, id uint, from, to int) ([]models.LineDiff, error)
}

type articleService struct {
	articleRepo repositories.ArticleRepository
	versionRepo repositories.ArticleVersionRepository
	reviewRepo  repositories.ReviewRepository
	tagRepo     repositories.TagRepository
	diff        DiffEngine
	policy      *ArticlePolicy
}

func NewArticleService(
	articleRepo repositories.ArticleRepository,
	versionRepo repositories.ArticleVersionRepository,
	reviewRepo repositories.ReviewRepository,
	tagRepo repositories.TagRepository,
	diff DiffEngine,
	policy *ArticlePolicy,
) ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		versionRepo: versionRepo,
		reviewRepo:  reviewRepo,
		tagRepo:     tagRepo,
		diff:        diff,
		policy:      policy,
	}
}

func (s *articleService) CreateArticle(actor models.Actor, req models.CreateArticleRequest) (*models.Article, error) {
	if !s.policy.CanCreate(actor) {
		return nil, models.ErrUnauthorized("role %q cannot create articles", actor.Role)
	}

	tags, err := s.processTags(req.Tags)
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		AuthorID: actor.ID,
		Title:    req.Title,
		Content:  req.Content,
		Status:   models.StatusDraft,
		Version:  1,
		Tags:     tags,
	}

	if err := s.articleRepo.Create(article); err != nil {
		return nil, err
	}

	version := &models.ArticleVersion{
		ArticleID:     article.ID,
		VersionNumber: 1,
		Content:       req.Content,
		ChangeSummary: "initial version",
		CreatedByID:   actor.ID,
	}
	if err := s.versionRepo.Create(version); err != nil {
		return nil, err
	}

	return s.articleRepo.GetByID(article.ID)
}

func (s *articleService) GetArticle(actor models.Actor, id uint) (*models.Article, error) {
	article, err := loadArticle(s.articleRepo, id)
	if err != nil {
		return nil, err
	}

	hasAssignment := false
	if actor.Role == models.RoleReviewer {
		if _, err := s.reviewRepo.GetActiveAssignment(article.ID, actor.ID); err == nil {
			hasAssignment = true
		}
	}

	if !s.policy.CanView(actor, article, hasAssignment) {
		return nil, models.ErrUnauthorized("not allowed to view article %d", id)
	}

	return article, nil
}

func (s *articleService) GetPublicArticle(id uint) (*models.Article, error) {
	article, err := loadArticle(s.articleRepo, id)
	if err != nil {
		return nil, err
	}
	if article.Status != models.StatusPublished {
		return nil, models.ErrNotFound("article %d not found", id)
	}
	return article, nil
}

// GetArticles lists for the authenticated surface. Non-admin callers only see
// their own articles plus published ones; the per-article view policy stays
// with GetArticle.
func (s *articleService) GetArticles(actor models.Actor, params models.ArticleListParams, publicOnly bool) ([]models.Article, int64, error) {
	if !publicOnly && !actor.IsAdmin() {
		params.VisibleToID = actor.ID
	}
	return s.articleRepo.GetList(params, publicOnly)
}

// UpdateArticle is the direct-edit path. A content change creates the next
// numbered snapshot and bumps the article's version counter; a no-op content
// (or title/tag-only) update leaves the history untouched.
func (s *articleService) UpdateArticle(actor models.Actor, id uint, req models.UpdateArticleRequest) (*models.Article, error) {
	article, err := loadArticle(s.articleRepo, id)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanUpdate(actor, article) {
		return nil, models.ErrUnauthorized("not allowed to update article %d in status %q", id, article.Status)
	}

	if req.Title != nil {
		article.Title = *req.Title
	}

	if req.Tags != nil {
		tags, err := s.processTags(req.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.articleRepo.ReplaceTags(article, tags); err != nil {
			return nil, err
		}
	}

	if req.Content != nil && *req.Content != article.Content {
		summary := req.Summary
		if summary == "" {
			summary = fmt.Sprintf("edit by user %d", actor.ID)
		}
		version := &models.ArticleVersion{
			ArticleID:     article.ID,
			VersionNumber: article.Version + 1,
			Content:       *req.Content,
			ChangeSummary: summary,
			CreatedByID:   actor.ID,
		}
		if err := s.versionRepo.Create(version); err != nil {
			return nil, err
		}
		article.Content = *req.Content
		article.Version = version.VersionNumber
	}

	if err := s.articleRepo.Update(article); err != nil {
		return nil, err
	}

	return s.articleRepo.GetByID(article.ID)
}

func (s *articleService) DeleteArticle(actor models.Actor, id uint) error {
	article, err := loadArticle(s.articleRepo, id)
	if err != nil {
		return err
	}

	if !s.policy.CanDelete(actor, article) {
		return models.ErrUnauthorized("not allowed to delete article %d in status %q", id, article.Status)
	}

	return s.articleRepo.Delete(id)
}

func (s *articleService) SubmitArticle(actor models.Actor, id uint) (*models.Article, error) {
	article, err := loadArticle(s.articleRepo, id)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanSubmit(actor, article) {
		return nil, models.ErrUnauthorized("only the article's author can submit it")
	}

	if article.Status != models.StatusDraft {
		return nil, models.ErrInvalidTransition(article.Status, "submit")
	}

	if err := transitionStatus(s.articleRepo, article, models.StatusSubmitted, "submit"); err != nil {
		return nil, err
	}

	return s.articleRepo.GetByID(id)
}

func (s *articleService) ApproveArticle(actor models.Actor, id uint) (*models.Article, error) {
	if !s.policy.CanModerate(actor) {
		return nil, models.ErrUnauthorized("only an admin can approve articles")
	}

	article, err := loadArticle(s.articleRepo, id)
	if err != nil {
		return nil, err
	}

	if article.Status != models.StatusSubmitted && article.Status != models.StatusUnderReview {
		return nil, models.ErrInvalidTransition(article.Status, "approve")
	}

	if err := transitionStatus(s.articleRepo, article, models.StatusApproved, "approve"); err != nil {
		return nil, err
	}

	return s.articleRepo.GetByID(id)
}

func (s *articleService) RejectArticle(actor models.Actor, id uint, reason string) (*models.Article, error) {
	if !s.policy.CanModerate(actor) {
		return nil, models.ErrUnauthorized("only an admin can reject articles")
	}

	if reason == "" {
		return nil, models.ErrValidation("a rejection reason is required")
	}

	article, err := loadArticle(s.articleRepo, id)
	if err != nil {
		return nil, err
	}

	if article.Status != models.StatusSubmitted && article.Status != models.StatusUnderReview {
		return nil, models.ErrInvalidTransition(article.Status, "reject")
	}

	if err := transitionStatus(s.articleRepo, article, models.StatusRejected, "reject"); err != nil {
		return nil, err
	}

	return s.articleRepo.GetByID(id)
}

func (s *articleService) PublishArticle(actor models.Actor, id uint) (*models.Article, error) {
	if !s.policy.CanModerate(actor) {
		return nil, models.ErrUnauthorized("only an admin can publish articles")
	}

	article, err := loadArticle(s.articleRepo, id)
	if err != nil {
		return nil, err
	}

	if article.Status != models.StatusApproved {
		return nil, models.ErrInvalidTransition(article.Status, "publish")
	}

	if err := transitionStatus(s.articleRepo, article, models.StatusPublished, "publish"); err != nil {
		return nil, err
	}

	// published articles feed the tag counters
	s.updateTagUsageCounts()

	return s.articleRepo.GetByID(id)
}

func (s *articleService) GetArticleVersions(actor models.Actor, id uint) ([]models.ArticleVersion, error) {
	if _, err := s.GetArticle(actor, id); err != nil {
		return nil, err
	}
	return s.versionRepo.GetByArticle(id)
}

func (s *articleService) GetArticleVersion(actor models.Actor, id uint, versionNumber int) (*models.ArticleVersion, error) {
	if _, err := s.GetArticle(actor, id); err != nil {
		return nil, err
	}

	version, err := s.versionRepo.GetByNumber(id, versionNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound("article %d has no version %d", id, versionNumber)
		}
		return nil, err
	}
	return version, nil
}

// CompareVersions runs the informational line comparator over two stored
// snapshots. It never produces change records.
func (s *articleService) CompareVersions(actor models.Actor, id uint, from, to int) ([]models.LineDiff, error) {
	if _, err := s.GetArticle(actor, id); err != nil {
		return nil, err
	}

	fromVersion, err := s.versionRepo.GetByNumber(id, from)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound("article %d has no version %d", id, from)
		}
		return nil, err
	}

	toVersion, err := s.versionRepo.GetByNumber(id, to)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound("article %d has no version %d", id, to)
		}
		return nil, err
	}

	return s.diff.CompareLines(fromVersion.Content, toVersion.Content), nil
}

func (s *articleService) processTags(tagNames []string) ([]models.Tag, error) {
	var tags []models.Tag

	for _, name := range tagNames {
		tag, err := s.tagRepo.GetByName(name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				newTag := &models.Tag{Name: name}
				if err := s.tagRepo.Create(newTag); err != nil {
					return nil, err
				}
				tags = append(tags, *newTag)
			} else {
				return nil, err
			}
		} else {
			tags = append(tags, *tag)
		}
	}

	return tags, nil
}

// updateTagUsageCounts refreshes per-tag usage from published articles and
// recomputes the trending score, which weighs usage against tag age. Failures
// here never block the workflow.
func (s *articleService) updateTagUsageCounts() {
	tagCounts, err := s.tagRepo.CountPublishedArticlesByTag()
	if err != nil {
		return
	}

	allTags, err := s.tagRepo.GetAll()
	if err != nil || len(allTags) == 0 {
		return
	}

	for i := range allTags {
		if count, exists := tagCounts[allTags[i].ID]; exists {
			allTags[i].UsageCount = count
		} else {
			allTags[i].UsageCount = 0
		}

		daysSinceCreated := time.Since(allTags[i].CreatedAt).Hours() / 24
		if daysSinceCreated > 0 {
			allTags[i].TrendingScore = float64(allTags[i].UsageCount) / math.Log(daysSinceCreated+1)
		} else {
			allTags[i].TrendingScore = float64(allTags[i].UsageCount)
		}
	}

	s.tagRepo.BulkUpdate(allTags)
}
