package services

import (
	"errors"

	"editorial-cms/models"
	"editorial-cms/repositories"

	"gorm.io/gorm"
)

func loadArticle(repo repositories.ArticleRepository, id uint) (*models.Article, error) {
	article, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound("article %d not found", id)
		}
		return nil, err
	}
	return article, nil
}

// transitionStatus performs the compare-and-swap status write for a workflow
// transition. A stale swap means a concurrent transition committed first and
// the caller's precondition no longer holds.
func transitionStatus(repo repositories.ArticleRepository, article *models.Article, to models.ArticleStatus, action string) error {
	err := repo.UpdateStatus(article.ID, article.Status, to)
	if errors.Is(err, repositories.ErrStaleStatus) {
		return models.ErrInvalidTransition(article.Status, action)
	}
	return err
}
