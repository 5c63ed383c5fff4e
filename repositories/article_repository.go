package repositories

import (
	"fmt"

	"editorial-cms/models"

	"gorm.io/gorm"
)

// ErrStaleStatus is returned by UpdateStatus when the row no longer holds the
// expected status; the losing caller surfaces it as an invalid transition.
var ErrStaleStatus = fmt.Errorf("article status changed concurrently")

type ArticleRepository interface {
	Create(article *models.Article) error
	GetByID(id uint) (*models.Article, error)
	GetList(params models.ArticleListParams, publicOnly bool) ([]models.Article, int64, error)
	Update(article *models.Article) error
	UpdateStatus(id uint, from, to models.ArticleStatus) error
	Delete(id uint) error
	ReplaceTags(article *models.Article, tags []models.Tag) error
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author").
		Preload("Tags").
		First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetList(params models.ArticleListParams, publicOnly bool) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	query := r.db.Model(&models.Article{}).Preload("Author").Preload("Tags")

	if publicOnly {
		query = query.Where("articles.status = ?", models.StatusPublished)
	} else {
		if params.VisibleToID > 0 {
			query = query.Where("(articles.author_id = ? OR articles.status = ?)",
				params.VisibleToID, models.StatusPublished)
		}
		if params.Status != "" {
			query = query.Where("articles.status = ?", params.Status)
		}
	}

	if params.AuthorID > 0 {
		query = query.Where("author_id = ?", params.AuthorID)
	}

	if params.TagID > 0 {
		query = query.Joins("JOIN article_tags ON articles.id = article_tags.article_id").
			Where("article_tags.tag_id = ?", params.TagID)
	}

	query.Count(&total)

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}

	sortOrder := params.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}

	query = query.Order(fmt.Sprintf("articles.%s %s", sortBy, sortOrder))

	offset := (params.Page - 1) * params.Limit
	err := query.Offset(offset).Limit(params.Limit).Find(&articles).Error

	return articles, total, err
}

func (r *articleRepository) Update(article *models.Article) error {
	return r.db.Save(article).Error
}

// UpdateStatus is a compare-and-swap on the status column. Side-effect rows
// for a transition are only written after this succeeds, so the loser of two
// concurrent transitions fails here instead of overwriting.
func (r *articleRepository) UpdateStatus(id uint, from, to models.ArticleStatus) error {
	res := r.db.Model(&models.Article{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

func (r *articleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Article{}, id).Error
}

func (r *articleRepository) ReplaceTags(article *models.Article, tags []models.Tag) error {
	return r.db.Model(article).Association("Tags").Replace(tags)
}
