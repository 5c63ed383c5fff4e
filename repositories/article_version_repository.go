package repositories

import (
	"editorial-cms/models"

	"gorm.io/gorm"
)

type ArticleVersionRepository interface {
	Create(version *models.ArticleVersion) error
	GetByArticle(articleID uint) ([]models.ArticleVersion, error)
	GetByNumber(articleID uint, versionNumber int) (*models.ArticleVersion, error)
	GetLatest(articleID uint) (*models.ArticleVersion, error)
}

type articleVersionRepository struct {
	db *gorm.DB
}

func NewArticleVersionRepository(db *gorm.DB) ArticleVersionRepository {
	return &articleVersionRepository{db: db}
}

func (r *articleVersionRepository) Create(version *models.ArticleVersion) error {
	return r.db.Create(version).Error
}

func (r *articleVersionRepository) GetByArticle(articleID uint) ([]models.ArticleVersion, error) {
	var versions []models.ArticleVersion
	err := r.db.Where("article_id = ?", articleID).
		Order("version_number desc").
		Find(&versions).Error
	return versions, err
}

func (r *articleVersionRepository) GetByNumber(articleID uint, versionNumber int) (*models.ArticleVersion, error) {
	var version models.ArticleVersion
	err := r.db.Where("article_id = ? AND version_number = ?", articleID, versionNumber).
		First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *articleVersionRepository) GetLatest(articleID uint) (*models.ArticleVersion, error) {
	var version models.ArticleVersion
	err := r.db.Where("article_id = ?", articleID).
		Order("version_number desc").
		First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}
