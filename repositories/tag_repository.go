package repositories

import (
	"editorial-cms/models"

	"gorm.io/gorm"
)

type TagRepository interface {
	Create(tag *models.Tag) error
	GetByName(name string) (*models.Tag, error)
	GetByID(id uint) (*models.Tag, error)
	GetAll() ([]models.Tag, error)
	BulkUpdate(tags []models.Tag) error
	CountPublishedArticlesByTag() (map[uint]int, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

func (r *tagRepository) GetByName(name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("name = ?", name).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, id).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetAll() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Order("trending_score desc").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) BulkUpdate(tags []models.Tag) error {
	return r.db.Save(&tags).Error
}

// CountPublishedArticlesByTag counts, per tag, how many published articles
// carry it. Feeds the usage/trending recount.
func (r *tagRepository) CountPublishedArticlesByTag() (map[uint]int, error) {
	var results []struct {
		TagID uint
		Count int
	}

	query := `
		SELECT
			at.tag_id,
			COUNT(*) as count
		FROM article_tags at
		JOIN articles a ON at.article_id = a.id
		WHERE a.status = 'published' AND a.deleted_at IS NULL
		GROUP BY at.tag_id
	`

	err := r.db.Raw(query).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int)
	for _, result := range results {
		counts[result.TagID] = result.Count
	}

	return counts, nil
}
