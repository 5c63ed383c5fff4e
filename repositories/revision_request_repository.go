package repositories

import (
	"editorial-cms/models"

	"gorm.io/gorm"
)

type RevisionRequestRepository interface {
	Create(request *models.RevisionRequest) error
	GetByID(id uint) (*models.RevisionRequest, error)
	GetPendingByArticle(articleID uint) (*models.RevisionRequest, error)
	GetByArticle(articleID uint) ([]models.RevisionRequest, error)
	Update(request *models.RevisionRequest) error
}

type revisionRequestRepository struct {
	db *gorm.DB
}

func NewRevisionRequestRepository(db *gorm.DB) RevisionRequestRepository {
	return &revisionRequestRepository{db: db}
}

func (r *revisionRequestRepository) Create(request *models.RevisionRequest) error {
	return r.db.Create(request).Error
}

func (r *revisionRequestRepository) GetByID(id uint) (*models.RevisionRequest, error) {
	var request models.RevisionRequest
	err := r.db.First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *revisionRequestRepository) GetPendingByArticle(articleID uint) (*models.RevisionRequest, error) {
	var request models.RevisionRequest
	err := r.db.Where("article_id = ? AND status = ?", articleID, models.RevisionPending).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *revisionRequestRepository) GetByArticle(articleID uint) ([]models.RevisionRequest, error) {
	var requests []models.RevisionRequest
	err := r.db.Where("article_id = ?", articleID).
		Order("requested_at asc").
		Find(&requests).Error
	return requests, err
}

func (r *revisionRequestRepository) Update(request *models.RevisionRequest) error {
	return r.db.Save(request).Error
}
