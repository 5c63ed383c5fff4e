package repositories

import (
	"editorial-cms/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	CreateAssignment(assignment *models.ReviewAssignment) error
	GetAssignmentByID(id uint) (*models.ReviewAssignment, error)
	GetAssignmentsByArticle(articleID uint) ([]models.ReviewAssignment, error)
	GetActiveAssignment(articleID, reviewerID uint) (*models.ReviewAssignment, error)
	HasCompletedAssignment(articleID uint) (bool, error)
	UpdateAssignment(assignment *models.ReviewAssignment) error
	CreateDecision(decision *models.ReviewDecision) error
	GetDecisionsByArticle(articleID uint) ([]models.ReviewDecision, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) CreateAssignment(assignment *models.ReviewAssignment) error {
	return r.db.Create(assignment).Error
}

func (r *reviewRepository) GetAssignmentByID(id uint) (*models.ReviewAssignment, error) {
	var assignment models.ReviewAssignment
	err := r.db.Preload("Reviewer").First(&assignment, id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *reviewRepository) GetAssignmentsByArticle(articleID uint) ([]models.ReviewAssignment, error) {
	var assignments []models.ReviewAssignment
	err := r.db.Where("article_id = ?", articleID).
		Preload("Reviewer").
		Order("assigned_at asc").
		Find(&assignments).Error
	return assignments, err
}

func (r *reviewRepository) GetActiveAssignment(articleID, reviewerID uint) (*models.ReviewAssignment, error) {
	var assignment models.ReviewAssignment
	err := r.db.Where("article_id = ? AND reviewer_id = ? AND status = ?",
		articleID, reviewerID, models.AssignmentAssigned).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *reviewRepository) HasCompletedAssignment(articleID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ReviewAssignment{}).
		Where("article_id = ? AND status = ?", articleID, models.AssignmentCompleted).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) UpdateAssignment(assignment *models.ReviewAssignment) error {
	return r.db.Save(assignment).Error
}

func (r *reviewRepository) CreateDecision(decision *models.ReviewDecision) error {
	return r.db.Create(decision).Error
}

func (r *reviewRepository) GetDecisionsByArticle(articleID uint) ([]models.ReviewDecision, error) {
	var decisions []models.ReviewDecision
	err := r.db.Where("article_id = ?", articleID).
		Preload("Reviewer").
		Order("created_at asc").
		Find(&decisions).Error
	return decisions, err
}
