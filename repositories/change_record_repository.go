package repositories

import (
	"time"

	"editorial-cms/models"

	"gorm.io/gorm"
)

type ChangeRecordRepository interface {
	CreateBatch(records []models.ChangeRecord) error
	GetByID(id uint) (*models.ChangeRecord, error)
	GetByArticle(articleID uint) ([]models.ChangeRecord, error)
	GetPending(articleID uint) ([]models.ChangeRecord, error)
	CountPending(articleID uint) (int64, error)
	Update(record *models.ChangeRecord) error
	ResolveAllPending(articleID uint, status models.ChangeStatus, resolverID uint, reason string) (int64, error)
}

type changeRecordRepository struct {
	db *gorm.DB
}

func NewChangeRecordRepository(db *gorm.DB) ChangeRecordRepository {
	return &changeRecordRepository{db: db}
}

func (r *changeRecordRepository) CreateBatch(records []models.ChangeRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.Create(&records).Error
}

func (r *changeRecordRepository) GetByID(id uint) (*models.ChangeRecord, error) {
	var record models.ChangeRecord
	err := r.db.First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *changeRecordRepository) GetByArticle(articleID uint) ([]models.ChangeRecord, error) {
	var records []models.ChangeRecord
	err := r.db.Where("article_id = ?", articleID).
		Order("id asc").
		Find(&records).Error
	return records, err
}

func (r *changeRecordRepository) GetPending(articleID uint) ([]models.ChangeRecord, error) {
	var records []models.ChangeRecord
	err := r.db.Where("article_id = ? AND status = ?", articleID, models.ChangePending).
		Order("id asc").
		Find(&records).Error
	return records, err
}

func (r *changeRecordRepository) CountPending(articleID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ChangeRecord{}).
		Where("article_id = ? AND status = ?", articleID, models.ChangePending).
		Count(&count).Error
	return count, err
}

func (r *changeRecordRepository) Update(record *models.ChangeRecord) error {
	return r.db.Save(record).Error
}

// ResolveAllPending bulk-resolves every pending record for the article and
// reports how many rows it touched. Zero pending rows is not an error.
func (r *changeRecordRepository) ResolveAllPending(articleID uint, status models.ChangeStatus, resolverID uint, reason string) (int64, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"status":         status,
		"resolved_by_id": resolverID,
		"resolved_at":    now,
	}
	if reason != "" {
		updates["reject_reason"] = reason
	}
	res := r.db.Model(&models.ChangeRecord{}).
		Where("article_id = ? AND status = ?", articleID, models.ChangePending).
		Updates(updates)
	return res.RowsAffected, res.Error
}
