package services

import (
	"errors"

	"editorial-cms/models"
	"editorial-cms/repositories"

	"gorm.io/gorm"
)

type TagService interface {
	CreateTag(actor models.Actor, req models.CreateTagRequest) (*models.Tag, error)
	GetTags() ([]models.Tag, error)
	GetTag(id uint) (*models.Tag, error)
}

type tagService struct {
	tagRepo repositories.TagRepository
	policy  *ArticlePolicy
}

func NewTagService(tagRepo repositories.TagRepository, policy *ArticlePolicy) TagService {
	return &tagService{
		tagRepo: tagRepo,
		policy:  policy,
	}
}

func (s *tagService) CreateTag(actor models.Actor, req models.CreateTagRequest) (*models.Tag, error) {
	if !s.policy.CanModerate(actor) {
		return nil, models.ErrUnauthorized("only an admin can create tags")
	}

	_, err := s.tagRepo.GetByName(req.Name)
	if err == nil {
		return nil, models.ErrValidation("tag %q already exists", req.Name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag := &models.Tag{
		Name:          req.Name,
		UsageCount:    0,
		TrendingScore: 0,
	}

	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}

	return tag, nil
}

func (s *tagService) GetTags() ([]models.Tag, error) {
	return s.tagRepo.GetAll()
}

func (s *tagService) GetTag(id uint) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound("tag %d not found", id)
		}
		return nil, err
	}
	return tag, nil
}
