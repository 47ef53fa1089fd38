package repository

import (
	"culturefit_backend/internal/model"

	"gorm.io/gorm"
)

type CandidateRepository struct {
	DB *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{DB: db}
}

func (r *CandidateRepository) FindByID(id uint) (*model.Candidate, error) {
	var c model.Candidate
	err := r.DB.First(&c, id).Error
	return &c, err
}

func (r *CandidateRepository) ListByCampaign(campaignID uint) ([]model.Candidate, error) {
	var cs []model.Candidate
	err := r.DB.Where("campaign_id = ?", campaignID).Order("completed_at desc").Find(&cs).Error
	return cs, err
}

func (r *CandidateRepository) List(page, limit int) ([]model.Candidate, int64, error) {
	var cs []model.Candidate
	var total int64
	query := r.DB.Model(&model.Candidate{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("completed_at desc").Offset(offset).Limit(limit).Find(&cs).Error
	return cs, total, err
}
