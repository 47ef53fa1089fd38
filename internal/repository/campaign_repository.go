package repository

import (
	"culturefit_backend/internal/model"

	"gorm.io/gorm"
)

type CampaignRepository struct {
	DB *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

func (r *CampaignRepository) Create(c *model.Campaign) error {
	return r.DB.Create(c).Error
}

func (r *CampaignRepository) FindByID(id uint) (*model.Campaign, error) {
	var c model.Campaign
	err := r.DB.First(&c, id).Error
	return &c, err
}

func (r *CampaignRepository) List(page, limit int) ([]model.Campaign, int64, error) {
	var cs []model.Campaign
	var total int64
	query := r.DB.Model(&model.Campaign{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&cs).Error
	return cs, total, err
}

func (r *CampaignRepository) Update(c *model.Campaign) error {
	return r.DB.Save(c).Error
}

func (r *CampaignRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Campaign{}, id).Error
}
