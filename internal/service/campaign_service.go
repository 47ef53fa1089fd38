package service

import (
	"culturefit_backend/internal/model"
	"culturefit_backend/internal/repository"
	"culturefit_backend/internal/util"
	"math"

	"gorm.io/gorm"
)

type CampaignService struct {
	Repo          *repository.CampaignRepository
	InviteRepo    *repository.InviteRepository
	CandidateRepo *repository.CandidateRepository
}

func NewCampaignService(repo *repository.CampaignRepository, inviteRepo *repository.InviteRepository, candidateRepo *repository.CandidateRepository) *CampaignService {
	return &CampaignService{Repo: repo, InviteRepo: inviteRepo, CandidateRepo: candidateRepo}
}

type CampaignRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *CampaignService) Create(creatorID uint, req CampaignRequest) (*model.Campaign, error) {
	c := &model.Campaign{
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   creatorID,
	}
	if err := s.Repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CampaignService) Get(id uint) (*model.Campaign, error) {
	c, err := s.Repo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCampaignNotFound
	}
	return c, err
}

func (s *CampaignService) List(page, limit int) ([]model.Campaign, int64, error) {
	return s.Repo.List(page, limit)
}

func (s *CampaignService) Update(id uint, req CampaignRequest) (*model.Campaign, error) {
	c, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	c.Name = req.Name
	c.Description = req.Description
	if err := s.Repo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CampaignService) Delete(id uint) error {
	return s.Repo.Delete(id)
}

type CampaignSummary struct {
	TotalInvites        int               `json:"total_invites"`
	TotalCompleted      int               `json:"total_completed"`
	CompletionRate      float64           `json:"completion_rate"`
	AverageOverallScore float64           `json:"average_overall_score"`
	RiskDistribution    map[string]int    `json:"risk_distribution"`
	Candidates          []model.Candidate `json:"candidates"`
}

// Summary aggregates invite funnel and scoring outcomes for one
// campaign.
func (s *CampaignService) Summary(campaignID uint) (*CampaignSummary, error) {
	if _, err := s.Get(campaignID); err != nil {
		return nil, err
	}

	invites, err := s.InviteRepo.ListByCampaign(campaignID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.CandidateRepo.ListByCampaign(campaignID)
	if err != nil {
		return nil, err
	}

	summary := &CampaignSummary{
		TotalInvites:   len(invites),
		TotalCompleted: len(candidates),
		RiskDistribution: map[string]int{
			"Low": 0, "Moderate": 0, "Borderline": 0, "High": 0,
		},
		Candidates: candidates,
	}

	if summary.TotalInvites > 0 {
		summary.CompletionRate = float64(summary.TotalCompleted) / float64(summary.TotalInvites)
	}

	scoreSum := 0.0
	for _, c := range candidates {
		scoreSum += c.OverallScore
		if _, ok := summary.RiskDistribution[c.OverallRisk]; ok {
			summary.RiskDistribution[c.OverallRisk]++
		}
	}
	if summary.TotalCompleted > 0 {
		avg := scoreSum / float64(summary.TotalCompleted)
		summary.AverageOverallScore = math.Round(avg*100) / 100
	}

	return summary, nil
}
