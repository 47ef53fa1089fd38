package service

import (
	"culturefit_backend/internal/model"
	"culturefit_backend/internal/repository"
)

// CandidateService is read-only: candidate records are written exactly
// once by the completion flow and never modified afterwards.
type CandidateService struct {
	Repo *repository.CandidateRepository
}

func NewCandidateService(repo *repository.CandidateRepository) *CandidateService {
	return &CandidateService{Repo: repo}
}

func (s *CandidateService) Get(id uint) (*model.Candidate, error) {
	return s.Repo.FindByID(id)
}

func (s *CandidateService) List(page, limit int) ([]model.Candidate, int64, error) {
	return s.Repo.List(page, limit)
}
