package service

import (
	"bytes"
	"context"
	"culturefit_backend/internal/repository"
	"culturefit_backend/internal/util"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// ReportService renders campaign results as CSV and ships them to the
// configured storage backend.
type ReportService struct {
	CampaignRepo  *repository.CampaignRepository
	CandidateRepo *repository.CandidateRepository
	Storage       *StorageService
}

func NewReportService(campaignRepo *repository.CampaignRepository, candidateRepo *repository.CandidateRepository, storage *StorageService) *ReportService {
	return &ReportService{
		CampaignRepo:  campaignRepo,
		CandidateRepo: candidateRepo,
		Storage:       storage,
	}
}

type ExportResult struct {
	URL        string `json:"url"`
	Candidates int    `json:"candidates"`
}

// ExportCampaignCSV writes one row per scored candidate. Trait columns
// are the union of traits seen across the campaign, sorted by name so
// the layout is stable.
func (s *ReportService) ExportCampaignCSV(ctx context.Context, campaignID uint) (*ExportResult, error) {
	campaign, err := s.CampaignRepo.FindByID(campaignID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCampaignNotFound
		}
		return nil, err
	}

	candidates, err := s.CandidateRepo.ListByCampaign(campaignID)
	if err != nil {
		return nil, err
	}

	traitSet := make(map[string]bool)
	scores := make([]map[string]float64, len(candidates))
	for i, c := range candidates {
		var ts map[string]float64
		if len(c.TraitScores) > 0 {
			_ = json.Unmarshal(c.TraitScores, &ts)
		}
		scores[i] = ts
		for trait := range ts {
			traitSet[trait] = true
		}
	}
	traits := make([]string, 0, len(traitSet))
	for trait := range traitSet {
		traits = append(traits, trait)
	}
	sort.Strings(traits)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"name", "email", "experience_years", "overall_score", "overall_risk", "ko_triggered", "completed_at"}
	header = append(header, traits...)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i, c := range candidates {
		row := []string{
			c.Name,
			c.Email,
			strconv.Itoa(c.Experience),
			strconv.FormatFloat(c.OverallScore, 'f', 2, 64),
			c.OverallRisk,
			strconv.FormatBool(c.KOTriggered),
			c.CompletedAt.Format(time.RFC3339),
		}
		for _, trait := range traits {
			if v, ok := scores[i][trait]; ok {
				row = append(row, strconv.FormatFloat(v, 'f', 2, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("exports/campaign_%d_%s.csv", campaign.ID, time.Now().Format("20060102T150405"))
	url, err := s.Storage.Upload(ctx, filename, &buf, int64(buf.Len()), "text/csv")
	if err != nil {
		return nil, err
	}

	return &ExportResult{URL: url, Candidates: len(candidates)}, nil
}
