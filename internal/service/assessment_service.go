package service

import (
	"culturefit_backend/internal/model"
	"culturefit_backend/internal/scoring"
	"culturefit_backend/internal/util"
	"encoding/json"
	"math"
)

// Store interfaces are deliberately narrow: the completion flow only
// needs token lookup, the atomic append and the atomic complete, so
// handlers can be exercised against in-memory fakes.

type QuestionStore interface {
	ListOrdered() ([]model.Question, error)
}

type InviteStore interface {
	FindByToken(token string) (*model.Invite, error)
	AppendPartial(inviteID uint, pageData []json.RawMessage) (int, error)
	Complete(inviteID uint, rec *model.Candidate) error
	MarkOpened(inviteID uint) error
}

type AssessmentService struct {
	Questions QuestionStore
	Invites   InviteStore
}

func NewAssessmentService(questions QuestionStore, invites InviteStore) *AssessmentService {
	return &AssessmentService{Questions: questions, Invites: invites}
}

type CandidateInfo struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Experience int    `json:"experience"`
}

type CompleteRequest struct {
	Token          string        `json:"token" binding:"required"`
	FinalResponses []interface{} `json:"final_responses" binding:"required"`
	CandidateInfo  CandidateInfo `json:"candidate_info" binding:"required"`
}

type CompletionResult struct {
	OverallScore float64          `json:"overall_score"`
	OverallRisk  scoring.RiskTier `json:"overall_risk"`
}

// CandidateQuestion is the candidate-facing view of a question. Trait
// labels, reverse flags and knock-out thresholds stay server-side.
type CandidateQuestion struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// QuestionsForToken returns the ordered questionnaire for a live
// invite and stamps the first-open time.
func (s *AssessmentService) QuestionsForToken(token string) ([]CandidateQuestion, error) {
	inv, err := s.Invites.FindByToken(token)
	if err != nil {
		return nil, err
	}
	if inv.CompletedAt != nil {
		return nil, util.ErrAlreadyCompleted
	}

	// Best effort; an open stamp must never block the questionnaire.
	_ = s.Invites.MarkOpened(inv.ID)

	qs, err := s.Questions.ListOrdered()
	if err != nil {
		return nil, err
	}

	out := make([]CandidateQuestion, len(qs))
	for i, q := range qs {
		out[i] = CandidateQuestion{ID: q.ID, Text: q.Text}
	}
	return out, nil
}

// SavePartial appends one page of responses to the invite's
// accumulator and returns the accumulated count.
func (s *AssessmentService) SavePartial(token string, pageData []json.RawMessage) (int, error) {
	inv, err := s.Invites.FindByToken(token)
	if err != nil {
		return 0, err
	}
	if inv.CompletedAt != nil {
		return 0, util.ErrAlreadyCompleted
	}
	return s.Invites.AppendPartial(inv.ID, pageData)
}

// Complete scores the final responses and persists the candidate
// record, transitioning the invite to its terminal state. The store
// guarantees at-most-one record per invite under concurrent retries.
func (s *AssessmentService) Complete(req CompleteRequest) (*CompletionResult, error) {
	inv, err := s.Invites.FindByToken(req.Token)
	if err != nil {
		return nil, err
	}
	if inv.CompletedAt != nil {
		return nil, util.ErrAlreadyCompleted
	}

	questions, err := s.Questions.ListOrdered()
	if err != nil {
		return nil, err
	}

	sq := make([]scoring.Question, len(questions))
	for i, q := range questions {
		sq[i] = scoring.Question{
			ID:          q.ID,
			Trait:       q.Trait,
			Reverse:     q.Reverse,
			KOThreshold: q.KOThreshold,
		}
	}

	result, err := scoring.Score(sq, scoring.CoerceResponses(req.FinalResponses))
	if err != nil {
		return nil, err
	}

	responsesJSON, err := json.Marshal(req.FinalResponses)
	if err != nil {
		return nil, err
	}
	traitScoresJSON, err := json.Marshal(result.TraitScores)
	if err != nil {
		return nil, err
	}
	koItemsJSON, err := json.Marshal(result.KOItems)
	if err != nil {
		return nil, err
	}

	rec := &model.Candidate{
		CampaignID:   inv.CampaignID,
		Name:         req.CandidateInfo.Name,
		Email:        util.NormalizeEmail(req.CandidateInfo.Email),
		Experience:   req.CandidateInfo.Experience,
		Responses:    responsesJSON,
		TraitScores:  traitScoresJSON,
		OverallScore: math.Round(result.OverallScore*100) / 100,
		OverallRisk:  string(result.OverallRisk),
		KOTriggered:  result.KOTriggered,
		KOItems:      koItemsJSON,
	}

	if err := s.Invites.Complete(inv.ID, rec); err != nil {
		return nil, err
	}

	return &CompletionResult{
		OverallScore: result.OverallScore,
		OverallRisk:  result.OverallRisk,
	}, nil
}
