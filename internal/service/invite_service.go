package service

import (
	"context"
	"culturefit_backend/internal/model"
	"culturefit_backend/internal/repository"
	"culturefit_backend/internal/util"
	"culturefit_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InviteService struct {
	Repo         *repository.InviteRepository
	CampaignRepo *repository.CampaignRepository
	Mail         *MailService
}

func NewInviteService(repo *repository.InviteRepository, campaignRepo *repository.CampaignRepository, mail *MailService) *InviteService {
	return &InviteService{Repo: repo, CampaignRepo: campaignRepo, Mail: mail}
}

type CreatedInvite struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type SkippedInvite struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

type InviteBatchResult struct {
	Created []CreatedInvite `json:"created"`
	Skipped []SkippedInvite `json:"skipped"`
}

// CreateInvites processes a batch of candidate emails for one
// campaign. Bad addresses and duplicates are skipped with a reason,
// never failing the whole batch; invitation mail is best effort.
func (s *InviteService) CreateInvites(ctx context.Context, campaignID uint, emails []string) (*InviteBatchResult, error) {
	if _, err := s.CampaignRepo.FindByID(campaignID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCampaignNotFound
		}
		return nil, err
	}

	result := &InviteBatchResult{
		Created: []CreatedInvite{},
		Skipped: []SkippedInvite{},
	}

	for _, rawEmail := range emails {
		email := util.NormalizeEmail(rawEmail)
		if !util.ValidEmail(email) {
			result.Skipped = append(result.Skipped, SkippedInvite{Email: email, Reason: "Invalid format"})
			continue
		}

		count, err := s.Repo.CountByCampaignAndEmail(campaignID, email)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedInvite{Email: email, Reason: err.Error()})
			continue
		}
		if count > 0 {
			result.Skipped = append(result.Skipped, SkippedInvite{Email: email, Reason: "Duplicate"})
			continue
		}

		token := uuid.New().String()
		inv := &model.Invite{
			CampaignID: campaignID,
			Email:      email,
			Token:      token,
			Status:     model.InviteSent,
		}
		if err := s.Repo.Create(inv); err != nil {
			result.Skipped = append(result.Skipped, SkippedInvite{Email: email, Reason: err.Error()})
			continue
		}
		result.Created = append(result.Created, CreatedInvite{Email: email, Token: token})

		if err := s.Mail.SendInvitation(ctx, email, token); err != nil {
			logger.Log.Warn("invitation email failed",
				zap.String("email", email),
				zap.Error(err))
		} else {
			_ = s.Repo.MarkSent(inv.ID)
		}
	}

	return result, nil
}

// Resend issues a fresh token for an incomplete invite. The previous
// token stops resolving once the row is updated. Completed invites are
// terminal and cannot be resent.
func (s *InviteService) Resend(ctx context.Context, inviteID uint) (*model.Invite, error) {
	inv, err := s.Repo.FindByID(inviteID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrInviteNotFound
		}
		return nil, err
	}
	if inv.CompletedAt != nil {
		return nil, util.ErrInviteCompleted
	}

	token := uuid.New().String()
	if err := s.Repo.Reissue(inv.ID, token); err != nil {
		return nil, err
	}

	if err := s.Mail.SendReminder(ctx, inv.Email, token); err != nil {
		logger.Log.Warn("reminder email failed",
			zap.String("email", inv.Email),
			zap.Error(err))
	}

	return s.Repo.FindByID(inv.ID)
}

func (s *InviteService) ListByCampaign(campaignID uint) ([]model.Invite, error) {
	return s.Repo.ListByCampaign(campaignID)
}
