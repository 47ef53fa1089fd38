package repository

import (
	"culturefit_backend/internal/model"
	"culturefit_backend/internal/util"
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InviteRepository struct {
	DB *gorm.DB
}

func NewInviteRepository(db *gorm.DB) *InviteRepository {
	return &InviteRepository{DB: db}
}

func (r *InviteRepository) Create(inv *model.Invite) error {
	return r.DB.Create(inv).Error
}

func (r *InviteRepository) FindByID(id uint) (*model.Invite, error) {
	var inv model.Invite
	err := r.DB.First(&inv, id).Error
	return &inv, err
}

func (r *InviteRepository) FindByToken(token string) (*model.Invite, error) {
	var inv model.Invite
	err := r.DB.Where("token = ?", token).First(&inv).Error
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrInviteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InviteRepository) ListByCampaign(campaignID uint) ([]model.Invite, error) {
	var invs []model.Invite
	err := r.DB.Where("campaign_id = ?", campaignID).Order("created_at asc").Find(&invs).Error
	return invs, err
}

func (r *InviteRepository) CountByCampaignAndEmail(campaignID uint, email string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Invite{}).
		Where("campaign_id = ? AND email = ?", campaignID, email).
		Count(&count).Error
	return count, err
}

// AppendPartial merges new page entries into the invite's accumulated
// partial responses. The merge runs under a row lock so concurrent
// saves for the same token never drop each other's entries. Returns
// the accumulated entry count.
func (r *InviteRepository) AppendPartial(inviteID uint, pageData []json.RawMessage) (int, error) {
	var total int
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var inv model.Invite
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inv, inviteID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return util.ErrInviteNotFound
			}
			return err
		}

		var partial []json.RawMessage
		if len(inv.PartialResponses) > 0 {
			if err := json.Unmarshal(inv.PartialResponses, &partial); err != nil {
				// Corrupt accumulator; start over rather than fail the save.
				partial = nil
			}
		}
		partial = append(partial, pageData...)

		merged, err := json.Marshal(partial)
		if err != nil {
			return err
		}
		total = len(partial)
		return tx.Model(&inv).Update("partial_responses", json.RawMessage(merged)).Error
	})
	return total, err
}

// Complete transitions the invite to the terminal completed state and
// persists the candidate record in one transaction. The state change
// is a conditional update on completed_at being NULL, so concurrent
// completion attempts produce at most one candidate record; the losers
// get ErrAlreadyCompleted.
func (r *InviteRepository) Complete(inviteID uint, rec *model.Candidate) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&model.Invite{}).
			Where("id = ? AND completed_at IS NULL", inviteID).
			Updates(map[string]interface{}{
				"status":       model.InviteCompleted,
				"completed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrAlreadyCompleted
		}

		rec.InviteID = inviteID
		rec.CompletedAt = now
		return tx.Create(rec).Error
	})
}

// Reissue replaces the invite token and restamps the send metadata.
// The old token stops resolving as soon as the row is updated.
func (r *InviteRepository) Reissue(inviteID uint, token string) error {
	now := time.Now()
	return r.DB.Model(&model.Invite{}).
		Where("id = ?", inviteID).
		Updates(map[string]interface{}{
			"token":        token,
			"status":       model.InviteResent,
			"resend_count": gorm.Expr("resend_count + 1"),
			"sent_at":      now,
		}).Error
}

func (r *InviteRepository) MarkSent(inviteID uint) error {
	return r.DB.Model(&model.Invite{}).
		Where("id = ?", inviteID).
		Update("sent_at", time.Now()).Error
}

func (r *InviteRepository) MarkOpened(inviteID uint) error {
	return r.DB.Model(&model.Invite{}).
		Where("id = ? AND opened_at IS NULL", inviteID).
		Update("opened_at", time.Now()).Error
}
