package model

import (
	"encoding/json"
	"time"
)

type InviteStatus string

const (
	InviteSent      InviteStatus = "sent"
	InviteResent    InviteStatus = "resent"
	InviteCompleted InviteStatus = "completed"
)

// Invite is the per-candidate, per-campaign token record that gates
// access to the assessment. Lifecycle: sent -> resent (repeatable) ->
// completed (terminal).
// swagger:model Invite
type Invite struct {
	BaseModel
	CampaignID       uint            `gorm:"index;type:bigint unsigned;not null" json:"campaignId"`
	Email            string          `gorm:"size:100;not null;index:idx_invites_campaign_email" json:"email"`
	Token            string          `gorm:"size:36;unique;not null" json:"token"`
	Status           InviteStatus    `gorm:"size:20;default:'sent'" json:"status"`
	PartialResponses json.RawMessage `gorm:"type:json" json:"partialResponses,omitempty"`
	ResendCount      int             `gorm:"default:0" json:"resendCount"`
	SentAt           *time.Time      `json:"sentAt,omitempty"`
	OpenedAt         *time.Time      `json:"openedAt,omitempty"`
	CompletedAt      *time.Time      `json:"completedAt,omitempty"`
}

func (Invite) TableName() string {
	return "invites"
}
