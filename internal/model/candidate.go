package model

import (
	"encoding/json"
	"time"
)

// Candidate is the scored result of a completed invite. Written exactly
// once per invite and never updated afterwards.
// swagger:model Candidate
type Candidate struct {
	BaseModel
	InviteID     uint            `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"inviteId"`
	CampaignID   uint            `gorm:"index;type:bigint unsigned;not null" json:"campaignId"`
	Name         string          `gorm:"size:100;not null" json:"name"`
	Email        string          `gorm:"size:100;not null" json:"email"`
	Experience   int             `gorm:"default:0" json:"experience"` // years
	Responses    json.RawMessage `gorm:"type:json" json:"responses"`
	TraitScores  json.RawMessage `gorm:"type:json" json:"traitScores"`
	OverallScore float64         `json:"overallScore"`
	OverallRisk  string          `gorm:"size:20" json:"overallRisk"`
	KOTriggered  bool            `gorm:"default:false" json:"koTriggered"`
	KOItems      json.RawMessage `gorm:"type:json" json:"koItems,omitempty"`
	CompletedAt  time.Time       `json:"completedAt"`
}

func (Candidate) TableName() string {
	return "candidates"
}
