package model

// Campaign groups the invites sent out for one hiring round.
// swagger:model Campaign
type Campaign struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	CreatorID   uint   `gorm:"index;type:bigint unsigned" json:"creatorId"`
}

func (Campaign) TableName() string {
	return "campaigns"
}
