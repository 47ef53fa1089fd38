package model

// Question is immutable reference data for the trait questionnaire.
// The ascending id order defines the positional mapping between the
// questionnaire and a candidate's raw response array.
// swagger:model Question
type Question struct {
	BaseModel
	Text    string `gorm:"type:text;not null" json:"text"`
	Trait   string `gorm:"size:100;not null;index" json:"trait"`
	Reverse bool   `gorm:"default:false" json:"reverse"`
	// KOThreshold marks a knock-out question: a normalized response at
	// or below the threshold escalates risk to High. NULL disables it.
	KOThreshold *float64 `gorm:"column:ko_threshold" json:"koThreshold,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}
