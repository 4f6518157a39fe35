package model

// CorrectAnswer 与题目一一对应的正确选项，出题接口绝不下发
type CorrectAnswer struct {
	BaseModel
	QuestionID uint   `gorm:"uniqueIndex;type:bigint unsigned" json:"questionId"`
	OptionKey  string `gorm:"size:1;not null" json:"optionKey"`
}

func (CorrectAnswer) TableName() string {
	return "correct_answers"
}
