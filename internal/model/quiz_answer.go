package model

// QuizAnswer 一次提交中单题的判分记录。CorrectKey 是判分时的快照，
// 题库后续修改不影响历史记录；无正确答案时为空串。
type QuizAnswer struct {
	BaseModel
	AttemptID   uint   `gorm:"index;type:bigint unsigned" json:"attemptId"`
	QuestionID  uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	SelectedKey string `gorm:"size:1" json:"selectedKey"`
	CorrectKey  string `gorm:"size:1" json:"correctKey"`
	IsCorrect   bool   `gorm:"default:false" json:"isCorrect"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}
