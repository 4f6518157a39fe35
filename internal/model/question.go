package model

type QuestionStatus string

const (
	QuestionPending  QuestionStatus = "pending"
	QuestionApproved QuestionStatus = "approved"
	QuestionRejected QuestionStatus = "rejected"
)

// swagger:model Question
type Question struct {
	BaseModel
	SubjectID        uint           `gorm:"index;type:bigint unsigned" json:"subjectId"`
	ChapterID        uint           `gorm:"index;type:bigint unsigned" json:"chapterId"`
	TopicID          *uint          `gorm:"index;type:bigint unsigned" json:"topicId,omitempty"`
	QuestionText     string         `gorm:"type:text;not null" json:"questionText"`
	QuestionType     string         `gorm:"size:50;default:'mcq'" json:"questionType"`
	QuestionImageURL string         `gorm:"size:255" json:"questionImageUrl"`
	Explanation      string         `gorm:"type:text" json:"explanation"` // 答案解析，出题接口不返回
	Status           QuestionStatus `gorm:"size:20;default:'pending';index" json:"status"`

	Options []Option `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}
