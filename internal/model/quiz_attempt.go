package model

import "time"

// QuizAttempt 一次刷题会话。ChapterID 为空表示按知识点（topic）出题。
// CorrectAnswers/Score/CompletedAt 在判分前保持为空。
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	UserID           uint       `gorm:"index;type:bigint unsigned" json:"userId"`
	ChapterID        *uint      `gorm:"index;type:bigint unsigned" json:"chapterId,omitempty"`
	TotalQuestions   int        `json:"totalQuestions"`
	CorrectAnswers   *int       `json:"correctAnswers,omitempty"`
	Score            *int       `json:"score,omitempty"` // 0-100 整数百分比
	TimeTakenSeconds *int       `json:"timeTakenSeconds,omitempty"`
	StartedAt        time.Time  `json:"startedAt"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
