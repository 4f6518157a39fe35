package model

// Option 选项，key 为 a..h 中的一个字母
// swagger:model Option
type Option struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	OptionKey  string `gorm:"size:1;not null" json:"optionKey"`
	Content    string `gorm:"type:text" json:"content"`
}

func (Option) TableName() string {
	return "options"
}
