package model

// swagger:model Topic
type Topic struct {
	BaseModel
	ChapterID uint   `gorm:"index;type:bigint unsigned" json:"chapterId"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Order     int    `gorm:"default:0" json:"order"`
}

func (Topic) TableName() string {
	return "topics"
}
