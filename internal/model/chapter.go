package model

// swagger:model Chapter
type Chapter struct {
	BaseModel
	SubjectID uint   `gorm:"index;type:bigint unsigned" json:"subjectId"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Order     int    `gorm:"default:0" json:"order"`
}

func (Chapter) TableName() string {
	return "chapters"
}
