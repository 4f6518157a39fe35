package model

// swagger:model Subject
type Subject struct {
	BaseModel
	CourseID uint   `gorm:"index;type:bigint unsigned" json:"courseId"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Order    int    `gorm:"default:0" json:"order"`
}

func (Subject) TableName() string {
	return "subjects"
}
