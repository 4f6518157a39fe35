package model

// swagger:model Course
type Course struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"size:255" json:"imageUrl"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
}

func (Course) TableName() string {
	return "courses"
}
