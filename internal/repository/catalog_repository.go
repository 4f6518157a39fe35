package repository

import (
	"medquiz_backend/internal/model"

	"gorm.io/gorm"
)

// CatalogRepository 课程体系（课程/学科/章节/知识点）的内容管理
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) CreateCourse(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CatalogRepository) UpdateCourse(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CatalogRepository) DeleteCourse(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}

func (r *CatalogRepository) ListCourses() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("is_active = ?", true).Order("id ASC").Find(&courses).Error
	return courses, err
}

func (r *CatalogRepository) CreateSubject(subject *model.Subject) error {
	return r.DB.Create(subject).Error
}

func (r *CatalogRepository) ListSubjects(courseID uint) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Where("course_id = ?", courseID).Order("`order` ASC, id ASC").Find(&subjects).Error
	return subjects, err
}

func (r *CatalogRepository) CreateChapter(chapter *model.Chapter) error {
	return r.DB.Create(chapter).Error
}

func (r *CatalogRepository) FindChapterByID(id uint) (*model.Chapter, error) {
	var chapter model.Chapter
	if err := r.DB.First(&chapter, id).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *CatalogRepository) ListChapters(subjectID uint) ([]model.Chapter, error) {
	var chapters []model.Chapter
	err := r.DB.Where("subject_id = ?", subjectID).Order("`order` ASC, id ASC").Find(&chapters).Error
	return chapters, err
}

func (r *CatalogRepository) CreateTopic(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *CatalogRepository) ListTopics(chapterID uint) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Where("chapter_id = ?", chapterID).Order("`order` ASC, id ASC").Find(&topics).Error
	return topics, err
}
