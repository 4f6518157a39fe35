package service

import (
	"strings"

	"medquiz_backend/internal/model"
	"medquiz_backend/internal/repository"
	"medquiz_backend/internal/util"
)

// ContentService 题库与课程体系的内容编审（管理员/学科专家侧）。
// 刷题引擎只读这里维护的数据。
type ContentService struct {
	QuestionRepo *repository.QuestionRepository
	CatalogRepo  *repository.CatalogRepository
}

func NewContentService(questionRepo *repository.QuestionRepository, catalogRepo *repository.CatalogRepository) *ContentService {
	return &ContentService{
		QuestionRepo: questionRepo,
		CatalogRepo:  catalogRepo,
	}
}

type QuestionOptionRequest struct {
	OptionKey string `json:"option_key"`
	Content   string `json:"content"`
}

type CreateQuestionRequest struct {
	SubjectID        uint                    `json:"subject_id"`
	ChapterID        uint                    `json:"chapter_id" binding:"required"`
	TopicID          *uint                   `json:"topic_id"`
	QuestionText     string                  `json:"question_text" binding:"required"`
	QuestionType     string                  `json:"question_type"`
	QuestionImageURL string                  `json:"question_image_url"`
	Explanation      string                  `json:"explanation"`
	Options          []QuestionOptionRequest `json:"options"`
	CorrectKey       string                  `json:"correct_key" binding:"required"`
}

func validOptionKey(key string) bool {
	return len(key) == 1 && key[0] >= 'a' && key[0] <= 'h'
}

// CreateQuestion 建题，选项 2-8 个，正确答案必须在选项之中
func (s *ContentService) CreateQuestion(req CreateQuestionRequest) (*model.Question, error) {
	correctKey := strings.ToLower(strings.TrimSpace(req.CorrectKey))
	if !validOptionKey(correctKey) {
		return nil, util.ErrBadOptionKey
	}

	options := make([]model.Option, 0, len(req.Options))
	seen := make(map[string]bool)
	correctListed := false
	for _, o := range req.Options {
		key := strings.ToLower(strings.TrimSpace(o.OptionKey))
		if !validOptionKey(key) || seen[key] {
			return nil, util.ErrBadOptionKey
		}
		seen[key] = true
		// 空白选项不落库，选项数量按有效内容计
		if strings.TrimSpace(o.Content) == "" {
			continue
		}
		if key == correctKey {
			correctListed = true
		}
		options = append(options, model.Option{OptionKey: key, Content: o.Content})
	}
	if len(options) < 2 || len(options) > 8 {
		return nil, util.ErrTooFewOptions
	}
	if !correctListed {
		return nil, util.ErrCorrectKeyNotListed
	}

	questionType := req.QuestionType
	if questionType == "" {
		questionType = "mcq"
	}

	question := &model.Question{
		SubjectID:        req.SubjectID,
		ChapterID:        req.ChapterID,
		TopicID:          req.TopicID,
		QuestionText:     req.QuestionText,
		QuestionType:     questionType,
		QuestionImageURL: req.QuestionImageURL,
		Explanation:      req.Explanation,
		Status:           model.QuestionPending,
	}
	if err := s.QuestionRepo.Create(question, options, correctKey); err != nil {
		return nil, err
	}
	return question, nil
}

// ReviewQuestion 审核：approved 的题才会进入出题候选集
func (s *ContentService) ReviewQuestion(id uint, approve bool) error {
	status := model.QuestionRejected
	if approve {
		status = model.QuestionApproved
	}
	return s.QuestionRepo.UpdateStatus(id, status)
}

func (s *ContentService) DeleteQuestion(id uint) error {
	return s.QuestionRepo.Delete(id)
}

func (s *ContentService) ListQuestions(chapterID uint, status model.QuestionStatus, page, limit int) ([]model.Question, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.QuestionRepo.ListByChapter(chapterID, status, page, limit)
}

func (s *ContentService) CreateCourse(course *model.Course) error {
	return s.CatalogRepo.CreateCourse(course)
}

func (s *ContentService) ListCourses() ([]model.Course, error) {
	return s.CatalogRepo.ListCourses()
}

func (s *ContentService) CreateSubject(subject *model.Subject) error {
	return s.CatalogRepo.CreateSubject(subject)
}

func (s *ContentService) ListSubjects(courseID uint) ([]model.Subject, error) {
	return s.CatalogRepo.ListSubjects(courseID)
}

func (s *ContentService) CreateChapter(chapter *model.Chapter) error {
	return s.CatalogRepo.CreateChapter(chapter)
}

func (s *ContentService) ListChapters(subjectID uint) ([]model.Chapter, error) {
	return s.CatalogRepo.ListChapters(subjectID)
}

func (s *ContentService) CreateTopic(topic *model.Topic) error {
	return s.CatalogRepo.CreateTopic(topic)
}

func (s *ContentService) ListTopics(chapterID uint) ([]model.Topic, error) {
	return s.CatalogRepo.ListTopics(chapterID)
}
