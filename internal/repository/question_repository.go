package repository

import (
	"medquiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// FindIDsByChapter 返回章节内所有已审核题目的 ID
func (r *QuestionRepository) FindIDsByChapter(chapterID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Question{}).
		Where("chapter_id = ? AND status = ?", chapterID, model.QuestionApproved).
		Pluck("id", &ids).Error
	return ids, err
}

// FindIDsByTopics 返回知识点集合内所有已审核题目的 ID
func (r *QuestionRepository) FindIDsByTopics(topicIDs []uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Question{}).
		Where("topic_id IN ? AND status = ?", topicIDs, model.QuestionApproved).
		Pluck("id", &ids).Error
	return ids, err
}

// FindByIDsPreserveOrder 按给定顺序取回题目（含按 option_key 排序的选项）。
// 数据库 IN 查询不保证顺序，需要在内存里按入参重排。
func (r *QuestionRepository) FindByIDsPreserveOrder(ids []uint) ([]model.Question, error) {
	if len(ids) == 0 {
		return []model.Question{}, nil
	}

	var questions []model.Question
	err := r.DB.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("option_key ASC")
	}).Where("id IN ?", ids).Find(&questions).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	ordered := make([]model.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

// FindCorrectKey 查题目的正确选项；没有存正确答案时返回空串而非报错
func (r *QuestionRepository) FindCorrectKey(questionID uint) (string, error) {
	var ca model.CorrectAnswer
	err := r.DB.Where("question_id = ?", questionID).First(&ca).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return ca.OptionKey, nil
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("option_key ASC")
	}).First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Create 建题：题目、选项和正确答案在一个事务里落库
func (r *QuestionRepository) Create(q *model.Question, options []model.Option, correctKey string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(q).Error; err != nil {
			return err
		}
		for i := range options {
			options[i].QuestionID = q.ID
		}
		if err := tx.Create(&options).Error; err != nil {
			return err
		}
		return tx.Create(&model.CorrectAnswer{
			QuestionID: q.ID,
			OptionKey:  correctKey,
		}).Error
	})
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) UpdateStatus(id uint, status model.QuestionStatus) error {
	return r.DB.Model(&model.Question{}).Where("id = ?", id).Update("status", status).Error
}

// Delete 删题时一并清掉选项和正确答案
func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&model.CorrectAnswer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}

// ListByChapter 章节题目列表，支持分页和状态过滤
func (r *QuestionRepository) ListByChapter(chapterID uint, status model.QuestionStatus, page, limit int) ([]model.Question, int64, error) {
	query := r.DB.Model(&model.Question{}).Where("chapter_id = ?", chapterID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []model.Question
	offset := (page - 1) * limit
	err := query.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("option_key ASC")
	}).Offset(offset).Limit(limit).Find(&questions).Error

	return questions, total, err
}
