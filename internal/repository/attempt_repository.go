package repository

import (
	"time"

	"medquiz_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) Save(attempt *model.QuizAttempt) error {
	return r.DB.Save(attempt).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.QuizAttempt, error) {
	var a model.QuizAttempt
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// AttemptedQuestionIDs 该用户答过的题目 ID 去重集合。
// chapterID 非空时只统计该章节的作答记录；按 topic 出题时传 nil，不做范围过滤。
func (r *AttemptRepository) AttemptedQuestionIDs(userID uint, chapterID *uint) ([]uint, error) {
	query := r.DB.Model(&model.QuizAnswer{}).
		Distinct("quiz_answers.question_id").
		Joins("JOIN quiz_attempts ON quiz_attempts.id = quiz_answers.attempt_id").
		Where("quiz_attempts.user_id = ? AND quiz_attempts.deleted_at IS NULL", userID)
	if chapterID != nil {
		query = query.Where("quiz_attempts.chapter_id = ?", *chapterID)
	}

	var ids []uint
	err := query.Pluck("quiz_answers.question_id", &ids).Error
	return ids, err
}

// ListGraded 范围内所有已判分的答题记录（score 非空）
func (r *AttemptRepository) ListGraded(chapterID *uint) ([]model.QuizAttempt, error) {
	query := r.DB.Where("score IS NOT NULL")
	if chapterID != nil {
		query = query.Where("chapter_id = ?", *chapterID)
	}

	var attempts []model.QuizAttempt
	err := query.Find(&attempts).Error
	return attempts, err
}

// ListByUser 用户的历史答题记录，新的在前
func (r *AttemptRepository) ListByUser(userID uint, page, limit int) ([]model.QuizAttempt, int64, error) {
	var total int64
	if err := r.DB.Model(&model.QuizAttempt{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var attempts []model.QuizAttempt
	offset := (page - 1) * limit
	err := r.DB.Where("user_id = ?", userID).
		Order("started_at DESC").
		Offset(offset).Limit(limit).
		Find(&attempts).Error
	return attempts, total, err
}

// DeleteByUser 清空用户的答题历史，chapterID 非空时只清该章节。
// 先删答案再删记录，两步放在同一事务里。返回删除的记录数。
func (r *AttemptRepository) DeleteByUser(userID uint, chapterID *uint) (int64, error) {
	var deleted int64
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&model.QuizAttempt{}).Where("user_id = ?", userID)
		if chapterID != nil {
			query = query.Where("chapter_id = ?", *chapterID)
		}

		var ids []uint
		if err := query.Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("attempt_id IN ?", ids).Delete(&model.QuizAnswer{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.QuizAttempt{}, ids)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}

// PurgeStale 删除超过保留期仍未提交的记录（无 score、无答案行），
// 对选题和排行榜都没有影响
func (r *AttemptRepository) PurgeStale(olderThan time.Time) (int64, error) {
	result := r.DB.Where("score IS NULL AND completed_at IS NULL AND started_at < ?", olderThan).
		Delete(&model.QuizAttempt{})
	return result.RowsAffected, result.Error
}
