package repository

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"medquiz_backend/internal/model"
	"medquiz_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func uintPtr(v uint) *uint { return &v }

func createAttempt(t *testing.T, db *gorm.DB, userID uint, chapterID *uint, questionIDs ...uint) *model.QuizAttempt {
	t.Helper()
	attempt := &model.QuizAttempt{UserID: userID, ChapterID: chapterID, TotalQuestions: len(questionIDs), StartedAt: time.Now()}
	if err := db.Create(attempt).Error; err != nil {
		t.Fatalf("create attempt: %v", err)
	}
	for _, qid := range questionIDs {
		answer := &model.QuizAnswer{AttemptID: attempt.ID, QuestionID: qid, SelectedKey: "a"}
		if err := db.Create(answer).Error; err != nil {
			t.Fatalf("create answer: %v", err)
		}
	}
	return attempt
}

func TestAttemptedQuestionIDsScope(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttemptRepository(db)
	const user = uint(1)

	createAttempt(t, db, user, uintPtr(1), 10, 11)
	createAttempt(t, db, user, nil, 12)
	createAttempt(t, db, 2, uintPtr(1), 13) // 别人的记录不算

	// 章节模式只统计该章节的记录
	ids, err := repo.AttemptedQuestionIDs(user, uintPtr(1))
	if err != nil {
		t.Fatalf("AttemptedQuestionIDs chapter: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("chapter scoped: got %v, want [10 11]", ids)
	}

	// 不限范围时取全部记录
	ids, err = repo.AttemptedQuestionIDs(user, nil)
	if err != nil {
		t.Fatalf("AttemptedQuestionIDs global: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("global: got %v, want 3 ids", ids)
	}
}

func TestAttemptedQuestionIDsDeduplicates(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttemptRepository(db)

	createAttempt(t, db, 1, nil, 10)
	createAttempt(t, db, 1, nil, 10)

	ids, err := repo.AttemptedQuestionIDs(1, nil)
	if err != nil {
		t.Fatalf("AttemptedQuestionIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != 10 {
		t.Fatalf("got %v, want deduplicated [10]", ids)
	}
}

func TestDeleteByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttemptRepository(db)
	const user = uint(1)

	a1 := createAttempt(t, db, user, uintPtr(1), 10)
	createAttempt(t, db, user, uintPtr(2), 11)
	other := createAttempt(t, db, 2, uintPtr(1), 12)

	// 限定章节：只清章节 1
	deleted, err := repo.DeleteByUser(user, uintPtr(1))
	if err != nil {
		t.Fatalf("DeleteByUser chapter: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted=%d, want 1", deleted)
	}
	var count int64
	db.Model(&model.QuizAnswer{}).Where("attempt_id = ?", a1.ID).Count(&count)
	if count != 0 {
		t.Fatalf("answers of deleted attempt survive: %d", count)
	}

	// 不限章节：清掉剩余全部
	deleted, err = repo.DeleteByUser(user, nil)
	if err != nil {
		t.Fatalf("DeleteByUser all: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted=%d, want 1", deleted)
	}

	// 再清一次是空操作
	deleted, err = repo.DeleteByUser(user, nil)
	if err != nil {
		t.Fatalf("DeleteByUser idempotent: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("deleted=%d, want 0", deleted)
	}

	// 别人的记录不受影响
	if _, err := repo.FindByID(other.ID); err != nil {
		t.Fatalf("foreign attempt removed: %v", err)
	}
}

func TestDeleteByUserClearsAttemptedSet(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttemptRepository(db)

	createAttempt(t, db, 1, nil, 10, 11)
	if _, err := repo.DeleteByUser(1, nil); err != nil {
		t.Fatalf("DeleteByUser: %v", err)
	}

	ids, err := repo.AttemptedQuestionIDs(1, nil)
	if err != nil {
		t.Fatalf("AttemptedQuestionIDs: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("attempted set survives reset: %v", ids)
	}
}

func TestListGraded(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttemptRepository(db)

	score := 80
	now := time.Now()
	db.Create(&model.QuizAttempt{UserID: 1, ChapterID: uintPtr(1), Score: &score, StartedAt: now, CompletedAt: &now})
	db.Create(&model.QuizAttempt{UserID: 1, ChapterID: uintPtr(2), Score: &score, StartedAt: now, CompletedAt: &now})
	db.Create(&model.QuizAttempt{UserID: 2, ChapterID: uintPtr(1), StartedAt: now}) // 未判分

	attempts, err := repo.ListGraded(uintPtr(1))
	if err != nil {
		t.Fatalf("ListGraded chapter: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("chapter scoped: got %d, want 1", len(attempts))
	}

	attempts, err = repo.ListGraded(nil)
	if err != nil {
		t.Fatalf("ListGraded global: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("global: got %d, want 2", len(attempts))
	}
}

func TestPurgeStale(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttemptRepository(db)

	old := time.Now().AddDate(0, 0, -60)
	recent := time.Now()
	score := 50

	db.Create(&model.QuizAttempt{UserID: 1, StartedAt: old})                                       // 过期未提交，应清理
	db.Create(&model.QuizAttempt{UserID: 1, StartedAt: recent})                                    // 未过期，保留
	db.Create(&model.QuizAttempt{UserID: 1, Score: &score, StartedAt: old, CompletedAt: &recent}) // 已判分，保留

	purged, err := repo.PurgeStale(time.Now().AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("PurgeStale: %v", err)
	}
	if purged != 1 {
		t.Fatalf("purged=%d, want 1", purged)
	}

	var count int64
	db.Model(&model.QuizAttempt{}).Count(&count)
	if count != 2 {
		t.Fatalf("remaining=%d, want 2", count)
	}
}
