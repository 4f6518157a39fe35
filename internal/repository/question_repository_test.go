package repository

import (
	"testing"

	"medquiz_backend/internal/model"

	"gorm.io/gorm"
)

func createQuestion(t *testing.T, db *gorm.DB, chapterID uint, status model.QuestionStatus) uint {
	t.Helper()
	q := &model.Question{ChapterID: chapterID, QuestionText: "q", Status: status}
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}
	return q.ID
}

func TestFindIDsByChapterFiltersStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)

	approved := createQuestion(t, db, 1, model.QuestionApproved)
	createQuestion(t, db, 1, model.QuestionPending)
	createQuestion(t, db, 2, model.QuestionApproved)

	ids, err := repo.FindIDsByChapter(1)
	if err != nil {
		t.Fatalf("FindIDsByChapter: %v", err)
	}
	if len(ids) != 1 || ids[0] != approved {
		t.Fatalf("got %v, want [%d]", ids, approved)
	}
}

func TestFindByIDsPreserveOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)

	var ids []uint
	for i := 0; i < 4; i++ {
		id := createQuestion(t, db, 1, model.QuestionApproved)
		// 选项乱序写入，读出时按 option_key 排序
		db.Create(&model.Option{QuestionID: id, OptionKey: "b", Content: "乙"})
		db.Create(&model.Option{QuestionID: id, OptionKey: "a", Content: "甲"})
		ids = append(ids, id)
	}

	want := []uint{ids[2], ids[0], ids[3], ids[1]}
	questions, err := repo.FindByIDsPreserveOrder(want)
	if err != nil {
		t.Fatalf("FindByIDsPreserveOrder: %v", err)
	}
	if len(questions) != 4 {
		t.Fatalf("got %d questions, want 4", len(questions))
	}
	for i, q := range questions {
		if q.ID != want[i] {
			t.Fatalf("position %d: got %d, want %d", i, q.ID, want[i])
		}
		if len(q.Options) != 2 || q.Options[0].OptionKey != "a" || q.Options[1].OptionKey != "b" {
			t.Fatalf("question %d options not sorted: %+v", q.ID, q.Options)
		}
	}
}

func TestFindByIDsPreserveOrderEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)

	questions, err := repo.FindByIDsPreserveOrder(nil)
	if err != nil {
		t.Fatalf("FindByIDsPreserveOrder: %v", err)
	}
	if len(questions) != 0 {
		t.Fatalf("got %d, want empty slice", len(questions))
	}
}

func TestFindCorrectKeyMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)

	id := createQuestion(t, db, 1, model.QuestionApproved)

	// 没存正确答案时返回空串而非报错
	key, err := repo.FindCorrectKey(id)
	if err != nil {
		t.Fatalf("FindCorrectKey: %v", err)
	}
	if key != "" {
		t.Fatalf("got %q, want empty", key)
	}

	db.Create(&model.CorrectAnswer{QuestionID: id, OptionKey: "c"})
	key, err = repo.FindCorrectKey(id)
	if err != nil {
		t.Fatalf("FindCorrectKey: %v", err)
	}
	if key != "c" {
		t.Fatalf("got %q, want c", key)
	}
}
