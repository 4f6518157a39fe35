package service

import (
	"testing"

	"medquiz_backend/internal/model"
	"medquiz_backend/internal/repository"
	"medquiz_backend/internal/util"

	"gorm.io/gorm"
)

func newContentEnv(t *testing.T) (*ContentService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	questionRepo := repository.NewQuestionRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	return NewContentService(questionRepo, catalogRepo), db
}

func optionsABCD() []QuestionOptionRequest {
	return []QuestionOptionRequest{
		{OptionKey: "a", Content: "甲"},
		{OptionKey: "b", Content: "乙"},
		{OptionKey: "c", Content: "丙"},
		{OptionKey: "d", Content: "丁"},
	}
}

func TestCreateQuestion(t *testing.T) {
	svc, db := newContentEnv(t)

	q, err := svc.CreateQuestion(CreateQuestionRequest{
		ChapterID:    1,
		QuestionText: "下列哪项正确？",
		Options:      optionsABCD(),
		CorrectKey:   " B ", // 大小写和空白都会被归一
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if q.Status != model.QuestionPending {
		t.Fatalf("status=%q, want pending", q.Status)
	}
	if q.QuestionType != "mcq" {
		t.Fatalf("type=%q, want mcq default", q.QuestionType)
	}

	var ca model.CorrectAnswer
	if err := db.Where("question_id = ?", q.ID).First(&ca).Error; err != nil {
		t.Fatalf("correct answer not stored: %v", err)
	}
	if ca.OptionKey != "b" {
		t.Fatalf("correct key=%q, want normalized b", ca.OptionKey)
	}
	var optionCount int64
	db.Model(&model.Option{}).Where("question_id = ?", q.ID).Count(&optionCount)
	if optionCount != 4 {
		t.Fatalf("options stored=%d, want 4", optionCount)
	}
}

func TestCreateQuestionValidation(t *testing.T) {
	svc, _ := newContentEnv(t)

	cases := []struct {
		name string
		req  CreateQuestionRequest
		want error
	}{
		{
			name: "bad correct key",
			req:  CreateQuestionRequest{ChapterID: 1, QuestionText: "q", Options: optionsABCD(), CorrectKey: "z"},
			want: util.ErrBadOptionKey,
		},
		{
			name: "bad option key",
			req: CreateQuestionRequest{ChapterID: 1, QuestionText: "q", CorrectKey: "a",
				Options: []QuestionOptionRequest{{OptionKey: "a", Content: "x"}, {OptionKey: "1", Content: "y"}}},
			want: util.ErrBadOptionKey,
		},
		{
			name: "duplicate option key",
			req: CreateQuestionRequest{ChapterID: 1, QuestionText: "q", CorrectKey: "a",
				Options: []QuestionOptionRequest{{OptionKey: "a", Content: "x"}, {OptionKey: "a", Content: "y"}}},
			want: util.ErrBadOptionKey,
		},
		{
			name: "too few non-empty options",
			req: CreateQuestionRequest{ChapterID: 1, QuestionText: "q", CorrectKey: "a",
				Options: []QuestionOptionRequest{{OptionKey: "a", Content: "x"}, {OptionKey: "b", Content: "  "}}},
			want: util.ErrTooFewOptions,
		},
		{
			name: "correct key not among options",
			req: CreateQuestionRequest{ChapterID: 1, QuestionText: "q", CorrectKey: "d",
				Options: []QuestionOptionRequest{{OptionKey: "a", Content: "x"}, {OptionKey: "b", Content: "y"}}},
			want: util.ErrCorrectKeyNotListed,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateQuestion(tc.req); err != tc.want {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestReviewQuestionGatesSelection(t *testing.T) {
	svc, _ := newContentEnv(t)

	q, err := svc.CreateQuestion(CreateQuestionRequest{
		ChapterID:    7,
		QuestionText: "q",
		Options:      optionsABCD(),
		CorrectKey:   "a",
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	// pending 不进入出题候选集
	ids, err := svc.QuestionRepo.FindIDsByChapter(7)
	if err != nil {
		t.Fatalf("FindIDsByChapter: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("pending question already selectable: %v", ids)
	}

	if err := svc.ReviewQuestion(q.ID, true); err != nil {
		t.Fatalf("ReviewQuestion: %v", err)
	}
	ids, err = svc.QuestionRepo.FindIDsByChapter(7)
	if err != nil {
		t.Fatalf("FindIDsByChapter: %v", err)
	}
	if len(ids) != 1 || ids[0] != q.ID {
		t.Fatalf("approved question missing from candidates: %v", ids)
	}

	if err := svc.ReviewQuestion(q.ID, false); err != nil {
		t.Fatalf("ReviewQuestion reject: %v", err)
	}
	ids, _ = svc.QuestionRepo.FindIDsByChapter(7)
	if len(ids) != 0 {
		t.Fatalf("rejected question still selectable: %v", ids)
	}
}

func TestDeleteQuestionCascades(t *testing.T) {
	svc, db := newContentEnv(t)

	q, err := svc.CreateQuestion(CreateQuestionRequest{
		ChapterID:    1,
		QuestionText: "q",
		Options:      optionsABCD(),
		CorrectKey:   "a",
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if err := svc.DeleteQuestion(q.ID); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}

	var optionCount, answerCount int64
	db.Model(&model.Option{}).Where("question_id = ?", q.ID).Count(&optionCount)
	db.Model(&model.CorrectAnswer{}).Where("question_id = ?", q.ID).Count(&answerCount)
	if optionCount != 0 || answerCount != 0 {
		t.Fatalf("cascade failed: options=%d answers=%d", optionCount, answerCount)
	}
}
