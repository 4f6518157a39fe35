package service

import (
	"testing"
	"time"

	"medquiz_backend/internal/model"
	"medquiz_backend/internal/repository"

	"gorm.io/gorm"
)

func newRankingEnv(t *testing.T) (*RankingService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := newTestConfig()
	attemptRepo := repository.NewAttemptRepository(db)
	userRepo := repository.NewUserRepository(db)
	return NewRankingService(attemptRepo, userRepo, nil, cfg), db
}

func seedGraded(t *testing.T, db *gorm.DB, userID uint, chapterID *uint, score int) {
	t.Helper()
	now := time.Now()
	correct := score / 10
	attempt := &model.QuizAttempt{
		UserID:         userID,
		ChapterID:      chapterID,
		TotalQuestions: 10,
		CorrectAnswers: &correct,
		Score:          &score,
		StartedAt:      now,
		CompletedAt:    &now,
	}
	if err := db.Create(attempt).Error; err != nil {
		t.Fatalf("seed graded attempt: %v", err)
	}
}

func seedUngraded(t *testing.T, db *gorm.DB, userID uint, chapterID *uint) {
	t.Helper()
	attempt := &model.QuizAttempt{UserID: userID, ChapterID: chapterID, TotalQuestions: 10, StartedAt: time.Now()}
	if err := db.Create(attempt).Error; err != nil {
		t.Fatalf("seed ungraded attempt: %v", err)
	}
}

func TestRankingsBestScorePerUser(t *testing.T) {
	svc, db := newRankingEnv(t)
	seedGraded(t, db, 1, nil, 60)
	seedGraded(t, db, 1, nil, 80)
	seedGraded(t, db, 2, nil, 70)
	seedUngraded(t, db, 3, nil)

	resp, err := svc.Rankings(nil, 10, nil)
	if err != nil {
		t.Fatalf("Rankings: %v", err)
	}
	// 每人只取最高分，未判分的记录不参与
	if resp.TotalUsers != 2 {
		t.Fatalf("totalUsers=%d, want 2", resp.TotalUsers)
	}
	if len(resp.Top) != 2 {
		t.Fatalf("top len=%d, want 2", len(resp.Top))
	}
	if resp.Top[0].UserID != 1 || resp.Top[0].Score != 80 {
		t.Fatalf("top[0]=%+v, want user 1 score 80", resp.Top[0])
	}
	if resp.Top[1].UserID != 2 || resp.Top[1].Score != 70 {
		t.Fatalf("top[1]=%+v, want user 2 score 70", resp.Top[1])
	}
	if resp.Rank != nil {
		t.Fatal("anonymous query must not carry a rank")
	}
}

func TestRankingsTieBreakByUserID(t *testing.T) {
	svc, db := newRankingEnv(t)
	seedGraded(t, db, 2, nil, 70)
	seedGraded(t, db, 1, nil, 70)

	resp, err := svc.Rankings(nil, 10, nil)
	if err != nil {
		t.Fatalf("Rankings: %v", err)
	}
	if resp.Top[0].UserID != 1 || resp.Top[1].UserID != 2 {
		t.Fatalf("tie break broken: %+v", resp.Top)
	}
}

func TestRankingsLimitAndRank(t *testing.T) {
	svc, db := newRankingEnv(t)
	for i := uint(1); i <= 5; i++ {
		seedGraded(t, db, i, nil, int(60-i*10)) // user 1 → 50 … user 5 → 10
	}

	caller := uint(5)
	resp, err := svc.Rankings(nil, 2, &caller)
	if err != nil {
		t.Fatalf("Rankings: %v", err)
	}
	if len(resp.Top) != 2 || resp.TotalUsers != 5 {
		t.Fatalf("got top=%d totalUsers=%d, want 2/5", len(resp.Top), resp.TotalUsers)
	}
	// 名次按完整榜单算，不受 top 截断影响
	if resp.Rank == nil || *resp.Rank != 5 {
		t.Fatalf("rank=%v, want 5", resp.Rank)
	}

	stranger := uint(42)
	resp, err = svc.Rankings(nil, 2, &stranger)
	if err != nil {
		t.Fatalf("Rankings: %v", err)
	}
	if resp.Rank != nil {
		t.Fatal("user without graded attempts must have null rank")
	}
}

func TestRankingsLimitClamping(t *testing.T) {
	svc, db := newRankingEnv(t)
	svc.Cfg.Quiz.DefaultLimit = 3
	svc.Cfg.Quiz.MaxLimit = 4
	for i := uint(1); i <= 6; i++ {
		seedGraded(t, db, i, nil, int(i*10))
	}

	resp, err := svc.Rankings(nil, 0, nil)
	if err != nil {
		t.Fatalf("Rankings: %v", err)
	}
	if len(resp.Top) != 3 {
		t.Fatalf("default limit: top=%d, want 3", len(resp.Top))
	}

	resp, err = svc.Rankings(nil, 1000, nil)
	if err != nil {
		t.Fatalf("Rankings: %v", err)
	}
	if len(resp.Top) != 4 {
		t.Fatalf("clamped limit: top=%d, want 4", len(resp.Top))
	}
}

func TestRankingsChapterScope(t *testing.T) {
	svc, db := newRankingEnv(t)
	seedGraded(t, db, 1, uintPtr(1), 90)
	seedGraded(t, db, 2, nil, 95)

	scoped, err := svc.Rankings(uintPtr(1), 10, nil)
	if err != nil {
		t.Fatalf("Rankings chapter: %v", err)
	}
	if scoped.TotalUsers != 1 || scoped.Top[0].UserID != 1 {
		t.Fatalf("chapter scope leaked: %+v", scoped.Top)
	}

	// 全站榜单包含所有已判分记录，含章节内的
	global, err := svc.Rankings(nil, 10, nil)
	if err != nil {
		t.Fatalf("Rankings global: %v", err)
	}
	if global.TotalUsers != 2 || global.Top[0].UserID != 2 || global.Top[1].UserID != 1 {
		t.Fatalf("global scope wrong: %+v", global.Top)
	}
}

func TestRankingsFillsNames(t *testing.T) {
	svc, db := newRankingEnv(t)
	if err := db.Create(&model.User{Name: "张三", Email: "zs@example.com", Password: "x"}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	seedGraded(t, db, 1, nil, 80)
	seedGraded(t, db, 2, nil, 60) // 无对应用户，昵称留空

	resp, err := svc.Rankings(nil, 10, nil)
	if err != nil {
		t.Fatalf("Rankings: %v", err)
	}
	if resp.Top[0].Name != "张三" {
		t.Fatalf("top[0].Name=%q, want 张三", resp.Top[0].Name)
	}
	if resp.Top[1].Name != "" {
		t.Fatalf("top[1].Name=%q, want empty", resp.Top[1].Name)
	}
}

func TestRankForUser(t *testing.T) {
	svc, db := newRankingEnv(t)
	seedGraded(t, db, 1, nil, 80)
	seedGraded(t, db, 2, nil, 60)

	rank, outOf, err := svc.RankForUser(nil, 2)
	if err != nil {
		t.Fatalf("RankForUser: %v", err)
	}
	if rank == nil || *rank != 2 || outOf != 2 {
		t.Fatalf("got rank=%v outOf=%d, want 2/2", rank, outOf)
	}

	rank, outOf, err = svc.RankForUser(nil, 42)
	if err != nil {
		t.Fatalf("RankForUser: %v", err)
	}
	if rank != nil || outOf != 2 {
		t.Fatalf("unknown user: rank=%v outOf=%d, want nil/2", rank, outOf)
	}
}

func TestEmptyLeaderboard(t *testing.T) {
	svc, _ := newRankingEnv(t)

	caller := uint(1)
	resp, err := svc.Rankings(nil, 10, &caller)
	if err != nil {
		t.Fatalf("Rankings: %v", err)
	}
	if len(resp.Top) != 0 || resp.TotalUsers != 0 || resp.Rank != nil {
		t.Fatalf("empty board: %+v", resp)
	}
}
