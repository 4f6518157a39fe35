package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"medquiz_backend/internal/config"
	"medquiz_backend/internal/repository"
	"medquiz_backend/internal/util"
	"medquiz_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RankingService 按范围（章节或全站）把已判分记录归并成
// 每人最高分的排行榜。榜单不落库，每次按需重算；redis 只作为
// 秒级 TTL 的结果缓存，提交和清档时主动失效。
type RankingService struct {
	AttemptRepo *repository.AttemptRepository
	UserRepo    *repository.UserRepository
	Redis       *redis.Client
	Cfg         *config.Config
}

func NewRankingService(attemptRepo *repository.AttemptRepository, userRepo *repository.UserRepository, rdb *redis.Client, cfg *config.Config) *RankingService {
	return &RankingService{
		AttemptRepo: attemptRepo,
		UserRepo:    userRepo,
		Redis:       rdb,
		Cfg:         cfg,
	}
}

type RankingEntry struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Score  int    `json:"score"`
}

type RankingsResponse struct {
	util.Envelope
	Top        []RankingEntry `json:"top"`
	TotalUsers int            `json:"totalUsers"`
	Rank       *int           `json:"rank"`
}

func cacheKey(chapterID *uint) string {
	if chapterID == nil {
		return "medquiz:rankings:global"
	}
	return fmt.Sprintf("medquiz:rankings:chapter:%d", *chapterID)
}

// leaderboard 完整榜单：每人取最高分，未判分的记录跳过，
// 按分数降序排列，同分按 user_id 升序保证顺序确定
func (s *RankingService) leaderboard(chapterID *uint) ([]RankingEntry, error) {
	if cached, ok := s.cacheGet(chapterID); ok {
		return cached, nil
	}

	attempts, err := s.AttemptRepo.ListGraded(chapterID)
	if err != nil {
		return nil, err
	}

	best := make(map[uint]int)
	for _, a := range attempts {
		if a.Score == nil {
			continue
		}
		if cur, ok := best[a.UserID]; !ok || *a.Score > cur {
			best[a.UserID] = *a.Score
		}
	}

	entries := make([]RankingEntry, 0, len(best))
	for userID, score := range best {
		entries = append(entries, RankingEntry{UserID: userID, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].UserID < entries[j].UserID
	})

	s.cacheSet(chapterID, entries)
	return entries, nil
}

// Rankings 排行榜查询：top 截断到 [1,100]，rank 为调用者在完整
// 榜单中的 1 起名次，没有已判分记录时为 null
func (s *RankingService) Rankings(chapterID *uint, limit int, userID *uint) (*RankingsResponse, error) {
	if limit <= 0 {
		limit = s.Cfg.Quiz.DefaultLimit
	}
	if limit > s.Cfg.Quiz.MaxLimit {
		limit = s.Cfg.Quiz.MaxLimit
	}

	entries, err := s.leaderboard(chapterID)
	if err != nil {
		return nil, err
	}

	var rank *int
	if userID != nil {
		for i, e := range entries {
			if e.UserID == *userID {
				r := i + 1
				rank = &r
				break
			}
		}
	}

	top := entries
	if len(top) > limit {
		top = top[:limit]
	}
	// 截断后复制一份再填昵称，避免写穿缓存里的切片
	display := make([]RankingEntry, len(top))
	copy(display, top)
	if err := s.fillNames(display); err != nil {
		return nil, err
	}

	return &RankingsResponse{
		Envelope:   util.Envelope{Success: true},
		Top:        display,
		TotalUsers: len(entries),
		Rank:       rank,
	}, nil
}

// RankForUser 提交后内联计算名次，范围取该次答题的章节（无章节则全站）
func (s *RankingService) RankForUser(chapterID *uint, userID uint) (*int, int, error) {
	entries, err := s.leaderboard(chapterID)
	if err != nil {
		return nil, 0, err
	}
	for i, e := range entries {
		if e.UserID == userID {
			r := i + 1
			return &r, len(entries), nil
		}
	}
	return nil, len(entries), nil
}

// Invalidate 范围内成绩变动后清掉缓存
func (s *RankingService) Invalidate(chapterID *uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), cacheKey(chapterID)).Err(); err != nil {
		logger.Log.Warn("rankings cache invalidate failed", zap.Error(err))
	}
}

func (s *RankingService) fillNames(entries []RankingEntry) error {
	if len(entries) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.UserID)
	}
	names, err := s.UserRepo.FindNamesByIDs(ids)
	if err != nil {
		return err
	}
	for i := range entries {
		entries[i].Name = names[entries[i].UserID]
	}
	return nil
}

func (s *RankingService) cacheGet(chapterID *uint) ([]RankingEntry, bool) {
	if s.Redis == nil || s.Cfg.Quiz.RankingsCacheSeconds <= 0 {
		return nil, false
	}
	raw, err := s.Redis.Get(context.Background(), cacheKey(chapterID)).Bytes()
	if err != nil {
		return nil, false
	}
	var entries []RankingEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (s *RankingService) cacheSet(chapterID *uint, entries []RankingEntry) {
	if s.Redis == nil || s.Cfg.Quiz.RankingsCacheSeconds <= 0 {
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	ttl := time.Duration(s.Cfg.Quiz.RankingsCacheSeconds) * time.Second
	if err := s.Redis.Set(context.Background(), cacheKey(chapterID), raw, ttl).Err(); err != nil {
		logger.Log.Warn("rankings cache set failed", zap.Error(err))
	}
}
