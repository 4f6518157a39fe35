package service

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"medquiz_backend/internal/config"
	"medquiz_backend/internal/model"
	"medquiz_backend/internal/repository"
	"medquiz_backend/internal/util"

	"gorm.io/gorm"
)

type QuizService struct {
	QuestionRepo *repository.QuestionRepository
	AttemptRepo  *repository.AttemptRepository
	Ranking      *RankingService
	DB           *gorm.DB
	Cfg          *config.Config

	// rand.Rand 非并发安全，洗牌时加锁
	mu  sync.Mutex
	rng *rand.Rand
}

func NewQuizService(questionRepo *repository.QuestionRepository, attemptRepo *repository.AttemptRepository, ranking *RankingService, cfg *config.Config, db *gorm.DB) *QuizService {
	return &QuizService{
		QuestionRepo: questionRepo,
		AttemptRepo:  attemptRepo,
		Ranking:      ranking,
		DB:           db,
		Cfg:          cfg,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRandSeed 固定随机种子，出题顺序可复现（测试用）
func (s *QuizService) SetRandSeed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rand.New(rand.NewSource(seed))
}

func (s *QuizService) shuffle(ids []uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
}

type StartQuizRequest struct {
	ChapterID *uint  `json:"chapter_id"`
	TopicIDs  []uint `json:"topic_ids"`
	Limit     int    `json:"limit"`
}

type OptionPayload struct {
	OptionKey string `json:"option_key"`
	Content   string `json:"content"`
}

// QuestionPayload 下发给客户端的题目，不含正确答案和解析
type QuestionPayload struct {
	ID               uint            `json:"id"`
	QuestionText     string          `json:"question_text"`
	QuestionType     string          `json:"question_type"`
	QuestionImageURL string          `json:"question_image_url"`
	Options          []OptionPayload `json:"options"`
}

type StartQuizResponse struct {
	util.Envelope
	AttemptID uint              `json:"attempt_id"`
	Total     int               `json:"total"`
	Data      []QuestionPayload `json:"data"`
}

// StartQuiz 在章节或知识点范围内随机出题，优先未做过的题，
// 不够时再用做过的题补足，同时建一条新的答题记录。
func (s *QuizService) StartQuiz(userID uint, req StartQuizRequest) (*StartQuizResponse, error) {
	if req.ChapterID == nil && len(req.TopicIDs) == 0 {
		return nil, util.ErrScopeRequired
	}
	if req.ChapterID != nil && len(req.TopicIDs) > 0 {
		return nil, util.ErrScopeAmbiguous
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.Cfg.Quiz.DefaultLimit
	}
	if limit > s.Cfg.Quiz.MaxLimit {
		limit = s.Cfg.Quiz.MaxLimit
	}

	var candidates []uint
	var err error
	if req.ChapterID != nil {
		candidates, err = s.QuestionRepo.FindIDsByChapter(*req.ChapterID)
	} else {
		candidates, err = s.QuestionRepo.FindIDsByTopics(req.TopicIDs)
	}
	if err != nil {
		return nil, err
	}

	// 章节模式下只统计该章节的作答记录；知识点模式不过滤范围
	attemptedIDs, err := s.AttemptRepo.AttemptedQuestionIDs(userID, req.ChapterID)
	if err != nil {
		return nil, err
	}
	attemptedSet := make(map[uint]bool, len(attemptedIDs))
	for _, id := range attemptedIDs {
		attemptedSet[id] = true
	}

	var unattempted, attempted []uint
	for _, id := range candidates {
		if attemptedSet[id] {
			attempted = append(attempted, id)
		} else {
			unattempted = append(unattempted, id)
		}
	}
	s.shuffle(unattempted)
	s.shuffle(attempted)

	picked := make([]uint, 0, limit)
	for _, id := range unattempted {
		if len(picked) >= limit {
			break
		}
		picked = append(picked, id)
	}
	for _, id := range attempted {
		if len(picked) >= limit {
			break
		}
		picked = append(picked, id)
	}

	questions, err := s.QuestionRepo.FindByIDsPreserveOrder(picked)
	if err != nil {
		return nil, err
	}

	data := make([]QuestionPayload, 0, len(questions))
	for _, q := range questions {
		options := make([]OptionPayload, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, OptionPayload{OptionKey: o.OptionKey, Content: o.Content})
		}
		data = append(data, QuestionPayload{
			ID:               q.ID,
			QuestionText:     q.QuestionText,
			QuestionType:     q.QuestionType,
			QuestionImageURL: q.QuestionImageURL,
			Options:          options,
		})
	}

	// 范围内没题也照样建记录，total 为 0
	attempt := &model.QuizAttempt{
		UserID:         userID,
		ChapterID:      req.ChapterID,
		TotalQuestions: len(data),
		StartedAt:      time.Now(),
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	return &StartQuizResponse{
		Envelope:  util.Envelope{Success: true},
		AttemptID: attempt.ID,
		Total:     len(data),
		Data:      data,
	}, nil
}

type SubmitAnswerItem struct {
	QuestionID  uint   `json:"question_id"`
	SelectedKey string `json:"selected_key"`
}

type SubmitQuizRequest struct {
	AttemptID        *uint              `json:"attempt_id"`
	Answers          []SubmitAnswerItem `json:"answers"`
	TimeTakenSeconds *int               `json:"time_taken_seconds"`
}

type SubmitQuizResponse struct {
	util.Envelope
	AttemptID uint `json:"attempt_id"`
	Score     int  `json:"score"`
	Correct   int  `json:"correct"`
	Total     int  `json:"total"`
	Rank      *int `json:"rank"`
	OutOf     int  `json:"outOf"`
}

// SubmitQuiz 按提交顺序逐题判分并落库，再一次性更新答题记录，
// 全部写入放在同一事务里。没传 attempt_id 时现场建一条记录
// （脱离 start 的独立判分，chapter 为空）。
func (s *QuizService) SubmitQuiz(userID uint, req SubmitQuizRequest) (*SubmitQuizResponse, error) {
	if len(req.Answers) == 0 {
		return nil, util.ErrAnswersRequired
	}

	// 判分前先做归属校验，校验不过不写任何数据
	var attempt *model.QuizAttempt
	if req.AttemptID != nil {
		found, err := s.AttemptRepo.FindByID(*req.AttemptID)
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrAttemptNotFound
		}
		if err != nil {
			return nil, err
		}
		if found.UserID != userID {
			return nil, util.ErrAttemptForbidden
		}
		attempt = found
	}

	total := len(req.Answers)
	correct := 0

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if attempt == nil {
			attempt = &model.QuizAttempt{
				UserID:         userID,
				TotalQuestions: total,
				StartedAt:      time.Now(),
			}
			if err := tx.Create(attempt).Error; err != nil {
				return err
			}
		}

		for _, item := range req.Answers {
			// 没存正确答案的题按答错处理，不报错
			correctKey := ""
			var ca model.CorrectAnswer
			err := tx.Where("question_id = ?", item.QuestionID).First(&ca).Error
			if err != nil && err != gorm.ErrRecordNotFound {
				return err
			}
			if err == nil {
				correctKey = ca.OptionKey
			}

			isCorrect := correctKey != "" && item.SelectedKey == correctKey
			if isCorrect {
				correct++
			}

			answer := &model.QuizAnswer{
				AttemptID:   attempt.ID,
				QuestionID:  item.QuestionID,
				SelectedKey: item.SelectedKey,
				CorrectKey:  correctKey,
				IsCorrect:   isCorrect,
			}
			if err := tx.Create(answer).Error; err != nil {
				return err
			}
		}

		score := int(math.Round(float64(correct) / float64(total) * 100))
		now := time.Now()
		attempt.CorrectAnswers = &correct
		attempt.Score = &score
		// 实际提交的题数可能与 start 时不同，以提交为准
		attempt.TotalQuestions = total
		if req.TimeTakenSeconds != nil {
			attempt.TimeTakenSeconds = req.TimeTakenSeconds
		}
		attempt.CompletedAt = &now
		return tx.Save(attempt).Error
	})
	if err != nil {
		return nil, err
	}

	s.Ranking.Invalidate(attempt.ChapterID)
	rank, outOf, err := s.Ranking.RankForUser(attempt.ChapterID, userID)
	if err != nil {
		return nil, err
	}

	return &SubmitQuizResponse{
		Envelope:  util.Envelope{Success: true},
		AttemptID: attempt.ID,
		Score:     *attempt.Score,
		Correct:   correct,
		Total:     total,
		Rank:      rank,
		OutOf:     outOf,
	}, nil
}

type ResetQuizResponse struct {
	util.Envelope
	DeletedAttempts int64 `json:"deleted_attempts"`
}

// ResetQuiz 清空用户的答题历史（可限定章节），幂等
func (s *QuizService) ResetQuiz(userID uint, chapterID *uint) (*ResetQuizResponse, error) {
	deleted, err := s.AttemptRepo.DeleteByUser(userID, chapterID)
	if err != nil {
		return nil, err
	}
	s.Ranking.Invalidate(chapterID)
	return &ResetQuizResponse{
		Envelope:        util.Envelope{Success: true},
		DeletedAttempts: deleted,
	}, nil
}

type HistoryResponse struct {
	util.Envelope
	Items []model.QuizAttempt `json:"items"`
	Total int64               `json:"total"`
}

// History 用户的历史答题记录（只读透传）
func (s *QuizService) History(userID uint, page, limit int) (*HistoryResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	items, total, err := s.AttemptRepo.ListByUser(userID, page, limit)
	if err != nil {
		return nil, err
	}
	return &HistoryResponse{
		Envelope: util.Envelope{Success: true},
		Items:    items,
		Total:    total,
	}, nil
}

// PurgeStaleAttempts 删除超过保留期仍未提交的记录，后台定时任务调用
func (s *QuizService) PurgeStaleAttempts() (int64, error) {
	days := s.Cfg.Quiz.StaleAttemptDays
	if days <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	return s.AttemptRepo.PurgeStale(cutoff)
}
