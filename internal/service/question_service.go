package service

import (
	"context"
	"culturefit_backend/internal/config"
	"culturefit_backend/internal/model"
	"culturefit_backend/internal/repository"
	"culturefit_backend/pkg/logger"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const questionCacheKey = "questions:ordered"

// QuestionService fronts the question reference data with a short-TTL
// Redis cache. Every completion fetches the full ordered list, so the
// cache keeps the hot path off MySQL; any write invalidates it.
type QuestionService struct {
	Repo     *repository.QuestionRepository
	Redis    *redis.Client
	cacheTTL time.Duration
}

func NewQuestionService(repo *repository.QuestionRepository, rdb *redis.Client, cfg *config.Config) *QuestionService {
	ttl := time.Duration(cfg.Assess.QuestionCacheTTL) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &QuestionService{Repo: repo, Redis: rdb, cacheTTL: ttl}
}

// ListOrdered satisfies the assessment service's QuestionStore.
func (s *QuestionService) ListOrdered() ([]model.Question, error) {
	ctx := context.Background()

	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, questionCacheKey).Result()
		if err == nil {
			var qs []model.Question
			if jsonErr := json.Unmarshal([]byte(val), &qs); jsonErr == nil {
				return qs, nil
			}
			// Fall through and repopulate on a corrupt entry.
		} else if err != redis.Nil {
			logger.Log.Warn("question cache read failed", zap.Error(err))
		}
	}

	qs, err := s.Repo.ListOrdered()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, jsonErr := json.Marshal(qs); jsonErr == nil {
			if err := s.Redis.Set(ctx, questionCacheKey, data, s.cacheTTL).Err(); err != nil {
				logger.Log.Warn("question cache write failed", zap.Error(err))
			}
		}
	}

	return qs, nil
}

func (s *QuestionService) invalidateCache() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), questionCacheKey).Err(); err != nil {
		logger.Log.Warn("question cache invalidation failed", zap.Error(err))
	}
}

type QuestionRequest struct {
	Text        string   `json:"text" binding:"required"`
	Trait       string   `json:"trait" binding:"required"`
	Reverse     bool     `json:"reverse"`
	KOThreshold *float64 `json:"koThreshold"`
}

func (s *QuestionService) Create(req QuestionRequest) (*model.Question, error) {
	q := &model.Question{
		Text:        req.Text,
		Trait:       req.Trait,
		Reverse:     req.Reverse,
		KOThreshold: req.KOThreshold,
	}
	if err := s.Repo.Create(q); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return q, nil
}

func (s *QuestionService) Get(id uint) (*model.Question, error) {
	return s.Repo.FindByID(id)
}

func (s *QuestionService) Update(id uint, req QuestionRequest) (*model.Question, error) {
	q, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	q.Text = req.Text
	q.Trait = req.Trait
	q.Reverse = req.Reverse
	q.KOThreshold = req.KOThreshold
	if err := s.Repo.Update(q); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return q, nil
}

func (s *QuestionService) Delete(id uint) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}
