package service

import (
	"context"

	"github.com/google/uuid"

	"nexwms-backend/internal/domains/counting/model"
	"nexwms-backend/internal/domains/counting/repository"
	"nexwms-backend/pkg/logger"
)

// defaultSampleSize caps random spot checks when the request omits a limit.
const defaultSampleSize = 10

type countingService struct {
	repo repository.Repository
}

func NewService(repo repository.Repository) Service {
	return &countingService{repo: repo}
}

func (s *countingService) CreateRandomCount(ctx context.Context, req model.CreateRandomCountRequest, actor string) (*model.CycleCountSession, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSampleSize
	}

	session, err := s.repo.CreateRandomSession(ctx, req.AislePrefix, limit)
	if err != nil {
		return nil, err
	}

	logger.Info("cycle count created", map[string]interface{}{
		"reference": session.Reference,
		"tasks":     len(session.Tasks),
		"actor":     actor,
	})
	return session, nil
}

func (s *countingService) CreateLocationCount(ctx context.Context, req model.CreateLocationCountRequest, actor string) (*model.CycleCountSession, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	session, err := s.repo.CreateLocationSession(ctx, req.LocationCode)
	if err != nil {
		return nil, err
	}

	logger.Info("location count created", map[string]interface{}{
		"reference": session.Reference,
		"location":  req.LocationCode,
		"actor":     actor,
	})
	return session, nil
}

func (s *countingService) SubmitCount(ctx context.Context, taskID uuid.UUID, req model.SubmitCountRequest, actor string) (*model.SubmitCountResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := s.repo.SubmitCount(ctx, taskID, *req.CountedQty, actor)
	if err != nil {
		return nil, err
	}

	if result.Variance != 0 {
		logger.Warn("count variance", map[string]interface{}{
			"task_id":  taskID,
			"variance": result.Variance,
			"actor":    actor,
		})
	}
	return result, nil
}

func (s *countingService) GetSession(ctx context.Context, id uuid.UUID) (*model.CycleCountSession, error) {
	return s.repo.GetSession(ctx, id)
}

func (s *countingService) ListSessions(ctx context.Context, status string, offset, limit int) ([]model.CycleCountSession, int, error) {
	return s.repo.ListSessions(ctx, status, offset, limit)
}
