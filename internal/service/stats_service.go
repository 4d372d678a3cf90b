package service

import (
	"context"
	"time"

	"github.com/spec-kit/social-network/internal/repository"
	apperrors "github.com/spec-kit/social-network/pkg/util"
)

// StatsService serves admin-only aggregation queries over posts.
type StatsService struct {
	posts repository.PostRepository
}

// NewStatsService builds the service.
func NewStatsService(posts repository.PostRepository) *StatsService {
	return &StatsService{posts: posts}
}

// PostsPerUser counts posts authored per user within the range.
func (s *StatsService) PostsPerUser(ctx context.Context, from, to time.Time) ([]repository.UserPostCount, error) {
	counts, err := s.posts.PostsPerUser(ctx, from, to)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return counts, nil
}

// CommentsTotal counts all comments written within the range.
func (s *StatsService) CommentsTotal(ctx context.Context, from, to time.Time) (int64, error) {
	total, err := s.posts.CommentsTotal(ctx, from, to)
	if err != nil {
		return 0, apperrors.NewInternalError(err)
	}
	return total, nil
}

// CommentsPerPost counts comments per post within the range.
func (s *StatsService) CommentsPerPost(ctx context.Context, from, to time.Time) ([]repository.PostCommentCount, error) {
	counts, err := s.posts.CommentsPerPost(ctx, from, to)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return counts, nil
}
