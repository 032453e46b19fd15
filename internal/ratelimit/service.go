package ratelimit

import (
	"context"
	"fmt"
	"time"

	"campaign-server/internal/observability"

	"github.com/google/uuid"
)

const window = time.Minute

// Result represents the result of a rate limit check
type Result struct {
	Allowed      bool      `json:"allowed"`
	Limit        int       `json:"limit"`
	Remaining    int       `json:"remaining"`
	ResetAt      time.Time `json:"reset_at"`
	RetryAfterMs int       `json:"retry_after_ms,omitempty"`
}

// WindowCounter records hits in a sliding window.
type WindowCounter interface {
	SlidingWindowHit(ctx context.Context, key string, now time.Time, window time.Duration) (int64, time.Time, error)
}

// Service limits requests per principal with a one minute sliding window
type Service struct {
	counter WindowCounter
	limit   int
	logger  *observability.Logger
	now     func() time.Time
}

// NewService creates a rate limiting service. A nil counter or a
// non-positive limit disables limiting.
func NewService(counter WindowCounter, limit int, logger *observability.Logger) *Service {
	return &Service{
		counter: counter,
		limit:   limit,
		logger:  logger,
		now:     time.Now,
	}
}

// Enabled reports whether requests are limited.
func (s *Service) Enabled() bool {
	return s != nil && s.counter != nil && s.limit > 0
}

// Check records a request of principalID and reports whether it is within
// the limit.
func (s *Service) Check(ctx context.Context, principalID uuid.UUID) (Result, error) {
	now := s.now()
	count, oldest, err := s.counter.SlidingWindowHit(ctx, fmt.Sprintf("rl:%s", principalID), now, window)
	if err != nil {
		return Result{}, err
	}

	resetAt := oldest.Add(window)
	if int(count) <= s.limit {
		return Result{
			Allowed:   true,
			Limit:     s.limit,
			Remaining: s.limit - int(count),
			ResetAt:   resetAt,
		}, nil
	}

	retryAfter := resetAt.Sub(now)
	if retryAfter < 0 {
		retryAfter = 0
	}
	return Result{
		Allowed:      false,
		Limit:        s.limit,
		Remaining:    0,
		ResetAt:      resetAt,
		RetryAfterMs: int(retryAfter.Milliseconds()),
	}, nil
}
