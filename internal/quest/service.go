// Package quest turns validated requests into quests: online through the
// LLM with one repair attempt, offline through the fallback catalog whenever
// the upstream is missing, slow, rate limited or broken.
package quest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Fbari2002/side-quest/internal/generator"
	"github.com/Fbari2002/side-quest/internal/model"
	"github.com/Fbari2002/side-quest/internal/state"
)

// ErrMissingCredential is returned in production when no upstream API key
// is configured. No fallback quest is served in that case.
var ErrMissingCredential = errors.New("server misconfigured: OPENAI_API_KEY is not set")

const (
	DefaultTimeout  = 7000 * time.Millisecond
	DefaultCooldown = 15 * time.Minute
)

// Fallback picks offline quests.
type Fallback interface {
	Select(req model.QuestRequest) model.Quest
}

// Service generates quests. Attempter is nil when no credential is
// configured.
type Service struct {
	Attempter  Attempter
	Fallback   Fallback
	State      state.Store
	Logger     *zap.Logger
	Production bool
	Timeout    time.Duration
	Cooldown   time.Duration

	Now       func() time.Time
	Variation func() string
}

// NewService wires a service with default timing, clock and variation token.
func NewService(attempter Attempter, fb Fallback, st state.Store, logger *zap.Logger, production bool) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		Attempter:  attempter,
		Fallback:   fb,
		State:      st,
		Logger:     logger,
		Production: production,
		Timeout:    DefaultTimeout,
		Cooldown:   DefaultCooldown,
		Now:        time.Now,
		Variation:  func() string { return uuid.NewString()[:8] },
	}
}

// Generate returns a quest for req. The only error is ErrMissingCredential;
// every upstream failure degrades to an offline quest.
func (s *Service) Generate(ctx context.Context, req model.QuestRequest) (Result, error) {
	if s.Attempter == nil {
		if s.Production {
			s.Logger.Error("refusing to serve without upstream credential")
			return Result{Path: PathMissingKey}, ErrMissingCredential
		}
		return s.offline(req, PathMissingKey), nil
	}

	now := s.Now()
	if circuit := s.State.Circuit(); circuit.Open(now) {
		s.Logger.Debug("circuit open, skipping upstream",
			zap.Duration("remaining", circuit.Remaining(now)))
		return s.offline(req, PathCircuitBreakerOpen), nil
	}

	out := s.runOnline(ctx, req)
	switch {
	case out.err == nil && out.path == PathFallback:
		return s.offline(req, PathFallback), nil

	case out.err == nil:
		return Result{Quest: out.quest, Path: out.path}, nil

	case errors.Is(out.err, context.DeadlineExceeded):
		s.Logger.Warn("upstream timed out", zap.Duration("timeout", s.Timeout))
		return s.offline(req, PathTimeout), nil

	case generator.IsQuotaOrRateLimit(out.err):
		failedAt := s.Now()
		s.State.RecordQuotaFailure(failedAt, s.Cooldown)
		s.Logger.Warn("upstream quota or rate limit hit, opening circuit",
			zap.Error(out.err),
			zap.Time("down_until", failedAt.Add(s.Cooldown)))
		return s.offline(req, PathQuotaOrRateLimit), nil

	default:
		s.Logger.Warn("upstream request failed", zap.Error(out.err))
		return s.offline(req, PathRequestFailed), nil
	}
}

// runOnline races the controller against the timeout. When the deadline
// wins, the controller's eventual answer is discarded.
func (s *Service) runOnline(ctx context.Context, req model.QuestRequest) outcome {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c := &controller{attempter: s.Attempter}
	prompt := generator.GenerationPrompt(req, s.Variation())

	done := make(chan outcome, 1)
	go func() {
		done <- c.run(ctx, prompt)
	}()

	select {
	case out := <-done:
		if out.err != nil && ctx.Err() != nil {
			return outcome{err: ctx.Err()}
		}
		return out
	case <-ctx.Done():
		return outcome{err: ctx.Err()}
	}
}

func (s *Service) offline(req model.QuestRequest, path Path) Result {
	return Result{Quest: s.Fallback.Select(req), Path: path}
}
