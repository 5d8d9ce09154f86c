package controller

import (
	"context"
	"log/slog"
	"sync"

	"github.com/walkcore/walkcore-client/internal/repository"
	"github.com/walkcore/walkcore-client/pkg/metrics"
)

// SessionDetailState is the snapshot of the session detail screen's
// view-state. Session is nil unless the phase is Success.
type SessionDetailState struct {
	Phase   Phase
	Error   string
	Session *SessionOverview
}

// SessionDetailController loads one session and maps it to its display model
type SessionDetailController struct {
	repo    repository.Repository
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu    sync.Mutex
	state SessionDetailState
}

// NewSessionDetailController creates a detail controller in the Idle phase
func NewSessionDetailController(repo repository.Repository, m *metrics.Metrics, logger *slog.Logger) *SessionDetailController {
	return &SessionDetailController{
		repo:    repo,
		metrics: m,
		logger:  logger,
		state:   SessionDetailState{Phase: PhaseIdle},
	}
}

// State returns a copy of the current snapshot
func (c *SessionDetailController) State() SessionDetailState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Load fetches the session with the given ID. A load while one is already
// in flight is ignored.
func (c *SessionDetailController) Load(ctx context.Context, sessionID string) {
	c.mu.Lock()
	if c.state.Phase == PhaseLoading {
		c.mu.Unlock()
		return
	}
	next := c.state
	next.Phase = PhaseLoading
	next.Error = ""
	c.state = next
	c.mu.Unlock()

	session, err := c.repo.GetSessionDetail(ctx, sessionID)

	if ctx.Err() != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next = c.state
	if err != nil {
		c.logger.Warn("Session detail load failed", "session_id", sessionID, "error", err)
		next.Phase = PhaseError
		next.Error = displayMessage(err, "Failed to load session")
		next.Session = nil
		c.state = next
		c.metrics.RecordControllerAction("session_detail", outcomeError)
		return
	}

	model := overviewFromSession(session)
	next.Phase = PhaseSuccess
	next.Error = ""
	next.Session = &model
	c.state = next

	c.metrics.RecordControllerAction("session_detail", outcomeSuccess)
}
