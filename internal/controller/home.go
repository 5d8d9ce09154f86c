package controller

import (
	"context"
	"log/slog"
	"sync"

	"github.com/walkcore/walkcore-client/internal/models"
	"github.com/walkcore/walkcore-client/internal/repository"
	"github.com/walkcore/walkcore-client/pkg/metrics"
)

// HomeState is the snapshot of the home screen's view-state. ActiveSession
// is nil both before the first refresh and when the user has no ongoing
// session.
type HomeState struct {
	Phase Phase
	Error string

	Overview      *models.HomeData
	ActiveSession *SessionOverview
}

// HomeController drives the home dashboard: one refresh performs two
// sequential repository calls (overview, then active session) and either one
// failing puts the whole screen in the Error phase.
type HomeController struct {
	repo    repository.Repository
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu    sync.Mutex
	state HomeState
}

// NewHomeController creates a home controller in the Idle phase
func NewHomeController(repo repository.Repository, m *metrics.Metrics, logger *slog.Logger) *HomeController {
	return &HomeController{
		repo:    repo,
		metrics: m,
		logger:  logger,
		state:   HomeState{Phase: PhaseIdle},
	}
}

// State returns a copy of the current snapshot
func (c *HomeController) State() HomeState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Refresh fetches the overview and the active session. A refresh while one
// is already in flight is ignored.
func (c *HomeController) Refresh(ctx context.Context) {
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

	overview, err := c.repo.GetHomeOverview(ctx)
	if err == nil {
		var active *models.ActiveSession
		active, err = c.repo.GetActiveSession(ctx)
		if err == nil {
			c.finishSuccess(ctx, overview, active)
			return
		}
	}

	if ctx.Err() != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	next = c.state
	next.Phase = PhaseError
	next.Error = displayMessage(err, "Unknown Error Occurred")
	c.state = next

	c.logger.Warn("Home refresh failed", "error", err)
	c.metrics.RecordControllerAction("home", outcomeError)
}

func (c *HomeController) finishSuccess(ctx context.Context, overview *models.HomeData, active *models.ActiveSession) {
	if ctx.Err() != nil {
		return
	}

	var activeModel *SessionOverview
	if active != nil {
		model := overviewFromActive(active)
		activeModel = &model
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.state
	next.Phase = PhaseSuccess
	next.Error = ""
	next.Overview = overview
	next.ActiveSession = activeModel
	c.state = next

	c.metrics.RecordControllerAction("home", outcomeSuccess)
}
