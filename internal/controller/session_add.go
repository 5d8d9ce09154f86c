package controller

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/walkcore/walkcore-client/internal/models"
	"github.com/walkcore/walkcore-client/internal/repository"
	"github.com/walkcore/walkcore-client/pkg/metrics"
)

// Defaults mirrored from the session creation form
const (
	defaultStepTarget      = 5000
	defaultMaxParticipants = 10
)

// SessionAddState is the snapshot of the session creation form's view-state.
// StepTarget and MaxParticipants stay textual until submit, like the form
// fields they back.
type SessionAddState struct {
	Title           string
	Description     string
	StepTarget      string
	MaxParticipants string
	Mode            string
	StartTime       string
	EndTime         string

	Phase Phase
	Error string

	// The backend's echo of the created session, set on Success
	Created *models.Session
}

// SessionAddController drives the session creation use case
type SessionAddController struct {
	repo    repository.Repository
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu    sync.Mutex
	state SessionAddState
}

// NewSessionAddController creates a session-add controller with the form
// prefilled to its defaults
func NewSessionAddController(repo repository.Repository, m *metrics.Metrics, logger *slog.Logger) *SessionAddController {
	return &SessionAddController{
		repo:    repo,
		metrics: m,
		logger:  logger,
		state: SessionAddState{
			StepTarget:      "5000",
			MaxParticipants: "10",
			Mode:            models.SessionModeRemote,
			StartTime:       "2026-01-07T12:00:00Z",
			EndTime:         "2026-01-07T14:00:00Z",
			Phase:           PhaseIdle,
		},
	}
}

// State returns a copy of the current snapshot
func (c *SessionAddController) State() SessionAddState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetTitle updates the title field
func (c *SessionAddController) SetTitle(value string) {
	c.setField(func(s *SessionAddState) { s.Title = value })
}

// SetDescription updates the description field
func (c *SessionAddController) SetDescription(value string) {
	c.setField(func(s *SessionAddState) { s.Description = value })
}

// SetStepTarget updates the step target field
func (c *SessionAddController) SetStepTarget(value string) {
	c.setField(func(s *SessionAddState) { s.StepTarget = value })
}

// SetMaxParticipants updates the participant limit field
func (c *SessionAddController) SetMaxParticipants(value string) {
	c.setField(func(s *SessionAddState) { s.MaxParticipants = value })
}

// SetMode updates the session mode field
func (c *SessionAddController) SetMode(value string) {
	c.setField(func(s *SessionAddState) { s.Mode = value })
}

// SetStartTime updates the start timestamp field
func (c *SessionAddController) SetStartTime(value string) {
	c.setField(func(s *SessionAddState) { s.StartTime = value })
}

// SetEndTime updates the end timestamp field
func (c *SessionAddController) SetEndTime(value string) {
	c.setField(func(s *SessionAddState) { s.EndTime = value })
}

func (c *SessionAddController) setField(mutate func(*SessionAddState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase != PhaseIdle && c.state.Phase != PhaseError {
		return
	}
	next := c.state
	mutate(&next)
	c.state = next
}

// Submit creates the session from the current form fields. Validation
// failures never reach the network. Numeric fields fall back to their
// defaults when unparseable, matching the form behavior.
func (c *SessionAddController) Submit(ctx context.Context) {
	c.mu.Lock()
	if c.state.Phase == PhaseLoading {
		c.mu.Unlock()
		return
	}

	form := c.state

	if message, ok := validateSessionForm(form); !ok {
		next := c.state
		next.Phase = PhaseError
		next.Error = message
		c.state = next
		c.mu.Unlock()
		c.metrics.RecordControllerAction("session_add", outcomeValidationError)
		return
	}

	next := c.state
	next.Phase = PhaseLoading
	next.Error = ""
	c.state = next
	c.mu.Unlock()

	request := models.CreateSessionRequest{
		Title:           form.Title,
		Description:     form.Description,
		Mode:            form.Mode,
		Visibility:      "PUBLIC",
		MaxParticipants: atoiOrDefault(form.MaxParticipants, defaultMaxParticipants),
		StepTarget:      atoiOrDefault(form.StepTarget, defaultStepTarget),
		StartTime:       form.StartTime,
		EndTime:         form.EndTime,
	}

	created, err := c.repo.CreateSession(ctx, request)

	if ctx.Err() != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next = c.state
	if err != nil {
		c.logger.Warn("Session creation failed", "error", err)
		next.Phase = PhaseError
		next.Error = displayMessage(err, "Failed to create session")
		c.state = next
		c.metrics.RecordControllerAction("session_add", outcomeError)
		return
	}

	next.Phase = PhaseSuccess
	next.Error = ""
	next.Created = created
	c.state = next

	c.logger.Info("Session created", "session_id", created.ID)
	c.metrics.RecordControllerAction("session_add", outcomeSuccess)
}

// validateSessionForm checks the form before any network call. The
// chronology check only applies when both timestamps parse as RFC3339; an
// unparseable timestamp is left for the backend to judge.
func validateSessionForm(form SessionAddState) (string, bool) {
	if strings.TrimSpace(form.Title) == "" {
		return "Title is required", false
	}

	start, startErr := time.Parse(time.RFC3339, form.StartTime)
	end, endErr := time.Parse(time.RFC3339, form.EndTime)
	if startErr == nil && endErr == nil && !end.After(start) {
		return "End time must be after start time", false
	}

	return "", true
}

func atoiOrDefault(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
