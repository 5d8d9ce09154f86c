package controller

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/walkcore/walkcore-client/internal/models"
	"github.com/walkcore/walkcore-client/internal/repository"
	"github.com/walkcore/walkcore-client/internal/transport"
	"github.com/walkcore/walkcore-client/pkg/metrics"
)

// LoginState is the snapshot of the login screen's view-state
type LoginState struct {
	Email    string
	Password string
	Phase    Phase
	Error    string

	// Present only after a successful submit
	Token string
	User  *models.User
}

// LoginController drives the login use case. The whole state is replaced
// atomically on every mutation so observers always see a consistent
// snapshot, and only one submit may be in flight at a time.
type LoginController struct {
	repo    repository.Repository
	tokens  *transport.TokenStore
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu    sync.Mutex
	state LoginState
}

// NewLoginController creates a login controller in the Idle phase
func NewLoginController(repo repository.Repository, tokens *transport.TokenStore, m *metrics.Metrics, logger *slog.Logger) *LoginController {
	return &LoginController{
		repo:    repo,
		tokens:  tokens,
		metrics: m,
		logger:  logger,
		state:   LoginState{Phase: PhaseIdle},
	}
}

// State returns a copy of the current snapshot
func (c *LoginController) State() LoginState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetEmail updates the email field. Edits are accepted in the Idle and Error
// phases only; an existing error message is kept until the next submit.
func (c *LoginController) SetEmail(value string) {
	c.setField(func(s *LoginState) { s.Email = value })
}

// SetPassword updates the password field
func (c *LoginController) SetPassword(value string) {
	c.setField(func(s *LoginState) { s.Password = value })
}

func (c *LoginController) setField(mutate func(*LoginState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase != PhaseIdle && c.state.Phase != PhaseError {
		return
	}
	next := c.state
	mutate(&next)
	c.state = next
}

// Submit authenticates with the current form fields. Blank required fields
// fail fast without a network call. A submit while one is already in flight
// is ignored.
func (c *LoginController) Submit(ctx context.Context) {
	c.mu.Lock()
	if c.state.Phase == PhaseLoading {
		c.mu.Unlock()
		return
	}

	email := c.state.Email
	password := c.state.Password

	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		next := c.state
		next.Phase = PhaseError
		next.Error = "Email and password are required"
		c.state = next
		c.mu.Unlock()
		c.metrics.RecordControllerAction("login", outcomeValidationError)
		return
	}

	next := c.state
	next.Phase = PhaseLoading
	next.Error = ""
	c.state = next
	c.mu.Unlock()

	response, err := c.repo.Login(ctx, models.LoginRequest{Email: email, Password: password})

	// The owning screen is gone; leave the snapshot untouched.
	if ctx.Err() != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next = c.state
	if err != nil {
		c.logger.Warn("Login failed", "error", err)
		next.Phase = PhaseError
		next.Error = displayMessage(err, "Login failed")
		c.state = next
		c.metrics.RecordControllerAction("login", outcomeError)
		return
	}

	c.tokens.Set(response.Data.Token)
	user := response.Data.User

	next.Phase = PhaseSuccess
	next.Error = ""
	next.Token = response.Data.Token
	next.User = &user
	c.state = next

	c.logger.Info("Login succeeded", "user_id", user.ID)
	c.metrics.RecordControllerAction("login", outcomeSuccess)
}
