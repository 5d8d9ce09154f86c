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

// RegisterState is the snapshot of the registration screen's view-state
type RegisterState struct {
	Username string
	Email    string
	Password string
	Phase    Phase
	Error    string

	Token string
	User  *models.User
}

// RegisterController drives the account registration use case
type RegisterController struct {
	repo    repository.Repository
	tokens  *transport.TokenStore
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu    sync.Mutex
	state RegisterState
}

// NewRegisterController creates a register controller in the Idle phase
func NewRegisterController(repo repository.Repository, tokens *transport.TokenStore, m *metrics.Metrics, logger *slog.Logger) *RegisterController {
	return &RegisterController{
		repo:    repo,
		tokens:  tokens,
		metrics: m,
		logger:  logger,
		state:   RegisterState{Phase: PhaseIdle},
	}
}

// State returns a copy of the current snapshot
func (c *RegisterController) State() RegisterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetUsername updates the username field
func (c *RegisterController) SetUsername(value string) {
	c.setField(func(s *RegisterState) { s.Username = value })
}

// SetEmail updates the email field
func (c *RegisterController) SetEmail(value string) {
	c.setField(func(s *RegisterState) { s.Email = value })
}

// SetPassword updates the password field
func (c *RegisterController) SetPassword(value string) {
	c.setField(func(s *RegisterState) { s.Password = value })
}

func (c *RegisterController) setField(mutate func(*RegisterState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase != PhaseIdle && c.state.Phase != PhaseError {
		return
	}
	next := c.state
	mutate(&next)
	c.state = next
}

// Submit creates the account with the current form fields
func (c *RegisterController) Submit(ctx context.Context) {
	c.mu.Lock()
	if c.state.Phase == PhaseLoading {
		c.mu.Unlock()
		return
	}

	username := c.state.Username
	email := c.state.Email
	password := c.state.Password

	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		next := c.state
		next.Phase = PhaseError
		next.Error = "Username, email and password are required"
		c.state = next
		c.mu.Unlock()
		c.metrics.RecordControllerAction("register", outcomeValidationError)
		return
	}

	next := c.state
	next.Phase = PhaseLoading
	next.Error = ""
	c.state = next
	c.mu.Unlock()

	response, err := c.repo.Register(ctx, models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})

	if ctx.Err() != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next = c.state
	if err != nil {
		c.logger.Warn("Registration failed", "error", err)
		next.Phase = PhaseError
		next.Error = displayMessage(err, unknownErrorMessage)
		c.state = next
		c.metrics.RecordControllerAction("register", outcomeError)
		return
	}

	c.tokens.Set(response.Data.Token)
	user := response.Data.User

	next.Phase = PhaseSuccess
	next.Error = ""
	next.Token = response.Data.Token
	next.User = &user
	c.state = next

	c.logger.Info("Registration succeeded", "user_id", user.ID)
	c.metrics.RecordControllerAction("register", outcomeSuccess)
}
