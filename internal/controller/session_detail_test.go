package controller

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/walkcore/walkcore-client/internal/models"
	"github.com/walkcore/walkcore-client/internal/transport"
)

func newDetailController(repo *MockRepository, t *testing.T) *SessionDetailController {
	return NewSessionDetailController(repo, testMetrics(t), testLogger(t))
}

func TestSessionDetailLoadSuccess(t *testing.T) {
	repo := new(MockRepository)
	controller := newDetailController(repo, t)

	repo.On("GetSessionDetail", mock.Anything, "s1").Return(&models.Session{
		ID:          "s1",
		Title:       "Morning walk",
		Description: "Easy loop around the park",
		Mode:        models.SessionModeOnSite,
		StartTime:   "2026-09-01T08:00:00Z",
		EndTime:     "2026-09-01T09:00:00Z",
	}, nil)

	controller.Load(context.Background(), "s1")

	state := controller.State()
	assert.Equal(t, PhaseSuccess, state.Phase)
	require.NotNil(t, state.Session)
	assert.Equal(t, "s1", state.Session.ID)
	assert.Equal(t, "Morning walk", state.Session.Title)
	assert.Equal(t, "Easy loop around the park", state.Session.Description)
	assert.Equal(t, "2026-09-01T08:00:00Z - 2026-09-01T09:00:00Z", state.Session.DateTimeRange)
	require.NotNil(t, state.Session.LocationName)
	assert.Equal(t, "On-site", *state.Session.LocationName)
	repo.AssertExpectations(t)
}

func TestSessionDetailRemoteModeLocation(t *testing.T) {
	repo := new(MockRepository)
	controller := newDetailController(repo, t)

	repo.On("GetSessionDetail", mock.Anything, "s2").Return(&models.Session{
		ID:   "s2",
		Mode: models.SessionModeRemote,
	}, nil)

	controller.Load(context.Background(), "s2")

	state := controller.State()
	require.NotNil(t, state.Session)
	require.NotNil(t, state.Session.LocationName)
	assert.Equal(t, "Remote", *state.Session.LocationName)
}

func TestSessionDetailNotFound(t *testing.T) {
	repo := new(MockRepository)
	controller := newDetailController(repo, t)

	repo.On("GetSessionDetail", mock.Anything, "nope").Return(nil, &transport.APIError{
		StatusCode: http.StatusNotFound,
		Status:     "error",
		Message:    "session not found",
	})

	controller.Load(context.Background(), "nope")

	state := controller.State()
	assert.Equal(t, PhaseError, state.Phase)
	assert.Equal(t, "session not found", state.Error)
	assert.Nil(t, state.Session)
}

func TestSessionDetailErrorClearsPreviousSession(t *testing.T) {
	repo := new(MockRepository)
	controller := newDetailController(repo, t)

	repo.On("GetSessionDetail", mock.Anything, "s1").Return(&models.Session{ID: "s1"}, nil).Once()
	repo.On("GetSessionDetail", mock.Anything, "s1").Return(nil, &transport.NetworkError{
		Op:  "GET /sessions/s1",
		Err: context.DeadlineExceeded,
	}).Once()

	controller.Load(context.Background(), "s1")
	require.NotNil(t, controller.State().Session)

	controller.Load(context.Background(), "s1")
	state := controller.State()
	assert.Equal(t, PhaseError, state.Phase)
	assert.NotEmpty(t, state.Error)
	assert.Nil(t, state.Session)
	repo.AssertExpectations(t)
}
