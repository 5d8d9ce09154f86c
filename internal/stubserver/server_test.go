package stubserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walkcore/walkcore-client/internal/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New("test-secret", logger)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func registerUser(t *testing.T, router *gin.Engine, username, email, password string) models.AuthData {
	t.Helper()

	recorder := doJSON(t, router, http.MethodPost, "/walkcore-backend/auth/register", "", models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var response models.AuthResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.NotEmpty(t, response.Data.Token)
	return response.Data
}

func TestRegisterAndLogin(t *testing.T) {
	server := newTestServer(t)
	router := server.Router()

	auth := registerUser(t, router, "carol", "carol@example.com", "secret123")
	assert.Equal(t, "carol", auth.User.Username)
	assert.Equal(t, "carol@example.com", auth.User.Email)

	t.Run("duplicate_email_conflicts", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/walkcore-backend/auth/register", "", models.RegisterRequest{
			Username: "carol2",
			Email:    "carol@example.com",
			Password: "secret123",
		})
		assert.Equal(t, http.StatusConflict, recorder.Code)

		var errResp models.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &errResp))
		assert.Equal(t, "email already registered", errResp.Message)
	})

	t.Run("login_succeeds_with_correct_password", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/walkcore-backend/auth/login", "", models.LoginRequest{
			Email:    "carol@example.com",
			Password: "secret123",
		})
		require.Equal(t, http.StatusOK, recorder.Code)

		var response models.AuthResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.NotEmpty(t, response.Data.Token)
		assert.Equal(t, auth.User.ID, response.Data.User.ID)
	})

	t.Run("login_rejects_wrong_password", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/walkcore-backend/auth/login", "", models.LoginRequest{
			Email:    "carol@example.com",
			Password: "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var errResp models.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &errResp))
		assert.Equal(t, "invalid credentials", errResp.Message)
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	server := newTestServer(t)
	router := server.Router()

	recorder := doJSON(t, router, http.MethodGet, "/walkcore-backend/users/me/overview", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/walkcore-backend/sessions", "not-a-valid-token", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestSessionLifecycle(t *testing.T) {
	server := newTestServer(t)
	router := server.Router()

	creator := registerUser(t, router, "dave", "dave@example.com", "secret123")

	create := models.CreateSessionRequest{
		Title:           "Evening walk",
		Description:     "Around the lake",
		Mode:            models.SessionModeRemote,
		Visibility:      "PUBLIC",
		MaxParticipants: 10,
		StepTarget:      5000,
		StartTime:       "2026-09-01T18:00:00Z",
		EndTime:         "2026-09-01T19:00:00Z",
	}
	recorder := doJSON(t, router, http.MethodPost, "/walkcore-backend/sessions", creator.Token, create)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var createResp models.SessionResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &createResp))
	created := createResp.Data
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Evening walk", created.Title)
	assert.Equal(t, creator.User.ID, created.CreatorID)
	assert.Equal(t, models.SessionStatusPlanned, created.Status)

	t.Run("detail_returns_created_session", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodGet, "/walkcore-backend/sessions/"+created.ID, creator.Token, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var detail models.SessionResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &detail))
		assert.Equal(t, created.ID, detail.Data.ID)
	})

	t.Run("detail_of_unknown_session_is_404", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodGet, "/walkcore-backend/sessions/nope", creator.Token, nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)

		var errResp models.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &errResp))
		assert.Equal(t, "session not found", errResp.Message)
	})

	t.Run("creator_is_admin_participant", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodGet, "/walkcore-backend/sessions/"+created.ID+"/participants", creator.Token, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var participants models.ParticipantListResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &participants))
		require.Len(t, participants.Data, 1)
		assert.Equal(t, creator.User.ID, participants.Data[0].UserID)
		assert.Equal(t, "dave", participants.Data[0].Username)
		assert.True(t, participants.Data[0].IsAdmin)
	})

	t.Run("list_includes_created_session", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodGet, "/walkcore-backend/sessions", creator.Token, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var list models.SessionListResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &list))
		require.Len(t, list.Data, 1)
		assert.Equal(t, created.ID, list.Data[0].ID)
	})
}

func TestLeaderboardRanksByStepsDescending(t *testing.T) {
	server := newTestServer(t)
	router := server.Router()
	server.Seed()

	auth := registerUser(t, router, "carol", "carol@example.com", "secret123")

	// Seed creates the ongoing "Step challenge" session with bob at 4200
	// steps and alice at 3100
	recorder := doJSON(t, router, http.MethodGet, "/walkcore-backend/sessions", auth.Token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var list models.SessionListResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &list))

	var challengeID string
	for _, session := range list.Data {
		if session.Status == models.SessionStatusOngoing {
			challengeID = session.ID
		}
	}
	require.NotEmpty(t, challengeID)

	recorder = doJSON(t, router, http.MethodGet, "/walkcore-backend/sessions/"+challengeID+"/leaderboard", auth.Token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var leaderboard models.LeaderboardResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &leaderboard))
	require.Len(t, leaderboard.Data, 2)

	assert.Equal(t, 1, leaderboard.Data[0].Rank)
	assert.Equal(t, "bob", leaderboard.Data[0].User.Username)
	assert.Equal(t, 4200, leaderboard.Data[0].TotalSteps)
	assert.Equal(t, "3.36 km", leaderboard.Data[0].ApproxDistance)

	assert.Equal(t, 2, leaderboard.Data[1].Rank)
	assert.Equal(t, "alice", leaderboard.Data[1].User.Username)
	assert.Equal(t, 3100, leaderboard.Data[1].TotalSteps)
}

func TestActiveSessionEndpoint(t *testing.T) {
	server := newTestServer(t)
	router := server.Router()
	server.Seed()

	t.Run("null_when_no_ongoing_session", func(t *testing.T) {
		auth := registerUser(t, router, "carol", "carol@example.com", "secret123")

		recorder := doJSON(t, router, http.MethodGet, "/walkcore-backend/users/me/sessions/active", auth.Token, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var response models.ActiveSessionResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Nil(t, response.Data)
	})

	t.Run("populated_for_seeded_participant", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/walkcore-backend/auth/login", "", models.LoginRequest{
			Email:    "alice@example.com",
			Password: "walkcore",
		})
		require.Equal(t, http.StatusOK, recorder.Code)

		var login models.AuthResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &login))

		recorder = doJSON(t, router, http.MethodGet, "/walkcore-backend/users/me/sessions/active", login.Data.Token, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var response models.ActiveSessionResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		require.NotNil(t, response.Data)
		assert.Equal(t, "Step challenge", response.Data.Title)
		assert.Equal(t, models.SessionStatusOngoing, response.Data.Status)
		assert.Equal(t, 3100, response.Data.TotalSteps)
	})
}

func TestOverviewAndFriends(t *testing.T) {
	server := newTestServer(t)
	router := server.Router()
	server.Seed()

	recorder := doJSON(t, router, http.MethodPost, "/walkcore-backend/auth/login", "", models.LoginRequest{
		Email:    "alice@example.com",
		Password: "walkcore",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var login models.AuthResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &login))
	token := login.Data.Token

	t.Run("overview_derives_stats_from_steps", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodGet, "/walkcore-backend/users/me/overview", token, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var overview models.OverviewResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &overview))
		assert.Equal(t, "alice", overview.Data.Profile.Username)
		assert.Equal(t, "3100", overview.Data.Stats.TotalSteps)
		assert.Equal(t, "2.48 km", overview.Data.Stats.TotalDistance)
		assert.Equal(t, 31, overview.Data.Stats.TotalActiveTime)
		assert.Equal(t, 124, overview.Data.Stats.TotalCaloriesBurned)
	})

	t.Run("friends_response_is_not_enveloped_in_data", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodGet, "/walkcore-backend/friends", token, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &raw))
		_, hasFriends := raw["friends"]
		_, hasData := raw["data"]
		assert.True(t, hasFriends)
		assert.False(t, hasData)

		var friends models.FriendListResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &friends))
		require.Len(t, friends.Friends, 1)
		assert.Equal(t, "bob", friends.Friends[0].Username)
	})
}
