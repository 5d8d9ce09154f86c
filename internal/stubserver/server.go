// Package stubserver is an in-memory walkcore backend used for local
// development and integration tests. It speaks the same REST contract the
// client targets, including the response envelopes, but keeps all state in
// memory and resets on restart.
package stubserver

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/walkcore/walkcore-client/internal/models"
)

// Server holds the stub backend's state and configuration
type Server struct {
	store  *memStore
	secret string
	logger *slog.Logger
}

// New creates a stub server signing tokens with the given secret
func New(secret string, logger *slog.Logger) *Server {
	return &Server{
		store:  newMemStore(),
		secret: secret,
		logger: logger,
	}
}

// Router builds the gin engine with all walkcore routes mounted under the
// backend base path. Auth routes are open; everything else requires a
// Bearer token. Extra middleware must be passed here so it applies to the
// API routes, not just to routes registered afterwards.
func (s *Server) Router(middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)

	api := router.Group("/walkcore-backend")
	{
		api.POST("/auth/register", s.register)
		api.POST("/auth/login", s.login)

		authed := api.Group("", s.authRequired())
		{
			authed.GET("/users/me/overview", s.homeOverview)
			authed.GET("/users/me/sessions/active", s.activeSession)
			authed.GET("/sessions", s.listSessions)
			authed.POST("/sessions", s.createSession)
			authed.GET("/sessions/:id", s.sessionDetail)
			authed.GET("/sessions/:id/participants", s.sessionParticipants)
			authed.GET("/sessions/:id/leaderboard", s.sessionLeaderboard)
			authed.GET("/friends", s.listFriends)
		}
	}

	return router
}

// Seed populates demo data: two users, one planned and one ongoing session
// with some steps walked. Returns the demo account credentials' emails.
func (s *Server) Seed() {
	alice := &userRecord{
		ID:           uuid.New().String(),
		Username:     "alice",
		Email:        "alice@example.com",
		Gender:       "FEMALE",
		PasswordHash: mustHash("walkcore"),
	}
	bob := &userRecord{
		ID:           uuid.New().String(),
		Username:     "bob",
		Email:        "bob@example.com",
		Gender:       "MALE",
		PasswordHash: mustHash("walkcore"),
	}
	_ = s.store.createUser(alice)
	_ = s.store.createUser(bob)

	planned := models.Session{
		ID:              uuid.New().String(),
		Title:           "Morning walk",
		Description:     "Easy loop around the park",
		CreatorID:       alice.ID,
		Mode:            models.SessionModeOnSite,
		Status:          models.SessionStatusPlanned,
		Visibility:      "PUBLIC",
		MaxParticipants: 10,
		StepTarget:      5000,
		StartTime:       "2026-09-01T08:00:00Z",
		EndTime:         "2026-09-01T09:00:00Z",
	}
	s.store.addSession(planned)
	s.store.join(planned.ID, alice.ID, "JOINED", true)

	ongoing := models.Session{
		ID:              uuid.New().String(),
		Title:           "Step challenge",
		Description:     "Remote step challenge",
		CreatorID:       bob.ID,
		Mode:            models.SessionModeRemote,
		Status:          models.SessionStatusOngoing,
		Visibility:      "PUBLIC",
		MaxParticipants: 20,
		StepTarget:      8000,
		StartTime:       "2026-08-30T07:00:00Z",
		EndTime:         "2026-08-30T19:00:00Z",
	}
	s.store.addSession(ongoing)
	s.store.join(ongoing.ID, bob.ID, "JOINED", true)
	s.store.join(ongoing.ID, alice.ID, "JOINED", false)
	s.store.addSteps(ongoing.ID, bob.ID, 4200)
	s.store.addSteps(ongoing.ID, alice.ID, 3100)

	s.logger.Info("Seeded demo data",
		"users", 2,
		"sessions", 2,
		"demo_password", "walkcore")
}
