package repository

import (
	"context"

	"github.com/walkcore/walkcore-client/internal/models"
)

// Repository defines the domain-shaped data access operations consumed by
// the view-state controllers. Every call goes to the network: there is no
// cache, no retry and no request coalescing, so callers always observe
// backend state as of the call.
type Repository interface {
	// Register creates a new account and returns the auth envelope
	Register(ctx context.Context, request models.RegisterRequest) (*models.AuthResponse, error)

	// Login authenticates and returns the auth envelope
	Login(ctx context.Context, request models.LoginRequest) (*models.AuthResponse, error)

	// GetHomeOverview returns the current user's profile and lifetime stats
	GetHomeOverview(ctx context.Context) (*models.HomeData, error)

	// GetActiveSession returns the user's single ongoing session, or nil
	// when there is none
	GetActiveSession(ctx context.Context) (*models.ActiveSession, error)

	// GetAllSessions lists all sessions available for exploration
	GetAllSessions(ctx context.Context) ([]models.Session, error)

	// GetSessionDetail returns one session by ID
	GetSessionDetail(ctx context.Context, sessionID string) (*models.Session, error)

	// GetParticipants lists everyone who joined the session
	GetParticipants(ctx context.Context, sessionID string) ([]models.Participant, error)

	// GetLeaderboard returns the session ranking in backend order
	GetLeaderboard(ctx context.Context, sessionID string) ([]models.LeaderboardEntry, error)

	// CreateSession persists a new session and returns the created record
	CreateSession(ctx context.Context, request models.CreateSessionRequest) (*models.Session, error)

	// GetFriends returns the user's friend list
	GetFriends(ctx context.Context) ([]models.FriendSimple, error)
}

// APIClient defines the transport surface the repository consumes.
// Implemented by *transport.Client.
type APIClient interface {
	Register(ctx context.Context, request models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, request models.LoginRequest) (*models.AuthResponse, error)
	GetHomeOverview(ctx context.Context) (*models.OverviewResponse, error)
	GetActiveSession(ctx context.Context) (*models.ActiveSessionResponse, error)
	GetAllSessions(ctx context.Context) (*models.SessionListResponse, error)
	GetSessionDetail(ctx context.Context, sessionID string) (*models.SessionResponse, error)
	GetParticipants(ctx context.Context, sessionID string) (*models.ParticipantListResponse, error)
	GetLeaderboard(ctx context.Context, sessionID string) (*models.LeaderboardResponse, error)
	CreateSession(ctx context.Context, request models.CreateSessionRequest) (*models.SessionResponse, error)
	GetFriends(ctx context.Context) (*models.FriendListResponse, error)
}
