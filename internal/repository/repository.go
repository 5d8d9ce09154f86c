package repository

import (
	"context"

	"github.com/walkcore/walkcore-client/internal/models"
)

// networkRepository implements Repository over the transport client. It is a
// pure pass-through: each method forwards the call and unwraps exactly one
// envelope level, nothing more.
type networkRepository struct {
	client APIClient
}

// NewRepository creates a network-backed repository
func NewRepository(client APIClient) Repository {
	return &networkRepository{client: client}
}

// Auth endpoints return the full {status,message,data} envelope; callers
// need status and message alongside the token, so no unwrapping here.

func (r *networkRepository) Register(ctx context.Context, request models.RegisterRequest) (*models.AuthResponse, error) {
	return r.client.Register(ctx, request)
}

func (r *networkRepository) Login(ctx context.Context, request models.LoginRequest) (*models.AuthResponse, error) {
	return r.client.Login(ctx, request)
}

func (r *networkRepository) GetHomeOverview(ctx context.Context) (*models.HomeData, error) {
	response, err := r.client.GetHomeOverview(ctx)
	if err != nil {
		return nil, err
	}
	return &response.Data, nil
}

func (r *networkRepository) GetActiveSession(ctx context.Context) (*models.ActiveSession, error) {
	response, err := r.client.GetActiveSession(ctx)
	if err != nil {
		return nil, err
	}
	// Data is nil when no session is ongoing; propagate as-is
	return response.Data, nil
}

func (r *networkRepository) GetAllSessions(ctx context.Context) ([]models.Session, error) {
	response, err := r.client.GetAllSessions(ctx)
	if err != nil {
		return nil, err
	}
	return response.Data, nil
}

func (r *networkRepository) GetSessionDetail(ctx context.Context, sessionID string) (*models.Session, error) {
	response, err := r.client.GetSessionDetail(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &response.Data, nil
}

func (r *networkRepository) GetParticipants(ctx context.Context, sessionID string) ([]models.Participant, error) {
	response, err := r.client.GetParticipants(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return response.Data, nil
}

func (r *networkRepository) GetLeaderboard(ctx context.Context, sessionID string) ([]models.LeaderboardEntry, error) {
	response, err := r.client.GetLeaderboard(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return response.Data, nil
}

func (r *networkRepository) CreateSession(ctx context.Context, request models.CreateSessionRequest) (*models.Session, error) {
	response, err := r.client.CreateSession(ctx, request)
	if err != nil {
		return nil, err
	}
	return &response.Data, nil
}

func (r *networkRepository) GetFriends(ctx context.Context) ([]models.FriendSimple, error) {
	response, err := r.client.GetFriends(ctx)
	if err != nil {
		return nil, err
	}
	return response.Friends, nil
}
