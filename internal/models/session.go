package models

// Session status values assigned by the backend
const (
	SessionStatusPlanned   = "PLANNED"
	SessionStatusOngoing   = "ONGOING"
	SessionStatusFinished  = "FINISHED"
	SessionStatusCancelled = "CANCELLED"
)

// Session modes
const (
	SessionModeRemote = "REMOTE"
	SessionModeOnSite = "ON_SITE"
)

// SessionResponse is the envelope for GET sessions/{id} and POST sessions
type SessionResponse struct {
	Data Session `json:"data"`
}

// SessionListResponse is the envelope for GET sessions
type SessionListResponse struct {
	Data []Session `json:"data"`
}

// Session represents a walking session. Timestamps are ISO-8601 strings
// end-to-end; the client never parses them into time values for display.
type Session struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	CreatorID       string   `json:"creatorId"`
	Mode            string   `json:"mode"`
	Status          string   `json:"status"`
	Visibility      string   `json:"visibility"`
	MaxParticipants int      `json:"maxParticipants"`
	StepTarget      int      `json:"stepTarget"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	StartLat        *float64 `json:"startLat"`
	StartLong       *float64 `json:"startLong"`
}

// CreateSessionRequest is the body for POST sessions
type CreateSessionRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Mode            string `json:"mode"`
	Visibility      string `json:"visibility"`
	MaxParticipants int    `json:"maxParticipants"`
	StepTarget      int    `json:"stepTarget"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
}

// LeaderboardResponse is the envelope for GET sessions/{id}/leaderboard
type LeaderboardResponse struct {
	Data []LeaderboardEntry `json:"data"`
}

// LeaderboardEntry is one ranked row. Rank is assigned server-side and the
// client must preserve the response ordering as-is.
type LeaderboardEntry struct {
	Rank           int      `json:"rank"`
	UserID         string   `json:"userId"`
	TotalSteps     int      `json:"totalSteps"`
	ApproxDistance string   `json:"approxDistance"`
	CaloriesBurned int      `json:"caloriesBurned"`
	User           UserName `json:"user"`
}

// UserName is the embedded username record on leaderboard rows
type UserName struct {
	Username string `json:"username"`
}

// ParticipantListResponse is the envelope for GET sessions/{id}/participants
type ParticipantListResponse struct {
	Data []Participant `json:"data"`
}

// Participant is one member of a session
type Participant struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Status   string `json:"status"`
	IsAdmin  bool   `json:"isAdmin"`
}
