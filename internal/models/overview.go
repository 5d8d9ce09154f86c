package models

// OverviewResponse is the envelope for GET users/me/overview
type OverviewResponse struct {
	Data HomeData `json:"data"`
}

// HomeData aggregates the profile and lifetime stats shown on the home screen
type HomeData struct {
	Profile UserProfile `json:"profile"`
	Stats   UserStats   `json:"stats"`
}

// UserProfile represents the backend-owned user record
type UserProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Gender   string `json:"gender"`
}

// UserStats holds lifetime activity totals. TotalSteps and TotalDistance are
// delivered as pre-formatted strings by the backend and must stay opaque.
type UserStats struct {
	TotalSteps          string `json:"totalSteps"`
	TotalDistance       string `json:"totalDistance"`
	TotalActiveTime     int    `json:"totalActiveTime"`
	TotalCaloriesBurned int    `json:"totalCaloriesBurned"`
	LongestStreak       int    `json:"longestStreak"`
}

// ActiveSessionResponse is the envelope for GET users/me/sessions/active.
// Data is nil when the user has no ongoing session.
type ActiveSessionResponse struct {
	Data *ActiveSession `json:"data"`
}

// ActiveSession is the zero-or-one ongoing session of the current user
type ActiveSession struct {
	SessionID         string `json:"sessionId"`
	Title             string `json:"title"`
	Status            string `json:"status"`
	ParticipantStatus string `json:"participantStatus"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	TotalSteps        int    `json:"totalSteps"`
}
