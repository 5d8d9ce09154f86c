package models

// RegisterRequest represents the body for POST auth/register
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the body for POST auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the {status,message,data} wrapper returned by both auth endpoints
type AuthResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Data    AuthData `json:"data"`
}

// AuthData carries the bearer token and the authenticated user's profile
type AuthData struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// User is the profile embedded in auth responses
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
