package models

// ErrorResponse is the {status,message} envelope the backend uses for
// non-2xx responses
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
