package dto

// ErrorResponse is the body of 4xx responses
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Field   string `json:"field,omitempty"` // Set for validation failures
}
