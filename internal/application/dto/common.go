package dto

// ErrorResponse is the uniform error body of the API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
