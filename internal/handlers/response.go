package handlers

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func validationError(message string) ErrorResponse {
	return ErrorResponse{Error: "validation_error", Message: message}
}

func upstreamError(message string) ErrorResponse {
	return ErrorResponse{Error: "upstream_error", Message: message}
}
