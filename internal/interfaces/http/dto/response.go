package dto

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error ErrorInfo `json:"error"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail describes one rejected field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewErrorResponseWithRequestID creates an error response carrying the request ID
func NewErrorResponseWithRequestID(code, message, requestID string) ErrorResponse {
	return ErrorResponse{Error: ErrorInfo{Code: code, Message: message, RequestID: requestID}}
}

// NewValidationErrorResponse creates an ERR_VALIDATION response with field details
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) ErrorResponse {
	return ErrorResponse{Error: ErrorInfo{
		Code:      ErrCodeValidation,
		Message:   message,
		RequestID: requestID,
		Details:   details,
	}}
}

// Result wraps list responses
type Result[T any] struct {
	Data  T    `json:"data"`
	Count *int `json:"count,omitempty"`
}

// NewResult wraps data without a count
func NewResult[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

// NewCountedResult wraps data with its element count
func NewCountedResult[T any](data T, count int) Result[T] {
	return Result[T]{Data: data, Count: &count}
}

// Page wraps one page of a paginated list
type Page[T any] struct {
	Data     []T   `json:"data"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// IDResponse is returned by create and command endpoints
type IDResponse struct {
	ID int64 `json:"id"`
}
