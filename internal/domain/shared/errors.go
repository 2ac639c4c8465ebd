package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient listing stock available")
	ErrBinCapacityExceeded = NewDomainError("BIN_CAPACITY_EXCEEDED", "Storage bin capacity exceeded")
	ErrMissionExpired      = NewDomainError("MISSION_EXPIRED", "Mission season has ended")
	ErrStepOutOfOrder      = NewDomainError("STEP_OUT_OF_ORDER", "Mission steps must be completed in order")
	ErrStreakBroken        = NewDomainError("STREAK_BROKEN", "Streak grace period has elapsed")
	ErrDuplicateReview     = NewDomainError("DUPLICATE_REVIEW", "Listing already reviewed by this buyer")
)
