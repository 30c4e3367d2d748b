package problem

// InvalidParam describes one field-level validation failure.
type InvalidParam struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// APIError implements error and serializes to the wire error payload:
// a top-level "error" message plus optional field-keyed details.
type APIError struct {
	Status        int            `json:"-"`
	Message       string         `json:"error"`
	InvalidParams []InvalidParam `json:"invalid_params,omitempty"`
}

func (e APIError) Error() string { return e.Message }

func NewBadRequest(detail string, params ...InvalidParam) APIError {
	return APIError{
		Status:        400,
		Message:       detail,
		InvalidParams: params,
	}
}

// NewValidationError is the write-path failure: every offending field is
// reported at once.
func NewValidationError(params ...InvalidParam) APIError {
	return APIError{
		Status:        400,
		Message:       "Challenge validation failed",
		InvalidParams: params,
	}
}

func NewNotFound(detail string) APIError {
	return APIError{
		Status:  404,
		Message: detail,
	}
}

// NewInternalServerError deliberately carries no detail beyond the top-level
// message; the cause is for the logs, not the caller.
func NewInternalServerError() APIError {
	return APIError{
		Status:  500,
		Message: "Internal server error",
	}
}
