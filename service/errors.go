package service

// The service layer reports failures through a small set of typed errors.
// The API layer matches them with errors.As and maps each kind to its HTTP
// status; anything else becomes a generic 500.

// ValidationError reports bad input shape or range, optionally with
// field-level messages.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a resource that is absent or not owned by the
// caller. The two cases are deliberately indistinguishable.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// UnauthorizedError reports a missing or invalid credential, or an explicit
// attempt to list another user's records.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	if e.Message == "" {
		return "unauthorized"
	}
	return e.Message
}

// ConflictError reports a unique-constraint violation such as a duplicate
// email.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
