package handlers

// Common error message constants shared across handlers
const (
	ErrMsgInvalidRequestBody  = "Invalid request body"
	ErrMsgNominationNotFound  = "Nomination not found"
	ErrMsgNomineeNotFound     = "Nominee not found"
	ErrMsgInternalServerError = "Internal server error"
	ErrMsgUnauthorized        = "Unauthorized"
)
