package service

import (
	"fmt"

	"staffing-awards/internal/models"
)

// ValidationError rejects malformed or policy-violating input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NotFoundError marks a missing resource
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// DuplicateError is raised when a submission targets an identity that
// already has an approved nomination. It is a non-fatal outcome: handlers
// answer 200 with the existing record's identity.
type DuplicateError struct {
	ExistingID string
	Status     models.NominationStatus
	LiveURL    string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("an approved nomination already exists (id %s)", e.ExistingID)
}

// ConflictError is raised when a moderation decision would violate the
// approved-uniqueness invariant. Carries the conflicting record's identity.
type ConflictError struct {
	ExistingID     string
	ExistingStatus models.NominationStatus
	LiveURL        string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicts with approved nomination %s", e.ExistingID)
}

// VoteBlockedReason identifies why a ballot was not recorded
type VoteBlockedReason string

const (
	ReasonAlreadyVotedForNominee VoteBlockedReason = "ALREADY_VOTED_FOR_THIS_NOMINEE"
	ReasonAlreadyVotedInCategory VoteBlockedReason = "ALREADY_VOTED_IN_CATEGORY"
)

// VoteBlockedError is the dedupe outcome of a repeated ballot. Not a
// failure: handlers answer 200 with the reason.
type VoteBlockedError struct {
	Reason  VoteBlockedReason
	Message string
}

func (e *VoteBlockedError) Error() string {
	return e.Message
}
