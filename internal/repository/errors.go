package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors for unique-index violations. The schema is the source of
// truth for the uniqueness invariants; application-level pre-checks only
// exist to produce friendly responses, so a race that slips past them still
// surfaces here.
var (
	// ErrDuplicateApproved: a different nomination with the same unique key
	// is already approved (partial unique index on approved rows).
	ErrDuplicateApproved = errors.New("an approved nomination with this unique key already exists")

	// ErrLiveURLTaken: the live URL slug is already assigned.
	ErrLiveURLTaken = errors.New("live URL is already taken")

	// ErrDuplicateVote: this voter already has a ballot in this category.
	ErrDuplicateVote = errors.New("voter already has a ballot in this category")
)

// uniqueViolation maps a Postgres unique violation (SQLSTATE 23505) to the
// sentinel for the constraint it hit, or returns the error unchanged.
func uniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return err
	}

	switch pqErr.Constraint {
	case "idx_nominations_unique_key_approved":
		return ErrDuplicateApproved
	case "idx_nominations_live_url":
		return ErrLiveURLTaken
	case "idx_votes_voter_category":
		return ErrDuplicateVote
	}
	return err
}
