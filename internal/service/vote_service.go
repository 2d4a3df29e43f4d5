package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"staffing-awards/internal/models"
	"staffing-awards/internal/repository"
)

// VoteService implements ballot casting and counting
type VoteService struct {
	votes       VoteStore
	nominations NominationStore
	notifier    Notifier
}

// NewVoteService creates a new vote service
func NewVoteService(votes VoteStore, nominations NominationStore, notifier Notifier) *VoteService {
	return &VoteService{
		votes:       votes,
		nominations: nominations,
		notifier:    notifier,
	}
}

// CastVoteRequest is the voting payload
type CastVoteRequest struct {
	NomineeID string `json:"nomineeId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	LinkedIn  string `json:"linkedin"`
	Company   string `json:"company"`
	Country   string `json:"country"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

// VoteResult reports a successfully recorded ballot
type VoteResult struct {
	Total int `json:"total"`
}

// Cast records a ballot for an approved nominee. Repeat ballots come back as
// *VoteBlockedError with the dedupe reason; they are outcomes, not failures.
func (s *VoteService) Cast(req CastVoteRequest) (*VoteResult, error) {
	if strings.TrimSpace(req.FirstName) == "" {
		return nil, &ValidationError{Field: "firstName", Message: "first name is required"}
	}
	if strings.TrimSpace(req.LastName) == "" {
		return nil, &ValidationError{Field: "lastName", Message: "last name is required"}
	}
	if err := validateBusinessEmail("email", req.Email); err != nil {
		return nil, err
	}
	if req.NomineeID == "" {
		return nil, &ValidationError{Field: "nomineeId", Message: "nominee id is required"}
	}

	nomination, err := s.nominations.GetByID(req.NomineeID)
	if err != nil {
		return nil, err
	}
	if nomination == nil {
		return nil, &NotFoundError{Resource: "nominee", ID: req.NomineeID}
	}
	if nomination.Status != models.StatusApproved {
		return nil, &ValidationError{Field: "nomineeId", Message: "nominee is not open for voting"}
	}

	// Pre-check for the friendly reason code. The unique index is what
	// actually enforces one ballot per voter per category.
	existing, err := s.votes.FindByVoterAndCategory(req.Email, nomination.Category)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, blockedFor(existing, req.NomineeID)
	}

	vote := &models.Vote{
		NomineeID: nomination.ID,
		Category:  nomination.Category,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		LinkedIn:  strings.TrimSpace(req.LinkedIn),
		Company:   strings.TrimSpace(req.Company),
		Country:   strings.TrimSpace(req.Country),
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
	}

	if err := s.votes.Add(vote); err != nil {
		if errors.Is(err, repository.ErrDuplicateVote) {
			// Lost the race to a concurrent ballot from the same voter.
			if existing, lookupErr := s.votes.FindByVoterAndCategory(req.Email, nomination.Category); lookupErr == nil && existing != nil {
				return nil, blockedFor(existing, req.NomineeID)
			}
			return nil, &VoteBlockedError{
				Reason:  ReasonAlreadyVotedInCategory,
				Message: "you have already voted in this category",
			}
		}
		return nil, err
	}

	total, err := s.combinedTotal(nomination)
	if err != nil {
		return nil, err
	}

	slog.Info("Vote recorded", "nominee_id", nomination.ID, "category", nomination.Category)
	s.notifier.VoteCast(vote, nomination)

	return &VoteResult{Total: total}, nil
}

func blockedFor(existing *models.Vote, nomineeID string) *VoteBlockedError {
	if existing.NomineeID == nomineeID {
		return &VoteBlockedError{
			Reason:  ReasonAlreadyVotedForNominee,
			Message: "you have already voted for this nominee",
		}
	}
	return &VoteBlockedError{
		Reason:  ReasonAlreadyVotedInCategory,
		Message: "you have already voted in this category",
	}
}

// Count returns the combined vote total for a nominee
func (s *VoteService) Count(nomineeID string) (int, error) {
	if nomineeID == "" {
		return 0, &ValidationError{Field: "nomineeId", Message: "nominee id is required"}
	}

	nomination, err := s.nominations.GetByID(nomineeID)
	if err != nil {
		return 0, err
	}
	if nomination == nil {
		return 0, &NotFoundError{Resource: "nominee", ID: nomineeID}
	}

	return s.combinedTotal(nomination)
}

// ListForNominee returns the individual ballots recorded for a nominee
func (s *VoteService) ListForNominee(nomineeID string) ([]models.Vote, error) {
	nomination, err := s.nominations.GetByID(nomineeID)
	if err != nil {
		return nil, err
	}
	if nomination == nil {
		return nil, &NotFoundError{Resource: "nominee", ID: nomineeID}
	}

	return s.votes.ListByNominee(nomineeID)
}

func (s *VoteService) combinedTotal(n *models.Nomination) (int, error) {
	real, err := s.votes.CountByNominee(n.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return real + n.AdditionalVotes, nil
}
