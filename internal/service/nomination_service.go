package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"staffing-awards/internal/linkedin"
	"staffing-awards/internal/models"
	"staffing-awards/internal/repository"
)

const (
	maxWhyVoteForMeLength    = 1000
	maxRejectionReasonLength = 500
	liveURLPrefix            = "/nominee/"
	slugAttempts             = 50
)

// NominationService implements nomination submission, listing and moderation
type NominationService struct {
	nominations NominationStore
	audit       AuditStore
	notifier    Notifier
}

// NewNominationService creates a new nomination service
func NewNominationService(nominations NominationStore, audit AuditStore, notifier Notifier) *NominationService {
	return &NominationService{
		nominations: nominations,
		audit:       audit,
		notifier:    notifier,
	}
}

// CreateNominationRequest is the submission payload. Nominee fields are flat;
// which ones are required depends on the category type.
type CreateNominationRequest struct {
	Category string `json:"category"`

	NominatorName     string `json:"nominatorName"`
	NominatorEmail    string `json:"nominatorEmail"`
	NominatorCompany  string `json:"nominatorCompany"`
	NominatorLinkedIn string `json:"nominatorLinkedin"`

	NomineeName     string `json:"nomineeName"`
	NomineeEmail    string `json:"nomineeEmail"`
	NomineeTitle    string `json:"nomineeTitle"`
	NomineeWebsite  string `json:"nomineeWebsite"`
	NomineeCountry  string `json:"nomineeCountry"`
	NomineeLinkedIn string `json:"nomineeLinkedin"`

	ImageURL     string `json:"imageUrl"`
	WhyVoteForMe string `json:"whyVoteForMe"`
}

// Create validates and persists a new nomination in the submitted state.
// When the identity already has an approved nomination, returns
// *DuplicateError carrying the existing record.
func (s *NominationService) Create(req CreateNominationRequest) (*models.Nomination, error) {
	category, ok := models.CategoryByID(req.Category)
	if !ok {
		return nil, &ValidationError{Field: "category", Message: "unknown category"}
	}

	if strings.TrimSpace(req.NominatorName) == "" {
		return nil, &ValidationError{Field: "nominatorName", Message: "nominator name is required"}
	}
	if err := validateBusinessEmail("nominatorEmail", req.NominatorEmail); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.NomineeName) == "" {
		return nil, &ValidationError{Field: "nomineeName", Message: "nominee name is required"}
	}
	if len(req.WhyVoteForMe) > maxWhyVoteForMeLength {
		return nil, &ValidationError{Field: "whyVoteForMe", Message: fmt.Sprintf("must be at most %d characters", maxWhyVoteForMeLength)}
	}

	nominee, err := buildNominee(category.Type, req)
	if err != nil {
		return nil, err
	}

	uniqueKey, err := linkedin.BuildUniqueKey(category.ID, nominee.LinkedIn())
	if err != nil {
		return nil, &ValidationError{Field: "nomineeLinkedin", Message: "not a valid LinkedIn URL"}
	}

	// An approved holder of this identity blocks resubmission outright.
	// Pending duplicates are allowed and left for the moderator.
	if existing, err := s.nominations.GetApprovedByUniqueKey(uniqueKey, ""); err != nil {
		return nil, fmt.Errorf("failed to check for duplicates: %w", err)
	} else if existing != nil {
		return nil, &DuplicateError{
			ExistingID: existing.ID,
			Status:     existing.Status,
			LiveURL:    existing.LiveURL,
		}
	}

	nomination := &models.Nomination{
		ID:       uuid.NewString(),
		Category: category.ID,
		Type:     category.Type,
		Nominator: models.Nominator{
			Name:     strings.TrimSpace(req.NominatorName),
			Email:    strings.TrimSpace(req.NominatorEmail),
			Company:  strings.TrimSpace(req.NominatorCompany),
			LinkedIn: strings.TrimSpace(req.NominatorLinkedIn),
		},
		Nominee:      nominee,
		ImageURL:     strings.TrimSpace(req.ImageURL),
		WhyVoteForMe: strings.TrimSpace(req.WhyVoteForMe),
		UniqueKey:    uniqueKey,
		Status:       models.StatusSubmitted,
	}

	if err := s.createWithFreshSlug(nomination); err != nil {
		return nil, err
	}

	slog.Info("Nomination submitted",
		"id", nomination.ID,
		"category", nomination.Category,
		"live_url", nomination.LiveURL,
	)
	s.notifier.NominationSubmitted(nomination)

	return nomination, nil
}

// createWithFreshSlug assigns a collision-free live URL and inserts. The
// unique index on live_url closes the check-then-insert race; on a lost race
// the next suffix is tried.
func (s *NominationService) createWithFreshSlug(n *models.Nomination) error {
	base := linkedin.Slugify(n.Nominee.Name())
	if base == "" {
		base = "nominee"
	}

	suffix := 1
	for attempt := 0; attempt < slugAttempts; attempt++ {
		candidate := liveURLPrefix + base
		if suffix > 1 {
			candidate = fmt.Sprintf("%s%s-%d", liveURLPrefix, base, suffix)
		}

		taken, err := s.nominations.LiveURLExists(candidate)
		if err != nil {
			return fmt.Errorf("failed to check live URL: %w", err)
		}
		if taken {
			suffix++
			continue
		}

		n.LiveURL = candidate
		err = s.nominations.Create(n)
		if err == nil {
			return nil
		}
		if errors.Is(err, repository.ErrLiveURLTaken) {
			suffix++
			continue
		}
		return err
	}

	return fmt.Errorf("could not assign a unique live URL for %q", base)
}

func buildNominee(categoryType models.CategoryType, req CreateNominationRequest) (models.Nominee, error) {
	switch categoryType {
	case models.TypePerson:
		if strings.TrimSpace(req.NomineeLinkedIn) == "" {
			return models.Nominee{}, &ValidationError{Field: "nomineeLinkedin", Message: "LinkedIn URL is required"}
		}
		return models.Nominee{Person: &models.PersonNominee{
			Name:     strings.TrimSpace(req.NomineeName),
			Email:    strings.TrimSpace(req.NomineeEmail),
			Title:    strings.TrimSpace(req.NomineeTitle),
			Country:  strings.TrimSpace(req.NomineeCountry),
			LinkedIn: strings.TrimSpace(req.NomineeLinkedIn),
		}}, nil
	case models.TypeCompany:
		if strings.TrimSpace(req.NomineeLinkedIn) == "" {
			return models.Nominee{}, &ValidationError{Field: "nomineeLinkedin", Message: "LinkedIn URL is required"}
		}
		return models.Nominee{Company: &models.CompanyNominee{
			Name:     strings.TrimSpace(req.NomineeName),
			Website:  strings.TrimSpace(req.NomineeWebsite),
			Country:  strings.TrimSpace(req.NomineeCountry),
			LinkedIn: strings.TrimSpace(req.NomineeLinkedIn),
		}}, nil
	}
	return models.Nominee{}, &ValidationError{Field: "category", Message: "unknown category type"}
}

func validateBusinessEmail(field, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Field: field, Message: "email is required"}
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return &ValidationError{Field: field, Message: "not a valid email address"}
	}
	if models.IsFreeEmailDomain(email) {
		return &ValidationError{Field: field, Message: "please use a business email address"}
	}
	return nil
}

// List returns nominations matching the filter. Non-admin callers only ever
// see approved records: any other status filter is overridden.
func (s *NominationService) List(filter models.NominationFilter, isAdmin bool) ([]models.Nomination, error) {
	if !isAdmin {
		filter.Status = models.StatusApproved
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, &ValidationError{Field: "status", Message: "unknown status"}
	}
	if filter.Sort != "" && filter.Sort != "recent" && filter.Sort != "popular" && filter.Sort != "name" {
		return nil, &ValidationError{Field: "sort", Message: "sort must be recent, popular or name"}
	}

	return s.nominations.List(filter)
}

// GetByID returns one nomination. Non-admin callers only see approved records.
func (s *NominationService) GetByID(id string, isAdmin bool) (*models.Nomination, error) {
	nomination, err := s.nominations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if nomination == nil || (!isAdmin && nomination.Status != models.StatusApproved) {
		return nil, &NotFoundError{Resource: "nomination", ID: id}
	}
	return nomination, nil
}

// UpdateNominationRequest is the admin moderation payload. Nil fields are
// left unchanged.
type UpdateNominationRequest struct {
	ID              string  `json:"id"`
	Status          *string `json:"status,omitempty"`
	LiveURL         *string `json:"liveUrl,omitempty"`
	AdminNotes      *string `json:"adminNotes,omitempty"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
	WhyVoteForMe    *string `json:"whyVoteForMe,omitempty"`
	AdditionalVotes *int    `json:"additionalVotes,omitempty"`
}

// ActorInfo identifies the admin request for the audit trail
type ActorInfo struct {
	IPAddress string
	UserAgent string
}

// Update applies an admin edit or moderation decision
func (s *NominationService) Update(req UpdateNominationRequest, actor ActorInfo) (*models.Nomination, error) {
	if req.ID == "" {
		return nil, &ValidationError{Field: "id", Message: "id is required"}
	}

	nomination, err := s.nominations.GetByID(req.ID)
	if err != nil {
		return nil, err
	}
	if nomination == nil {
		return nil, &NotFoundError{Resource: "nomination", ID: req.ID}
	}

	action := "nomination.update"

	if req.WhyVoteForMe != nil {
		if len(*req.WhyVoteForMe) > maxWhyVoteForMeLength {
			return nil, &ValidationError{Field: "whyVoteForMe", Message: fmt.Sprintf("must be at most %d characters", maxWhyVoteForMeLength)}
		}
		nomination.WhyVoteForMe = strings.TrimSpace(*req.WhyVoteForMe)
	}

	if req.AdminNotes != nil {
		nomination.AdminNotes = strings.TrimSpace(*req.AdminNotes)
	}

	if req.AdditionalVotes != nil {
		// Additive only: the counter never decreases and never goes negative.
		if *req.AdditionalVotes < nomination.AdditionalVotes {
			return nil, &ValidationError{Field: "additionalVotes", Message: "additional votes can only be increased"}
		}
		if *req.AdditionalVotes != nomination.AdditionalVotes {
			action = "nomination.adjust_votes"
		}
		nomination.AdditionalVotes = *req.AdditionalVotes
	}

	if req.LiveURL != nil {
		liveURL := strings.TrimSpace(*req.LiveURL)
		if liveURL == "" || !strings.HasPrefix(liveURL, "/") {
			return nil, &ValidationError{Field: "liveUrl", Message: "live URL must be an absolute path"}
		}
		if liveURL != nomination.LiveURL {
			holder, err := s.nominations.GetByLiveURL(liveURL)
			if err != nil {
				return nil, err
			}
			if holder != nil && holder.ID != nomination.ID {
				return nil, &ValidationError{Field: "liveUrl", Message: "live URL is already taken"}
			}
			nomination.LiveURL = liveURL
		}
	}

	var approved, rejected bool
	if req.Status != nil {
		status := models.NominationStatus(*req.Status)
		if !status.Valid() {
			return nil, &ValidationError{Field: "status", Message: "unknown status"}
		}
		if status != nomination.Status {
			switch status {
			case models.StatusApproved:
				if err := s.approve(nomination); err != nil {
					return nil, err
				}
				approved = true
				action = "nomination.approve"
			case models.StatusRejected:
				if err := rejectWithReason(nomination, req.RejectionReason); err != nil {
					return nil, err
				}
				rejected = true
				action = "nomination.reject"
			default:
				return nil, &ValidationError{Field: "status", Message: "status can only move to approved or rejected"}
			}
		}
	}

	if err := s.nominations.Update(nomination); err != nil {
		// A concurrent approval of a duplicate slips past the pre-check and
		// lands on the partial unique index.
		if errors.Is(err, repository.ErrDuplicateApproved) {
			return nil, s.conflictForKey(nomination)
		}
		return nil, err
	}

	s.recordAudit(action, nomination.ID, fmt.Sprintf("status=%s", nomination.Status), actor)

	if approved {
		slog.Info("Nomination approved", "id", nomination.ID, "live_url", nomination.LiveURL)
		s.notifier.NominationApproved(nomination)
	}
	if rejected {
		slog.Info("Nomination rejected", "id", nomination.ID)
		s.notifier.NominationRejected(nomination)
	}

	return nomination, nil
}

func (s *NominationService) approve(n *models.Nomination) error {
	if n.Status == models.StatusRejected {
		return &ValidationError{Field: "status", Message: "a rejected nomination cannot be approved; resubmit it instead"}
	}
	if n.LiveURL == "" || !strings.HasPrefix(n.LiveURL, "/") {
		return &ValidationError{Field: "liveUrl", Message: "an absolute live URL is required for approval"}
	}

	holder, err := s.nominations.GetApprovedByUniqueKey(n.UniqueKey, n.ID)
	if err != nil {
		return fmt.Errorf("failed to check approved uniqueness: %w", err)
	}
	if holder != nil {
		return &ConflictError{
			ExistingID:     holder.ID,
			ExistingStatus: holder.Status,
			LiveURL:        holder.LiveURL,
		}
	}

	now := time.Now()
	n.Status = models.StatusApproved
	n.ModeratedAt = &now
	n.ApprovedAt = &now
	n.RejectionReason = nil
	return nil
}

func rejectWithReason(n *models.Nomination, reason *string) error {
	if reason == nil || strings.TrimSpace(*reason) == "" {
		return &ValidationError{Field: "rejectionReason", Message: "a rejection reason is required"}
	}
	trimmed := strings.TrimSpace(*reason)
	if len(trimmed) > maxRejectionReasonLength {
		return &ValidationError{Field: "rejectionReason", Message: fmt.Sprintf("must be at most %d characters", maxRejectionReasonLength)}
	}

	now := time.Now()
	n.Status = models.StatusRejected
	n.ModeratedAt = &now
	n.RejectionReason = &trimmed
	return nil
}

func (s *NominationService) conflictForKey(n *models.Nomination) error {
	holder, err := s.nominations.GetApprovedByUniqueKey(n.UniqueKey, n.ID)
	if err == nil && holder != nil {
		return &ConflictError{
			ExistingID:     holder.ID,
			ExistingStatus: holder.Status,
			LiveURL:        holder.LiveURL,
		}
	}
	return &ConflictError{}
}

// Delete removes a nomination entirely. Correction path for admin mistakes;
// cascades to the nomination's votes.
func (s *NominationService) Delete(id string, actor ActorInfo) error {
	nomination, err := s.nominations.GetByID(id)
	if err != nil {
		return err
	}
	if nomination == nil {
		return &NotFoundError{Resource: "nomination", ID: id}
	}

	if err := s.nominations.Delete(id); err != nil {
		return err
	}

	s.recordAudit("nomination.delete", id, fmt.Sprintf("category=%s nominee=%s", nomination.Category, nomination.Nominee.Name()), actor)
	slog.Info("Nomination deleted", "id", id)
	return nil
}

// AuditLog returns recent admin actions
func (s *NominationService) AuditLog(limit int) ([]models.AuditEntry, error) {
	return s.audit.List(limit)
}

func (s *NominationService) recordAudit(action, resourceID, details string, actor ActorInfo) {
	entry := &models.AuditEntry{
		Action:     action,
		Resource:   "nomination",
		ResourceID: resourceID,
		Details:    details,
		IPAddress:  actor.IPAddress,
		UserAgent:  actor.UserAgent,
	}
	if err := s.audit.Create(entry); err != nil {
		slog.Error("Failed to record audit entry", "action", action, "resource_id", resourceID, "error", err)
	}
}
