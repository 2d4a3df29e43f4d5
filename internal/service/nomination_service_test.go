package service

import (
	"errors"
	"strings"
	"testing"

	"staffing-awards/internal/models"
)

func newNominationFixture() (*NominationService, *fakeNominationStore, *fakeAuditStore, *recordingNotifier) {
	store := newFakeNominationStore()
	audit := &fakeAuditStore{}
	notifier := &recordingNotifier{}
	return NewNominationService(store, audit, notifier), store, audit, notifier
}

func personRequest() CreateNominationRequest {
	return CreateNominationRequest{
		Category:        "Top Recruiter",
		NominatorName:   "Alex Smith",
		NominatorEmail:  "alex@acmestaffing.com",
		NomineeName:     "Jane Doe",
		NomineeTitle:    "Senior Recruiter",
		NomineeLinkedIn: "https://www.linkedin.com/in/jane-doe",
	}
}

func TestCreateNomination(t *testing.T) {
	svc, store, _, notifier := newNominationFixture()

	nomination, err := svc.Create(personRequest())
	if err != nil {
		t.Fatalf("Failed to create nomination: %v", err)
	}

	if nomination.Status != models.StatusSubmitted {
		t.Errorf("Expected status submitted, got %s", nomination.Status)
	}
	if nomination.LiveURL != "/nominee/jane-doe" {
		t.Errorf("Expected live URL /nominee/jane-doe, got %s", nomination.LiveURL)
	}
	if nomination.Nominee.Person == nil {
		t.Fatal("Person category should produce a person nominee")
	}
	if nomination.UniqueKey == "" {
		t.Error("Unique key should be set")
	}
	if len(notifier.submitted) != 1 {
		t.Errorf("Expected 1 submitted event, got %d", len(notifier.submitted))
	}

	stored, _ := store.GetByID(nomination.ID)
	if stored == nil {
		t.Fatal("Nomination should be persisted")
	}
}

func TestCreateNominationSlugCollision(t *testing.T) {
	svc, _, _, _ := newNominationFixture()

	first, err := svc.Create(personRequest())
	if err != nil {
		t.Fatalf("Failed to create first nomination: %v", err)
	}

	// Same name, different profile: no duplicate, but the slug collides
	req := personRequest()
	req.NomineeLinkedIn = "https://www.linkedin.com/in/jane-doe-2b4"
	second, err := svc.Create(req)
	if err != nil {
		t.Fatalf("Failed to create second nomination: %v", err)
	}

	if first.LiveURL != "/nominee/jane-doe" {
		t.Errorf("First live URL should be /nominee/jane-doe, got %s", first.LiveURL)
	}
	if second.LiveURL != "/nominee/jane-doe-2" {
		t.Errorf("Second live URL should be /nominee/jane-doe-2, got %s", second.LiveURL)
	}
}

func TestCreateNominationValidation(t *testing.T) {
	svc, _, _, _ := newNominationFixture()

	tests := []struct {
		name   string
		mutate func(*CreateNominationRequest)
		field  string
	}{
		{"unknown category", func(r *CreateNominationRequest) { r.Category = "Best Category Ever" }, "category"},
		{"missing nominator name", func(r *CreateNominationRequest) { r.NominatorName = "" }, "nominatorName"},
		{"missing nominator email", func(r *CreateNominationRequest) { r.NominatorEmail = "" }, "nominatorEmail"},
		{"free email domain", func(r *CreateNominationRequest) { r.NominatorEmail = "alex@gmail.com" }, "nominatorEmail"},
		{"missing nominee name", func(r *CreateNominationRequest) { r.NomineeName = "" }, "nomineeName"},
		{"missing linkedin", func(r *CreateNominationRequest) { r.NomineeLinkedIn = "" }, "nomineeLinkedin"},
		{"bad linkedin", func(r *CreateNominationRequest) { r.NomineeLinkedIn = "https://twitter.com/jane" }, "nomineeLinkedin"},
		{"why vote too long", func(r *CreateNominationRequest) { r.WhyVoteForMe = strings.Repeat("x", 1001) }, "whyVoteForMe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := personRequest()
			tt.mutate(&req)

			_, err := svc.Create(req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, verr.Field)
			}
		})
	}
}

func TestCreateCompanyNomination(t *testing.T) {
	svc, _, _, _ := newNominationFixture()

	nomination, err := svc.Create(CreateNominationRequest{
		Category:        "Fastest Growing Staffing Firm",
		NominatorName:   "Alex Smith",
		NominatorEmail:  "alex@acmestaffing.com",
		NomineeName:     "Acme Staffing",
		NomineeWebsite:  "https://acmestaffing.com",
		NomineeLinkedIn: "https://www.linkedin.com/company/acme-staffing",
	})
	if err != nil {
		t.Fatalf("Failed to create nomination: %v", err)
	}

	if nomination.Nominee.Company == nil {
		t.Fatal("Company category should produce a company nominee")
	}
	if nomination.Type != models.TypeCompany {
		t.Errorf("Expected company type, got %s", nomination.Type)
	}
}

func TestCreateDuplicateOfApproved(t *testing.T) {
	svc, _, _, _ := newNominationFixture()

	first, err := svc.Create(personRequest())
	if err != nil {
		t.Fatalf("Failed to create nomination: %v", err)
	}

	if _, err := svc.Update(UpdateNominationRequest{ID: first.ID, Status: ptr("approved")}, ActorInfo{}); err != nil {
		t.Fatalf("Failed to approve nomination: %v", err)
	}

	// Different URL form, same identity
	req := personRequest()
	req.NomineeLinkedIn = "https://www.LinkedIn.com/in/Jane-Doe/"
	_, err = svc.Create(req)

	var dup *DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("Expected duplicate error, got %v", err)
	}
	if dup.ExistingID != first.ID {
		t.Errorf("Duplicate should reference %s, got %s", first.ID, dup.ExistingID)
	}
	if dup.LiveURL != first.LiveURL {
		t.Errorf("Duplicate should carry the live URL %s, got %s", first.LiveURL, dup.LiveURL)
	}
}

func TestCreateDuplicatePendingAllowed(t *testing.T) {
	svc, _, _, _ := newNominationFixture()

	if _, err := svc.Create(personRequest()); err != nil {
		t.Fatalf("Failed to create nomination: %v", err)
	}

	// Same identity again while the first is still pending
	second, err := svc.Create(personRequest())
	if err != nil {
		t.Fatalf("Pending duplicate should be allowed, got %v", err)
	}
	if second.Status != models.StatusSubmitted {
		t.Errorf("Expected status submitted, got %s", second.Status)
	}
}

func TestApproveNomination(t *testing.T) {
	svc, _, audit, notifier := newNominationFixture()

	created, _ := svc.Create(personRequest())

	updated, err := svc.Update(UpdateNominationRequest{ID: created.ID, Status: ptr("approved")}, ActorInfo{IPAddress: "10.0.0.1"})
	if err != nil {
		t.Fatalf("Failed to approve: %v", err)
	}

	if updated.Status != models.StatusApproved {
		t.Errorf("Expected status approved, got %s", updated.Status)
	}
	if updated.ApprovedAt == nil || updated.ModeratedAt == nil {
		t.Error("Approval should stamp approvedAt and moderatedAt")
	}
	if len(notifier.approved) != 1 {
		t.Errorf("Expected 1 approved event, got %d", len(notifier.approved))
	}
	if len(audit.entries) == 0 {
		t.Fatal("Approval should be audited")
	}
	if audit.entries[0].Action != "nomination.approve" {
		t.Errorf("Expected audit action nomination.approve, got %s", audit.entries[0].Action)
	}
}

func TestApproveConflict(t *testing.T) {
	svc, _, _, _ := newNominationFixture()

	first, _ := svc.Create(personRequest())
	second, _ := svc.Create(personRequest())

	if _, err := svc.Update(UpdateNominationRequest{ID: first.ID, Status: ptr("approved")}, ActorInfo{}); err != nil {
		t.Fatalf("Failed to approve first: %v", err)
	}

	_, err := svc.Update(UpdateNominationRequest{ID: second.ID, Status: ptr("approved")}, ActorInfo{})
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Expected conflict error, got %v", err)
	}
	if conflict.ExistingID != first.ID {
		t.Errorf("Conflict should reference %s, got %s", first.ID, conflict.ExistingID)
	}
}

func TestRejectNomination(t *testing.T) {
	svc, _, _, notifier := newNominationFixture()

	created, _ := svc.Create(personRequest())

	_, err := svc.Update(UpdateNominationRequest{ID: created.ID, Status: ptr("rejected")}, ActorInfo{})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "rejectionReason" {
		t.Fatalf("Rejection without reason should fail validation, got %v", err)
	}

	longReason := strings.Repeat("x", 501)
	_, err = svc.Update(UpdateNominationRequest{ID: created.ID, Status: ptr("rejected"), RejectionReason: &longReason}, ActorInfo{})
	if !errors.As(err, &verr) || verr.Field != "rejectionReason" {
		t.Fatalf("Overlong reason should fail validation, got %v", err)
	}

	reason := "Does not meet the eligibility criteria"
	updated, err := svc.Update(UpdateNominationRequest{ID: created.ID, Status: ptr("rejected"), RejectionReason: &reason}, ActorInfo{})
	if err != nil {
		t.Fatalf("Failed to reject: %v", err)
	}

	if updated.Status != models.StatusRejected {
		t.Errorf("Expected status rejected, got %s", updated.Status)
	}
	if updated.RejectionReason == nil || *updated.RejectionReason != reason {
		t.Error("Rejection reason should be stored")
	}
	if updated.ApprovedAt != nil {
		t.Error("Rejection should not stamp approvedAt")
	}
	if len(notifier.rejected) != 1 {
		t.Errorf("Expected 1 rejected event, got %d", len(notifier.rejected))
	}
}

func TestRejectedIsTerminal(t *testing.T) {
	svc, _, _, _ := newNominationFixture()

	created, _ := svc.Create(personRequest())
	reason := "duplicate entry"
	if _, err := svc.Update(UpdateNominationRequest{ID: created.ID, Status: ptr("rejected"), RejectionReason: &reason}, ActorInfo{}); err != nil {
		t.Fatalf("Failed to reject: %v", err)
	}

	_, err := svc.Update(UpdateNominationRequest{ID: created.ID, Status: ptr("approved")}, ActorInfo{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Approving a rejected nomination should fail, got %v", err)
	}
}

func TestAdditionalVotesAdditiveOnly(t *testing.T) {
	svc, _, _, _ := newNominationFixture()

	created, _ := svc.Create(personRequest())

	updated, err := svc.Update(UpdateNominationRequest{ID: created.ID, AdditionalVotes: ptrInt(10)}, ActorInfo{})
	if err != nil {
		t.Fatalf("Failed to set additional votes: %v", err)
	}
	if updated.AdditionalVotes != 10 {
		t.Errorf("Expected 10 additional votes, got %d", updated.AdditionalVotes)
	}

	_, err = svc.Update(UpdateNominationRequest{ID: created.ID, AdditionalVotes: ptrInt(5)}, ActorInfo{})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "additionalVotes" {
		t.Fatalf("Decreasing additional votes should fail validation, got %v", err)
	}
}

func TestListHidesNonApprovedFromPublic(t *testing.T) {
	svc, _, _, _ := newNominationFixture()

	pending, _ := svc.Create(personRequest())

	req := personRequest()
	req.NomineeName = "John Roe"
	req.NomineeLinkedIn = "https://linkedin.com/in/john-roe"
	approved, _ := svc.Create(req)
	if _, err := svc.Update(UpdateNominationRequest{ID: approved.ID, Status: ptr("approved")}, ActorInfo{}); err != nil {
		t.Fatalf("Failed to approve: %v", err)
	}

	public, err := svc.List(models.NominationFilter{Status: models.StatusSubmitted}, false)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	for _, n := range public {
		if n.Status != models.StatusApproved {
			t.Errorf("Public listing leaked status %s", n.Status)
		}
	}

	admin, err := svc.List(models.NominationFilter{Status: models.StatusSubmitted}, true)
	if err != nil {
		t.Fatalf("Failed to list as admin: %v", err)
	}
	if len(admin) != 1 || admin[0].ID != pending.ID {
		t.Error("Admin listing should honor the status filter")
	}

	if _, err := svc.GetByID(pending.ID, false); err == nil {
		t.Error("Public lookup of a pending nomination should report not found")
	}
	if _, err := svc.GetByID(pending.ID, true); err != nil {
		t.Errorf("Admin lookup of a pending nomination should succeed, got %v", err)
	}
}

func TestDeleteNomination(t *testing.T) {
	svc, store, audit, _ := newNominationFixture()

	created, _ := svc.Create(personRequest())

	if err := svc.Delete(created.ID, ActorInfo{}); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	if stored, _ := store.GetByID(created.ID); stored != nil {
		t.Error("Nomination should be gone")
	}

	var notFound *NotFoundError
	if err := svc.Delete(created.ID, ActorInfo{}); !errors.As(err, &notFound) {
		t.Errorf("Deleting a missing nomination should report not found, got %v", err)
	}

	found := false
	for _, e := range audit.entries {
		if e.Action == "nomination.delete" {
			found = true
		}
	}
	if !found {
		t.Error("Deletion should be audited")
	}
}

func ptr(s string) *string { return &s }
func ptrInt(i int) *int    { return &i }
