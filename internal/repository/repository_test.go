package repository

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"staffing-awards/internal/linkedin"
	"staffing-awards/internal/models"
	"staffing-awards/internal/testutil"
)

func personNomination(t *testing.T, category, name, linkedInURL string, status models.NominationStatus) *models.Nomination {
	t.Helper()

	uniqueKey, err := linkedin.BuildUniqueKey(category, linkedInURL)
	if err != nil {
		t.Fatalf("Failed to build unique key: %v", err)
	}

	id := uuid.NewString()
	return &models.Nomination{
		ID:       id,
		Category: category,
		Type:     models.TypePerson,
		Nominator: models.Nominator{
			Name:  "Alex Smith",
			Email: "alex@acmestaffing.com",
		},
		Nominee: models.Nominee{
			Person: &models.PersonNominee{
				Name:     name,
				LinkedIn: linkedInURL,
			},
		},
		UniqueKey: uniqueKey,
		LiveURL:   "/nominee/" + linkedin.Slugify(name) + "-" + id[:8],
		Status:    status,
	}
}

func TestNominationRepository(t *testing.T) {
	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	repo := NewNominationRepository(tc.DB)
	fixtures := testutil.SetupFixtures(t, tc.DB)

	t.Run("create and read back", func(t *testing.T) {
		defer fixtures.Truncate(t)

		n := personNomination(t, "Top Recruiter", "Jane Doe", "linkedin.com/in/jane-doe", models.StatusSubmitted)
		if err := repo.Create(n); err != nil {
			t.Fatalf("Failed to create nomination: %v", err)
		}
		if n.CreatedAt.IsZero() {
			t.Error("Create should populate createdAt")
		}

		loaded, err := repo.GetByID(n.ID)
		if err != nil {
			t.Fatalf("Failed to load nomination: %v", err)
		}
		if loaded == nil {
			t.Fatal("Nomination should exist")
		}
		if loaded.Nominee.Person == nil || loaded.Nominee.Name() != "Jane Doe" {
			t.Errorf("Person variant should round-trip, got %+v", loaded.Nominee)
		}
		if loaded.UniqueKey != n.UniqueKey {
			t.Errorf("Unique key should round-trip, got %s", loaded.UniqueKey)
		}

		missing, err := repo.GetByID(uuid.NewString())
		if err != nil {
			t.Fatalf("Lookup of missing ID should not error: %v", err)
		}
		if missing != nil {
			t.Error("Missing ID should return nil")
		}
	})

	t.Run("approved uniqueness enforced by index", func(t *testing.T) {
		defer fixtures.Truncate(t)

		first := personNomination(t, "Top Recruiter", "Jane Doe", "linkedin.com/in/jane-doe", models.StatusApproved)
		if err := repo.Create(first); err != nil {
			t.Fatalf("Failed to create first nomination: %v", err)
		}

		// Same identity, also approved: the partial unique index rejects it
		second := personNomination(t, "Top Recruiter", "Jane Doe", "linkedin.com/in/jane-doe", models.StatusApproved)
		err := repo.Create(second)
		if !errors.Is(err, ErrDuplicateApproved) {
			t.Fatalf("Expected ErrDuplicateApproved, got %v", err)
		}

		// Same identity but pending is fine
		third := personNomination(t, "Top Recruiter", "Jane Doe", "linkedin.com/in/jane-doe", models.StatusSubmitted)
		if err := repo.Create(third); err != nil {
			t.Fatalf("Pending duplicate should insert, got %v", err)
		}

		// Approving the pending copy trips the same index on update
		third.Status = models.StatusApproved
		if err := repo.Update(third); !errors.Is(err, ErrDuplicateApproved) {
			t.Fatalf("Expected ErrDuplicateApproved on update, got %v", err)
		}
	})

	t.Run("live url uniqueness", func(t *testing.T) {
		defer fixtures.Truncate(t)

		first := personNomination(t, "Top Recruiter", "Jane Doe", "linkedin.com/in/jane-doe", models.StatusSubmitted)
		if err := repo.Create(first); err != nil {
			t.Fatalf("Failed to create nomination: %v", err)
		}

		second := personNomination(t, "Top Staffing Influencer", "Jane Doe", "linkedin.com/in/jane-doe-2", models.StatusSubmitted)
		second.LiveURL = first.LiveURL
		if err := repo.Create(second); !errors.Is(err, ErrLiveURLTaken) {
			t.Fatalf("Expected ErrLiveURLTaken, got %v", err)
		}

		exists, err := repo.LiveURLExists(first.LiveURL)
		if err != nil {
			t.Fatalf("Failed to check live URL: %v", err)
		}
		if !exists {
			t.Error("Live URL should be reported as taken")
		}
	})

	t.Run("approved lookup by unique key", func(t *testing.T) {
		defer fixtures.Truncate(t)

		approved := personNomination(t, "Top Recruiter", "Jane Doe", "linkedin.com/in/jane-doe", models.StatusApproved)
		if err := repo.Create(approved); err != nil {
			t.Fatalf("Failed to create nomination: %v", err)
		}

		found, err := repo.GetApprovedByUniqueKey(approved.UniqueKey, "")
		if err != nil {
			t.Fatalf("Failed to look up by unique key: %v", err)
		}
		if found == nil || found.ID != approved.ID {
			t.Fatalf("Expected the approved record, got %+v", found)
		}

		// Excluding the holder itself finds nothing
		excluded, err := repo.GetApprovedByUniqueKey(approved.UniqueKey, approved.ID)
		if err != nil {
			t.Fatalf("Failed to look up with exclusion: %v", err)
		}
		if excluded != nil {
			t.Error("Exclusion should hide the record itself")
		}
	})

	t.Run("list filters and vote counts", func(t *testing.T) {
		defer fixtures.Truncate(t)

		approved := fixtures.CreateNomination(t, "Top Recruiter", "Jane Doe", "linkedin.com/in/jane-doe", "approved")
		fixtures.CreateNomination(t, "Top Recruiter", "John Roe", "linkedin.com/in/john-roe", "submitted")
		fixtures.CreateVote(t, approved.ID, approved.Category, "v1@acmestaffing.com")
		fixtures.CreateVote(t, approved.ID, approved.Category, "v2@acmestaffing.com")

		results, err := repo.List(models.NominationFilter{Status: models.StatusApproved})
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("Expected 1 approved nomination, got %d", len(results))
		}
		if results[0].Votes != 2 {
			t.Errorf("Expected 2 votes on listing, got %d", results[0].Votes)
		}

		results, err = repo.List(models.NominationFilter{Query: "jane"})
		if err != nil {
			t.Fatalf("Failed to search: %v", err)
		}
		if len(results) != 1 || results[0].ID != approved.ID {
			t.Errorf("Search should match the nominee name, got %d results", len(results))
		}
	})

	t.Run("delete cascades to votes", func(t *testing.T) {
		defer fixtures.Truncate(t)

		approved := fixtures.CreateNomination(t, "Top Recruiter", "Jane Doe", "linkedin.com/in/jane-doe", "approved")
		fixtures.CreateVote(t, approved.ID, approved.Category, "v1@acmestaffing.com")

		if err := repo.Delete(approved.ID); err != nil {
			t.Fatalf("Failed to delete: %v", err)
		}

		votes := NewVoteRepository(tc.DB)
		count, err := votes.Count()
		if err != nil {
			t.Fatalf("Failed to count votes: %v", err)
		}
		if count != 0 {
			t.Errorf("Votes should cascade on delete, got %d", count)
		}
	})
}

func TestVoteRepository(t *testing.T) {
	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	repo := NewVoteRepository(tc.DB)
	fixtures := testutil.SetupFixtures(t, tc.DB)

	t.Run("one ballot per voter per category", func(t *testing.T) {
		defer fixtures.Truncate(t)

		first := fixtures.CreateNomination(t, "Top Recruiter", "Jane Doe", "linkedin.com/in/jane-doe", "approved")
		second := fixtures.CreateNomination(t, "Top Recruiter", "John Roe", "linkedin.com/in/john-roe", "approved")

		vote := &models.Vote{
			NomineeID: first.ID,
			Category:  first.Category,
			FirstName: "Sam",
			LastName:  "Voter",
			Email:     "sam@acmestaffing.com",
		}
		if err := repo.Add(vote); err != nil {
			t.Fatalf("Failed to add vote: %v", err)
		}
		if vote.ID == 0 {
			t.Error("Add should populate the vote ID")
		}

		// Case variant of the same email in the same category
		dup := &models.Vote{
			NomineeID: second.ID,
			Category:  second.Category,
			FirstName: "Sam",
			LastName:  "Voter",
			Email:     "SAM@AcmeStaffing.com",
		}
		if err := repo.Add(dup); !errors.Is(err, ErrDuplicateVote) {
			t.Fatalf("Expected ErrDuplicateVote, got %v", err)
		}

		existing, err := repo.FindByVoterAndCategory("SAM@acmestaffing.COM", first.Category)
		if err != nil {
			t.Fatalf("Failed to find vote: %v", err)
		}
		if existing == nil || existing.NomineeID != first.ID {
			t.Fatalf("Case-insensitive lookup should find the ballot, got %+v", existing)
		}
	})

	t.Run("counts", func(t *testing.T) {
		defer fixtures.Truncate(t)

		approved := fixtures.CreateNomination(t, "Top Recruiter", "Jane Doe", "linkedin.com/in/jane-doe", "approved")
		other := fixtures.CreateNomination(t, "Top Staffing Influencer", "Jane Doe", "linkedin.com/in/jane-doe-2", "approved")

		fixtures.CreateVote(t, approved.ID, approved.Category, "v1@acmestaffing.com")
		fixtures.CreateVote(t, approved.ID, approved.Category, "v2@acmestaffing.com")
		fixtures.CreateVote(t, other.ID, other.Category, "v1@acmestaffing.com")

		byNominee, err := repo.CountByNominee(approved.ID)
		if err != nil {
			t.Fatalf("Failed to count by nominee: %v", err)
		}
		if byNominee != 2 {
			t.Errorf("Expected 2 votes, got %d", byNominee)
		}

		total, err := repo.Count()
		if err != nil {
			t.Fatalf("Failed to count: %v", err)
		}
		if total != 3 {
			t.Errorf("Expected 3 votes total, got %d", total)
		}

		// v1 voted in two categories under one email
		unique, err := repo.UniqueVoterCount()
		if err != nil {
			t.Fatalf("Failed to count unique voters: %v", err)
		}
		if unique != 2 {
			t.Errorf("Expected 2 unique voters, got %d", unique)
		}
	})
}
