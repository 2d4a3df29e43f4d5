package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"staffing-awards/internal/linkedin"
	"staffing-awards/internal/models"
)

// Fixtures holds test data helpers bound to a database
type Fixtures struct {
	DB *sql.DB
}

// SetupFixtures creates a fixture helper for the given database
func SetupFixtures(t *testing.T, db *sql.DB) *Fixtures {
	t.Helper()
	return &Fixtures{DB: db}
}

// CreateNomination inserts a person nomination with a derived unique key and
// live URL. The slug gets a random suffix so fixtures never collide.
func (f *Fixtures) CreateNomination(t *testing.T, category, nomineeName, linkedInURL, status string) *models.Nomination {
	t.Helper()

	uniqueKey, err := linkedin.BuildUniqueKey(category, linkedInURL)
	if err != nil {
		t.Fatalf("Failed to build unique key for %s: %v", linkedInURL, err)
	}

	id := uuid.NewString()
	liveURL := fmt.Sprintf("/nominee/%s-%s", linkedin.Slugify(nomineeName), id[:8])

	nomination := &models.Nomination{
		ID:       id,
		Category: category,
		Type:     models.TypePerson,
		Nominator: models.Nominator{
			Name:  "Fixture Nominator",
			Email: "nominator@fixturestaffing.com",
		},
		Nominee: models.Nominee{
			Person: &models.PersonNominee{
				Name:     nomineeName,
				LinkedIn: linkedInURL,
			},
		},
		UniqueKey: uniqueKey,
		LiveURL:   liveURL,
		Status:    models.NominationStatus(status),
	}

	err = f.DB.QueryRow(`
		INSERT INTO nominations (id, category, nominee_type, nominator_name, nominator_email, nominee_name, nominee_linkedin, unique_key, live_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`, id, category, "person", nomination.Nominator.Name, nomination.Nominator.Email,
		nomineeName, linkedInURL, uniqueKey, liveURL, status).Scan(
		&nomination.CreatedAt, &nomination.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("Failed to create nomination fixture: %v", err)
	}

	return nomination
}

// CreateVote inserts a vote for a nominee
func (f *Fixtures) CreateVote(t *testing.T, nomineeID, category, voterEmail string) *models.Vote {
	t.Helper()

	vote := &models.Vote{
		NomineeID: nomineeID,
		Category:  category,
		FirstName: "Fixture",
		LastName:  "Voter",
		Email:     voterEmail,
	}

	err := f.DB.QueryRow(`
		INSERT INTO votes (nominee_id, category, voter_first_name, voter_last_name, voter_email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, nomineeID, category, vote.FirstName, vote.LastName, voterEmail).Scan(
		&vote.ID, &vote.CreatedAt,
	)
	if err != nil {
		t.Fatalf("Failed to create vote fixture: %v", err)
	}

	return vote
}

// Truncate clears all data between tests
func (f *Fixtures) Truncate(t *testing.T) {
	t.Helper()

	if _, err := f.DB.Exec("TRUNCATE nominations, votes, audit_log RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}
