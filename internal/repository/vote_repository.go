package repository

import (
	"database/sql"
	"fmt"

	"staffing-awards/internal/models"
)

// VoteRepository handles database operations for votes
type VoteRepository struct {
	db *sql.DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *sql.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Add inserts a ballot. The unique index on (lower(voter_email), category)
// turns a racing duplicate into ErrDuplicateVote.
func (r *VoteRepository) Add(v *models.Vote) error {
	query := `
		INSERT INTO votes (
			nominee_id, category,
			voter_first_name, voter_last_name, voter_email,
			voter_linkedin, voter_company, voter_country,
			ip_address, user_agent
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	err := r.db.QueryRow(query,
		v.NomineeID, v.Category,
		v.FirstName, v.LastName, v.Email,
		v.LinkedIn, v.Company, v.Country,
		v.IPAddress, v.UserAgent,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add vote: %w", uniqueViolation(err))
	}

	return nil
}

// FindByVoterAndCategory returns the voter's existing ballot in a category,
// nil when they have not voted there. Email matching is case-insensitive.
func (r *VoteRepository) FindByVoterAndCategory(email, category string) (*models.Vote, error) {
	query := `
		SELECT id, nominee_id, category,
		       voter_first_name, voter_last_name, voter_email,
		       voter_linkedin, voter_company, voter_country,
		       ip_address, user_agent, created_at
		FROM votes
		WHERE LOWER(voter_email) = LOWER($1) AND category = $2`

	var v models.Vote
	err := r.db.QueryRow(query, email, category).Scan(
		&v.ID, &v.NomineeID, &v.Category,
		&v.FirstName, &v.LastName, &v.Email,
		&v.LinkedIn, &v.Company, &v.Country,
		&v.IPAddress, &v.UserAgent, &v.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vote: %w", err)
	}

	return &v, nil
}

// ListByNominee returns all ballots for one nominee, newest first
func (r *VoteRepository) ListByNominee(nomineeID string) ([]models.Vote, error) {
	query := `
		SELECT id, nominee_id, category,
		       voter_first_name, voter_last_name, voter_email,
		       voter_linkedin, voter_company, voter_country,
		       ip_address, user_agent, created_at
		FROM votes
		WHERE nominee_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(query, nomineeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	var votes []models.Vote
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(
			&v.ID, &v.NomineeID, &v.Category,
			&v.FirstName, &v.LastName, &v.Email,
			&v.LinkedIn, &v.Company, &v.Country,
			&v.IPAddress, &v.UserAgent, &v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}

	return votes, rows.Err()
}

// CountByNominee returns the number of real ballots for a nominee
func (r *VoteRepository) CountByNominee(nomineeID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM votes WHERE nominee_id = $1`, nomineeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

// Count returns the total number of ballots
func (r *VoteRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM votes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

// UniqueVoterCount returns the number of distinct voters by email,
// case-insensitive
func (r *VoteRepository) UniqueVoterCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(DISTINCT LOWER(voter_email)) FROM votes`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unique voters: %w", err)
	}
	return count, nil
}
