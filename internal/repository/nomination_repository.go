package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"staffing-awards/internal/models"
)

// NominationRepository handles database operations for nominations
type NominationRepository struct {
	db *sql.DB
}

// NewNominationRepository creates a new nomination repository
func NewNominationRepository(db *sql.DB) *NominationRepository {
	return &NominationRepository{db: db}
}

// nominationColumns is the select list shared by all readers. The trailing
// subquery carries the real ballot count.
const nominationColumns = `
	n.id, n.category, n.nominee_type,
	n.nominator_name, n.nominator_email, n.nominator_company, n.nominator_linkedin,
	n.nominee_name, n.nominee_email, n.nominee_title, n.nominee_website, n.nominee_country, n.nominee_linkedin,
	n.image_url, n.why_vote_for_me,
	n.unique_key, n.live_url, n.status, n.admin_notes, n.rejection_reason, n.additional_votes,
	n.created_at, n.updated_at, n.moderated_at, n.approved_at,
	(SELECT COUNT(*) FROM votes v WHERE v.nominee_id = n.id) AS votes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNomination(row rowScanner) (*models.Nomination, error) {
	var n models.Nomination
	var nomineeType string
	var nomineeName, nomineeLinkedIn string
	var nomineeEmail, nomineeTitle, nomineeWebsite, nomineeCountry sql.NullString

	err := row.Scan(
		&n.ID, &n.Category, &nomineeType,
		&n.Nominator.Name, &n.Nominator.Email, &n.Nominator.Company, &n.Nominator.LinkedIn,
		&nomineeName, &nomineeEmail, &nomineeTitle, &nomineeWebsite, &nomineeCountry, &nomineeLinkedIn,
		&n.ImageURL, &n.WhyVoteForMe,
		&n.UniqueKey, &n.LiveURL, &n.Status, &n.AdminNotes, &n.RejectionReason, &n.AdditionalVotes,
		&n.CreatedAt, &n.UpdatedAt, &n.ModeratedAt, &n.ApprovedAt,
		&n.Votes,
	)
	if err != nil {
		return nil, err
	}

	n.Type = models.CategoryType(nomineeType)
	switch n.Type {
	case models.TypeCompany:
		n.Nominee.Company = &models.CompanyNominee{
			Name:     nomineeName,
			Website:  nomineeWebsite.String,
			Country:  nomineeCountry.String,
			LinkedIn: nomineeLinkedIn,
		}
	default:
		n.Nominee.Person = &models.PersonNominee{
			Name:     nomineeName,
			Email:    nomineeEmail.String,
			Title:    nomineeTitle.String,
			Country:  nomineeCountry.String,
			LinkedIn: nomineeLinkedIn,
		}
	}

	return &n, nil
}

func nomineeFields(n *models.Nomination) (name string, email, title, website, country sql.NullString, linkedIn string) {
	nullable := func(s string) sql.NullString {
		return sql.NullString{String: s, Valid: s != ""}
	}
	switch {
	case n.Nominee.Company != nil:
		c := n.Nominee.Company
		return c.Name, sql.NullString{}, sql.NullString{}, nullable(c.Website), nullable(c.Country), c.LinkedIn
	case n.Nominee.Person != nil:
		p := n.Nominee.Person
		return p.Name, nullable(p.Email), nullable(p.Title), sql.NullString{}, nullable(p.Country), p.LinkedIn
	}
	return "", sql.NullString{}, sql.NullString{}, sql.NullString{}, sql.NullString{}, ""
}

// Create inserts a new nomination
func (r *NominationRepository) Create(n *models.Nomination) error {
	name, email, title, website, country, linkedIn := nomineeFields(n)

	query := `
		INSERT INTO nominations (
			id, category, nominee_type,
			nominator_name, nominator_email, nominator_company, nominator_linkedin,
			nominee_name, nominee_email, nominee_title, nominee_website, nominee_country, nominee_linkedin,
			image_url, why_vote_for_me,
			unique_key, live_url, status, admin_notes, rejection_reason, additional_votes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(query,
		n.ID, n.Category, string(n.Type),
		n.Nominator.Name, n.Nominator.Email, n.Nominator.Company, n.Nominator.LinkedIn,
		name, email, title, website, country, linkedIn,
		n.ImageURL, n.WhyVoteForMe,
		n.UniqueKey, n.LiveURL, string(n.Status), n.AdminNotes, n.RejectionReason, n.AdditionalVotes,
	).Scan(&n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create nomination: %w", uniqueViolation(err))
	}

	return nil
}

// GetByID retrieves a nomination by ID, nil when not found
func (r *NominationRepository) GetByID(id string) (*models.Nomination, error) {
	query := `SELECT ` + nominationColumns + ` FROM nominations n WHERE n.id = $1`

	n, err := scanNomination(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get nomination: %w", err)
	}

	return n, nil
}

// GetByLiveURL retrieves a nomination by its live URL, nil when not found
func (r *NominationRepository) GetByLiveURL(liveURL string) (*models.Nomination, error) {
	query := `SELECT ` + nominationColumns + ` FROM nominations n WHERE n.live_url = $1`

	n, err := scanNomination(r.db.QueryRow(query, liveURL))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get nomination by live URL: %w", err)
	}

	return n, nil
}

// GetApprovedByUniqueKey returns the approved nomination holding the key,
// excluding the given ID. Nil when no other approved holder exists.
func (r *NominationRepository) GetApprovedByUniqueKey(uniqueKey, excludeID string) (*models.Nomination, error) {
	query := `SELECT ` + nominationColumns + `
		FROM nominations n
		WHERE n.unique_key = $1 AND n.status = 'approved' AND n.id != $2
		LIMIT 1`

	n, err := scanNomination(r.db.QueryRow(query, uniqueKey, excludeID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get approved nomination by key: %w", err)
	}

	return n, nil
}

// LiveURLExists reports whether a live URL is already assigned
func (r *NominationRepository) LiveURLExists(liveURL string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM nominations WHERE live_url = $1)`, liveURL).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check live URL: %w", err)
	}
	return exists, nil
}

// List retrieves nominations matching the filter
func (r *NominationRepository) List(filter models.NominationFilter) ([]models.Nomination, error) {
	query := `SELECT ` + nominationColumns + ` FROM nominations n`

	var conditions []string
	var args []interface{}
	argCount := 0

	if filter.Status != "" {
		argCount++
		conditions = append(conditions, fmt.Sprintf("n.status = $%d", argCount))
		args = append(args, string(filter.Status))
	}
	if filter.Category != "" {
		argCount++
		conditions = append(conditions, fmt.Sprintf("n.category = $%d", argCount))
		args = append(args, filter.Category)
	}
	if filter.Type != "" {
		argCount++
		conditions = append(conditions, fmt.Sprintf("n.nominee_type = $%d", argCount))
		args = append(args, string(filter.Type))
	}
	if filter.Query != "" {
		argCount++
		conditions = append(conditions, fmt.Sprintf(
			"(n.nominee_name ILIKE $%d OR n.nominator_name ILIKE $%d OR n.category ILIKE $%d)",
			argCount, argCount, argCount))
		args = append(args, "%"+filter.Query+"%")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	switch filter.Sort {
	case "popular":
		query += " ORDER BY ((SELECT COUNT(*) FROM votes v WHERE v.nominee_id = n.id) + n.additional_votes) DESC, n.created_at DESC"
	case "name":
		query += " ORDER BY n.nominee_name ASC"
	default:
		query += " ORDER BY n.created_at DESC"
	}

	if filter.Limit > 0 {
		argCount++
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list nominations: %w", err)
	}
	defer rows.Close()

	var nominations []models.Nomination
	for rows.Next() {
		n, err := scanNomination(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan nomination: %w", err)
		}
		nominations = append(nominations, *n)
	}

	return nominations, rows.Err()
}

// Update persists the mutable fields of a nomination
func (r *NominationRepository) Update(n *models.Nomination) error {
	name, email, title, website, country, linkedIn := nomineeFields(n)

	query := `
		UPDATE nominations SET
			nominee_name = $2, nominee_email = $3, nominee_title = $4,
			nominee_website = $5, nominee_country = $6, nominee_linkedin = $7,
			image_url = $8, why_vote_for_me = $9,
			unique_key = $10, live_url = $11, status = $12,
			admin_notes = $13, rejection_reason = $14, additional_votes = $15,
			moderated_at = $16, approved_at = $17,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(query,
		n.ID,
		name, email, title, website, country, linkedIn,
		n.ImageURL, n.WhyVoteForMe,
		n.UniqueKey, n.LiveURL, string(n.Status),
		n.AdminNotes, n.RejectionReason, n.AdditionalVotes,
		n.ModeratedAt, n.ApprovedAt,
	).Scan(&n.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("nomination %s not found", n.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update nomination: %w", uniqueViolation(err))
	}

	return nil
}

// Delete removes a nomination and, via cascade, its votes
func (r *NominationRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM nominations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete nomination: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// CountByStatus returns nomination counts per moderation state
func (r *NominationRepository) CountByStatus() (models.StatusCounts, error) {
	query := `SELECT status, COUNT(*) FROM nominations GROUP BY status`

	rows, err := r.db.Query(query)
	if err != nil {
		return models.StatusCounts{}, fmt.Errorf("failed to count nominations: %w", err)
	}
	defer rows.Close()

	var counts models.StatusCounts
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return models.StatusCounts{}, fmt.Errorf("failed to scan status count: %w", err)
		}
		switch models.NominationStatus(status) {
		case models.StatusSubmitted:
			counts.Submitted = count
		case models.StatusApproved:
			counts.Approved = count
		case models.StatusRejected:
			counts.Rejected = count
		}
	}

	return counts, rows.Err()
}

// SumAdditionalVotes returns the total admin vote adjustment across approved
// nominations
func (r *NominationRepository) SumAdditionalVotes() (int, error) {
	var sum int
	err := r.db.QueryRow(
		`SELECT COALESCE(SUM(additional_votes), 0) FROM nominations WHERE status = 'approved'`,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum additional votes: %w", err)
	}
	return sum, nil
}

// CategoryBreakdown returns per-category nomination and combined vote counts
// for approved nominations
func (r *NominationRepository) CategoryBreakdown() ([]models.CategoryStats, error) {
	query := `
		SELECT n.category,
		       COUNT(*),
		       COALESCE(SUM((SELECT COUNT(*) FROM votes v WHERE v.nominee_id = n.id) + n.additional_votes), 0)
		FROM nominations n
		WHERE n.status = 'approved'
		GROUP BY n.category
		ORDER BY n.category`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get category breakdown: %w", err)
	}
	defer rows.Close()

	var stats []models.CategoryStats
	for rows.Next() {
		var s models.CategoryStats
		if err := rows.Scan(&s.Category, &s.Nominations, &s.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan category stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// TopByCategory returns the top approved nominees in a category ordered by
// combined votes
func (r *NominationRepository) TopByCategory(category string, limit int) ([]models.Nomination, error) {
	query := `SELECT ` + nominationColumns + `
		FROM nominations n
		WHERE n.status = 'approved' AND n.category = $1
		ORDER BY ((SELECT COUNT(*) FROM votes v WHERE v.nominee_id = n.id) + n.additional_votes) DESC, n.created_at ASC
		LIMIT $2`

	rows, err := r.db.Query(query, category, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top nominees: %w", err)
	}
	defer rows.Close()

	var nominations []models.Nomination
	for rows.Next() {
		n, err := scanNomination(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan nomination: %w", err)
		}
		nominations = append(nominations, *n)
	}

	return nominations, rows.Err()
}
