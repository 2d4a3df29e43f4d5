package service

import (
	"fmt"
	"math"

	"staffing-awards/internal/models"
)

// StatsService aggregates nomination and vote figures
type StatsService struct {
	nominations NominationStore
	votes       VoteStore
}

// NewStatsService creates a new stats service
func NewStatsService(nominations NominationStore, votes VoteStore) *StatsService {
	return &StatsService{
		nominations: nominations,
		votes:       votes,
	}
}

// Public returns the public aggregate view. All vote figures are combined
// totals; an empty dataset yields all zeros, never an error.
func (s *StatsService) Public() (*models.Stats, error) {
	admin, err := s.Admin()
	if err != nil {
		return nil, err
	}
	return &admin.Stats, nil
}

// Admin returns the full aggregate view including the real/additional split
func (s *StatsService) Admin() (*models.AdminStats, error) {
	byStatus, err := s.nominations.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to count nominations: %w", err)
	}

	realVotes, err := s.votes.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	additional, err := s.nominations.SumAdditionalVotes()
	if err != nil {
		return nil, fmt.Errorf("failed to sum additional votes: %w", err)
	}

	uniqueVoters, err := s.votes.UniqueVoterCount()
	if err != nil {
		return nil, fmt.Errorf("failed to count unique voters: %w", err)
	}

	categories, err := s.nominations.CategoryBreakdown()
	if err != nil {
		return nil, fmt.Errorf("failed to get category breakdown: %w", err)
	}

	combined := realVotes + additional

	average := 0.0
	if byStatus.Approved > 0 {
		average = math.Round(float64(combined)/float64(byStatus.Approved)*100) / 100
	}

	return &models.AdminStats{
		Stats: models.Stats{
			TotalNominations:       byStatus.Submitted + byStatus.Approved + byStatus.Rejected,
			ByStatus:               byStatus,
			TotalVotes:             combined,
			UniqueVoters:           uniqueVoters,
			AverageVotesPerNominee: average,
			Categories:             categories,
		},
		RealVotes:       realVotes,
		AdditionalVotes: additional,
	}, nil
}

// Podium returns the top approved nominees of a category by combined votes
func (s *StatsService) Podium(category string) ([]models.PodiumEntry, error) {
	if _, ok := models.CategoryByID(category); !ok {
		return nil, &ValidationError{Field: "category", Message: "unknown category"}
	}

	top, err := s.nominations.TopByCategory(category, 3)
	if err != nil {
		return nil, err
	}

	entries := make([]models.PodiumEntry, 0, len(top))
	for i, n := range top {
		entries = append(entries, models.PodiumEntry{
			Rank:      i + 1,
			NomineeID: n.ID,
			Name:      n.Nominee.Name(),
			LiveURL:   n.LiveURL,
			ImageURL:  n.ImageURL,
			Votes:     n.TotalVotes(),
		})
	}

	return entries, nil
}
