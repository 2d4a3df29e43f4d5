package service

import (
	"sort"
	"strings"

	"staffing-awards/internal/models"
)

// In-memory stores backing the service tests. They mirror the schema-level
// uniqueness behavior of the real repositories.

type fakeNominationStore struct {
	nominations map[string]*models.Nomination
	voteCounts  map[string]int
}

func newFakeNominationStore() *fakeNominationStore {
	return &fakeNominationStore{
		nominations: make(map[string]*models.Nomination),
		voteCounts:  make(map[string]int),
	}
}

func (f *fakeNominationStore) Create(n *models.Nomination) error {
	copied := *n
	f.nominations[n.ID] = &copied
	return nil
}

func (f *fakeNominationStore) GetByID(id string) (*models.Nomination, error) {
	n, ok := f.nominations[id]
	if !ok {
		return nil, nil
	}
	copied := *n
	copied.Votes = f.voteCounts[id]
	return &copied, nil
}

func (f *fakeNominationStore) GetByLiveURL(liveURL string) (*models.Nomination, error) {
	for _, n := range f.nominations {
		if n.LiveURL == liveURL {
			copied := *n
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeNominationStore) GetApprovedByUniqueKey(uniqueKey, excludeID string) (*models.Nomination, error) {
	for _, n := range f.nominations {
		if n.UniqueKey == uniqueKey && n.Status == models.StatusApproved && n.ID != excludeID {
			copied := *n
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeNominationStore) LiveURLExists(liveURL string) (bool, error) {
	for _, n := range f.nominations {
		if n.LiveURL == liveURL {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNominationStore) List(filter models.NominationFilter) ([]models.Nomination, error) {
	var out []models.Nomination
	for _, n := range f.nominations {
		if filter.Status != "" && n.Status != filter.Status {
			continue
		}
		if filter.Category != "" && n.Category != filter.Category {
			continue
		}
		if filter.Type != "" && n.Type != filter.Type {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(n.Nominee.Name()), strings.ToLower(filter.Query)) {
			continue
		}
		copied := n
		copied.Votes = f.voteCounts[n.ID]
		out = append(out, *copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeNominationStore) Update(n *models.Nomination) error {
	copied := *n
	f.nominations[n.ID] = &copied
	return nil
}

func (f *fakeNominationStore) Delete(id string) error {
	delete(f.nominations, id)
	return nil
}

func (f *fakeNominationStore) CountByStatus() (models.StatusCounts, error) {
	var counts models.StatusCounts
	for _, n := range f.nominations {
		switch n.Status {
		case models.StatusSubmitted:
			counts.Submitted++
		case models.StatusApproved:
			counts.Approved++
		case models.StatusRejected:
			counts.Rejected++
		}
	}
	return counts, nil
}

func (f *fakeNominationStore) SumAdditionalVotes() (int, error) {
	sum := 0
	for _, n := range f.nominations {
		if n.Status == models.StatusApproved {
			sum += n.AdditionalVotes
		}
	}
	return sum, nil
}

func (f *fakeNominationStore) CategoryBreakdown() ([]models.CategoryStats, error) {
	byCategory := make(map[string]*models.CategoryStats)
	for _, n := range f.nominations {
		if n.Status != models.StatusApproved {
			continue
		}
		s, ok := byCategory[n.Category]
		if !ok {
			s = &models.CategoryStats{Category: n.Category}
			byCategory[n.Category] = s
		}
		s.Nominations++
		s.Votes += f.voteCounts[n.ID] + n.AdditionalVotes
	}
	var out []models.CategoryStats
	for _, s := range byCategory {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (f *fakeNominationStore) TopByCategory(category string, limit int) ([]models.Nomination, error) {
	var out []models.Nomination
	for _, n := range f.nominations {
		if n.Status == models.StatusApproved && n.Category == category {
			copied := *n
			copied.Votes = f.voteCounts[n.ID]
			out = append(out, copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Votes+out[i].AdditionalVotes > out[j].Votes+out[j].AdditionalVotes
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeVoteStore struct {
	votes      []models.Vote
	nextID     int64
	nomination *fakeNominationStore
}

func newFakeVoteStore(nominations *fakeNominationStore) *fakeVoteStore {
	return &fakeVoteStore{nomination: nominations}
}

func (f *fakeVoteStore) Add(v *models.Vote) error {
	f.nextID++
	v.ID = f.nextID
	f.votes = append(f.votes, *v)
	if f.nomination != nil {
		f.nomination.voteCounts[v.NomineeID]++
	}
	return nil
}

func (f *fakeVoteStore) FindByVoterAndCategory(email, category string) (*models.Vote, error) {
	for i := range f.votes {
		if strings.EqualFold(f.votes[i].Email, email) && f.votes[i].Category == category {
			copied := f.votes[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeVoteStore) ListByNominee(nomineeID string) ([]models.Vote, error) {
	var out []models.Vote
	for _, v := range f.votes {
		if v.NomineeID == nomineeID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVoteStore) CountByNominee(nomineeID string) (int, error) {
	count := 0
	for _, v := range f.votes {
		if v.NomineeID == nomineeID {
			count++
		}
	}
	return count, nil
}

func (f *fakeVoteStore) Count() (int, error) {
	return len(f.votes), nil
}

func (f *fakeVoteStore) UniqueVoterCount() (int, error) {
	seen := make(map[string]bool)
	for _, v := range f.votes {
		seen[strings.ToLower(v.Email)] = true
	}
	return len(seen), nil
}

type fakeAuditStore struct {
	entries []models.AuditEntry
}

func (f *fakeAuditStore) Create(entry *models.AuditEntry) error {
	entry.ID = int64(len(f.entries) + 1)
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditStore) List(limit int) ([]models.AuditEntry, error) {
	if limit > 0 && len(f.entries) > limit {
		return f.entries[len(f.entries)-limit:], nil
	}
	return f.entries, nil
}

// recordingNotifier captures dispatched events for assertions
type recordingNotifier struct {
	submitted []string
	approved  []string
	rejected  []string
	votes     []string
}

func (r *recordingNotifier) NominationSubmitted(n *models.Nomination) {
	r.submitted = append(r.submitted, n.ID)
}

func (r *recordingNotifier) NominationApproved(n *models.Nomination) {
	r.approved = append(r.approved, n.ID)
}

func (r *recordingNotifier) NominationRejected(n *models.Nomination) {
	r.rejected = append(r.rejected, n.ID)
}

func (r *recordingNotifier) VoteCast(v *models.Vote, n *models.Nomination) {
	r.votes = append(r.votes, n.ID)
}
