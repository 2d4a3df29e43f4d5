package service

import (
	"errors"
	"testing"
)

func newStatsFixture(t *testing.T) (*StatsService, *VoteService, *NominationService) {
	t.Helper()
	store := newFakeNominationStore()
	voteStore := newFakeVoteStore(store)
	nominations := NewNominationService(store, &fakeAuditStore{}, NopNotifier{})
	votes := NewVoteService(voteStore, store, NopNotifier{})
	return NewStatsService(store, voteStore), votes, nominations
}

func TestStatsEmptyDataset(t *testing.T) {
	stats, _, _ := newStatsFixture(t)

	public, err := stats.Public()
	if err != nil {
		t.Fatalf("Stats over an empty dataset should not fail: %v", err)
	}

	if public.TotalNominations != 0 || public.TotalVotes != 0 || public.UniqueVoters != 0 {
		t.Errorf("Expected all-zero stats, got %+v", public)
	}
	if public.AverageVotesPerNominee != 0 {
		t.Errorf("Expected zero average, got %f", public.AverageVotesPerNominee)
	}
	if len(public.Categories) != 0 {
		t.Errorf("Expected no category rows, got %d", len(public.Categories))
	}
}

func TestStatsCombinedTotals(t *testing.T) {
	stats, votes, nominations := newStatsFixture(t)

	first := approvedNominee(t, nominations, personRequest())

	req := personRequest()
	req.Category = "Top Staffing Influencer"
	req.NomineeLinkedIn = "https://linkedin.com/in/jane-doe-influencer"
	second := approvedNominee(t, nominations, req)

	pending, err := nominations.Create(CreateNominationRequest{
		Category:        "Top Recruiter",
		NominatorName:   "Alex Smith",
		NominatorEmail:  "alex@acmestaffing.com",
		NomineeName:     "John Roe",
		NomineeLinkedIn: "https://linkedin.com/in/john-roe",
	})
	if err != nil {
		t.Fatalf("Failed to create pending nomination: %v", err)
	}
	_ = pending

	if _, err := votes.Cast(voteRequest(first)); err != nil {
		t.Fatalf("Failed to cast vote: %v", err)
	}
	v := voteRequest(second)
	v.Email = "kim@acmestaffing.com"
	if _, err := votes.Cast(v); err != nil {
		t.Fatalf("Failed to cast vote: %v", err)
	}
	v = voteRequest(second)
	v.Email = "sam@acmestaffing.com"
	if _, err := votes.Cast(v); err != nil {
		t.Fatalf("Failed to cast vote: %v", err)
	}

	if _, err := nominations.Update(UpdateNominationRequest{ID: first, AdditionalVotes: ptrInt(7)}, ActorInfo{}); err != nil {
		t.Fatalf("Failed to set additional votes: %v", err)
	}

	admin, err := stats.Admin()
	if err != nil {
		t.Fatalf("Failed to get admin stats: %v", err)
	}

	if admin.TotalNominations != 3 {
		t.Errorf("Expected 3 nominations, got %d", admin.TotalNominations)
	}
	if admin.ByStatus.Approved != 2 || admin.ByStatus.Submitted != 1 {
		t.Errorf("Unexpected status counts: %+v", admin.ByStatus)
	}
	if admin.RealVotes != 3 {
		t.Errorf("Expected 3 real votes, got %d", admin.RealVotes)
	}
	if admin.AdditionalVotes != 7 {
		t.Errorf("Expected 7 additional votes, got %d", admin.AdditionalVotes)
	}
	if admin.TotalVotes != 10 {
		t.Errorf("Expected combined total 10, got %d", admin.TotalVotes)
	}
	// Voter sam voted in both categories under the same email
	if admin.UniqueVoters != 2 {
		t.Errorf("Expected 2 unique voters, got %d", admin.UniqueVoters)
	}
	// 10 combined votes over 2 approved nominees
	if admin.AverageVotesPerNominee != 5 {
		t.Errorf("Expected average 5, got %f", admin.AverageVotesPerNominee)
	}

	byCategory := make(map[string]int)
	for _, c := range admin.Categories {
		byCategory[c.Category] = c.Votes
	}
	if byCategory["Top Recruiter"] != 8 {
		t.Errorf("Expected 8 combined votes for Top Recruiter, got %d", byCategory["Top Recruiter"])
	}
	if byCategory["Top Staffing Influencer"] != 2 {
		t.Errorf("Expected 2 votes for Top Staffing Influencer, got %d", byCategory["Top Staffing Influencer"])
	}
}

func TestPodium(t *testing.T) {
	stats, votes, nominations := newStatsFixture(t)

	ids := make([]string, 0, 4)
	names := []string{"Jane Doe", "John Roe", "Kim Lee", "Pat Quinn"}
	for i, name := range names {
		req := personRequest()
		req.NomineeName = name
		req.NomineeLinkedIn = "https://linkedin.com/in/nominee-" + string(rune('a'+i))
		ids = append(ids, approvedNominee(t, nominations, req))
	}

	// Jane 1 real + 10 additional, John 2 real, Kim 1 real, Pat 0
	voters := []string{"v1@acmestaffing.com", "v2@acmestaffing.com", "v3@acmestaffing.com", "v4@acmestaffing.com"}
	targets := []string{ids[0], ids[1], ids[1], ids[2]}
	for i, email := range voters {
		v := voteRequest(targets[i])
		v.Email = email
		if _, err := votes.Cast(v); err != nil {
			t.Fatalf("Failed to cast vote: %v", err)
		}
	}
	if _, err := nominations.Update(UpdateNominationRequest{ID: ids[0], AdditionalVotes: ptrInt(10)}, ActorInfo{}); err != nil {
		t.Fatalf("Failed to set additional votes: %v", err)
	}

	podium, err := stats.Podium("Top Recruiter")
	if err != nil {
		t.Fatalf("Failed to get podium: %v", err)
	}

	if len(podium) != 3 {
		t.Fatalf("Expected 3 podium entries, got %d", len(podium))
	}
	if podium[0].NomineeID != ids[0] || podium[0].Votes != 11 {
		t.Errorf("Expected Jane first with 11 votes, got %s with %d", podium[0].Name, podium[0].Votes)
	}
	if podium[1].NomineeID != ids[1] || podium[1].Votes != 2 {
		t.Errorf("Expected John second with 2 votes, got %s with %d", podium[1].Name, podium[1].Votes)
	}
	for i, entry := range podium {
		if entry.Rank != i+1 {
			t.Errorf("Expected rank %d, got %d", i+1, entry.Rank)
		}
	}
}

func TestPodiumUnknownCategory(t *testing.T) {
	stats, _, _ := newStatsFixture(t)

	_, err := stats.Podium("Best Category Ever")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestPodiumEmptyCategory(t *testing.T) {
	stats, _, _ := newStatsFixture(t)

	podium, err := stats.Podium("Top Recruiter")
	if err != nil {
		t.Fatalf("Podium over an empty category should not fail: %v", err)
	}
	if len(podium) != 0 {
		t.Errorf("Expected empty podium, got %d entries", len(podium))
	}
}
