package sync

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"staffing-awards/internal/config"
)

type recordedCall struct {
	method string
	path   string
	body   string
}

// fakeAPI records every request and answers searches with an empty result
// set, so contact writes always take the create path.
type fakeAPI struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{method: r.Method, path: r.URL.Path, body: string(body)})
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if strings.HasSuffix(r.URL.Path, "/search") {
		_ = json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{})
}

func (f *fakeAPI) find(method, pathSubstr, bodySubstr string) *recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c.method == method && strings.Contains(c.path, pathSubstr) && strings.Contains(c.body, bodySubstr) {
			call := c
			return &call
		}
	}
	return nil
}

func TestHubSpotRejectionUpdatesNominatorStatus(t *testing.T) {
	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	defer srv.Close()

	h := NewHubSpot(&config.HubSpotConfig{BaseURL: srv.URL, Token: "test-token"}, time.Second)

	if err := h.HandleEvent(Event{Kind: KindNominationRejected, Nomination: testNomination()}); err != nil {
		t.Fatalf("HandleEvent failed: %v", err)
	}

	call := api.find(http.MethodPost, "/crm/v3/objects/contacts", `"wsa_nomination_status":"rejected"`)
	if call == nil {
		t.Fatal("Rejection should write the rejected status onto the nominator contact")
	}
	if !strings.Contains(call.body, "alex@acmestaffing.com") {
		t.Errorf("Status update should target the nominator, got %s", call.body)
	}
}

func TestHubSpotApprovalUpdatesNominatorStatus(t *testing.T) {
	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	defer srv.Close()

	h := NewHubSpot(&config.HubSpotConfig{BaseURL: srv.URL, Token: "test-token"}, time.Second)

	if err := h.HandleEvent(Event{Kind: KindNominationApproved, Nomination: testNomination()}); err != nil {
		t.Fatalf("HandleEvent failed: %v", err)
	}

	call := api.find(http.MethodPost, "/crm/v3/objects/contacts", `"wsa_nomination_status":"approved"`)
	if call == nil {
		t.Fatal("Approval should write the approved status onto the nominator contact")
	}
	if !strings.Contains(call.body, "alex@acmestaffing.com") {
		t.Errorf("Status update should target the nominator, got %s", call.body)
	}
	if !strings.Contains(call.body, `"wsa_nominated_live_url":"/nominee/jane-doe"`) {
		t.Errorf("Approved status should carry the live URL, got %s", call.body)
	}
}

func TestLoopsRejectionNotifiesNominator(t *testing.T) {
	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	defer srv.Close()

	l := NewLoops(&config.LoopsConfig{
		BaseURL:         srv.URL,
		Token:           "test-token",
		NominatorListID: "list-nominators",
	}, time.Second)

	if err := l.HandleEvent(Event{Kind: KindNominationRejected, Nomination: testNomination()}); err != nil {
		t.Fatalf("HandleEvent failed: %v", err)
	}

	if api.find(http.MethodPut, "/contacts/update", "alex@acmestaffing.com") == nil {
		t.Error("Rejection should upsert the nominator contact")
	}

	ev := api.find(http.MethodPost, "/events/send", `"eventName":"nomination-rejected"`)
	if ev == nil {
		t.Fatal("Rejection should fire the nomination-rejected event")
	}
	if !strings.Contains(ev.body, "alex@acmestaffing.com") {
		t.Errorf("Event should target the nominator, got %s", ev.body)
	}
}
