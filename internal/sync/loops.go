package sync

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"staffing-awards/internal/config"
	"staffing-awards/internal/models"
)

// Loops syncs contacts into the Loops email platform and fires the
// transactional events the campaign flows listen for. Contacts upsert by
// email, so redelivery only rewrites the same record.
type Loops struct {
	baseURL string
	token   string
	lists   loopsLists
	http    *http.Client
}

type loopsLists struct {
	nominees   string
	voters     string
	nominators string
}

// NewLoops creates a new Loops target
func NewLoops(cfg *config.LoopsConfig, timeout time.Duration) *Loops {
	return &Loops{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		lists: loopsLists{
			nominees:   cfg.NomineesListID,
			voters:     cfg.VotersListID,
			nominators: cfg.NominatorListID,
		},
		http: &http.Client{Timeout: timeout},
	}
}

// Name implements Target
func (l *Loops) Name() string { return "loops" }

// HandleEvent implements Target
func (l *Loops) HandleEvent(ev Event) error {
	switch ev.Kind {
	case KindNominationSubmitted:
		return l.nominationSubmitted(ev.Nomination)
	case KindNominationApproved:
		return l.nominationApproved(ev.Nomination)
	case KindNominationRejected:
		return l.nominationRejected(ev.Nomination)
	case KindVoteCast:
		return l.voteCast(ev.Vote)
	default:
		return nil
	}
}

func (l *Loops) nominationSubmitted(n *models.Nomination) error {
	contact := loopsContact{
		Email:     n.Nominator.Email,
		FirstName: firstName(n.Nominator.Name),
		LastName:  lastName(n.Nominator.Name),
		UserGroup: "Nominator",
	}
	if err := l.upsertContact(contact, l.lists.nominators); err != nil {
		return err
	}
	return l.sendEvent(n.Nominator.Email, "nomination-submitted", map[string]string{
		"nomineeName": n.Nominee.Name(),
		"category":    n.Category,
	})
}

func (l *Loops) nominationApproved(n *models.Nomination) error {
	email := NomineeEmail(n)
	contact := loopsContact{
		Email:     email,
		FirstName: firstName(n.Nominee.Name()),
		LastName:  lastName(n.Nominee.Name()),
		UserGroup: "Nominee",
	}
	if err := l.upsertContact(contact, l.lists.nominees); err != nil {
		return err
	}

	if err := l.sendEvent(email, "nomination-approved", map[string]string{
		"nomineeName": n.Nominee.Name(),
		"category":    n.Category,
		"liveUrl":     n.LiveURL,
	}); err != nil {
		return err
	}

	// The nominator hears about the approval too
	return l.sendEvent(n.Nominator.Email, "nomination-approved", map[string]string{
		"nomineeName": n.Nominee.Name(),
		"category":    n.Category,
		"liveUrl":     n.LiveURL,
	})
}

func (l *Loops) nominationRejected(n *models.Nomination) error {
	contact := loopsContact{
		Email:     n.Nominator.Email,
		FirstName: firstName(n.Nominator.Name),
		LastName:  lastName(n.Nominator.Name),
		UserGroup: "Nominator",
	}
	if err := l.upsertContact(contact, l.lists.nominators); err != nil {
		return err
	}
	return l.sendEvent(n.Nominator.Email, "nomination-rejected", map[string]string{
		"nomineeName": n.Nominee.Name(),
		"category":    n.Category,
	})
}

func (l *Loops) voteCast(v *models.Vote) error {
	contact := loopsContact{
		Email:     v.Email,
		FirstName: v.FirstName,
		LastName:  v.LastName,
		UserGroup: "Voter",
	}
	return l.upsertContact(contact, l.lists.voters)
}

type loopsContact struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	UserGroup string `json:"userGroup,omitempty"`
}

type loopsUpsertRequest struct {
	loopsContact
	MailingLists map[string]bool `json:"mailingLists,omitempty"`
}

type loopsEventRequest struct {
	Email           string            `json:"email"`
	EventName       string            `json:"eventName"`
	EventProperties map[string]string `json:"eventProperties,omitempty"`
}

func (l *Loops) upsertContact(contact loopsContact, listID string) error {
	req := loopsUpsertRequest{loopsContact: contact}
	if listID != "" {
		req.MailingLists = map[string]bool{listID: true}
	}
	if err := doJSON(l.http, http.MethodPut, l.baseURL+"/contacts/update", l.token, req, nil); err != nil {
		return fmt.Errorf("contact upsert failed: %w", err)
	}
	return nil
}

func (l *Loops) sendEvent(email, eventName string, properties map[string]string) error {
	req := loopsEventRequest{
		Email:           email,
		EventName:       eventName,
		EventProperties: properties,
	}
	if err := doJSON(l.http, http.MethodPost, l.baseURL+"/events/send", l.token, req, nil); err != nil {
		return fmt.Errorf("event %s failed: %w", eventName, err)
	}
	return nil
}
