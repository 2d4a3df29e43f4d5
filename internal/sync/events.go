package sync

import (
	"strings"

	"staffing-awards/internal/models"
)

// Kind identifies an outbound sync event
type Kind string

const (
	KindNominationSubmitted Kind = "nomination.submitted"
	KindNominationApproved  Kind = "nomination.approved"
	KindNominationRejected  Kind = "nomination.rejected"
	KindVoteCast            Kind = "vote.cast"
)

// Event carries a snapshot of the data at dispatch time. Targets never read
// back from the database, so events stay valid even if the record changes
// before the worker gets to them.
type Event struct {
	Kind       Kind
	Nomination *models.Nomination
	Vote       *models.Vote
}

// Target is an external system that consumes sync events. Handlers must be
// idempotent: the same event may be delivered more than once.
type Target interface {
	Name() string
	HandleEvent(ev Event) error
}

const placeholderEmailDomain = "nominee.worldstaffingawards.com"

// NomineeEmail returns the nominee's contact email, falling back to a
// deterministic placeholder so external systems always get a stable key.
func NomineeEmail(n *models.Nomination) string {
	if n.Nominee.Person != nil && n.Nominee.Person.Email != "" {
		return n.Nominee.Person.Email
	}
	return placeholderEmail(n.Nominee.Name())
}

func placeholderEmail(name string) string {
	parts := strings.Fields(strings.ToLower(name))
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		var b strings.Builder
		for _, r := range p {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			cleaned = append(cleaned, b.String())
		}
	}
	if len(cleaned) == 0 {
		return "nominee@" + placeholderEmailDomain
	}
	local := cleaned[0]
	if len(cleaned) > 1 {
		local = cleaned[0] + "." + cleaned[len(cleaned)-1]
	}
	return local + "@" + placeholderEmailDomain
}
