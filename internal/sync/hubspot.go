package sync

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"staffing-awards/internal/config"
	"staffing-awards/internal/models"
)

// Contact roles carried in the custom wsa_role property. A contact can hold
// several, separated by semicolons.
const (
	roleNominator     = "Nominator"
	roleVoter         = "Voter"
	roleNomineePerson = "Nominee_Person"
)

// HubSpot syncs nominations and votes into HubSpot CRM objects: contacts for
// people, companies for company nominees, and a ticket per approved
// nomination. All writes key on email or name, so redelivery is safe.
type HubSpot struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewHubSpot creates a new HubSpot target
func NewHubSpot(cfg *config.HubSpotConfig, timeout time.Duration) *HubSpot {
	return &HubSpot{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
	}
}

// Name implements Target
func (h *HubSpot) Name() string { return "hubspot" }

// HandleEvent implements Target
func (h *HubSpot) HandleEvent(ev Event) error {
	switch ev.Kind {
	case KindNominationSubmitted:
		return h.syncNominator(ev.Nomination)
	case KindNominationApproved:
		return h.syncApproval(ev.Nomination)
	case KindNominationRejected:
		return h.syncNominatorStatus(ev.Nomination, "rejected")
	case KindVoteCast:
		return h.syncVoter(ev.Vote)
	default:
		return nil
	}
}

func (h *HubSpot) syncNominator(n *models.Nomination) error {
	props := map[string]string{
		"email":     n.Nominator.Email,
		"firstname": firstName(n.Nominator.Name),
		"lastname":  lastName(n.Nominator.Name),
	}
	if n.Nominator.Company != "" {
		props["company"] = n.Nominator.Company
	}
	if n.Nominator.LinkedIn != "" {
		props["wsa_linkedin_url"] = n.Nominator.LinkedIn
	}
	return h.upsertContact(n.Nominator.Email, roleNominator, props)
}

func (h *HubSpot) syncVoter(v *models.Vote) error {
	props := map[string]string{
		"email":     v.Email,
		"firstname": v.FirstName,
		"lastname":  v.LastName,
	}
	if v.Company != "" {
		props["company"] = v.Company
	}
	if v.Country != "" {
		props["country"] = v.Country
	}
	if v.LinkedIn != "" {
		props["wsa_linkedin_url"] = v.LinkedIn
	}
	return h.upsertContact(v.Email, roleVoter, props)
}

func (h *HubSpot) syncApproval(n *models.Nomination) error {
	if n.Nominee.Person != nil {
		props := map[string]string{
			"email":            NomineeEmail(n),
			"firstname":        firstName(n.Nominee.Name()),
			"lastname":         lastName(n.Nominee.Name()),
			"wsa_live_url":     n.LiveURL,
			"wsa_category":     n.Category,
			"wsa_linkedin_url": n.Nominee.LinkedIn(),
		}
		if n.Nominee.Person.Title != "" {
			props["jobtitle"] = n.Nominee.Person.Title
		}
		if err := h.upsertContact(NomineeEmail(n), roleNomineePerson, props); err != nil {
			return err
		}
	} else if n.Nominee.Company != nil {
		if err := h.upsertCompany(n); err != nil {
			return err
		}
	}
	if err := h.ensureTicket(n); err != nil {
		return err
	}
	return h.syncNominatorStatus(n, "approved")
}

// syncNominatorStatus writes the moderation outcome onto the nominator's
// contact so campaign flows can react to it.
func (h *HubSpot) syncNominatorStatus(n *models.Nomination, status string) error {
	props := map[string]string{
		"email":                 n.Nominator.Email,
		"wsa_nomination_status": status,
	}
	if status == "approved" {
		props["wsa_nominated_live_url"] = n.LiveURL
	}
	return h.upsertContact(n.Nominator.Email, roleNominator, props)
}

type hubspotSearchRequest struct {
	FilterGroups []hubspotFilterGroup `json:"filterGroups"`
	Properties   []string             `json:"properties"`
	Limit        int                  `json:"limit"`
}

type hubspotFilterGroup struct {
	Filters []hubspotFilter `json:"filters"`
}

type hubspotFilter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

type hubspotObject struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

type hubspotSearchResponse struct {
	Results []hubspotObject `json:"results"`
}

type hubspotWriteRequest struct {
	Properties map[string]string `json:"properties"`
}

func (h *HubSpot) search(objectType, property, value string, properties []string) (*hubspotObject, error) {
	req := hubspotSearchRequest{
		FilterGroups: []hubspotFilterGroup{{
			Filters: []hubspotFilter{{PropertyName: property, Operator: "EQ", Value: value}},
		}},
		Properties: properties,
		Limit:      1,
	}
	var resp hubspotSearchResponse
	url := fmt.Sprintf("%s/crm/v3/objects/%s/search", h.baseURL, objectType)
	if err := doJSON(h.http, http.MethodPost, url, h.token, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	return &resp.Results[0], nil
}

// upsertContact creates or updates a contact keyed by email, merging role
// into the existing wsa_role set instead of overwriting it.
func (h *HubSpot) upsertContact(email, role string, props map[string]string) error {
	existing, err := h.search("contacts", "email", email, []string{"wsa_role"})
	if err != nil {
		return fmt.Errorf("contact search failed: %w", err)
	}

	if existing == nil {
		props["wsa_role"] = role
		url := h.baseURL + "/crm/v3/objects/contacts"
		if err := doJSON(h.http, http.MethodPost, url, h.token, hubspotWriteRequest{Properties: props}, nil); err != nil {
			return fmt.Errorf("contact create failed: %w", err)
		}
		return nil
	}

	props["wsa_role"] = mergeRoles(existing.Properties["wsa_role"], role)
	url := fmt.Sprintf("%s/crm/v3/objects/contacts/%s", h.baseURL, existing.ID)
	if err := doJSON(h.http, http.MethodPatch, url, h.token, hubspotWriteRequest{Properties: props}, nil); err != nil {
		return fmt.Errorf("contact update failed: %w", err)
	}
	return nil
}

func (h *HubSpot) upsertCompany(n *models.Nomination) error {
	props := map[string]string{
		"name":             n.Nominee.Name(),
		"wsa_live_url":     n.LiveURL,
		"wsa_category":     n.Category,
		"wsa_linkedin_url": n.Nominee.LinkedIn(),
	}
	if n.Nominee.Company.Website != "" {
		props["website"] = n.Nominee.Company.Website
	}
	if country := n.Nominee.Country(); country != "" {
		props["country"] = country
	}

	existing, err := h.search("companies", "name", n.Nominee.Name(), nil)
	if err != nil {
		return fmt.Errorf("company search failed: %w", err)
	}

	if existing == nil {
		url := h.baseURL + "/crm/v3/objects/companies"
		if err := doJSON(h.http, http.MethodPost, url, h.token, hubspotWriteRequest{Properties: props}, nil); err != nil {
			return fmt.Errorf("company create failed: %w", err)
		}
		return nil
	}

	url := fmt.Sprintf("%s/crm/v3/objects/companies/%s", h.baseURL, existing.ID)
	if err := doJSON(h.http, http.MethodPatch, url, h.token, hubspotWriteRequest{Properties: props}, nil); err != nil {
		return fmt.Errorf("company update failed: %w", err)
	}
	return nil
}

// ensureTicket creates one moderation ticket per approved nomination. The
// subject doubles as the idempotency key.
func (h *HubSpot) ensureTicket(n *models.Nomination) error {
	subject := fmt.Sprintf("%s - %s", n.Nominee.Name(), n.Category)

	existing, err := h.search("tickets", "subject", subject, nil)
	if err != nil {
		return fmt.Errorf("ticket search failed: %w", err)
	}
	if existing != nil {
		return nil
	}

	props := map[string]string{
		"subject":           subject,
		"content":           fmt.Sprintf("Approved nomination %s (%s)", n.ID, n.LiveURL),
		"hs_pipeline":       "0",
		"hs_pipeline_stage": "1",
	}
	url := h.baseURL + "/crm/v3/objects/tickets"
	if err := doJSON(h.http, http.MethodPost, url, h.token, hubspotWriteRequest{Properties: props}, nil); err != nil {
		return fmt.Errorf("ticket create failed: %w", err)
	}
	return nil
}

func mergeRoles(existing, role string) string {
	set := map[string]bool{role: true}
	for _, r := range strings.Split(existing, ";") {
		if trimmed := strings.TrimSpace(r); trimmed != "" {
			set[trimmed] = true
		}
	}
	roles := make([]string, 0, len(set))
	for r := range set {
		roles = append(roles, r)
	}
	sort.Strings(roles)
	return strings.Join(roles, ";")
}

func firstName(full string) string {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return full
	}
	return parts[0]
}

func lastName(full string) string {
	parts := strings.Fields(full)
	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts[1:], " ")
}
