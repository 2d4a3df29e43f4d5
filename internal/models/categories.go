package models

import "strings"

// CategoryConfig describes a single award category
type CategoryConfig struct {
	ID    string       `json:"id"`
	Label string       `json:"label"`
	Group string       `json:"group"`
	Type  CategoryType `json:"type"`
}

// Categories is the fixed award catalog. The ID doubles as the category
// name on nominations and votes.
var Categories = []CategoryConfig{
	// Role-Specific
	{ID: "Top Recruiter", Label: "Top Recruiter", Group: "Role-Specific", Type: TypePerson},
	{ID: "Top Executive Leader", Label: "Top Executive Leader (CEO/COO/CHRO/CRO/CMO/CGO)", Group: "Role-Specific", Type: TypePerson},
	{ID: "Top Staffing Influencer", Label: "Top Staffing Influencer", Group: "Role-Specific", Type: TypePerson},
	{ID: "Rising Star (Under 30)", Label: "Rising Star (Under 30)", Group: "Role-Specific", Type: TypePerson},

	// Innovation & Tech
	{ID: "Top AI-Driven Staffing Platform", Label: "Top AI-Driven Staffing Platform", Group: "Innovation & Tech", Type: TypeCompany},
	{ID: "Top Digital Experience for Clients", Label: "Top Digital Experience for Clients", Group: "Innovation & Tech", Type: TypeCompany},

	// Culture & Impact
	{ID: "Top Women-Led Staffing Firm", Label: "Top Women-Led Staffing Firm", Group: "Culture & Impact", Type: TypeCompany},
	{ID: "Fastest Growing Staffing Firm", Label: "Fastest Growing Staffing Firm", Group: "Culture & Impact", Type: TypeCompany},

	// Growth & Performance
	{ID: "Best Staffing Process at Scale", Label: "Best Staffing Process at Scale", Group: "Growth & Performance", Type: TypeCompany},
	{ID: "Thought Leadership & Influence", Label: "Thought Leadership & Influence", Group: "Growth & Performance", Type: TypePerson},

	// Geographic
	{ID: "Top Staffing Company - USA", Label: "Top Staffing Company - USA", Group: "Geographic", Type: TypeCompany},
	{ID: "Top Recruiting Leader - USA", Label: "Top Recruiting Leader - USA", Group: "Geographic", Type: TypePerson},
	{ID: "Top AI-Driven Staffing Platform - USA", Label: "Top AI-Driven Staffing Platform - USA", Group: "Geographic", Type: TypeCompany},
	{ID: "Top Staffing Company - Europe", Label: "Top Staffing Company - Europe", Group: "Geographic", Type: TypeCompany},
	{ID: "Top Recruiting Leader - Europe", Label: "Top Recruiting Leader - Europe", Group: "Geographic", Type: TypePerson},
	{ID: "Top AI-Driven Staffing Platform - Europe", Label: "Top AI-Driven Staffing Platform - Europe", Group: "Geographic", Type: TypeCompany},
	{ID: "Top Global Recruiter", Label: "Top Global Recruiter", Group: "Geographic", Type: TypePerson},
	{ID: "Top Global Staffing Leader", Label: "Top Global Staffing Leader", Group: "Geographic", Type: TypePerson},

	// Special Recognition
	{ID: "Special Recognition", Label: "Special Recognition Award", Group: "Special Recognition", Type: TypePerson},
}

// CategoryByID looks up a category by its ID
func CategoryByID(id string) (CategoryConfig, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return CategoryConfig{}, false
}

// FreeEmailDomains are consumer mail providers rejected for nominator and
// voter emails
var FreeEmailDomains = []string{
	"gmail.com",
	"yahoo.com",
	"hotmail.com",
	"outlook.com",
	"aol.com",
	"icloud.com",
	"protonmail.com",
	"proton.me",
	"gmx.com",
	"yandex.com",
	"zoho.com",
	"mail.com",
}

// IsFreeEmailDomain reports whether the email's domain is a consumer provider
func IsFreeEmailDomain(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	for _, d := range FreeEmailDomains {
		if domain == d {
			return true
		}
	}
	return false
}
