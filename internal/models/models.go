package models

import "time"

// NominationStatus is the moderation state of a nomination
type NominationStatus string

const (
	StatusSubmitted NominationStatus = "submitted"
	StatusApproved  NominationStatus = "approved"
	StatusRejected  NominationStatus = "rejected"
)

// Valid reports whether s is a known status
func (s NominationStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CategoryType distinguishes person and company awards
type CategoryType string

const (
	TypePerson  CategoryType = "person"
	TypeCompany CategoryType = "company"
)

// Nominator is the person who submitted a nomination
type Nominator struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Company  string `json:"company,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// PersonNominee is the person variant of a nominee
type PersonNominee struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Title    string `json:"title,omitempty"`
	Country  string `json:"country,omitempty"`
	LinkedIn string `json:"linkedin"`
}

// CompanyNominee is the company variant of a nominee
type CompanyNominee struct {
	Name     string `json:"name"`
	Website  string `json:"website,omitempty"`
	Country  string `json:"country,omitempty"`
	LinkedIn string `json:"linkedin"`
}

// Nominee holds exactly one of the two variants, matching the category type.
// Consumers switch on which pointer is set; Name and LinkedIn cover the
// shared fields without callers caring about the variant.
type Nominee struct {
	Person  *PersonNominee  `json:"person,omitempty"`
	Company *CompanyNominee `json:"company,omitempty"`
}

// Name returns the display name of whichever variant is set
func (n Nominee) Name() string {
	switch {
	case n.Person != nil:
		return n.Person.Name
	case n.Company != nil:
		return n.Company.Name
	}
	return ""
}

// LinkedIn returns the LinkedIn URL of whichever variant is set
func (n Nominee) LinkedIn() string {
	switch {
	case n.Person != nil:
		return n.Person.LinkedIn
	case n.Company != nil:
		return n.Company.LinkedIn
	}
	return ""
}

// Country returns the country of whichever variant is set
func (n Nominee) Country() string {
	switch {
	case n.Person != nil:
		return n.Person.Country
	case n.Company != nil:
		return n.Company.Country
	}
	return ""
}

// Nomination is a single award nomination
type Nomination struct {
	ID              string           `json:"id"`
	Category        string           `json:"category"`
	Type            CategoryType     `json:"type"`
	Nominator       Nominator        `json:"nominator"`
	Nominee         Nominee          `json:"nominee"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	WhyVoteForMe    string           `json:"whyVoteForMe,omitempty"`
	UniqueKey       string           `json:"-"`
	LiveURL         string           `json:"liveUrl"`
	Status          NominationStatus `json:"status"`
	AdminNotes      string           `json:"adminNotes,omitempty"`
	RejectionReason *string          `json:"rejectionReason,omitempty"`
	AdditionalVotes int              `json:"additionalVotes"`
	Votes           int              `json:"votes"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
	ModeratedAt     *time.Time       `json:"moderatedAt,omitempty"`
	ApprovedAt      *time.Time       `json:"approvedAt,omitempty"`
}

// TotalVotes is the public vote count: real ballots plus the admin adjustment
func (n *Nomination) TotalVotes() int {
	return n.Votes + n.AdditionalVotes
}

// Vote is a single ballot for an approved nominee
type Vote struct {
	ID        int64     `json:"id"`
	NomineeID string    `json:"nomineeId"`
	Category  string    `json:"category"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	LinkedIn  string    `json:"linkedin,omitempty"`
	Company   string    `json:"company,omitempty"`
	Country   string    `json:"country,omitempty"`
	IPAddress string    `json:"-"`
	UserAgent string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// NominationFilter narrows nomination listings
type NominationFilter struct {
	Query    string
	Category string
	Type     CategoryType
	Status   NominationStatus
	Sort     string // recent | popular | name
	Limit    int
}

// StatusCounts breaks nominations down by moderation state
type StatusCounts struct {
	Submitted int `json:"submitted"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
}

// CategoryStats is per-category aggregate data
type CategoryStats struct {
	Category    string `json:"category"`
	Nominations int    `json:"nominations"`
	Votes       int    `json:"votes"`
}

// Stats is the public aggregate view. Vote figures are combined
// (real ballots plus admin adjustments).
type Stats struct {
	TotalNominations       int             `json:"totalNominations"`
	ByStatus               StatusCounts    `json:"byStatus"`
	TotalVotes             int             `json:"totalVotes"`
	UniqueVoters           int             `json:"uniqueVoters"`
	AverageVotesPerNominee float64         `json:"averageVotesPerNominee"`
	Categories             []CategoryStats `json:"categories"`
}

// AdminStats additionally exposes the real/additional split
type AdminStats struct {
	Stats
	RealVotes       int `json:"realVotes"`
	AdditionalVotes int `json:"additionalVotes"`
}

// PodiumEntry is one of the top nominees in a category
type PodiumEntry struct {
	Rank      int    `json:"rank"`
	NomineeID string `json:"nomineeId"`
	Name      string `json:"name"`
	LiveURL   string `json:"liveUrl"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Votes     int    `json:"votes"`
}

// AuditEntry records an admin action
type AuditEntry struct {
	ID         int64     `json:"id"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resourceId"`
	Details    string    `json:"details,omitempty"`
	IPAddress  string    `json:"ipAddress,omitempty"`
	UserAgent  string    `json:"userAgent,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
