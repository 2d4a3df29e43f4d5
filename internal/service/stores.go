package service

import "staffing-awards/internal/models"

// NominationStore is the persistence port for nominations, implemented by
// repository.NominationRepository
type NominationStore interface {
	Create(n *models.Nomination) error
	GetByID(id string) (*models.Nomination, error)
	GetByLiveURL(liveURL string) (*models.Nomination, error)
	GetApprovedByUniqueKey(uniqueKey, excludeID string) (*models.Nomination, error)
	LiveURLExists(liveURL string) (bool, error)
	List(filter models.NominationFilter) ([]models.Nomination, error)
	Update(n *models.Nomination) error
	Delete(id string) error
	CountByStatus() (models.StatusCounts, error)
	SumAdditionalVotes() (int, error)
	CategoryBreakdown() ([]models.CategoryStats, error)
	TopByCategory(category string, limit int) ([]models.Nomination, error)
}

// VoteStore is the persistence port for votes, implemented by
// repository.VoteRepository
type VoteStore interface {
	Add(v *models.Vote) error
	FindByVoterAndCategory(email, category string) (*models.Vote, error)
	ListByNominee(nomineeID string) ([]models.Vote, error)
	CountByNominee(nomineeID string) (int, error)
	Count() (int, error)
	UniqueVoterCount() (int, error)
}

// AuditStore records admin actions, implemented by repository.AuditRepository
type AuditStore interface {
	Create(entry *models.AuditEntry) error
	List(limit int) ([]models.AuditEntry, error)
}

// Notifier receives domain events for best-effort external sync. All methods
// are fire-and-forget: implementations must never block or fail the caller.
type Notifier interface {
	NominationSubmitted(n *models.Nomination)
	NominationApproved(n *models.Nomination)
	NominationRejected(n *models.Nomination)
	VoteCast(v *models.Vote, n *models.Nomination)
}

// NopNotifier discards all events
type NopNotifier struct{}

func (NopNotifier) NominationSubmitted(*models.Nomination)    {}
func (NopNotifier) NominationApproved(*models.Nomination)     {}
func (NopNotifier) NominationRejected(*models.Nomination)     {}
func (NopNotifier) VoteCast(*models.Vote, *models.Nomination) {}
