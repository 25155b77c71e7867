package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"quillhub/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetMemberships(ctx context.Context, userID int64) ([]models.CompanyMembership, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	// FindWithUser loads a session together with its owner and the owner's
	// company memberships. Returns common.ErrNotFound when absent.
	FindWithUser(ctx context.Context, sessionID string) (*models.Session, *models.User, error)
	UpdateExpiry(ctx context.Context, sessionID string, expiresAt time.Time) error
	// Delete is idempotent: removing an absent session is not an error.
	Delete(ctx context.Context, sessionID string) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

type CompanyRepository interface {
	CreateWithOwner(ctx context.Context, company *models.Company, ownerID int64) error
	IsMember(ctx context.Context, companyID, userID int64) (bool, error)
}

// CompetitionFilter narrows discovery listings. Zero values mean "no filter".
type CompetitionFilter struct {
	Query       string
	ContentType string
	Descending  bool
	OpenAt      *time.Time
}

type CompetitionRepository interface {
	Create(ctx context.Context, competition *models.Competition) error
	GetByID(ctx context.Context, competitionID int64) (*models.Competition, error)
	List(ctx context.Context, filter CompetitionFilter, offset, limit int) ([]models.Competition, error)
	ListBookmarked(ctx context.Context, userID int64, offset, limit int) ([]models.Competition, error)
}

// SubmitCheck decides, inside the submission transaction, whether a delivery
// may be created for the locked competition.
type SubmitCheck func(competition *models.Competition, isMember bool) error

// StatusCheck decides, inside the transaction, whether the actor may move
// the locked delivery to its next status.
type StatusCheck func(delivery *models.Delivery, competition *models.Competition, actorIsMember bool) error

type DeliveryRepository interface {
	Submit(ctx context.Context, delivery *models.Delivery, check SubmitCheck) error
	UpdateStatus(ctx context.Context, deliveryID, actorID int64, next models.DeliveryStatus, check StatusCheck) (*models.Delivery, error)
	ListByCompetition(ctx context.Context, competitionID int64, offset, limit int) ([]models.Delivery, error)
	ListByUser(ctx context.Context, userID int64, offset, limit int) ([]models.Delivery, error)
}

type EngagementRepository interface {
	// Set makes the (user, target) membership match active. It reports whether
	// a row changed and the target's counter after the change (0 when the
	// engagement has no counter).
	Set(ctx context.Context, e Engagement, userID, targetID int64, active bool) (changed bool, count int, err error)
	// Toggle flips the membership and reports the new state and counter.
	Toggle(ctx context.Context, e Engagement, userID, targetID int64) (active bool, count int, err error)
	Exists(ctx context.Context, e Engagement, userID, targetID int64) (bool, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	ListFeed(ctx context.Context, offset, limit int) ([]models.Post, error)
}

type Repository struct {
	User        UserRepository
	Session     SessionRepository
	Company     CompanyRepository
	Competition CompetitionRepository
	Delivery    DeliveryRepository
	Engagement  EngagementRepository
	Post        PostRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:        NewUserRepository(db),
		Session:     NewSessionRepository(db),
		Company:     NewCompanyRepository(db),
		Competition: NewCompetitionRepository(db),
		Delivery:    NewDeliveryRepository(db),
		Engagement:  NewEngagementRepository(db),
		Post:        NewPostRepository(db),
	}
}
