package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	UserID        int64     `json:"userId" db:"id"`
	Email         string    `json:"email" db:"email"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	EmailVerified bool      `json:"emailVerified" db:"email_verified"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	Memberships []CompanyMembership `json:"memberships" db:"-"`
}

// Session is keyed by the hash of the bearer token, never the token itself.
type Session struct {
	ID        string    `json:"-" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
}

type Company struct {
	CompanyID int64     `json:"companyId" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type CompanyMembership struct {
	CompanyID int64 `json:"companyId" db:"company_id"`
	UserID    int64 `json:"userId" db:"user_id"`
}

type Competition struct {
	CompetitionID int64     `json:"competitionId" db:"id"`
	CompanyID     int64     `json:"companyId" db:"company_id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	ContentType   string    `json:"contentType" db:"content_type"`
	StartDate     time.Time `json:"startDate" db:"start_date"`
	EndDate       time.Time `json:"endDate" db:"end_date"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// AcceptsAt reports whether submissions are still open at t. The end date is inclusive.
func (c *Competition) AcceptsAt(t time.Time) bool {
	return !t.After(c.EndDate)
}

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "PENDING"
	DeliverySubmitted DeliveryStatus = "SUBMITTED"
	DeliveryRejected  DeliveryStatus = "REJECTED"
	DeliveryAccepted  DeliveryStatus = "ACCEPTED"
)

var deliveryLabels = map[DeliveryStatus]string{
	DeliveryPending:   "Pending review",
	DeliverySubmitted: "Submitted",
	DeliveryRejected:  "Rejected",
	DeliveryAccepted:  "Accepted",
}

var deliveryTransitions = map[DeliveryStatus][]DeliveryStatus{
	DeliveryPending:   {DeliverySubmitted, DeliveryAccepted, DeliveryRejected},
	DeliverySubmitted: {DeliveryAccepted, DeliveryRejected},
}

func (s DeliveryStatus) Valid() bool {
	_, ok := deliveryLabels[s]
	return ok
}

// Label is the human-readable name shown next to a delivery.
func (s DeliveryStatus) Label() string {
	if label, ok := deliveryLabels[s]; ok {
		return label
	}
	return "Unknown"
}

// Terminal reports whether no further transitions are possible.
func (s DeliveryStatus) Terminal() bool {
	return len(deliveryTransitions[s]) == 0
}

func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	for _, allowed := range deliveryTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Delivery struct {
	DeliveryID    int64          `json:"deliveryId" db:"id"`
	CompetitionID int64          `json:"competitionId" db:"competition_id"`
	UserID        int64          `json:"userId" db:"user_id"`
	Docs          pq.StringArray `json:"docs" db:"docs"`
	Status        DeliveryStatus `json:"status" db:"status"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
}

type Post struct {
	PostID    int64     `json:"postId" db:"id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	CompanyID *int64    `json:"companyId,omitempty" db:"company_id"`
	Content   string    `json:"content" db:"content"`
	Likes     int       `json:"likes" db:"likes"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
