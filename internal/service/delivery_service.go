package service

import (
	"context"
	"strings"
	"time"

	"quillhub/internal/common"
	"quillhub/internal/models"
	"quillhub/internal/pagination"
	"quillhub/internal/repository"
)

type DeliveryService interface {
	Submit(ctx context.Context, userID, competitionID int64, docs []string) (*models.Delivery, error)
	UpdateStatus(ctx context.Context, actorID, deliveryID int64, next models.DeliveryStatus) (*models.Delivery, error)
	ListForCompetition(ctx context.Context, actorID, competitionID int64, page pagination.OffsetRequest) (pagination.Page[models.Delivery], error)
	ListForUser(ctx context.Context, userID int64, page pagination.OffsetRequest) (pagination.Page[models.Delivery], error)
}

type deliveryService struct {
	deliveries   repository.DeliveryRepository
	competitions repository.CompetitionRepository
	companies    repository.CompanyRepository
	now          func() time.Time
}

func NewDeliveryService(
	deliveries repository.DeliveryRepository,
	competitions repository.CompetitionRepository,
	companies repository.CompanyRepository,
	now func() time.Time,
) DeliveryService {
	if now == nil {
		now = time.Now
	}
	return &deliveryService{
		deliveries:   deliveries,
		competitions: competitions,
		companies:    companies,
		now:          now,
	}
}

// MergeDocs consolidates the docs and links fields of a submission: docs
// first, then links, trimmed, blanks dropped, first occurrence wins.
func MergeDocs(docs, links []string) []string {
	seen := make(map[string]struct{}, len(docs)+len(links))
	merged := make([]string, 0, len(docs)+len(links))

	for _, list := range [][]string{docs, links} {
		for _, d := range list {
			d = strings.TrimSpace(d)
			if d == "" {
				continue
			}
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			merged = append(merged, d)
		}
	}

	return merged
}

func (s *deliveryService) Submit(ctx context.Context, userID, competitionID int64, docs []string) (*models.Delivery, error) {
	if !hasNonBlank(docs) {
		return nil, common.Invalid("docs", "at least one document is required")
	}

	delivery := &models.Delivery{
		CompetitionID: competitionID,
		UserID:        userID,
		Docs:          docs,
		Status:        models.DeliveryPending,
	}

	now := s.now()
	err := s.deliveries.Submit(ctx, delivery, func(c *models.Competition, isMember bool) error {
		if !c.AcceptsAt(now) {
			return common.ErrDeadlinePassed
		}
		if isMember {
			return common.ErrForbidden
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return delivery, nil
}

func (s *deliveryService) UpdateStatus(ctx context.Context, actorID, deliveryID int64, next models.DeliveryStatus) (*models.Delivery, error) {
	if !next.Valid() {
		return nil, common.Invalid("status", "unknown delivery status")
	}

	return s.deliveries.UpdateStatus(ctx, deliveryID, actorID, next,
		func(d *models.Delivery, _ *models.Competition, actorIsMember bool) error {
			if !actorIsMember {
				return common.ErrForbidden
			}
			if d.Status.Terminal() || !d.Status.CanTransitionTo(next) {
				return common.ErrInvalidTransition
			}
			return nil
		})
}

func (s *deliveryService) ListForCompetition(ctx context.Context, actorID, competitionID int64, page pagination.OffsetRequest) (pagination.Page[models.Delivery], error) {
	competition, err := s.competitions.GetByID(ctx, competitionID)
	if err != nil {
		return pagination.Page[models.Delivery]{}, err
	}

	member, err := s.companies.IsMember(ctx, competition.CompanyID, actorID)
	if err != nil {
		return pagination.Page[models.Delivery]{}, err
	}
	if !member {
		return pagination.Page[models.Delivery]{}, common.ErrForbidden
	}

	rows, err := s.deliveries.ListByCompetition(ctx, competitionID, page.Offset(), page.Limit())
	if err != nil {
		return pagination.Page[models.Delivery]{}, err
	}

	return pagination.NewPage(rows, page), nil
}

func (s *deliveryService) ListForUser(ctx context.Context, userID int64, page pagination.OffsetRequest) (pagination.Page[models.Delivery], error) {
	rows, err := s.deliveries.ListByUser(ctx, userID, page.Offset(), page.Limit())
	if err != nil {
		return pagination.Page[models.Delivery]{}, err
	}

	return pagination.NewPage(rows, page), nil
}

func hasNonBlank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
