package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"quillhub/internal/common"
	"quillhub/internal/models"
	"quillhub/internal/pagination"
	"quillhub/internal/repository"
)

// minQueryLength is the shortest search term applied to listings.
const minQueryLength = 2

type CompetitionQuery struct {
	Q           string
	ContentType string
	Sort        string
	OnlyOpen    bool
}

type DiscoveryService interface {
	Competitions(ctx context.Context, q CompetitionQuery, page pagination.OffsetRequest) (pagination.Page[models.Competition], error)
	AllCompetitions(ctx context.Context, q CompetitionQuery, cursor pagination.CursorRequest) (pagination.Window[models.Competition], error)
	Bookmarked(ctx context.Context, userID int64, page pagination.OffsetRequest) (pagination.Page[models.Competition], error)
}

type discoveryService struct {
	competitions repository.CompetitionRepository
	now          func() time.Time
}

func NewDiscoveryService(competitions repository.CompetitionRepository, now func() time.Time) DiscoveryService {
	if now == nil {
		now = time.Now
	}
	return &discoveryService{competitions: competitions, now: now}
}

func (s *discoveryService) filter(q CompetitionQuery) (repository.CompetitionFilter, error) {
	var f repository.CompetitionFilter

	if term := strings.TrimSpace(q.Q); utf8.RuneCountInString(term) >= minQueryLength {
		f.Query = term
	}
	f.ContentType = strings.TrimSpace(q.ContentType)

	switch strings.ToLower(q.Sort) {
	case "", "asc":
	case "desc":
		f.Descending = true
	default:
		return f, common.Invalid("sort", `must be "asc" or "desc"`)
	}

	if q.OnlyOpen {
		now := s.now()
		f.OpenAt = &now
	}

	return f, nil
}

func (s *discoveryService) Competitions(ctx context.Context, q CompetitionQuery, page pagination.OffsetRequest) (pagination.Page[models.Competition], error) {
	f, err := s.filter(q)
	if err != nil {
		return pagination.Page[models.Competition]{}, err
	}

	rows, err := s.competitions.List(ctx, f, page.Offset(), page.Limit())
	if err != nil {
		return pagination.Page[models.Competition]{}, err
	}

	return pagination.NewPage(rows, page), nil
}

func (s *discoveryService) AllCompetitions(ctx context.Context, q CompetitionQuery, cursor pagination.CursorRequest) (pagination.Window[models.Competition], error) {
	f, err := s.filter(q)
	if err != nil {
		return pagination.Window[models.Competition]{}, err
	}

	rows, err := s.competitions.List(ctx, f, cursor.Offset, cursor.Limit())
	if err != nil {
		return pagination.Window[models.Competition]{}, err
	}

	return pagination.NewWindow(rows, cursor), nil
}

func (s *discoveryService) Bookmarked(ctx context.Context, userID int64, page pagination.OffsetRequest) (pagination.Page[models.Competition], error) {
	rows, err := s.competitions.ListBookmarked(ctx, userID, page.Offset(), page.Limit())
	if err != nil {
		return pagination.Page[models.Competition]{}, err
	}

	return pagination.NewPage(rows, page), nil
}
