package service

import (
	"context"
	"strings"

	"quillhub/internal/common"
	"quillhub/internal/models"
	"quillhub/internal/repository"
)

type CompanyService interface {
	CreateCompany(ctx context.Context, ownerID int64, name string) (*models.Company, error)
	// CreateCompetition is restricted to members of competition.CompanyID.
	CreateCompetition(ctx context.Context, actorID int64, competition *models.Competition) error
}

type companyService struct {
	companies    repository.CompanyRepository
	competitions repository.CompetitionRepository
}

func NewCompanyService(companies repository.CompanyRepository, competitions repository.CompetitionRepository) CompanyService {
	return &companyService{
		companies:    companies,
		competitions: competitions,
	}
}

func (s *companyService) CreateCompany(ctx context.Context, ownerID int64, name string) (*models.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.Invalid("name", "must not be empty")
	}

	company := &models.Company{Name: name}
	if err := s.companies.CreateWithOwner(ctx, company, ownerID); err != nil {
		return nil, err
	}

	return company, nil
}

func (s *companyService) CreateCompetition(ctx context.Context, actorID int64, c *models.Competition) error {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return common.Invalid("title", "must not be empty")
	}
	if c.EndDate.IsZero() {
		return common.Invalid("endDate", "is required")
	}
	if !c.StartDate.IsZero() && c.EndDate.Before(c.StartDate) {
		return common.Invalid("endDate", "must not be before startDate")
	}

	member, err := s.companies.IsMember(ctx, c.CompanyID, actorID)
	if err != nil {
		return err
	}
	if !member {
		return common.ErrForbidden
	}

	return s.competitions.Create(ctx, c)
}
