package test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"quillhub/internal/models"
	"quillhub/internal/pagination"
	"quillhub/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) LogoutAll(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) CreateCompany(ctx context.Context, ownerID int64, name string) (*models.Company, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Company), args.Error(1)
}

func (m *MockCompanyService) CreateCompetition(ctx context.Context, actorID int64, c *models.Competition) error {
	return m.Called(ctx, actorID, c).Error(0)
}

type MockDiscoveryService struct {
	mock.Mock
}

func (m *MockDiscoveryService) Competitions(ctx context.Context, q service.CompetitionQuery, page pagination.OffsetRequest) (pagination.Page[models.Competition], error) {
	args := m.Called(ctx, q, page)
	return args.Get(0).(pagination.Page[models.Competition]), args.Error(1)
}

func (m *MockDiscoveryService) AllCompetitions(ctx context.Context, q service.CompetitionQuery, cursor pagination.CursorRequest) (pagination.Window[models.Competition], error) {
	args := m.Called(ctx, q, cursor)
	return args.Get(0).(pagination.Window[models.Competition]), args.Error(1)
}

func (m *MockDiscoveryService) Bookmarked(ctx context.Context, userID int64, page pagination.OffsetRequest) (pagination.Page[models.Competition], error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).(pagination.Page[models.Competition]), args.Error(1)
}

type MockDeliveryService struct {
	mock.Mock
}

func (m *MockDeliveryService) Submit(ctx context.Context, userID, competitionID int64, docs []string) (*models.Delivery, error) {
	args := m.Called(ctx, userID, competitionID, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Delivery), args.Error(1)
}

func (m *MockDeliveryService) UpdateStatus(ctx context.Context, actorID, deliveryID int64, next models.DeliveryStatus) (*models.Delivery, error) {
	args := m.Called(ctx, actorID, deliveryID, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Delivery), args.Error(1)
}

func (m *MockDeliveryService) ListForCompetition(ctx context.Context, actorID, competitionID int64, page pagination.OffsetRequest) (pagination.Page[models.Delivery], error) {
	args := m.Called(ctx, actorID, competitionID, page)
	return args.Get(0).(pagination.Page[models.Delivery]), args.Error(1)
}

func (m *MockDeliveryService) ListForUser(ctx context.Context, userID int64, page pagination.OffsetRequest) (pagination.Page[models.Delivery], error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).(pagination.Page[models.Delivery]), args.Error(1)
}

type MockEngagementService struct {
	mock.Mock
}

func (m *MockEngagementService) SetBookmark(ctx context.Context, userID, competitionID int64, action service.BookmarkAction) error {
	return m.Called(ctx, userID, competitionID, action).Error(0)
}

func (m *MockEngagementService) ToggleLike(ctx context.Context, userID, postID int64) (service.ToggleResult, error) {
	args := m.Called(ctx, userID, postID)
	return args.Get(0).(service.ToggleResult), args.Error(1)
}

func (m *MockEngagementService) IsBookmarked(ctx context.Context, userID, competitionID int64) (bool, error) {
	args := m.Called(ctx, userID, competitionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementService) IsLiked(ctx context.Context, userID, postID int64) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) Create(ctx context.Context, authorID int64, content string, companyID *int64) (*models.Post, error) {
	args := m.Called(ctx, authorID, content, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Feed(ctx context.Context, cursor pagination.CursorRequest) (pagination.Window[models.Post], error) {
	args := m.Called(ctx, cursor)
	return args.Get(0).(pagination.Window[models.Post]), args.Error(1)
}

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) PresignDocument(ctx context.Context, userID int64, fileName string) (*service.UploadTicket, error) {
	args := m.Called(ctx, userID, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadTicket), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
