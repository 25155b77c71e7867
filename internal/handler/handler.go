package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"

	"quillhub/internal/config"
	"quillhub/internal/logging"
	"quillhub/internal/pagination"
	"quillhub/internal/service"
	"quillhub/internal/sessioncookie"
)

// HealthChecker is satisfied by *database.DB.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Handlers struct {
	AuthService       service.AuthService
	CompanyService    service.CompanyService
	DiscoveryService  service.DiscoveryService
	DeliveryService   service.DeliveryService
	EngagementService service.EngagementService
	PostService       service.PostService
	UploadService     service.UploadService

	DB          HealthChecker
	Cookie      sessioncookie.Cookie
	Pages       pagination.PageSizeConfig
	MaxBodySize int64
	Log         logging.Logger
	Validate    *validator.Validate
}

func NewHandlers(services *service.Service, cfg *config.Config, db HealthChecker, log logging.Logger) *Handlers {
	return &Handlers{
		AuthService:       services.Auth,
		CompanyService:    services.Company,
		DiscoveryService:  services.Discovery,
		DeliveryService:   services.Delivery,
		EngagementService: services.Engagement,
		PostService:       services.Post,
		UploadService:     services.Upload,
		DB:                db,
		Cookie:            sessioncookie.New(cfg.Session),
		Pages: pagination.PageSizeConfig{
			Default: cfg.Pagination.DefaultPageSize,
			Max:     cfg.Pagination.MaxPageSize,
		},
		MaxBodySize: cfg.MaxUploadSize,
		Log:         log,
		Validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}
