package service

import (
	"quillhub/internal/config"
	"quillhub/internal/repository"
	"quillhub/internal/storage"
)

type Service struct {
	Session    SessionService
	Auth       AuthService
	Company    CompanyService
	Discovery  DiscoveryService
	Delivery   DeliveryService
	Engagement EngagementService
	Post       PostService
	Upload     UploadService
}

func NewService(rep *repository.Repository, cfg *config.Config, signer storage.Signer) *Service {
	sessions := NewSessionService(rep.Session, cfg.Session)

	return &Service{
		Session:    sessions,
		Auth:       NewAuthService(rep.User, sessions, NewPasswordHasher(cfg.BcryptCost)),
		Company:    NewCompanyService(rep.Company, rep.Competition),
		Discovery:  NewDiscoveryService(rep.Competition, nil),
		Delivery:   NewDeliveryService(rep.Delivery, rep.Competition, rep.Company, nil),
		Engagement: NewEngagementService(rep.Engagement),
		Post:       NewPostService(rep.Post, rep.Company),
		Upload:     NewUploadService(signer, nil),
	}
}
