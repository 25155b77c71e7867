package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"quillhub/internal/common"
	"quillhub/internal/storage"
)

var documentExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".txt":  {},
	".rtf":  {},
	".odt":  {},
	".md":   {},
}

type UploadTicket struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
	PublicURL string `json:"publicUrl"`
}

type UploadService interface {
	PresignDocument(ctx context.Context, userID int64, fileName string) (*UploadTicket, error)
}

type uploadService struct {
	signer storage.Signer
	now    func() time.Time
}

func NewUploadService(signer storage.Signer, now func() time.Time) UploadService {
	if now == nil {
		now = time.Now
	}
	return &uploadService{signer: signer, now: now}
}

func (s *uploadService) PresignDocument(ctx context.Context, userID int64, fileName string) (*UploadTicket, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(fileName)))
	if _, ok := documentExtensions[ext]; !ok {
		return nil, common.Invalid("fileName", "unsupported document type")
	}

	now := s.now().UTC()
	key := fmt.Sprintf("deliveries/%d/%d/%02d/%s%s",
		userID,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		ext)

	url, err := s.signer.PresignPut(ctx, key)
	if err != nil {
		return nil, err
	}

	return &UploadTicket{
		UploadURL: url,
		ObjectKey: key,
		PublicURL: s.signer.PublicURL(key),
	}, nil
}
