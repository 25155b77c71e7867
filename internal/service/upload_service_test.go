package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quillhub/internal/common"
)

type MockSigner struct {
	mock.Mock
}

func (m *MockSigner) PresignPut(ctx context.Context, objectKey string) (string, error) {
	args := m.Called(ctx, objectKey)
	return args.String(0), args.Error(1)
}

func (m *MockSigner) PublicURL(objectKey string) string {
	return "http://files/documents/" + objectKey
}

func TestUploadService_PresignDocument(t *testing.T) {
	ctx := context.Background()
	now := func() time.Time { return time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC) }

	t.Run("builds dated key", func(t *testing.T) {
		signer := new(MockSigner)
		signer.On("PresignPut", ctx, mock.MatchedBy(func(key string) bool {
			return len(key) > 0
		})).Return("http://minio/put", nil)

		svc := NewUploadService(signer, now)
		ticket, err := svc.PresignDocument(ctx, 7, "My Story.DOCX")
		require.NoError(t, err)

		assert.Regexp(t, `^deliveries/7/2026/03/[0-9a-f-]{36}\.docx$`, ticket.ObjectKey)
		assert.Equal(t, "http://minio/put", ticket.UploadURL)
		assert.Equal(t, "http://files/documents/"+ticket.ObjectKey, ticket.PublicURL)
		signer.AssertExpectations(t)
	})

	t.Run("rejects unknown extension", func(t *testing.T) {
		signer := new(MockSigner)
		svc := NewUploadService(signer, now)

		_, err := svc.PresignDocument(ctx, 7, "virus.exe")
		assert.ErrorIs(t, err, common.ErrValidation)
		signer.AssertNotCalled(t, "PresignPut", mock.Anything, mock.Anything)
	})

	t.Run("signer error", func(t *testing.T) {
		signer := new(MockSigner)
		signer.On("PresignPut", ctx, mock.Anything).Return("", errors.New("minio down"))

		_, err := NewUploadService(signer, now).PresignDocument(ctx, 7, "a.pdf")
		assert.EqualError(t, err, "minio down")
	})
}
