package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/agrihub/backend/internal/infrastructure/storage"
)

// AllowedContentTypes whitelists what farmers may upload. Evidence
// photos and scanned receipts only; SVG is excluded because it can
// carry scripts.
var AllowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/gif":       true,
	"application/pdf": true,
}

// AllowedKinds names the buckets an upload may target. The kind becomes
// part of the storage key, which keeps harvest photos, receipts, post
// images and avatars browsable per prefix.
var AllowedKinds = map[string]bool{
	"harvest": true,
	"receipt": true,
	"post":    true,
	"avatar":  true,
}

// UploadServiceConfig holds URL expiry settings
type UploadServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultUploadServiceConfig returns the default configuration
func DefaultUploadServiceConfig() UploadServiceConfig {
	return UploadServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
	}
}

// UploadService hands out presigned URLs for direct-to-storage uploads.
// The API never proxies file bytes; harvests, expenses and posts store
// the resulting keys as plain strings.
type UploadService struct {
	store  storage.ObjectStorage
	config UploadServiceConfig
	logger *zap.Logger
}

// NewUploadService creates a new UploadService
func NewUploadService(store storage.ObjectStorage, logger *zap.Logger) *UploadService {
	return &UploadService{
		store:  store,
		config: DefaultUploadServiceConfig(),
		logger: logger,
	}
}

// SetConfig sets the service configuration
func (s *UploadService) SetConfig(config UploadServiceConfig) {
	s.config = config
}

// RequestUpload validates the request and returns a presigned upload URL
func (s *UploadService) RequestUpload(ctx context.Context, ownerID uuid.UUID, req UploadURLRequest) (*UploadURLResponse, error) {
	if !AllowedKinds[strings.ToLower(req.Kind)] {
		return nil, shared.NewDomainError("INVALID_UPLOAD_KIND", "Unknown upload kind")
	}
	if !AllowedContentTypes[strings.ToLower(req.ContentType)] {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed. Allowed types: images and PDF.", req.ContentType))
	}

	storageKey := s.generateStorageKey(ownerID, req.Kind, req.FileName)

	uploadURL, expiresAt, err := s.store.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		s.logger.Error("failed to generate upload url",
			zap.String("storage_key", storageKey),
			zap.Error(err))
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &UploadURLResponse{
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmUpload verifies the object landed and returns its download URL
func (s *UploadService) ConfirmUpload(ctx context.Context, ownerID uuid.UUID, req ConfirmUploadRequest) (*DownloadURLResponse, error) {
	if err := s.checkOwnership(ownerID, req.StorageKey); err != nil {
		return nil, err
	}

	exists, err := s.store.ObjectExists(ctx, req.StorageKey)
	if err != nil {
		return nil, shared.NewDomainError("STORAGE_CHECK_FAILED", "Failed to verify upload")
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND",
			"File not found in storage. Please upload the file first.")
	}

	return s.downloadURL(ctx, req.StorageKey)
}

// DownloadURL returns a fresh presigned download URL for an owned object
func (s *UploadService) DownloadURL(ctx context.Context, ownerID uuid.UUID, storageKey string) (*DownloadURLResponse, error) {
	if err := s.checkOwnership(ownerID, storageKey); err != nil {
		return nil, err
	}
	return s.downloadURL(ctx, storageKey)
}

// Delete removes an owned object from storage
func (s *UploadService) Delete(ctx context.Context, ownerID uuid.UUID, storageKey string) error {
	if err := s.checkOwnership(ownerID, storageKey); err != nil {
		return err
	}
	if err := s.store.DeleteObject(ctx, storageKey); err != nil {
		s.logger.Error("failed to delete object",
			zap.String("storage_key", storageKey),
			zap.Error(err))
		return shared.NewDomainError("STORAGE_DELETE_FAILED", "Failed to delete file")
	}
	return nil
}

// checkOwnership rejects keys outside the caller's prefix. Key layout
// is the only access control on the object store.
func (s *UploadService) checkOwnership(ownerID uuid.UUID, storageKey string) error {
	prefix := "users/" + ownerID.String() + "/"
	if !strings.HasPrefix(storageKey, prefix) {
		return shared.ErrForbidden
	}
	return nil
}

func (s *UploadService) downloadURL(ctx context.Context, storageKey string) (*DownloadURLResponse, error) {
	url, expiresAt, err := s.store.GenerateDownloadURL(ctx, storageKey, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("DOWNLOAD_URL_FAILED", "Failed to generate download URL")
	}
	return &DownloadURLResponse{
		StorageKey:  storageKey,
		DownloadURL: url,
		ExpiresAt:   expiresAt,
	}, nil
}

// generateStorageKey builds users/{owner}/{kind}/{uuid}{ext}
func (s *UploadService) generateStorageKey(ownerID uuid.UUID, kind, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("users/%s/%s/%s%s", ownerID.String(), strings.ToLower(kind), uuid.New().String(), ext)
}
