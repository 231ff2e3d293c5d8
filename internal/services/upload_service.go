package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"skillport_backend/internal/logger"
	"skillport_backend/internal/models"
	"skillport_backend/internal/repositories"
	"skillport_backend/internal/services/dto"
	"skillport_backend/internal/storage"
	"skillport_backend/pkg/apperrors"
)

type UploadService struct {
	uploadRepo repositories.UploadRepository
	primary    storage.Storage
	secondary  storage.Storage // nil when no secondary account is configured
	maxSize    int64
	allowed    map[string]bool
}

func NewUploadService(
	uploadRepo repositories.UploadRepository,
	primary, secondary storage.Storage,
	maxSize int64,
	allowedTypes []string,
) *UploadService {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = true
	}
	return &UploadService{
		uploadRepo: uploadRepo,
		primary:    primary,
		secondary:  secondary,
		maxSize:    maxSize,
		allowed:    allowed,
	}
}

// Office documents cannot be identified by content sniffing: docx is a
// zip container and legacy doc is an opaque binary. Within those two
// container types only, the file extension decides.
var containerMimeTypes = map[string]map[string]string{
	"application/zip": {
		".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	},
	"application/octet-stream": {
		".doc": "application/msword",
	},
}

func resolveMimeType(sniffed, filename string) string {
	if byExt, ok := containerMimeTypes[sniffed][strings.ToLower(filepath.Ext(filename))]; ok {
		return byExt
	}
	return sniffed
}

// Upload stores a file on the primary account and mirrors it to the
// secondary one best-effort. The MIME type is sniffed from content, not
// taken from the client's header.
func (s *UploadService) Upload(ctx context.Context, userID string, header *multipart.FileHeader) (*dto.UploadResponse, error) {
	if header.Size > s.maxSize {
		return nil, apperrors.ErrFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer file.Close()

	sniff := make([]byte, 512)
	n, err := file.Read(sniff)
	if err != nil && n == 0 {
		return nil, apperrors.InternalError(err)
	}
	mimeType := resolveMimeType(http.DetectContentType(sniff[:n]), header.Filename)
	if !s.allowed[mimeType] {
		return nil, apperrors.ErrInvalidFileType
	}
	if _, err := file.Seek(0, 0); err != nil {
		return nil, apperrors.InternalError(err)
	}

	path := fmt.Sprintf("uploads/%s/%s%s", userID, uuid.NewString(), filepath.Ext(header.Filename))
	if err := s.primary.Save(ctx, path, file, mimeType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.primary.GetURL(ctx, path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	upload := &models.Upload{
		UserID:   userID,
		FileName: header.Filename,
		Path:     path,
		URL:      url,
		MimeType: mimeType,
		Size:     header.Size,
	}
	if err := s.uploadRepo.Create(upload); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if s.secondary != nil {
		go s.mirror(upload.ID, path, mimeType, header)
	}

	resp := dto.ToUploadResponse(upload)
	return &resp, nil
}

// mirror copies the file to the secondary account. Failures are logged
// and never surfaced; the upload already succeeded on the primary.
func (s *UploadService) mirror(uploadID, path, mimeType string, header *multipart.FileHeader) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	file, err := header.Open()
	if err != nil {
		logger.Error("secondary mirror failed to reopen file", "upload_id", uploadID, "error", err)
		return
	}
	defer file.Close()

	if err := s.secondary.Save(ctx, path, file, mimeType); err != nil {
		logger.Error("secondary mirror save failed", "upload_id", uploadID, "error", err)
		return
	}
	url, err := s.secondary.GetURL(ctx, path)
	if err != nil {
		logger.Error("secondary mirror url lookup failed", "upload_id", uploadID, "error", err)
		return
	}
	if err := s.uploadRepo.SetSecondaryURL(uploadID, url); err != nil {
		logger.Error("failed to record secondary url", "upload_id", uploadID, "error", err)
	}
}

func (s *UploadService) Get(id, requesterID string) (*dto.UploadResponse, error) {
	upload, err := s.uploadRepo.FindByID(id)
	if err != nil {
		if err == repositories.ErrUploadNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if upload.UserID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	resp := dto.ToUploadResponse(upload)
	return &resp, nil
}

func (s *UploadService) ListByUser(userID string) ([]dto.UploadResponse, error) {
	uploads, err := s.uploadRepo.ListByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := make([]dto.UploadResponse, 0, len(uploads))
	for i := range uploads {
		resp = append(resp, dto.ToUploadResponse(&uploads[i]))
	}
	return resp, nil
}
