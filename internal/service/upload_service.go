package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
)

var (
	// ErrUploadMissing indicates no file was attached to the request.
	ErrUploadMissing = errors.New("file is required")
	// ErrUploadTooLarge indicates the payload exceeded the configured limit.
	ErrUploadTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrUploadTypeNotAllowed indicates the MIME type is not permitted.
	ErrUploadTypeNotAllowed = errors.New("file type not allowed")
)

// FileStorage abstracts upload destinations.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// UploadResult carries the stored file's public URL and detected type.
type UploadResult struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// UploadService validates incoming files and stores them via FileStorage.
type UploadService interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (UploadResult, error)
}

type uploadService struct {
	storage FileStorage
	logger  zerolog.Logger
	maxSize int64
}

var allowedUploadTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/gif",
	"application/pdf",
}

// NewUploadService constructs an upload service.
func NewUploadService(storage FileStorage, maxSizeMB int, logger zerolog.Logger) UploadService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &uploadService{
		storage: storage,
		logger:  logger.With().Str("component", "upload_service").Logger(),
		maxSize: int64(maxSizeMB) * 1024 * 1024,
	}
}

func (s *uploadService) Upload(ctx context.Context, file *multipart.FileHeader) (UploadResult, error) {
	if file == nil {
		return UploadResult{}, ErrUploadMissing
	}

	if file.Size > s.maxSize {
		return UploadResult{}, ErrUploadTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		return UploadResult{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		return UploadResult{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		return UploadResult{}, ErrUploadTooLarge
	}

	detected := mimetype.Detect(buf.Bytes())
	if !isAllowedUploadType(detected.String()) {
		return UploadResult{}, ErrUploadTypeNotAllowed
	}

	url, err := s.storage.Upload(ctx, file.Filename, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return UploadResult{}, err
	}

	s.logger.Info().Str("file", file.Filename).Str("mime", detected.String()).Msg("file uploaded")

	return UploadResult{
		URL:      url,
		MimeType: detected.String(),
		Size:     int64(buf.Len()),
	}, nil
}

func isAllowedUploadType(mime string) bool {
	mime = strings.ToLower(strings.TrimSpace(mime))
	for _, allowed := range allowedUploadTypes {
		if mime == allowed {
			return true
		}
	}
	return false
}
