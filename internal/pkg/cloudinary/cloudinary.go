package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Attachment kinds stored on event posts as attachmentFileType
const (
	KindImage = "image"
	KindVideo = "video"
	KindFile  = "file"
)

var ErrNotConfigured = errors.New("cloudinary is not configured")

// Service handles Cloudinary upload operations
type Service struct {
	cld          *cloudinary.Cloudinary
	uploadFolder string
}

// UploadResult contains the result of a successful upload
type UploadResult struct {
	URL          string `json:"url"`
	PublicID     string `json:"publicId"`
	ResourceType string `json:"resourceType"`
	Kind         string `json:"kind"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	FileSize     int64  `json:"fileSize"`
	Format       string `json:"format"`
}

// File validation constants
var (
	AllowedImageTypes = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".heic"}
	AllowedVideoTypes = []string{".mp4", ".mov", ".webm", ".3gp"}
	AllowedFileTypes  = []string{".pdf", ".docx", ".doc", ".txt"}

	MaxImageSize = int64(10 * 1024 * 1024)  // 10MB
	MaxVideoSize = int64(100 * 1024 * 1024) // 100MB
	MaxFileSize  = int64(20 * 1024 * 1024)  // 20MB
)

// NewService creates a new Cloudinary service instance
func NewService(cloudName, apiKey, apiSecret, uploadFolder string) (*Service, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, ErrNotConfigured
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", apiKey, apiSecret, cloudName)

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	if uploadFolder == "" {
		uploadFolder = "aawaz"
	}

	return &Service{
		cld:          cld,
		uploadFolder: uploadFolder,
	}, nil
}

// Upload validates the header and stores the file under <folder>/<sub>/<kind>s
func (s *Service) Upload(ctx context.Context, file io.Reader, header *multipart.FileHeader, sub string) (*UploadResult, error) {
	if s == nil || s.cld == nil {
		return nil, ErrNotConfigured
	}

	kind, err := ValidateAttachment(header)
	if err != nil {
		return nil, err
	}

	resourceType := ResourceTypeFor(kind)
	folder := s.uploadFolder
	if sub != "" {
		folder += "/" + sub
	}
	folder += "/" + kind + "s"

	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: resourceType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", kind, err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("failed to upload %s: %s", kind, result.Error.Message)
	}

	return &UploadResult{
		URL:          result.SecureURL,
		PublicID:     result.PublicID,
		ResourceType: resourceType,
		Kind:         kind,
		Width:        result.Width,
		Height:       result.Height,
		FileSize:     int64(result.Bytes),
		Format:       result.Format,
	}, nil
}

// Delete removes an asset from Cloudinary
func (s *Service) Delete(ctx context.Context, publicID string, resourceType string) error {
	if s == nil || s.cld == nil {
		return ErrNotConfigured
	}
	if publicID == "" {
		return errors.New("publicID is required")
	}

	if resourceType == "" {
		resourceType = "image"
	}

	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	return nil
}

// ResourceTypeFor maps an attachment kind to Cloudinary's resource type
func ResourceTypeFor(kind string) string {
	switch kind {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "raw"
	}
}

// ValidateAttachment checks size and extension and returns the attachment kind
func ValidateAttachment(header *multipart.FileHeader) (string, error) {
	if header == nil {
		return "", errors.New("file header is required")
	}

	ext := getFileExtension(header.Filename)
	switch {
	case isAllowedExtension(ext, AllowedImageTypes):
		if header.Size > MaxImageSize {
			return "", fmt.Errorf("image file size exceeds maximum allowed size of %d MB", MaxImageSize/(1024*1024))
		}
		return KindImage, nil
	case isAllowedExtension(ext, AllowedVideoTypes):
		if header.Size > MaxVideoSize {
			return "", fmt.Errorf("video file size exceeds maximum allowed size of %d MB", MaxVideoSize/(1024*1024))
		}
		return KindVideo, nil
	case isAllowedExtension(ext, AllowedFileTypes):
		if header.Size > MaxFileSize {
			return "", fmt.Errorf("file size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024))
		}
		return KindFile, nil
	}

	allowed := append(append(append([]string{}, AllowedImageTypes...), AllowedVideoTypes...), AllowedFileTypes...)
	return "", fmt.Errorf("invalid file type: %s. Allowed types: %s", ext, strings.Join(allowed, ", "))
}

// getFileExtension returns the lowercase file extension including the dot
func getFileExtension(filename string) string {
	ext := filepath.Ext(filename)
	return strings.ToLower(ext)
}

// isAllowedExtension checks if the extension is in the allowed list
func isAllowedExtension(ext string, allowedTypes []string) bool {
	for _, allowed := range allowedTypes {
		if ext == allowed {
			return true
		}
	}
	return false
}
