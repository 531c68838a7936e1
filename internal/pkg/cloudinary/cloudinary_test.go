package cloudinary

import (
	"context"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateAttachment(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantKind string
		wantErr  string
	}{
		{"jpeg image", "flood.JPG", 1024, KindImage, ""},
		{"mp4 video", "rescue.mp4", 50 * 1024 * 1024, KindVideo, ""},
		{"pdf document", "fir.pdf", 2048, KindFile, ""},
		{"oversized image", "big.png", MaxImageSize + 1, "", "image file size exceeds"},
		{"oversized video", "long.mov", MaxVideoSize + 1, "", "video file size exceeds"},
		{"unknown extension", "run.exe", 10, "", "invalid file type: .exe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := ValidateAttachment(&multipart.FileHeader{Filename: tt.filename, Size: tt.size})
			if tt.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestResourceTypeFor(t *testing.T) {
	require.Equal(t, "image", ResourceTypeFor(KindImage))
	require.Equal(t, "video", ResourceTypeFor(KindVideo))
	require.Equal(t, "raw", ResourceTypeFor(KindFile))
}

func TestNewServiceRequiresCredentials(t *testing.T) {
	_, err := NewService("", "key", "secret", "")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestNilServiceIsNotConfigured(t *testing.T) {
	var s *Service
	_, err := s.Upload(context.Background(), strings.NewReader("x"), &multipart.FileHeader{Filename: "a.png", Size: 1}, "events")
	require.ErrorIs(t, err, ErrNotConfigured)
	require.ErrorIs(t, s.Delete(context.Background(), "id", "image"), ErrNotConfigured)
}
