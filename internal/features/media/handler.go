package media

import (
	"context"
	"errors"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/cloudinary"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/response"
)

// Uploader is the part of *cloudinary.Service the handler needs
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, header *multipart.FileHeader, sub string) (*cloudinary.UploadResult, error)
}

type Handler struct {
	uploader Uploader
}

func NewHandler(uploader Uploader) *Handler {
	return &Handler{uploader: uploader}
}

// @Summary Upload media
// @Description Uploads an image, video or document to Cloudinary and returns its URL
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Param folder formData string false "Sub-folder under the upload folder"
// @Success 200 {object} response.APIResponse{data=cloudinary.UploadResult}
// @Failure 400 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /media/upload [post]
func (h *Handler) UploadMedia(c *gin.Context) {
	if h.uploader == nil {
		response.ServiceUnavailable(c, "Media uploads are not configured", "UPLOAD_UNAVAILABLE")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required", "MISSING_FILE")
		return
	}
	defer file.Close()

	if _, err := cloudinary.ValidateAttachment(header); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_FILE")
		return
	}

	result, err := h.uploader.Upload(c.Request.Context(), file, header, c.PostForm("folder"))
	if err != nil {
		if errors.Is(err, cloudinary.ErrNotConfigured) {
			response.ServiceUnavailable(c, "Media uploads are not configured", "UPLOAD_UNAVAILABLE")
			return
		}
		_ = c.Error(err)
		response.InternalServerError(c, "Failed to upload file", "UPLOAD_FAILED")
		return
	}

	response.Success(c, result, "File uploaded")
}
