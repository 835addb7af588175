package handlers

import (
	"net/http"

	"devboard/internal/services"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	images *services.ImageStore
}

func NewUploadHandler(images *services.ImageStore) *UploadHandler {
	return &UploadHandler{images: images}
}

// Image stores one uploaded image in the blob store and returns its URL.
func (h *UploadHandler) Image(c *gin.Context) {
	if h.images == nil {
		JSONError(c, errInvalidArgument("Image uploads are not enabled"))
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		JSONError(c, errInvalidArgument("Image file is required"))
		return
	}
	if header.Size > services.MaxImageSize {
		JSONError(c, errInvalidArgument("Image must be less than 5MB"))
		return
	}

	file, err := header.Open()
	if err != nil {
		JSONError(c, err)
		return
	}
	defer file.Close()

	result, err := h.images.Upload(c.Request.Context(), file, header)
	if err != nil {
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
