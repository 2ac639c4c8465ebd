package handler

import (
	"github.com/gin-gonic/gin"

	mediaapp "github.com/agrihub/backend/internal/application/media"
)

// MediaHandler handles evidence photo upload endpoints
type MediaHandler struct {
	BaseHandler
	uploadService *mediaapp.UploadService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(uploadService *mediaapp.UploadService) *MediaHandler {
	return &MediaHandler{
		uploadService: uploadService,
	}
}

// RequestUpload godoc
// @ID           requestUploadUrl
// @Summary      Request a presigned upload URL
// @Description  Returns a short-lived URL the client PUTs the file to, plus the storage key to confirm with
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        request body mediaapp.UploadURLRequest true "Upload request"
// @Success      201 {object} APIResponse[mediaapp.UploadURLResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /media/uploads [post]
func (h *MediaHandler) RequestUpload(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req mediaapp.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.uploadService.RequestUpload(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ConfirmUpload godoc
// @ID           confirmUpload
// @Summary      Confirm a completed upload
// @Description  Verifies the object landed in storage and returns a download URL for it
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        request body mediaapp.ConfirmUploadRequest true "Storage key to confirm"
// @Success      200 {object} APIResponse[mediaapp.DownloadURLResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /media/uploads/confirm [post]
func (h *MediaHandler) ConfirmUpload(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req mediaapp.ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.uploadService.ConfirmUpload(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DownloadURL godoc
// @ID           mediaDownloadUrl
// @Summary      Get a presigned download URL
// @Tags         media
// @Produce      json
// @Param        key query string true "Storage key"
// @Success      200 {object} APIResponse[mediaapp.DownloadURLResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /media/downloads [get]
func (h *MediaHandler) DownloadURL(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	key := c.Query("key")
	if key == "" {
		h.BadRequest(c, "key is required")
		return
	}

	result, err := h.uploadService.DownloadURL(c.Request.Context(), ownerID, key)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @ID           deleteMedia
// @Summary      Delete an uploaded object
// @Tags         media
// @Produce      json
// @Param        key query string true "Storage key"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /media/uploads [delete]
func (h *MediaHandler) Delete(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	key := c.Query("key")
	if key == "" {
		h.BadRequest(c, "key is required")
		return
	}

	if err := h.uploadService.Delete(c.Request.Context(), ownerID, key); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
