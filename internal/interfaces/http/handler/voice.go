package handler

import (
	"github.com/gin-gonic/gin"

	voiceapp "github.com/agrihub/backend/internal/application/voice"
)

// VoiceHandler handles voice command endpoints
type VoiceHandler struct {
	BaseHandler
	dispatchService *voiceapp.DispatchService
}

// NewVoiceHandler creates a new VoiceHandler
func NewVoiceHandler(dispatchService *voiceapp.DispatchService) *VoiceHandler {
	return &VoiceHandler{
		dispatchService: dispatchService,
	}
}

// Dispatch godoc
// @ID           dispatchVoiceCommand
// @Summary      Execute a voice command transcript
// @Description  Parses the transcript into a structured intent (remote parser with keyword fallback) and creates the matching record: a task, expense, income or harvest.
// @Tags         voice
// @Accept       json
// @Produce      json
// @Param        request body voiceapp.DispatchRequest true "Voice transcript"
// @Success      200 {object} APIResponse[voiceapp.DispatchResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /voice/dispatch [post]
func (h *VoiceHandler) Dispatch(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req voiceapp.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.dispatchService.Dispatch(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
