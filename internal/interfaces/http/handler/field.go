package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	farmapp "github.com/agrihub/backend/internal/application/farm"
)

// FieldHandler handles field lifecycle endpoints
type FieldHandler struct {
	BaseHandler
	fieldService *farmapp.FieldService
}

// NewFieldHandler creates a new FieldHandler
func NewFieldHandler(fieldService *farmapp.FieldService) *FieldHandler {
	return &FieldHandler{
		fieldService: fieldService,
	}
}

// Create godoc
// @ID           createField
// @Summary      Register a new field
// @Tags         fields
// @Accept       json
// @Produce      json
// @Param        request body farmapp.CreateFieldRequest true "Field creation request"
// @Success      201 {object} APIResponse[farmapp.FieldResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/fields [post]
func (h *FieldHandler) Create(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req farmapp.CreateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	field, err := h.fieldService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, field)
}

// GetByID godoc
// @ID           getFieldById
// @Summary      Get field by ID
// @Tags         fields
// @Produce      json
// @Param        id path string true "Field ID" format(uuid)
// @Success      200 {object} APIResponse[farmapp.FieldResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/fields/{id} [get]
func (h *FieldHandler) GetByID(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fieldID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid field ID format")
		return
	}

	field, err := h.fieldService.GetByID(c.Request.Context(), ownerID, fieldID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, field)
}

// List godoc
// @ID           listFields
// @Summary      List fields
// @Tags         fields
// @Produce      json
// @Param        crop_type query string false "Crop type"
// @Param        season query string false "Season label"
// @Param        status query string false "Field status"
// @Param        search query string false "Search term (name, crop)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]farmapp.FieldResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/fields [get]
func (h *FieldHandler) List(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter farmapp.FieldListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	fields, total, err := h.fieldService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, fields, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateField
// @Summary      Update a field
// @Tags         fields
// @Accept       json
// @Produce      json
// @Param        id path string true "Field ID" format(uuid)
// @Param        request body farmapp.UpdateFieldRequest true "Field update request"
// @Success      200 {object} APIResponse[farmapp.FieldResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/fields/{id} [put]
func (h *FieldHandler) Update(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fieldID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid field ID format")
		return
	}

	var req farmapp.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	field, err := h.fieldService.Update(c.Request.Context(), ownerID, fieldID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, field)
}

// RecordPlanting godoc
// @ID           recordFieldPlanting
// @Summary      Record planting on a field
// @Tags         fields
// @Accept       json
// @Produce      json
// @Param        id path string true "Field ID" format(uuid)
// @Param        request body farmapp.RecordPlantingRequest true "Planting details"
// @Success      200 {object} APIResponse[farmapp.FieldResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/fields/{id}/plant [post]
func (h *FieldHandler) RecordPlanting(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fieldID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid field ID format")
		return
	}

	var req farmapp.RecordPlantingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	field, err := h.fieldService.RecordPlanting(c.Request.Context(), ownerID, fieldID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, field)
}

// MarkGrowing godoc
// @ID           markFieldGrowing
// @Summary      Mark a planted field as growing
// @Tags         fields
// @Produce      json
// @Param        id path string true "Field ID" format(uuid)
// @Success      200 {object} APIResponse[farmapp.FieldResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/fields/{id}/growing [post]
func (h *FieldHandler) MarkGrowing(c *gin.Context) {
	h.transition(c, h.fieldService.MarkGrowing)
}

// MarkHarvested godoc
// @ID           markFieldHarvested
// @Summary      Mark a field as harvested
// @Tags         fields
// @Produce      json
// @Param        id path string true "Field ID" format(uuid)
// @Success      200 {object} APIResponse[farmapp.FieldResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/fields/{id}/harvested [post]
func (h *FieldHandler) MarkHarvested(c *gin.Context) {
	h.transition(c, h.fieldService.MarkHarvested)
}

// MarkFallow godoc
// @ID           markFieldFallow
// @Summary      Rest a field after harvest
// @Tags         fields
// @Produce      json
// @Param        id path string true "Field ID" format(uuid)
// @Success      200 {object} APIResponse[farmapp.FieldResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/fields/{id}/fallow [post]
func (h *FieldHandler) MarkFallow(c *gin.Context) {
	h.transition(c, h.fieldService.MarkFallow)
}

// StartSeason godoc
// @ID           startFieldSeason
// @Summary      Start a new season on a fallow field
// @Tags         fields
// @Accept       json
// @Produce      json
// @Param        id path string true "Field ID" format(uuid)
// @Param        request body farmapp.StartSeasonRequest true "New season details"
// @Success      200 {object} APIResponse[farmapp.FieldResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/fields/{id}/season [post]
func (h *FieldHandler) StartSeason(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fieldID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid field ID format")
		return
	}

	var req farmapp.StartSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	field, err := h.fieldService.StartSeason(c.Request.Context(), ownerID, fieldID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, field)
}

// Delete godoc
// @ID           deleteField
// @Summary      Delete a field
// @Tags         fields
// @Produce      json
// @Param        id path string true "Field ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/fields/{id} [delete]
func (h *FieldHandler) Delete(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fieldID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid field ID format")
		return
	}

	if err := h.fieldService.Delete(c.Request.Context(), ownerID, fieldID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// transition runs one of the parameterless lifecycle moves
func (h *FieldHandler) transition(c *gin.Context, fn func(ctx context.Context, ownerID, id uuid.UUID) (*farmapp.FieldResponse, error)) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fieldID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid field ID format")
		return
	}

	field, err := fn(c.Request.Context(), ownerID, fieldID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, field)
}
