package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	farmapp "github.com/agrihub/backend/internal/application/farm"
)

// HarvestHandler handles harvest record endpoints
type HarvestHandler struct {
	BaseHandler
	harvestService *farmapp.HarvestService
}

// NewHarvestHandler creates a new HarvestHandler
func NewHarvestHandler(harvestService *farmapp.HarvestService) *HarvestHandler {
	return &HarvestHandler{
		harvestService: harvestService,
	}
}

// Record godoc
// @ID           recordHarvest
// @Summary      Record a harvest
// @Description  Record a harvest against a harvestable field, optionally depositing it into a storage bin
// @Tags         harvests
// @Accept       json
// @Produce      json
// @Param        request body farmapp.RecordHarvestRequest true "Harvest details"
// @Success      201 {object} APIResponse[farmapp.HarvestResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/harvests [post]
func (h *HarvestHandler) Record(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req farmapp.RecordHarvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	harvest, err := h.harvestService.Record(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, harvest)
}

// GetByID godoc
// @ID           getHarvestById
// @Summary      Get harvest by ID
// @Tags         harvests
// @Produce      json
// @Param        id path string true "Harvest ID" format(uuid)
// @Success      200 {object} APIResponse[farmapp.HarvestResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/harvests/{id} [get]
func (h *HarvestHandler) GetByID(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	harvestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid harvest ID format")
		return
	}

	harvest, err := h.harvestService.GetByID(c.Request.Context(), ownerID, harvestID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, harvest)
}

// List godoc
// @ID           listHarvests
// @Summary      List harvest records
// @Tags         harvests
// @Produce      json
// @Param        field_id query string false "Field ID" format(uuid)
// @Param        crop_type query string false "Crop type"
// @Param        grade query string false "Quality grade" Enums(A, B, C)
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]farmapp.HarvestResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/harvests [get]
func (h *HarvestHandler) List(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter farmapp.HarvestListFilter
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

	harvests, total, err := h.harvestService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, harvests, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateHarvest
// @Summary      Update a harvest record
// @Tags         harvests
// @Accept       json
// @Produce      json
// @Param        id path string true "Harvest ID" format(uuid)
// @Param        request body farmapp.UpdateHarvestRequest true "Harvest update request"
// @Success      200 {object} APIResponse[farmapp.HarvestResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/harvests/{id} [put]
func (h *HarvestHandler) Update(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	harvestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid harvest ID format")
		return
	}

	var req farmapp.UpdateHarvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	harvest, err := h.harvestService.Update(c.Request.Context(), ownerID, harvestID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, harvest)
}

// Delete godoc
// @ID           deleteHarvest
// @Summary      Delete a harvest record
// @Tags         harvests
// @Produce      json
// @Param        id path string true "Harvest ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/harvests/{id} [delete]
func (h *HarvestHandler) Delete(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	harvestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid harvest ID format")
		return
	}

	if err := h.harvestService.Delete(c.Request.Context(), ownerID, harvestID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Summary godoc
// @ID           harvestSummary
// @Summary      Yield summary over a date range
// @Description  Aggregate harvested kilograms, yield per hectare and margin for the window (defaults to the trailing 30 days)
// @Tags         harvests
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[farmapp.HarvestSummary]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/harvests/summary [get]
func (h *HarvestHandler) Summary(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	from, to, err := dateRange(c)
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	summary, err := h.harvestService.Summary(c.Request.Context(), ownerID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
