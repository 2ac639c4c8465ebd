package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	farmapp "github.com/agrihub/backend/internal/application/farm"
)

// BinHandler handles storage bin endpoints
type BinHandler struct {
	BaseHandler
	binService *farmapp.BinService
}

// NewBinHandler creates a new BinHandler
func NewBinHandler(binService *farmapp.BinService) *BinHandler {
	return &BinHandler{
		binService: binService,
	}
}

// Create godoc
// @ID           createBin
// @Summary      Register a storage bin
// @Tags         bins
// @Accept       json
// @Produce      json
// @Param        request body farmapp.CreateBinRequest true "Bin creation request"
// @Success      201 {object} APIResponse[farmapp.BinResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/bins [post]
func (h *BinHandler) Create(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req farmapp.CreateBinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bin, err := h.binService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, bin)
}

// GetByID godoc
// @ID           getBinById
// @Summary      Get bin by ID
// @Tags         bins
// @Produce      json
// @Param        id path string true "Bin ID" format(uuid)
// @Success      200 {object} APIResponse[farmapp.BinResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/bins/{id} [get]
func (h *BinHandler) GetByID(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	binID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bin ID format")
		return
	}

	bin, err := h.binService.GetByID(c.Request.Context(), ownerID, binID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bin)
}

// List godoc
// @ID           listBins
// @Summary      List storage bins
// @Tags         bins
// @Produce      json
// @Param        produce_type query string false "Produce type"
// @Param        search query string false "Search term (name, location)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]farmapp.BinResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/bins [get]
func (h *BinHandler) List(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	page, pageSize := pagination(c)
	bins, total, err := h.binService.List(c.Request.Context(), ownerID, c.Query("produce_type"), c.Query("search"), page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, bins, total, page, pageSize)
}

// Update godoc
// @ID           updateBin
// @Summary      Update a bin
// @Tags         bins
// @Accept       json
// @Produce      json
// @Param        id path string true "Bin ID" format(uuid)
// @Param        request body farmapp.UpdateBinRequest true "Bin update request"
// @Success      200 {object} APIResponse[farmapp.BinResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/bins/{id} [put]
func (h *BinHandler) Update(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	binID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bin ID format")
		return
	}

	var req farmapp.UpdateBinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bin, err := h.binService.Update(c.Request.Context(), ownerID, binID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bin)
}

// Deposit godoc
// @ID           depositToBin
// @Summary      Deposit produce into a bin
// @Tags         bins
// @Accept       json
// @Produce      json
// @Param        id path string true "Bin ID" format(uuid)
// @Param        request body farmapp.BinMovementRequest true "Deposit details"
// @Success      200 {object} APIResponse[farmapp.BinResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/bins/{id}/deposit [post]
func (h *BinHandler) Deposit(c *gin.Context) {
	h.movement(c, h.binService.Deposit)
}

// Withdraw godoc
// @ID           withdrawFromBin
// @Summary      Withdraw produce from a bin
// @Tags         bins
// @Accept       json
// @Produce      json
// @Param        id path string true "Bin ID" format(uuid)
// @Param        request body farmapp.BinMovementRequest true "Withdrawal details"
// @Success      200 {object} APIResponse[farmapp.BinResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/bins/{id}/withdraw [post]
func (h *BinHandler) Withdraw(c *gin.Context) {
	h.movement(c, h.binService.Withdraw)
}

// Delete godoc
// @ID           deleteBin
// @Summary      Delete an empty bin
// @Tags         bins
// @Produce      json
// @Param        id path string true "Bin ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /farm/bins/{id} [delete]
func (h *BinHandler) Delete(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	binID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bin ID format")
		return
	}

	if err := h.binService.Delete(c.Request.Context(), ownerID, binID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *BinHandler) movement(c *gin.Context, fn func(ctx context.Context, ownerID, id uuid.UUID, req farmapp.BinMovementRequest) (*farmapp.BinResponse, error)) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	binID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bin ID format")
		return
	}

	var req farmapp.BinMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bin, err := fn(c.Request.Context(), ownerID, binID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bin)
}
