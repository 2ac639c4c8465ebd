package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	gameapp "github.com/agrihub/backend/internal/application/gamification"
)

// GamificationHandler handles mission, streak and leaderboard endpoints
type GamificationHandler struct {
	BaseHandler
	missionService     *gameapp.MissionService
	streakService      *gameapp.StreakService
	leaderboardService *gameapp.LeaderboardService
}

// NewGamificationHandler creates a new GamificationHandler
func NewGamificationHandler(
	missionService *gameapp.MissionService,
	streakService *gameapp.StreakService,
	leaderboardService *gameapp.LeaderboardService,
) *GamificationHandler {
	return &GamificationHandler{
		missionService:     missionService,
		streakService:      streakService,
		leaderboardService: leaderboardService,
	}
}

// ListMissions godoc
// @ID           listMissions
// @Summary      List missions
// @Description  Lists available missions with the farmer's progress folded in where started
// @Tags         gamification
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]gameapp.MissionResponse]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /gamification/missions [get]
func (h *GamificationHandler) ListMissions(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	page, pageSize := pagination(c)
	missions, err := h.missionService.List(c.Request.Context(), ownerID, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, missions)
}

// GetMission godoc
// @ID           getMissionById
// @Summary      Get mission by ID
// @Tags         gamification
// @Produce      json
// @Param        id path string true "Mission ID" format(uuid)
// @Success      200 {object} APIResponse[gameapp.MissionResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /gamification/missions/{id} [get]
func (h *GamificationHandler) GetMission(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	missionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid mission ID format")
		return
	}

	mission, err := h.missionService.GetByID(c.Request.Context(), ownerID, missionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, mission)
}

// StartMission godoc
// @ID           startMission
// @Summary      Start a mission
// @Tags         gamification
// @Produce      json
// @Param        id path string true "Mission ID" format(uuid)
// @Success      201 {object} APIResponse[gameapp.ProgressResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /gamification/missions/{id}/start [post]
func (h *GamificationHandler) StartMission(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	missionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid mission ID format")
		return
	}

	progress, err := h.missionService.Start(c.Request.Context(), ownerID, missionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, progress)
}

// CompleteStep godoc
// @ID           completeMissionStep
// @Summary      Complete the next mission step
// @Description  Steps must be completed in sequence order. Completing the final step awards the mission XP and starts the bonus window.
// @Tags         gamification
// @Accept       json
// @Produce      json
// @Param        id path string true "Mission ID" format(uuid)
// @Param        request body gameapp.CompleteStepRequest true "Step to complete"
// @Success      200 {object} APIResponse[gameapp.ProgressResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /gamification/missions/{id}/steps [post]
func (h *GamificationHandler) CompleteStep(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	missionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid mission ID format")
		return
	}

	var req gameapp.CompleteStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	progress, err := h.missionService.CompleteStep(c.Request.Context(), ownerID, missionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, progress)
}

// ListProgress godoc
// @ID           listMissionProgress
// @Summary      List the farmer's mission attempts
// @Tags         gamification
// @Produce      json
// @Param        status query string false "Progress status" Enums(IN_PROGRESS, COMPLETED, EXPIRED)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]gameapp.ProgressResponse]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /gamification/progress [get]
func (h *GamificationHandler) ListProgress(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	page, pageSize := pagination(c)
	progress, err := h.missionService.ListProgress(c.Request.Context(), ownerID, c.Query("status"), page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, progress)
}

// GetStreak godoc
// @ID           getStreak
// @Summary      Get the farmer's activity streak
// @Tags         gamification
// @Produce      json
// @Success      200 {object} APIResponse[gameapp.StreakResponse]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /gamification/streak [get]
func (h *GamificationHandler) GetStreak(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	streak, err := h.streakService.Get(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, streak)
}

// Leaderboard godoc
// @ID           leaderboard
// @Summary      Top farmers by XP
// @Tags         gamification
// @Produce      json
// @Param        limit query int false "Number of entries" default(10) maximum(100)
// @Success      200 {object} APIResponse[[]gameapp.LeaderboardResponse]
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /gamification/leaderboard [get]
func (h *GamificationHandler) Leaderboard(c *gin.Context) {
	limit := 10
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}

	entries, err := h.leaderboardService.Top(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// Profile godoc
// @ID           gamificationProfile
// @Summary      The farmer's XP profile and rank
// @Tags         gamification
// @Produce      json
// @Success      200 {object} APIResponse[gameapp.ProfileResponse]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /gamification/profile [get]
func (h *GamificationHandler) Profile(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.leaderboardService.Profile(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}
