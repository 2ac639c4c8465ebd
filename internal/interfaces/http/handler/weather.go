package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/agrihub/backend/internal/infrastructure/weather"
)

// WeatherHandler exposes the forecast the reminder job works from
type WeatherHandler struct {
	BaseHandler
	provider weather.Provider
}

// NewWeatherHandler creates a new WeatherHandler
func NewWeatherHandler(provider weather.Provider) *WeatherHandler {
	return &WeatherHandler{
		provider: provider,
	}
}

// Forecast godoc
// @ID           weatherForecast
// @Summary      Next-day forecast for a location
// @Tags         weather
// @Produce      json
// @Param        location query string true "Location name or region"
// @Success      200 {object} APIResponse[weather.Forecast]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      502 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /weather/forecast [get]
func (h *WeatherHandler) Forecast(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	location := c.Query("location")
	if location == "" {
		h.BadRequest(c, "location is required")
		return
	}

	forecast, err := h.provider.Forecast(c.Request.Context(), location)
	if err != nil {
		h.ErrorWithCode(c, "WEATHER_UNAVAILABLE", "Weather provider is unavailable")
		return
	}

	h.Success(c, forecast)
}
