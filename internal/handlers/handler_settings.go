package handlers

import (
	"net/http"

	portssvc "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/services"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/dto"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// settingsHandler handles HTTP requests related to user settings.
type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

func newSettingsHandler(ss portssvc.SettingsSvcFacade) *settingsHandler {
	return &settingsHandler{settingsService: ss}
}

// registerSettingsRoutes registers settings routes.
func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade) {
	h := newSettingsHandler(settingsService)

	settings := rg.Group("/settings")
	{
		settings.GET("", h.getSettings)
		settings.PUT("/goal", h.setMonthlyGoal)
		settings.POST("/favorites/toggle", h.toggleFavorite)
	}
}

// getSettings godoc
// @Summary Get settings
// @Description Returns the user's monthly goal and favorite transaction templates.
// @Tags settings
// @Produce json
// @Success 200 {object} dto.SettingsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	settings, err := h.settingsService.GetSettings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

// setMonthlyGoal godoc
// @Summary Set the monthly goal
// @Description Stores the target net balance for each month. Zero disables goal notices.
// @Tags settings
// @Accept json
// @Produce json
// @Param goal body dto.UpdateGoalRequest true "Monthly goal"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings/goal [put]
func (h *settingsHandler) setMonthlyGoal(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.settingsService.SetMonthlyGoal(c.Request.Context(), userID, req.MonthlyGoal); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// toggleFavorite godoc
// @Summary Toggle a favorite template
// @Description Adds the template, or removes the stored one with the same description and category.
// @Tags settings
// @Accept json
// @Produce json
// @Param favorite body dto.FavoriteRequest true "Favorite template"
// @Success 200 {object} dto.ToggleFavoriteResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings/favorites/toggle [post]
func (h *settingsHandler) toggleFavorite(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	added, err := h.settingsService.ToggleFavorite(c.Request.Context(), userID, req.ToFavorite())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToggleFavoriteResponse{Added: added})
}
