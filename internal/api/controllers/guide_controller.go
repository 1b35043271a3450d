package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tripnote/internal/models/request_models"
	"tripnote/internal/services"
	"tripnote/pkg/utils"
)

type GuideController struct {
	guideService services.GuideServiceInterface
}

func NewGuideController(guideService services.GuideServiceInterface) *GuideController {
	return &GuideController{
		guideService: guideService,
	}
}

// CreateGuide godoc
// @Summary Generate a travel guide for a city
// @Description Ask the model for a day-by-day itinerary and save it
// @Tags Guides
// @Produce json
// @Param city query string true "Destination city"
// @Param keyword query string false "Interest keyword"
// @Param days query int false "Number of days, defaults to 3"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /guide [get]
func (g *GuideController) CreateGuide(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	city := c.Query("city")
	keyword := c.Query("keyword")
	days, err := strconv.Atoi(c.DefaultQuery("days", "3"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid days number")
		return
	}

	guide, err := g.guideService.CreateGuide(c.Request.Context(), accountID, city, keyword, days)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, guide, "Guide generated successfully")
}

// UpdateGuide godoc
// @Summary Update a saved itinerary
// @Tags Guides
// @Accept json
// @Produce json
// @Param id path string true "Itinerary ID"
// @Param request body request_models.UpdateGuideRequest true "Updated itinerary payload"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /itineraries/{id} [put]
func (g *GuideController) UpdateGuide(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid itinerary id")
		return
	}

	var req request_models.UpdateGuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	guide, err := g.guideService.UpdateGuide(c.Request.Context(), accountID, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, guide, "Itinerary updated successfully")
}

// ListGuides godoc
// @Summary List saved itineraries
// @Tags Guides
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /itineraries [get]
func (g *GuideController) ListGuides(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	guides, err := g.guideService.ListGuides(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, guides, "Itineraries fetched successfully")
}

// DeleteGuide godoc
// @Summary Delete a saved itinerary
// @Tags Guides
// @Produce json
// @Param id path string true "Itinerary ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /itineraries/{id} [delete]
func (g *GuideController) DeleteGuide(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid itinerary id")
		return
	}

	if err := g.guideService.DeleteGuide(c.Request.Context(), accountID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Itinerary deleted successfully")
}
