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

type NoteController struct {
	noteService services.NoteServiceInterface
}

func NewNoteController(noteService services.NoteServiceInterface) *NoteController {
	return &NoteController{
		noteService: noteService,
	}
}

func currentAccountID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid account identity")
		return uuid.Nil, false
	}
	return id, true
}

// ImportNote godoc
// @Summary Import a note from a share link
// @Description Resolve a Xiaohongshu share link, extract an itinerary and save the note
// @Tags Notes
// @Accept json
// @Produce json
// @Param request body request_models.ImportNoteRequest true "Share link payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /notes [post]
func (n *NoteController) ImportNote(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var req request_models.ImportNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	note, err := n.noteService.ImportNote(c.Request.Context(), accountID, req.Link, req.ForceOcr)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, note, "Note imported successfully")
}

// ParsePost godoc
// @Summary Parse a share link without saving
// @Description Fetch post content and OCR text for preview, nothing is persisted
// @Tags Notes
// @Accept json
// @Produce json
// @Param request body request_models.ImportNoteRequest true "Share link payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /notes/parse [post]
func (n *NoteController) ParsePost(c *gin.Context) {
	var req request_models.ImportNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	parsed, err := n.noteService.ParsePost(c.Request.Context(), req.Link, req.ForceOcr)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, parsed, "Post parsed successfully")
}

// AnalyzeParsed godoc
// @Summary Analyze previously parsed content
// @Description Run itinerary extraction over parsed post content and save the note
// @Tags Notes
// @Accept json
// @Produce json
// @Param request body request_models.AnalyzeNoteRequest true "Parsed post payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /notes/analyze [post]
func (n *NoteController) AnalyzeParsed(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var req request_models.AnalyzeNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	note, err := n.noteService.AnalyzeParsed(c.Request.Context(), accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, note, "Note analyzed successfully")
}

// ListNotes godoc
// @Summary List saved notes
// @Tags Notes
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /notes [get]
func (n *NoteController) ListNotes(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	notes, err := n.noteService.ListNotes(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, notes, "Notes fetched successfully")
}

// GetNote godoc
// @Summary Get a saved note by id
// @Tags Notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /notes/{id} [get]
func (n *NoteController) GetNote(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid note id")
		return
	}

	note, err := n.noteService.GetNote(c.Request.Context(), accountID, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, note, "Note fetched successfully")
}

// DeleteNote godoc
// @Summary Delete a saved note
// @Tags Notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /notes/{id} [delete]
func (n *NoteController) DeleteNote(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid note id")
		return
	}

	if err := n.noteService.DeleteNote(c.Request.Context(), accountID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Note deleted successfully")
}

// DayCoordinates godoc
// @Summary Resolve coordinates for one day of a note itinerary
// @Tags Notes
// @Produce json
// @Param id path string true "Note ID"
// @Param day query int false "Day number, defaults to 1"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /notes/{id}/coordinates [get]
func (n *NoteController) DayCoordinates(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid note id")
		return
	}

	day, err := strconv.Atoi(c.DefaultQuery("day", "1"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid day number")
		return
	}

	coords, err := n.noteService.ResolveDayCoordinates(c.Request.Context(), accountID, id, day)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, coords, "Coordinates resolved successfully")
}
