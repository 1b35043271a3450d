package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrLinkNotFound):
		RespondError(c, http.StatusBadRequest, "No valid share link found in the pasted text")
	case errors.Is(err, ErrNoteQuotaExceeded):
		RespondError(c, http.StatusBadRequest, "Note limit (6) reached, delete a few notes before importing more")
	case errors.Is(err, ErrGuideQuotaExceeded):
		RespondError(c, http.StatusForbidden, "Itinerary limit reached, delete an itinerary before creating a new one")
	case errors.Is(err, ErrUpstreamFailure):
		log.Printf("Upstream error: %v", err)
		RespondError(c, http.StatusBadGateway, "An upstream service failed, please try again later")
	case errors.Is(err, ErrExtractionFailure):
		RespondError(c, http.StatusUnprocessableEntity, "Could not extract an itinerary from the post content")
	case errors.Is(err, ErrNoteNotFound):
		RespondError(c, http.StatusNotFound, "Note not found")
	case errors.Is(err, ErrItineraryNotFound):
		RespondError(c, http.StatusNotFound, "Itinerary not found")
	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, "You do not have access to this record")
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
