package utils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func recordServiceError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleServiceError(c, err)
	return w
}

func TestHandleServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrLinkNotFound, http.StatusBadRequest},
		{ErrNoteQuotaExceeded, http.StatusBadRequest},
		{ErrGuideQuotaExceeded, http.StatusForbidden},
		{ErrUpstreamFailure, http.StatusBadGateway},
		{ErrExtractionFailure, http.StatusUnprocessableEntity},
		{ErrNoteNotFound, http.StatusNotFound},
		{ErrItineraryNotFound, http.StatusNotFound},
		{ErrForbidden, http.StatusForbidden},
		{ErrAccountNotFound, http.StatusUnauthorized},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrEmailAlreadyExists, http.StatusConflict},
		{ErrDatabaseError, http.StatusInternalServerError},
		{fmt.Errorf("something unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		w := recordServiceError(tt.err)
		assert.Equal(t, tt.want, w.Code, "error %v", tt.err)
	}
}

func TestHandleServiceErrorWrappedSentinel(t *testing.T) {
	w := recordServiceError(fmt.Errorf("%w: resolver returned 500", ErrUpstreamFailure))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
