package utils

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNoteQuotaExceeded  = errors.New("note quota exceeded")
	ErrGuideQuotaExceeded = errors.New("itinerary quota exceeded")
	ErrLinkNotFound       = errors.New("no share link found in text")
	ErrUpstreamFailure    = errors.New("upstream service failure")
	ErrExtractionFailure  = errors.New("no itinerary could be extracted")
	ErrNoteNotFound       = errors.New("note not found")
	ErrItineraryNotFound  = errors.New("itinerary not found")
	ErrForbidden          = errors.New("forbidden")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDatabaseError      = errors.New("database error")
)
