package services

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"tripnote/internal/models/db_models"
	"tripnote/pkg/utils"
)

// The generator is not schema-constrained: replies routinely wrap the JSON
// in markdown fences or prose, or miss valid JSON entirely. Parsing runs in
// two tiers: strict JSON on the fence-stripped outermost value, then a regex
// scan for name/description pairs chunked two per day. The fallback trades
// day-boundary fidelity for availability.
func ParseItineraryDraft(raw string, requestedDays int) (*db_models.ItineraryDraft, error) {
	cleaned := cleanModelOutput(raw)

	if draft, ok := parseStrict(cleaned); ok {
		return draft, nil
	}

	if draft, ok := parseByPlacePairs(cleaned, requestedDays); ok {
		log.Printf("Strict itinerary parse failed, regex fallback extracted %d day(s)", len(draft.Data))
		return draft, nil
	}

	return nil, fmt.Errorf("%w: no place data in model reply", utils.ErrExtractionFailure)
}

var llmProsePrefixes = []string{
	"Here's the travel plan:",
	"Here is the itinerary:",
	"The travel plan is:",
	"Travel plan:",
	"Itinerary:",
}

func cleanModelOutput(raw string) string {
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```JSON", "")
	raw = strings.ReplaceAll(raw, "```", "")
	raw = strings.TrimSpace(raw)

	for _, prefix := range llmProsePrefixes {
		if strings.HasPrefix(raw, prefix) {
			raw = strings.TrimSpace(strings.TrimPrefix(raw, prefix))
			break
		}
	}

	objStart := strings.Index(raw, "{")
	arrStart := strings.Index(raw, "[")

	if objStart != -1 && (arrStart == -1 || objStart < arrStart) {
		if end := findMatchingDelimiter(raw, objStart, '{', '}'); end != -1 {
			return raw[objStart : end+1]
		}
	} else if arrStart != -1 {
		if end := findMatchingDelimiter(raw, arrStart, '[', ']'); end != -1 {
			return raw[arrStart : end+1]
		}
	}

	return raw
}

// findMatchingDelimiter scans for the closing delimiter matching the one at
// start, ignoring delimiters inside JSON strings.
func findMatchingDelimiter(s string, start int, open, close byte) int {
	if start >= len(s) || s[start] != open {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		ch := s[i]

		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch ch {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

func parseStrict(cleaned string) (*db_models.ItineraryDraft, bool) {
	// Object shape: {"city": ..., "data": [...]}
	var draft db_models.ItineraryDraft
	if err := json.Unmarshal([]byte(cleaned), &draft); err == nil && len(draft.Data) > 0 {
		if countPlaces(draft.Data) > 0 {
			return &draft, true
		}
	}

	// Array shape: [{"day": 1, "places": [...]}]
	var days []db_models.DayPlan
	if err := json.Unmarshal([]byte(cleaned), &days); err == nil && countPlaces(days) > 0 {
		return &db_models.ItineraryDraft{Data: days}, true
	}

	return nil, false
}

var placePairPattern = regexp.MustCompile(`"name"\s*[:：]\s*"([^"]+)"[^}]*"description"\s*[:：]\s*"([^"]+)"`)

const fallbackPlacesPerDay = 2

func parseByPlacePairs(cleaned string, requestedDays int) (*db_models.ItineraryDraft, bool) {
	matches := placePairPattern.FindAllStringSubmatch(cleaned, -1)
	if len(matches) == 0 {
		return nil, false
	}
	if requestedDays < 1 {
		requestedDays = 1
	}

	var data []db_models.DayPlan
	for day := 1; day <= requestedDays; day++ {
		start := (day - 1) * fallbackPlacesPerDay
		if start >= len(matches) {
			break
		}
		end := start + fallbackPlacesPerDay
		if end > len(matches) {
			end = len(matches)
		}

		places := make([]db_models.Place, 0, end-start)
		for _, m := range matches[start:end] {
			places = append(places, db_models.Place{Name: m[1], Description: m[2]})
		}
		data = append(data, db_models.DayPlan{Day: day, Places: places})
	}

	return &db_models.ItineraryDraft{Data: data}, true
}

func countPlaces(days []db_models.DayPlan) int {
	total := 0
	for _, d := range days {
		total += len(d.Places)
	}
	return total
}

// RepairDraft normalizes a draft against the requested day count: extra days
// are truncated, day numbers are renumbered 1..n contiguous, nil place slices
// become empty. Missing days are never synthesized; a shorter itinerary ships
// as-is.
func RepairDraft(draft *db_models.ItineraryDraft, requestedDays int) *db_models.ItineraryDraft {
	if len(draft.Data) != requestedDays {
		log.Printf("Generator returned %d day(s), requested %d", len(draft.Data), requestedDays)
	}
	if requestedDays > 0 && len(draft.Data) > requestedDays {
		draft.Data = draft.Data[:requestedDays]
	}
	for i := range draft.Data {
		draft.Data[i].Day = i + 1
		if draft.Data[i].Places == nil {
			draft.Data[i].Places = []db_models.Place{}
		}
	}
	return draft
}
