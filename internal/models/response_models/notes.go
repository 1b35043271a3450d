package response_models

import "tripnote/internal/models/db_models"

type NoteResponse struct {
	ID        string                   `json:"id"`
	Title     string                   `json:"title"`
	Body      string                   `json:"body"`
	Images    []string                 `json:"images"`
	OcrTexts  []string                 `json:"ocr_texts"`
	JSONBody  db_models.ItineraryDraft `json:"json_body"`
	CreatedAt int64                    `json:"created_at"`
	UpdatedAt int64                    `json:"updated_at"`
}

// ParsedPostResponse is the preview shape: fetched and OCR'd but not yet
// run through the generator.
type ParsedPostResponse struct {
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Images   []string `json:"images"`
	OcrTexts []string `json:"ocr_texts"`
}

func NoteResponseFrom(note *db_models.XhsNote) NoteResponse {
	images := []string(note.Images)
	if images == nil {
		images = []string{}
	}
	ocrTexts := []string(note.OcrTexts)
	if ocrTexts == nil {
		ocrTexts = []string{}
	}
	return NoteResponse{
		ID:        note.ID.String(),
		Title:     note.Title,
		Body:      note.Body,
		Images:    images,
		OcrTexts:  ocrTexts,
		JSONBody:  db_models.ItineraryDraft(note.JSONBody),
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
