package request_models

type ImportNoteRequest struct {
	Link     string `json:"link"`
	ForceOcr bool   `json:"force_ocr"`
}

// AnalyzeNoteRequest carries a previously parsed post back for extraction
// and persistence.
type AnalyzeNoteRequest struct {
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Images   []string `json:"images"`
	OcrTexts []string `json:"ocr_texts"`
}
