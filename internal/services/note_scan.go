package services

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Share links arrive pasted inside free-form text, often with trailing
// punctuation from the share sheet. Patterns are tried in order; the first
// match wins. Bare short links get a protocol prefix.
var shareLinkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https://www\.xiaohongshu\.com/explore/[a-zA-Z0-9]+[^\s,，。！]*`),
	regexp.MustCompile(`https://www\.xiaohongshu\.com/discovery/item/[a-zA-Z0-9]+[^\s,，。！]*`),
	regexp.MustCompile(`https?://xhslink\.com/[a-zA-Z0-9]+[^\s,，。！]*`),
	regexp.MustCompile(`xhslink\.com/[a-zA-Z0-9]+[^\s,，。！]*`),
}

var linkPunctuation = strings.NewReplacer(",", "", "，", "", "。", "", "！", "")

// ExtractShareLink locates a share link inside arbitrary pasted text.
// Returns false when none of the known URL shapes is present.
func ExtractShareLink(text string) (string, bool) {
	for _, pattern := range shareLinkPatterns {
		match := pattern.FindString(text)
		if match == "" {
			continue
		}
		match = linkPunctuation.Replace(match)
		if strings.HasPrefix(match, "xhslink.com") {
			match = "http://" + match
		}
		return match, true
	}
	return "", false
}

const ocrBodyLengthThreshold = 250

// A body that already reads like an itinerary makes image OCR pointless:
// day markers, ordinal-day phrasing, arrows, circled numbers, time stamps.
var itineraryMarkerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)day \d+`),
	regexp.MustCompile(`第[一二三四五六七八九十]+天`),
	regexp.MustCompile(`[➡→]`),
	regexp.MustCompile(`[①②③④⑤⑥⑦⑧⑨⑩]`),
	regexp.MustCompile(`\d+[:：]\s*\S+`),
}

// ShouldPerformOCR reports whether the post body alone is too thin to feed
// the generator, implying the useful content likely lives in the images.
func ShouldPerformOCR(body string) bool {
	if utf8.RuneCountInString(body) > ocrBodyLengthThreshold {
		return false
	}
	for _, pattern := range itineraryMarkerPatterns {
		if pattern.MatchString(body) {
			return false
		}
	}
	return true
}
