package quality

import (
	"regexp"
	"strings"
	"time"
)

type FormatChecker struct {
}

func NewFormatChecker() *FormatChecker {
	return &FormatChecker{}
}

var (
	repeatedPunctuation = regexp.MustCompile(`[!?.]{4,}`)
	// Preambles the model sometimes emits instead of the description itself.
	preamble = regexp.MustCompile(`(?i)^(here is|here's|sure[,!]|certainly[,!])`)
)

func (c *FormatChecker) Check(subject Subject) (result Result) {
	result = Result{Name: "format-checker"}
	now := time.Now()
	defer func() { result.Duration = time.Since(now) }()

	text := strings.TrimSpace(subject.Rewritten)

	switch {
	case text == "":
		result.Reason = "Empty description"
	case len(strings.Fields(text)) < 5:
		result.Reason = "Description is only a few words"
	case strings.Contains(text, "```"):
		result.Reason = "Description contains a code block"
	case preamble.MatchString(text):
		result.Score = 0.5
		result.Reason = "Description starts with a conversational preamble"
	case repeatedPunctuation.MatchString(text):
		result.Score = 0.5
		result.Reason = "Description contains repeated punctuation"
	default:
		result.Score = 1.0
		result.Reason = "Valid description"
	}
	return result
}
