package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/povarna/generative-ai-agents/homematch/internal/models"
	"github.com/rs/zerolog"
)

const (
	FormatJSONL   = "jsonl"
	FormatSummary = "summary"
)

// Summary counts what a batch produced.
type Summary struct {
	Total    int `json:"total"`
	OK       int `json:"ok"`
	Failed   int `json:"failed"`
	Returned int `json:"listings_returned"`
	Cached   int `json:"cached"`
}

func (s *Summary) Add(resp models.SearchResponse) {
	s.Total++
	if resp.Status != models.StatusOK {
		s.Failed++
		return
	}
	s.OK++
	if resp.Result != nil {
		s.Returned += len(resp.Result.Listings)
		if resp.Result.Cached {
			s.Cached++
		}
	}
}

// Writer emits one JSON line per response in jsonl format, or a single
// summary object on Close in summary format.
type Writer struct {
	mu      sync.Mutex
	w       io.Writer
	format  string
	encoder *json.Encoder
	summary Summary
	logger  *zerolog.Logger
}

func NewWriter(w io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	if format != FormatJSONL && format != FormatSummary {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
	return &Writer{w: w, format: format, encoder: json.NewEncoder(w), logger: logger}, nil
}

func (w *Writer) Write(resp models.SearchResponse) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.summary.Add(resp)
	if w.format != FormatJSONL {
		return nil
	}
	if err := w.encoder.Encode(resp); err != nil {
		return fmt.Errorf("failed to write response %s: %w", resp.RequestID, err)
	}
	return nil
}

func (w *Writer) Summary() Summary {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.summary
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.format != FormatSummary {
		return nil
	}
	encoder := json.NewEncoder(w.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(w.summary)
}
