package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/povarna/generative-ai-agents/homematch/internal/models"
	"github.com/rs/zerolog"
)

const maxLineSize = 1024 * 1024

// InputRecord is one non-blank line of a JSONL file. Error is set when the
// line did not decode.
type InputRecord struct {
	LineNumber int
	Request    models.SearchRequest
	Error      error
}

type Reader struct {
	r      io.Reader
	logger *zerolog.Logger
}

func NewReader(r io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{r: r, logger: logger}
}

// ReadAll streams records until the input ends or ctx is cancelled. The
// channel is closed when reading stops.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	out := make(chan InputRecord)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r.r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		line := 0
		for scanner.Scan() {
			line++
			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}

			record := InputRecord{LineNumber: line}
			if err := json.Unmarshal([]byte(text), &record.Request); err != nil {
				record.Error = fmt.Errorf("line %d: %w", line, err)
			} else if strings.TrimSpace(record.Request.Query) == "" {
				record.Error = fmt.Errorf("line %d: query is required", line)
			}

			select {
			case <-ctx.Done():
				return
			case out <- record:
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error().Err(err).Int("line", line).Msg("Failed to read input")
		}
	}()

	return out
}
