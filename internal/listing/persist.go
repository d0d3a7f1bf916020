package listing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// LoadReport summarizes a load. Invalid records are skipped, not fatal.
type LoadReport struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}

// Load reads a JSON array of listings. Records failing validation are skipped
// and logged; input that is not a JSON array fails the whole load.
func Load(r io.Reader, logger *zerolog.Logger) ([]Listing, LoadReport, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, LoadReport{}, fmt.Errorf("failed to decode listings array: %w", err)
	}

	listings := make([]Listing, 0, len(raw))
	report := LoadReport{}
	for i, item := range raw {
		l, err := Decode(item)
		if err != nil {
			logger.Warn().Err(err).Int("index", i).Msg("skipping invalid listing")
			report.Skipped++
			continue
		}
		listings = append(listings, l)
	}
	report.Loaded = len(listings)

	return listings, report, nil
}

func LoadFile(path string, logger *zerolog.Logger) ([]Listing, LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("failed to open listings file: %w", err)
	}
	defer f.Close()

	listings, report, err := Load(f, logger)
	if err != nil {
		return nil, report, fmt.Errorf("%s: %w", path, err)
	}

	logger.Info().
		Str("file", path).
		Int("loaded", report.Loaded).
		Int("skipped", report.Skipped).
		Msg("listings loaded")

	return listings, report, nil
}

// Save writes listings as an indented JSON array.
func Save(w io.Writer, listings []Listing) error {
	if listings == nil {
		listings = []Listing{}
	}

	data, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode listings: %w", err)
	}
	data = append(data, '\n')

	_, err = w.Write(data)
	return err
}

// SaveFile writes through a temporary file in the same directory and renames
// it into place.
func SaveFile(path string, listings []Listing) error {
	var buf bytes.Buffer
	if err := Save(&buf, listings); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create listings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".listings-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write listings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move listings into place: %w", err)
	}
	return nil
}
