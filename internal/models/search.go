package models

import (
	"time"

	"github.com/povarna/generative-ai-agents/homematch/internal/search"
)

type ResponseStatus string

const (
	StatusOK    ResponseStatus = "ok"
	StatusError ResponseStatus = "error"
)

// SearchRequest is the stream message asking for a listing search.
type SearchRequest struct {
	RequestID string `json:"request_id,omitempty"`
	Query     string `json:"query"`
	Count     int    `json:"count,omitempty"`
}

// SearchResponse is published for every consumed SearchRequest, including
// the ones that could not be served.
type SearchResponse struct {
	RequestID   string         `json:"request_id"`
	Status      ResponseStatus `json:"status"`
	Error       string         `json:"error,omitempty"`
	Result      *search.Result `json:"result,omitempty"`
	CompletedAt time.Time      `json:"completed_at"`
}
