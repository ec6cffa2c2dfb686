package dto

import "time"

// ProblemResponse is the error body returned by every endpoint.
type ProblemResponse struct {
	Status    int            `json:"status"`
	Title     string         `json:"title"`
	Detail    string         `json:"detail"`
	Code      string         `json:"code"`
	Path      string         `json:"path"`
	Timestamp time.Time      `json:"timestamp"`
	RequestID string         `json:"requestId,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
}
