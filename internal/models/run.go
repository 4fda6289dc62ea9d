// ABOUTME: GenerationRun records one page generation for auditing
// ABOUTME: Persisted by the sqlite run store and listed by the history command
package models

import "time"

// GenerationRun is the audit record of a single page generation
type GenerationRun struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	PageType     string    `json:"page_type"`
	Query        string    `json:"query"`
	DynamicCount int       `json:"dynamic_count"`
	Diagnostics  string    `json:"diagnostics"`
	Output       string    `json:"output"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
