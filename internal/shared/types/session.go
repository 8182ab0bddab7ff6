package types

import "time"

// SessionSnapshot is the durable subset of the working state. Transient UI
// flags and loading/error state are deliberately absent: they are not required
// to round-trip.
type SessionSnapshot struct {
	OriginalPrompt string            `json:"original_prompt"`
	Segments       []SegmentSnapshot `json:"segments"`
	SavedAt        time.Time         `json:"saved_at"`
}

// SegmentSnapshot is the persisted form of a Segment.
type SegmentSnapshot struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Order    int    `json:"order"`
	Included bool   `json:"is_included"`
}

// Credentials is the AI provider credential record kept in the key-value
// store. Model selects the parameter profile used for provider calls.
type Credentials struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
}

// Configured reports whether the record is usable for provider calls.
func (c Credentials) Configured() bool {
	return c.APIKey != ""
}
