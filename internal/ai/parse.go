package ai

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/promptdeck/promptdeck/internal/shared/types"
)

// segmentRecord is the JSON shape the segmentize prompt asks the model for.
type segmentRecord struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// parseSegments decodes a segmentize completion into drafts. Models often
// wrap JSON in a markdown code fence; that wrapping is tolerated.
func parseSegments(raw string) ([]types.SegmentDraft, error) {
	text := stripFence(raw)
	if text == "" {
		return nil, fmt.Errorf("empty response")
	}

	var records []segmentRecord
	if err := sonic.UnmarshalString(text, &records); err != nil {
		return nil, fmt.Errorf("decode segments: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no segments in response")
	}

	// Missing fields default rather than invalidate: a record without
	// content becomes an empty segment the user can fill in.
	drafts := make([]types.SegmentDraft, 0, len(records))
	for _, r := range records {
		drafts = append(drafts, types.SegmentDraft{
			Title:   strings.TrimSpace(r.Title),
			Content: r.Content,
		})
	}
	return drafts, nil
}

// parseCondensed extracts condensed text from a completion. The prompt asks
// for plain text, but a fenced answer is still accepted.
func parseCondensed(raw string) (string, error) {
	text := strings.TrimSpace(stripFence(raw))
	if text == "" {
		return "", fmt.Errorf("empty response")
	}
	return text, nil
}

// stripFence removes a surrounding markdown code fence, if present.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// Drop the language tag on the opening fence line.
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	} else {
		return ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
