package ai

import "strings"

// Profile fixes the sampling parameters for a model family. Callers never
// choose temperature or output limits per request; the profile does.
type Profile struct {
	// Temperature to send. Long-context models only accept their default.
	Temperature float64
	// MaxTokens caps the completion length. Zero means no explicit cap.
	MaxTokens int
}

var (
	// longContextProfile is for model families that reject non-default
	// sampling parameters and manage their own output budget.
	longContextProfile = Profile{Temperature: 1, MaxTokens: 0}

	// standardProfile suits deterministic structured output.
	standardProfile = Profile{Temperature: 0.3, MaxTokens: 2048}
)

// longContextPrefixes marks model families served by longContextProfile.
var longContextPrefixes = []string{"gpt-5", "o1", "o3", "o4"}

// ProfileFor returns the parameter profile for a model identifier.
func ProfileFor(model string) Profile {
	model = strings.ToLower(strings.TrimSpace(model))
	for _, prefix := range longContextPrefixes {
		if strings.HasPrefix(model, prefix) {
			return longContextProfile
		}
	}
	return standardProfile
}
