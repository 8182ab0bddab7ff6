// Package types defines the shared data model for the PromptDeck backend.
//
// Core Types:
//   - Segment: an ordered, independently editable block of prompt text
//   - SegmentDraft/SegmentPatch: AI proposal and partial-update shapes
//   - StateView: a consistent read snapshot of the working state
//   - SessionSnapshot: the durable subset of state persisted across restarts
//   - Credentials: the AI provider credential record
//
// Service Types:
//   - Service/Tool/Parameter: provider metadata for the service registry
//   - Result: uniform tool execution outcome
//   - Context: per-call execution context for providers
//
// Invariants:
//   - Segment.Order values within a collection are exactly 0..N-1, one per
//     segment, matching canonical sequence position
//   - StateView.DerivedOutput is always the included segments' content in
//     ascending order joined by a blank line; it is recomputed, never assigned
package types
