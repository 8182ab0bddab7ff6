// Package prompt owns the working state: the original prompt, the ordered
// segment collection, and the derived output.
//
// Invariants:
//   - Segment order values are exactly 0..N-1, matching slice position
//   - The derived output is recomputed inside the same critical section as
//     the mutation that caused it; no stale read is observable after a
//     mutation returns
//   - Reorder input must be a permutation of the current segment IDs; a
//     mismatch is rejected without mutating anything
//
// AI operations run through a single-slot gate: Begin acquires the slot and
// returns a generation tag, Apply*/Fail release it. A result whose generation
// no longer matches current state is discarded rather than applied, so a
// prompt reset during an outstanding provider call can never be overwritten
// by that call's late result.
package prompt
