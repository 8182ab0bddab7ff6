package prompt

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/promptdeck/promptdeck/internal/logging"
	"github.com/promptdeck/promptdeck/internal/shared/id"
	"github.com/promptdeck/promptdeck/internal/shared/types"
)

var (
	// ErrSegmentNotFound indicates an operation referenced an unknown segment ID.
	ErrSegmentNotFound = errors.New("segment not found")

	// ErrInvalidReorder indicates a reorder request that is not a permutation
	// of the current segment IDs.
	ErrInvalidReorder = errors.New("invalid reorder")

	// ErrBusy indicates an AI operation slot is already held.
	ErrBusy = errors.New("operation already in progress")

	// ErrStaleResult indicates a completion arrived for a superseded generation.
	ErrStaleResult = errors.New("stale operation result")
)

// Manager holds the prompt state and enforces its invariants.
type Manager struct {
	logger *logging.Logger

	mu         sync.RWMutex
	prompt     string
	segments   []types.Segment
	output     string
	lastError  *string
	busy       bool
	generation uint64
	revision   uint64
	subs       []chan struct{}
}

// NewManager creates an empty prompt store.
func NewManager(logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{logger: logger}
}

// Subscribe returns a channel that receives a signal after every state
// change. The channel has a buffer of one; coalesced notifications are
// expected and subscribers should re-read state rather than count signals.
func (m *Manager) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}

func (m *Manager) notifyLocked() {
	m.revision++
	for _, ch := range m.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// SetPrompt replaces the original prompt, clears all segments and any
// surfaced error, and invalidates outstanding AI results.
func (m *Manager) SetPrompt(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompt = text
	m.segments = nil
	m.lastError = nil
	m.generation++
	m.recomputeLocked()
	m.notifyLocked()
}

// ReplaceSegments discards the current collection and installs fresh
// segments built from drafts, in draft order, all included.
func (m *Manager) ReplaceSegments(drafts []types.SegmentDraft) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.replaceLocked(drafts)
	m.notifyLocked()
}

func (m *Manager) replaceLocked(drafts []types.SegmentDraft) {
	segments := make([]types.Segment, len(drafts))
	for i, d := range drafts {
		title := d.Title
		if title == "" {
			title = fmt.Sprintf("Segment %d", i+1)
		}
		segments[i] = types.Segment{
			ID:       id.NewSegmentID(),
			Title:    title,
			Content:  d.Content,
			Order:    i,
			Included: true,
		}
	}
	m.segments = segments
	m.recomputeLocked()
}

// UpdateSegment applies a partial update to one segment. Unknown IDs are
// surfaced as ErrSegmentNotFound rather than silently dropped.
func (m *Manager) UpdateSegment(segID string, patch types.SegmentPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexLocked(segID)
	if idx < 0 {
		return fmt.Errorf("update segment %s: %w", segID, ErrSegmentNotFound)
	}

	seg := &m.segments[idx]
	if patch.Title != nil {
		seg.Title = *patch.Title
	}
	if patch.Content != nil {
		seg.Content = *patch.Content
	}
	if patch.Included != nil {
		seg.Included = *patch.Included
	}
	if patch.Editing != nil {
		seg.Editing = *patch.Editing
	}
	if patch.Expanded != nil {
		seg.Expanded = *patch.Expanded
	}

	m.recomputeLocked()
	m.notifyLocked()
	return nil
}

// Reorder rearranges segments to match ids, which must contain every current
// segment ID exactly once. Order fields are reassigned to 0..N-1.
func (m *Manager) Reorder(ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(ids) != len(m.segments) {
		return fmt.Errorf("reorder: got %d ids, have %d segments: %w", len(ids), len(m.segments), ErrInvalidReorder)
	}

	byID := make(map[string]types.Segment, len(m.segments))
	for _, s := range m.segments {
		byID[s.ID] = s
	}

	next := make([]types.Segment, 0, len(ids))
	for i, segID := range ids {
		seg, ok := byID[segID]
		if !ok {
			return fmt.Errorf("reorder: unknown or duplicate id %s: %w", segID, ErrInvalidReorder)
		}
		delete(byID, segID)
		seg.Order = i
		next = append(next, seg)
	}

	m.segments = next
	m.recomputeLocked()
	m.notifyLocked()
	return nil
}

// DismissError clears the surfaced error, if any.
func (m *Manager) DismissError() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lastError == nil {
		return
	}
	m.lastError = nil
	m.notifyLocked()
}

// Begin acquires the single AI operation slot and returns the generation tag
// the eventual result must carry. ErrBusy if the slot is held.
func (m *Manager) Begin() (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.busy {
		return 0, ErrBusy
	}
	m.busy = true
	m.generation++
	gen := m.generation
	m.notifyLocked()
	return gen, nil
}

// ApplySegmentize releases the operation slot and, if gen is still current,
// replaces the segment collection with the segmentation result.
func (m *Manager) ApplySegmentize(gen uint64, drafts []types.SegmentDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.busy = false
	if gen != m.generation {
		m.logger.Debug("Discarding stale segmentize result",
			zap.Uint64("result_generation", gen),
			zap.Uint64("current_generation", m.generation))
		m.notifyLocked()
		return ErrStaleResult
	}

	m.replaceLocked(drafts)
	m.notifyLocked()
	return nil
}

// ApplyCondense releases the operation slot and, if gen is still current,
// replaces the target segment's content with the condensed text.
func (m *Manager) ApplyCondense(gen uint64, segID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.busy = false
	if gen != m.generation {
		m.logger.Debug("Discarding stale condense result",
			zap.String("segment_id", segID),
			zap.Uint64("result_generation", gen),
			zap.Uint64("current_generation", m.generation))
		m.notifyLocked()
		return ErrStaleResult
	}

	idx := m.indexLocked(segID)
	if idx < 0 {
		m.notifyLocked()
		return fmt.Errorf("condense segment %s: %w", segID, ErrSegmentNotFound)
	}

	m.segments[idx].Content = text
	m.recomputeLocked()
	m.notifyLocked()
	return nil
}

// Abort releases the operation slot without applying a result or surfacing
// an error, for operations abandoned before dispatch. Only the slot holder
// may call it.
func (m *Manager) Abort() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.busy = false
	m.notifyLocked()
}

// Fail releases the operation slot and surfaces message as the current error,
// replacing any prior one. Stale failures release the slot silently.
func (m *Manager) Fail(gen uint64, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.busy = false
	if gen == m.generation {
		m.lastError = &message
	}
	m.notifyLocked()
}

// View returns a consistent copy of the full state.
func (m *Manager) View() types.StateView {
	m.mu.RLock()
	defer m.mu.RUnlock()

	segments := make([]types.Segment, len(m.segments))
	copy(segments, m.segments)

	var errMsg *string
	if m.lastError != nil {
		msg := *m.lastError
		errMsg = &msg
	}

	return types.StateView{
		OriginalPrompt: m.prompt,
		Segments:       segments,
		DerivedOutput:  m.output,
		Loading:        m.busy,
		Error:          errMsg,
		Revision:       m.revision,
	}
}

// Prompt returns the current original prompt.
func (m *Manager) Prompt() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.prompt
}

// Output returns the current derived output.
func (m *Manager) Output() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.output
}

// Segment returns a copy of one segment by ID.
func (m *Manager) Segment(segID string) (types.Segment, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx := m.indexLocked(segID)
	if idx < 0 {
		return types.Segment{}, false
	}
	return m.segments[idx], true
}

// HasContent reports whether there is anything worth persisting.
func (m *Manager) HasContent() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.prompt != "" || len(m.segments) > 0
}

// Snapshot captures the durable state for persistence. Transient flags and
// the surfaced error are not part of a snapshot.
func (m *Manager) Snapshot() types.SessionSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	segments := make([]types.SegmentSnapshot, len(m.segments))
	for i, s := range m.segments {
		segments[i] = types.SegmentSnapshot{
			ID:       s.ID,
			Title:    s.Title,
			Content:  s.Content,
			Order:    s.Order,
			Included: s.Included,
		}
	}

	return types.SessionSnapshot{
		OriginalPrompt: m.prompt,
		Segments:       segments,
		SavedAt:        time.Now().UTC(),
	}
}

// Restore replaces the full state from a snapshot. Orders are normalized to
// 0..N-1 and outstanding AI results are invalidated.
func (m *Manager) Restore(snap types.SessionSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	segments := make([]types.Segment, len(snap.Segments))
	for i, s := range snap.Segments {
		segments[i] = types.Segment{
			ID:       s.ID,
			Title:    s.Title,
			Content:  s.Content,
			Order:    s.Order,
			Included: s.Included,
		}
	}
	sort.SliceStable(segments, func(i, j int) bool { return segments[i].Order < segments[j].Order })
	for i := range segments {
		segments[i].Order = i
	}

	m.prompt = snap.OriginalPrompt
	m.segments = segments
	m.lastError = nil
	m.generation++
	m.recomputeLocked()
	m.notifyLocked()
}

func (m *Manager) indexLocked(segID string) int {
	for i := range m.segments {
		if m.segments[i].ID == segID {
			return i
		}
	}
	return -1
}

func (m *Manager) recomputeLocked() {
	var b strings.Builder
	first := true
	for _, s := range m.segments {
		if !s.Included {
			continue
		}
		if !first {
			b.WriteString("\n\n")
		}
		b.WriteString(s.Content)
		first = false
	}
	m.output = b.String()
}
