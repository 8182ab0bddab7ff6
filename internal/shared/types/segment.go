package types

// Segment is one ordered block of the decomposed prompt.
//
// Editing and Expanded are transient UI flags: they travel over the API so the
// boundary layer can round-trip its view state, but they are excluded from
// session snapshots.
type Segment struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Order    int    `json:"order"`
	Included bool   `json:"is_included"`
	Editing  bool   `json:"is_editing"`
	Expanded bool   `json:"is_expanded"`
}

// SegmentDraft is a proposed segment as returned by the AI segmentize
// operation, before IDs and order are assigned.
type SegmentDraft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SegmentPatch carries a partial update for a single segment. Nil fields are
// left untouched.
type SegmentPatch struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Included *bool   `json:"is_included,omitempty"`
	Editing  *bool   `json:"is_editing,omitempty"`
	Expanded *bool   `json:"is_expanded,omitempty"`
}

// StateView is a copied, internally consistent snapshot of the working state,
// safe to serialize without further locking.
type StateView struct {
	OriginalPrompt string    `json:"original_prompt"`
	Segments       []Segment `json:"segments"`
	DerivedOutput  string    `json:"derived_output"`
	Loading        bool      `json:"is_loading"`
	Error          *string   `json:"error,omitempty"`
	Revision       uint64    `json:"revision"`
}
