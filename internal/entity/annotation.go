package entity

// SegmentKind distinguishes plain prose from annotated term references.
type SegmentKind string

const (
	SegmentText SegmentKind = "text"
	SegmentTerm SegmentKind = "term"
)

// AnnotationSegment is one span of parsed inline-annotated text: either a run
// of literal prose, or a vocabulary reference extracted from
// {{display|key|native?}} markup.
type AnnotationSegment struct {
	Kind SegmentKind `json:"type"`

	// Content is set for SegmentText.
	Content string `json:"content,omitempty"`

	// Display is what the reader sees, Key the lowercased dictionary lookup
	// key. NativeDisplay, when present, is the contextually inflected
	// native-script form and takes priority over a dictionary entry's
	// base-form native script.
	Display       string `json:"display,omitempty"`
	Key           string `json:"key,omitempty"`
	NativeDisplay string `json:"nativeDisplay,omitempty"`
}

// Text returns the reader-visible text of the segment.
func (s AnnotationSegment) Text() string {
	if s.Kind == SegmentTerm {
		return s.Display
	}
	return s.Content
}
