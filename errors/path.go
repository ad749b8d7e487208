package errors

import (
	"fmt"
	"strings"
)

// Segment is one element of a Path: either a named field or an array index.
type Segment struct {
	key     string
	index   int
	indexed bool
}

// Key returns a Segment naming a field.
func Key(name string) Segment {
	return Segment{key: name}
}

// Index returns a Segment addressing an array element.
func Index(i int) Segment {
	return Segment{index: i, indexed: true}
}

// IsIndex reports whether the segment addresses an array element.
func (s Segment) IsIndex() bool {
	return s.indexed
}

// String returns the bare segment value without any path punctuation.
func (s Segment) String() string {
	if s.indexed {
		return fmt.Sprintf("%d", s.index)
	}
	return s.key
}

// Path is an ordered chain of field and index segments locating a value
// inside a message document. Segments are prepended as errors propagate
// outward, so the outermost caller contributes the first segment.
type Path struct {
	segments []Segment
}

// NewPath returns a Path made of the given segments in order.
func NewPath(segments ...Segment) Path {
	return Path{segments: segments}
}

// PushFront prepends a segment, making it the new outermost element.
func (p *Path) PushFront(segment Segment) {
	p.segments = append([]Segment{segment}, p.segments...)
}

// Segments returns a copy of the path's segments, outermost first.
func (p Path) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// IsEmpty reports whether the path has no segments.
func (p Path) IsEmpty() bool {
	return len(p.segments) == 0
}

// String renders the path in dotted notation with bracketed indices,
// e.g. "args.downstream_device.devices[0].device_id".
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p.segments {
		if seg.indexed {
			fmt.Fprintf(&b, "[%d]", seg.index)
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.key)
	}
	return b.String()
}
