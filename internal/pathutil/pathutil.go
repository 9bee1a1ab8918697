// Package pathutil provides JSONPath-style location strings for document
// tree traversal: "$" for the root, "$.spec.ports" for members,
// "$.items[3].name" for array elements.
package pathutil

import (
	"strconv"
	"strings"
	"sync"
)

const (
	defaultSegmentCap = 8  // Most documents nest fewer than 8 levels
	maxSegmentCap     = 64 // Don't pool excessively deep builders
)

var builderPool = sync.Pool{
	New: func() any {
		return &Builder{
			segments: make([]string, 0, defaultSegmentCap),
		}
	},
}

// Get retrieves a Builder from the pool, reset and ready to use.
func Get() *Builder {
	b := builderPool.Get().(*Builder)
	b.Reset()
	return b
}

// Put returns a Builder to the pool if not oversized.
func Put(b *Builder) {
	if b == nil || cap(b.segments) > maxSegmentCap {
		return // Let GC collect oversized builders
	}
	builderPool.Put(b)
}

// Builder provides incremental path construction with push/pop semantics,
// so a traversal only materializes a string when it records a finding.
type Builder struct {
	segments []string
	length   int // Pre-calculated length for String() allocation
}

// PushKey adds an object member segment.
func (b *Builder) PushKey(key string) {
	seg := "." + key
	b.segments = append(b.segments, seg)
	b.length += len(seg)
}

// PushIndex adds an array index segment: "[0]", "[1]", etc.
func (b *Builder) PushIndex(i int) {
	seg := "[" + strconv.Itoa(i) + "]"
	b.segments = append(b.segments, seg)
	b.length += len(seg)
}

// Pop removes the last segment.
func (b *Builder) Pop() {
	if len(b.segments) == 0 {
		return
	}
	last := b.segments[len(b.segments)-1]
	b.segments = b.segments[:len(b.segments)-1]
	b.length -= len(last)
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.segments = b.segments[:0]
	b.length = 0
}

// Depth returns the number of segments currently pushed.
func (b *Builder) Depth() int {
	return len(b.segments)
}

// String materializes the full path rooted at "$".
func (b *Builder) String() string {
	if len(b.segments) == 0 {
		return "$"
	}
	var sb strings.Builder
	sb.Grow(b.length + 1)
	sb.WriteByte('$')
	for _, seg := range b.segments {
		sb.WriteString(seg)
	}
	return sb.String()
}

// Join renders a path without a builder, for one-off call sites.
// Key segments are plain strings; index segments are ints.
func Join(segments ...any) string {
	b := Get()
	defer Put(b)
	for _, seg := range segments {
		switch v := seg.(type) {
		case string:
			b.PushKey(v)
		case int:
			b.PushIndex(v)
		}
	}
	return b.String()
}
