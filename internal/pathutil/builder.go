package pathutil

import (
	"strconv"
	"strings"
)

// Root is the JSON path of the document root.
const Root = "$"

// PathBuilder provides efficient incremental JSON path construction.
// Each pushed segment is stored already rendered; the full string is only
// materialized when String() is called.
type PathBuilder struct {
	segments []string
	length   int
}

// Push adds an object key segment. Identifier-like keys render as ".key",
// anything else as "['key']".
func (p *PathBuilder) Push(key string) {
	var seg string
	if isIdentifier(key) {
		seg = "." + key
	} else {
		seg = "['" + strings.ReplaceAll(key, "'", `\'`) + "']"
	}
	p.segments = append(p.segments, seg)
	p.length += len(seg)
}

// PushIndex adds an array index segment: "[0]", "[1]", etc.
func (p *PathBuilder) PushIndex(i int) {
	seg := "[" + strconv.Itoa(i) + "]"
	p.segments = append(p.segments, seg)
	p.length += len(seg)
}

// Pop removes the last segment.
func (p *PathBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	last := p.segments[len(p.segments)-1]
	p.segments = p.segments[:len(p.segments)-1]
	p.length -= len(last)
}

// Depth returns the number of segments below the root.
func (p *PathBuilder) Depth() int {
	return len(p.segments)
}

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
	p.length = 0
}

// String materializes the full path, always starting with "$".
func (p *PathBuilder) String() string {
	var b strings.Builder
	b.Grow(len(Root) + p.length)
	b.WriteString(Root)
	for _, seg := range p.segments {
		b.WriteString(seg)
	}
	return b.String()
}

func isIdentifier(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c == '_' || c == '$':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
