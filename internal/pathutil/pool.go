package pathutil

import "sync"

// Builders that grew deeper than this are dropped instead of pooled.
const maxPooledDepth = 128

var builders = sync.Pool{
	New: func() any { return &PathBuilder{segments: make([]string, 0, 16)} },
}

// Acquire returns an empty pooled PathBuilder. Call Release when done.
func Acquire() *PathBuilder {
	p := builders.Get().(*PathBuilder)
	p.Reset()
	return p
}

// Release hands p back to the pool. p must not be used afterwards.
// Release on a nil builder is a no-op.
func (p *PathBuilder) Release() {
	if p == nil || cap(p.segments) > maxPooledDepth {
		return
	}
	builders.Put(p)
}
