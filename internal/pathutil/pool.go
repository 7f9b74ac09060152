package pathutil

import "sync"

const (
	initialDepth   = 16  // pointer tokens preallocated per builder
	maxPooledDepth = 256 // builders grown past this are dropped
)

var builders = sync.Pool{
	New: func() any {
		return &PathBuilder{segments: make([]string, 0, initialDepth)}
	},
}

// Get returns an empty PathBuilder from the pool. Release it with Put once
// the walk that used it is finished.
func Get() *PathBuilder {
	p := builders.Get().(*PathBuilder)
	p.Reset()
	return p
}

// Put returns p to the pool. Builders that grew unusually deep are left for
// the garbage collector.
func Put(p *PathBuilder) {
	if p == nil || cap(p.segments) > maxPooledDepth {
		return
	}
	builders.Put(p)
}
