package issues

import (
	"strings"
	"sync"
)

// maxPooledBuilder bounds the capacity of builders kept for reuse.
const maxPooledBuilder = 4 << 10

var builders = sync.Pool{
	New: func() any { return new(strings.Builder) },
}

// render runs write against a pooled builder and returns what it wrote.
func render(write func(sb *strings.Builder)) string {
	sb := builders.Get().(*strings.Builder)
	sb.Reset()
	write(sb)
	s := sb.String()
	if sb.Cap() <= maxPooledBuilder {
		sb.Reset()
		builders.Put(sb)
	}
	return s
}
