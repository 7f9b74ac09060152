package pathutil

import (
	"fmt"
	"testing"
)

func BenchmarkPathBuilder_DeepPointer(b *testing.B) {
	b.Run("PathBuilder", func(b *testing.B) {
		for b.Loop() {
			p := Get()
			p.Push("paths")
			p.Push("/pets/{id}")
			p.Push("get")
			p.Push("responses")
			p.Push("200")
			p.Push("schema")
			p.Push("properties")
			p.Push("name")
			_ = p.String()
			Put(p)
		}
	})

	b.Run("FmtSprintf", func(b *testing.B) {
		for b.Loop() {
			path := ""
			for _, seg := range []string{"paths", "~1pets~1{id}", "get", "responses", "200", "schema", "properties", "name"} {
				path = fmt.Sprintf("%s/%s", path, seg)
			}
			_ = path
		}
	})
}

func BenchmarkPathBuilder_NoStringCall(b *testing.B) {
	for b.Loop() {
		p := Get()
		for j := 0; j < 8; j++ {
			p.Push("segment")
		}
		for j := 0; j < 8; j++ {
			p.Pop()
		}
		Put(p)
	}
}
