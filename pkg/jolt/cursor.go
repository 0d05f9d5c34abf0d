package jolt

import (
	"fmt"
	"strings"
)

// outputPath tracks the dotted path of an in-progress write, purely for
// error messages. Adapted from the teacher's input-side tree.Cursor
// (Push/Pop/String) and repurposed to describe an output write location
// instead of an input lookup location.
type outputPath struct {
	segments []string
}

func (p *outputPath) pushKey(k string) { p.segments = append(p.segments, k) }

func (p *outputPath) pushIndex(i int) { p.segments = append(p.segments, fmt.Sprintf("[%d]", i)) }

func (p *outputPath) pushAppend() { p.segments = append(p.segments, "[]") }

func (p *outputPath) String() string {
	var sb strings.Builder
	for i, s := range p.segments {
		if i > 0 && !strings.HasPrefix(s, "[") {
			sb.WriteByte('.')
		}
		sb.WriteString(s)
	}
	return sb.String()
}
