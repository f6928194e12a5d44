package matatu

import "math"

// Scroll is the background parallax offset. It has no gameplay effect.
type Scroll struct {
	offset float64
	step   float64
	height float64
}

// NewScroll creates a scroll that advances by step and wraps at height.
func NewScroll(step, height float64) Scroll {
	return Scroll{step: step, height: height}
}

// Advance moves the offset one tick forward, keeping it in [0, height).
func (s *Scroll) Advance() {
	s.offset = math.Mod(s.offset+s.step, s.height)
}

// Offset returns the current offset.
func (s Scroll) Offset() float64 {
	return s.offset
}
