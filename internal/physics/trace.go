package physics

import "github.com/san-kum/physim/internal/vec"

// Trace is a fixed-capacity ring of points; the oldest point is dropped
// once the ring is full.
type Trace struct {
	buf   []vec.Vec2
	start int
	n     int
}

func NewTrace(capacity int) *Trace {
	if capacity < 1 {
		capacity = 1
	}
	return &Trace{buf: make([]vec.Vec2, capacity)}
}

func (t *Trace) Push(p vec.Vec2) {
	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = p
		t.n++
		return
	}
	t.buf[t.start] = p
	t.start = (t.start + 1) % len(t.buf)
}

func (t *Trace) Len() int { return t.n }
func (t *Trace) Cap() int { return len(t.buf) }

func (t *Trace) Clear() {
	t.start, t.n = 0, 0
}

// Points returns the trace oldest first.
func (t *Trace) Points() []vec.Vec2 {
	out := make([]vec.Vec2, t.n)
	for i := 0; i < t.n; i++ {
		out[i] = t.buf[(t.start+i)%len(t.buf)]
	}
	return out
}
