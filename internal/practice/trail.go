package practice

// Trail keeps the most recently typed characters up to a fixed capacity.
type Trail struct {
	chars    []rune
	capacity int
}

// NewTrail returns a trail holding at most capacity characters.
func NewTrail(capacity int) *Trail {
	if capacity < 0 {
		capacity = 0
	}
	return &Trail{chars: make([]rune, 0, capacity), capacity: capacity}
}

// Add appends r, dropping the oldest character when full.
func (t *Trail) Add(r rune) {
	if t.capacity == 0 {
		return
	}
	if len(t.chars) == t.capacity {
		copy(t.chars, t.chars[1:])
		t.chars = t.chars[:len(t.chars)-1]
	}
	t.chars = append(t.chars, r)
}

// Cap returns the capacity.
func (t *Trail) Cap() int {
	return t.capacity
}

func (t *Trail) String() string {
	return string(t.chars)
}
