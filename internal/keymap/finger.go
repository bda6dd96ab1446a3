// Package keymap maps practice characters to the fingers that type them.
package keymap

import "fmt"

// Finger is one of the eight typing fingers. The zero value is None.
type Finger int

// Fingers in left-to-right keyboard order.
const (
	None Finger = iota
	LeftPinky
	LeftRing
	LeftMiddle
	LeftIndex
	RightIndex
	RightMiddle
	RightRing
	RightPinky
)

// Fingers lists every assignable finger, left to right.
var Fingers = []Finger{
	LeftPinky, LeftRing, LeftMiddle, LeftIndex,
	RightIndex, RightMiddle, RightRing, RightPinky,
}

var fingerNames = map[Finger]string{
	LeftPinky:   "left_pinky",
	LeftRing:    "left_ring",
	LeftMiddle:  "left_middle",
	LeftIndex:   "left_index",
	RightIndex:  "right_index",
	RightMiddle: "right_middle",
	RightRing:   "right_ring",
	RightPinky:  "right_pinky",
}

// String returns the snake_case name used in key-set files.
func (f Finger) String() string {
	if name, ok := fingerNames[f]; ok {
		return name
	}
	return "none"
}

// Label returns a short human label such as "L pinky".
func (f Finger) Label() string {
	switch f {
	case LeftPinky:
		return "L pinky"
	case LeftRing:
		return "L ring"
	case LeftMiddle:
		return "L middle"
	case LeftIndex:
		return "L index"
	case RightIndex:
		return "R index"
	case RightMiddle:
		return "R middle"
	case RightRing:
		return "R ring"
	case RightPinky:
		return "R pinky"
	default:
		return "-"
	}
}

// ParseFinger parses a snake_case finger name.
func ParseFinger(name string) (Finger, error) {
	for f, n := range fingerNames {
		if n == name {
			return f, nil
		}
	}
	return None, fmt.Errorf("unknown finger %q", name)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Finger) UnmarshalText(text []byte) error {
	parsed, err := ParseFinger(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (f Finger) MarshalText() ([]byte, error) {
	if f == None {
		return nil, fmt.Errorf("finger is not set")
	}
	return []byte(f.String()), nil
}

// Highlight reports whether candidate should be drawn as the selected finger.
// Nothing is highlighted when selected is None.
func Highlight(candidate, selected Finger) bool {
	return selected != None && candidate == selected
}
