package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/keydrill/internal/keymap"
)

// ErrNoKeySets is returned when a key-set file defines no sets.
var ErrNoKeySets = errors.New("no key sets defined")

type keySetFile struct {
	KeySets []keySetEntry `toml:"keyset"`
}

type keySetEntry struct {
	Name string                   `toml:"name"`
	Keys map[string]keymap.Finger `toml:"keys"`
}

// LoadKeySets reads the ordered key sets from path. Unlike the config file,
// a missing key-set file is an error.
func LoadKeySets(path string) ([]keymap.KeySet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only key sets.
			_ = cerr
		}
	}()
	return DecodeKeySets(file)
}

// DecodeKeySets parses key sets from TOML.
func DecodeKeySets(r io.Reader) ([]keymap.KeySet, error) {
	var doc keySetFile
	meta, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode key sets: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown key-set fields: %s", strings.Join(keys, ", "))
	}
	if len(doc.KeySets) == 0 {
		return nil, ErrNoKeySets
	}
	sets := make([]keymap.KeySet, 0, len(doc.KeySets))
	for i, entry := range doc.KeySets {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("key set %d has no name", i)
		}
		km, err := keymap.FromStrings(entry.Keys)
		if err != nil {
			return nil, fmt.Errorf("key set %q: %w", name, err)
		}
		sets = append(sets, keymap.KeySet{Name: name, Keys: km})
	}
	return sets, nil
}

// DefaultKeySetsTemplate returns the key sets written by `keydrill config`.
func DefaultKeySetsTemplate() string {
	return `# keydrill key sets
# Each [[keyset]] is offered at startup in file order. Keys are single
# characters; fingers are left_pinky, left_ring, left_middle, left_index,
# right_index, right_middle, right_ring, right_pinky.

[[keyset]]
name = "Home row"
[keyset.keys]
a = "left_pinky"
s = "left_ring"
d = "left_middle"
f = "left_index"
j = "right_index"
k = "right_middle"
l = "right_ring"
";" = "right_pinky"

[[keyset]]
name = "Home row with g and h"
[keyset.keys]
a = "left_pinky"
s = "left_ring"
d = "left_middle"
f = "left_index"
g = "left_index"
h = "right_index"
j = "right_index"
k = "right_middle"
l = "right_ring"
";" = "right_pinky"

[[keyset]]
name = "Home and top rows"
[keyset.keys]
q = "left_pinky"
a = "left_pinky"
w = "left_ring"
s = "left_ring"
e = "left_middle"
d = "left_middle"
r = "left_index"
t = "left_index"
f = "left_index"
g = "left_index"
y = "right_index"
u = "right_index"
h = "right_index"
j = "right_index"
i = "right_middle"
k = "right_middle"
o = "right_ring"
l = "right_ring"
p = "right_pinky"
";" = "right_pinky"

[[keyset]]
name = "All letters"
[keyset.keys]
q = "left_pinky"
a = "left_pinky"
z = "left_pinky"
w = "left_ring"
s = "left_ring"
x = "left_ring"
e = "left_middle"
d = "left_middle"
c = "left_middle"
r = "left_index"
t = "left_index"
f = "left_index"
g = "left_index"
v = "left_index"
b = "left_index"
y = "right_index"
u = "right_index"
h = "right_index"
j = "right_index"
n = "right_index"
m = "right_index"
i = "right_middle"
k = "right_middle"
"," = "right_middle"
o = "right_ring"
l = "right_ring"
"." = "right_ring"
p = "right_pinky"
";" = "right_pinky"
`
}
