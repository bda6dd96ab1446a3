package keymap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeySet is a named, finalized key map offered for selection.
type KeySet struct {
	Name string
	Keys KeyMap
}

var (
	optionStyle = lipgloss.NewStyle().Bold(true)
	rejectStyle = lipgloss.NewStyle().Bold(true)
)

// Find returns the set called name.
func Find(sets []KeySet, name string) (KeySet, error) {
	for _, s := range sets {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	names := make([]string, len(sets))
	for i, s := range sets {
		names[i] = s.Name
	}
	return KeySet{}, fmt.Errorf("unknown key set %q (available: %s)", name, strings.Join(names, ", "))
}

// Prompt lists sets on out and reads an index from in until a valid one is
// entered. Invalid input prints a rejection and asks again; it never picks a
// default. Running out of input is an error.
func Prompt(in io.Reader, out io.Writer, sets []KeySet) (KeySet, error) {
	if len(sets) == 0 {
		return KeySet{}, errors.New("no key sets to choose from")
	}
	options := make([]string, len(sets))
	for i, s := range sets {
		options[i] = fmt.Sprintf("%s %s", optionStyle.Render(fmt.Sprintf("[%d]", i)), s.Name)
	}
	reader := bufio.NewReader(in)
	for {
		if _, err := fmt.Fprintf(out, "Practice Sets\n%s\n\nSelect a practice set: ", strings.Join(options, "\n")); err != nil {
			return KeySet{}, err
		}
		line, err := reader.ReadString('\n')
		if idx, ok := parseIndex(line, len(sets)); ok {
			return sets[idx], nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return KeySet{}, errors.New("no practice set selected")
			}
			return KeySet{}, fmt.Errorf("failed to read selection: %w", err)
		}
		if _, err := fmt.Fprintf(out, "\n%s\n\n", rejectStyle.Render("Not a valid selection")); err != nil {
			return KeySet{}, err
		}
	}
}

func parseIndex(line string, n int) (int, bool) {
	idx, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}
