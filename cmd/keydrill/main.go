// Package main provides the CLI entrypoint for keydrill.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/keydrill/internal/config"
	"github.com/verte-zerg/keydrill/internal/keymap"
	"github.com/verte-zerg/keydrill/internal/keysource"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/practice"
	"github.com/verte-zerg/keydrill/internal/screen"
	"github.com/verte-zerg/keydrill/internal/stats"
	"github.com/verte-zerg/keydrill/internal/tui"
	"github.com/verte-zerg/keydrill/internal/wordlist"
)

const (
	defaultMode     = "word"
	defaultWidth    = 20
	defaultTick     = "20ms"
	defaultFrontend = string(model.FrontendTUI)
	defaultTrail    = -1
	defaultSubject  = "keydrill.keys"

	plotMinWidth = 60
	plotHeight   = 8
)

var (
	practiceKeySet      string
	practiceMode        string
	practiceWidth       int
	practiceWordList    string
	practiceDuration    string
	practiceTick        string
	practiceTrail       int
	practiceFrontend    string
	practiceSeed        int64
	practiceNatsURL     string
	practiceNatsSubject string

	wordsKeySet   string
	wordsWordList string
	wordsOut      string

	relayURL     string
	relaySubject string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keydrill",
		Short:         "Finger-placement typing drills",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceKeySet, "keyset", "", "key set name (default: prompt)")
	rootCmd.Flags().StringVar(&practiceMode, "mode", defaultMode, "practice mode: word, char or drill")
	rootCmd.Flags().IntVar(&practiceWidth, "width", defaultWidth, "characters of upcoming text shown")
	rootCmd.Flags().StringVar(&practiceWordList, "wordlist", "", "word list path (default: built-in list)")
	rootCmd.Flags().StringVar(&practiceDuration, "duration", "", "session time budget, e.g. 1m (default: unlimited)")
	rootCmd.Flags().StringVar(&practiceTick, "tick", defaultTick, "countdown refresh interval")
	rootCmd.Flags().IntVar(&practiceTrail, "trail", defaultTrail, "typed characters kept left of the pipe (default: width)")
	rootCmd.Flags().StringVar(&practiceFrontend, "frontend", defaultFrontend, "display: tui or plain")
	rootCmd.Flags().Int64Var(&practiceSeed, "seed", 0, "random seed (default: clock)")
	rootCmd.Flags().StringVar(&practiceNatsURL, "nats-url", "", "NATS server relaying key presses (plain frontend)")
	rootCmd.Flags().StringVar(&practiceNatsSubject, "nats-subject", "", "NATS subject carrying key presses")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newKeySetsCmd())
	rootCmd.AddCommand(newWordsCmd())
	rootCmd.AddCommand(newRelayCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyPracticeConfig(cmd, fileCfg.Practice)

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	mode, err := practice.ParseMode(cfg.Mode)
	if err != nil {
		return fmt.Errorf("--mode: %w", err)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("keydrill needs an interactive terminal")
	}
	set, err := selectKeySet(cfg.KeySet, os.Stdin, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	words, err := loadWords(cfg.WordList)
	if err != nil {
		return err
	}
	rnd := rand.New(rand.NewSource(cfg.SeedOr(time.Now().UnixNano())))
	sel, err := practice.NewSelector(set.Keys, mode, words, rnd)
	if err != nil {
		if errors.Is(err, practice.ErrEmptyPool) {
			return emptyPoolError(set, mode, cfg.WordList)
		}
		return err
	}
	window := practice.NewWindow(sel, cfg.Width)

	var session *practice.Session
	var runErr error
	switch cfg.Frontend {
	case model.FrontendPlain:
		session, runErr = runPlain(cmd, cfg, window)
	default:
		session, runErr = runTUI(cfg, window)
	}
	if session != nil {
		if err := renderReport(cmd.OutOrStdout(), session); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return runErr
}

func applyPracticeConfig(cmd *cobra.Command, file config.PracticeConfig) {
	applyStringConfig(cmd, "keyset", &practiceKeySet, file.KeySet)
	applyStringConfig(cmd, "mode", &practiceMode, file.Mode)
	applyIntConfig(cmd, "width", &practiceWidth, file.Width)
	applyStringConfig(cmd, "wordlist", &practiceWordList, file.WordList)
	applyStringConfig(cmd, "duration", &practiceDuration, file.Duration)
	applyStringConfig(cmd, "tick", &practiceTick, file.Tick)
	applyIntConfig(cmd, "trail", &practiceTrail, file.Trail)
	applyStringConfig(cmd, "frontend", &practiceFrontend, file.Frontend)
	applyInt64Config(cmd, "seed", &practiceSeed, file.Seed)
	applyStringConfig(cmd, "nats-url", &practiceNatsURL, file.NatsURL)
	applyStringConfig(cmd, "nats-subject", &practiceNatsSubject, file.NatsSubject)
}

func resolveConfig() (model.Config, error) {
	duration, err := parseDuration(practiceDuration)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid --duration value: %w", err)
	}
	tick, err := parseDuration(practiceTick)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid --tick value: %w", err)
	}
	trail := practiceTrail
	if trail == defaultTrail {
		trail = practiceWidth
	}
	return model.Config{
		KeySet:      practiceKeySet,
		Mode:        practiceMode,
		Width:       practiceWidth,
		WordList:    practiceWordList,
		Duration:    duration,
		Tick:        tick,
		Trail:       trail,
		Frontend:    model.Frontend(strings.ToLower(strings.TrimSpace(practiceFrontend))),
		Seed:        practiceSeed,
		NatsURL:     practiceNatsURL,
		NatsSubject: practiceNatsSubject,
	}, nil
}

// parseDuration treats an empty string and a bare "0" as zero.
func parseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "0" {
		return 0, nil
	}
	return time.ParseDuration(value)
}

func validateConfig(cfg model.Config) error {
	if cfg.Width < 1 {
		return fmt.Errorf("--width must be >= 1")
	}
	if cfg.Duration < 0 {
		return fmt.Errorf("--duration must be >= 0")
	}
	if cfg.Tick <= 0 {
		return fmt.Errorf("--tick must be > 0")
	}
	if cfg.Trail < 0 {
		return fmt.Errorf("--trail must be >= 0")
	}
	switch cfg.Frontend {
	case model.FrontendTUI, model.FrontendPlain:
	default:
		return fmt.Errorf("--frontend must be %q or %q", model.FrontendTUI, model.FrontendPlain)
	}
	if cfg.Relayed() {
		if cfg.NatsURL == "" || cfg.NatsSubject == "" {
			return fmt.Errorf("--nats-url and --nats-subject must be set together")
		}
		if cfg.Frontend != model.FrontendPlain {
			return fmt.Errorf("--nats-url requires --frontend plain")
		}
	}
	return nil
}

func selectKeySet(name string, in io.Reader, out io.Writer) (keymap.KeySet, error) {
	path := config.DefaultKeySetsPath()
	sets, err := config.LoadKeySets(path)
	if err != nil {
		return keymap.KeySet{}, keySetsLoadError(path, err)
	}
	if name != "" {
		set, err := keymap.Find(sets, name)
		if err != nil {
			return keymap.KeySet{}, fmt.Errorf("--keyset: %w", err)
		}
		return set, nil
	}
	return keymap.Prompt(in, out, sets)
}

func loadWords(path string) ([]string, error) {
	if path == "" {
		return wordlist.Default(), nil
	}
	words, err := wordlist.LoadWords(path)
	if err != nil {
		return nil, wordListLoadError(path, err)
	}
	return words, nil
}

func runTUI(cfg model.Config, window *practice.Window) (*practice.Session, error) {
	m := tui.NewModel(window, tui.Options{
		Budget:   cfg.Duration,
		Tick:     cfg.Tick,
		TrailLen: cfg.Trail,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	m.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to run TUI: %w", err)
	}
	return m.Session(), m.Err()
}

func runPlain(cmd *cobra.Command, cfg model.Config, window *practice.Window) (*practice.Session, error) {
	scr, err := screen.Open()
	if err != nil {
		return nil, err
	}
	var relay *keysource.Relay
	if cfg.Relayed() {
		relay, err = keysource.Subscribe(cfg.NatsURL, cfg.NatsSubject, scr.Keys(), scr.Errs())
		if err != nil {
			scr.Close()
			return nil, err
		}
	}
	session, runErr := scr.Run(cmd.Context(), window, screen.Options{
		Budget:   cfg.Duration,
		Tick:     cfg.Tick,
		TrailLen: cfg.Trail,
	})
	// The screen must be closed before relay errors go to stderr.
	scr.Close()
	if relay != nil {
		if cerr := relay.Close(); cerr != nil {
			logErrf("failed to close nats relay: %v\n", cerr)
		}
	}
	return session, runErr
}

func renderReport(w io.Writer, session *practice.Session) error {
	width := terminalWidth()
	opts := stats.ReportOptions{Width: width}
	if width >= plotMinWidth {
		opts.PlotHeight = plotHeight
	}
	return stats.RenderReport(w, stats.FromSession(session), opts)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeIfMissing(path, defaultConfigTemplate()); err != nil {
		return err
	}
	if err := writeIfMissing(config.DefaultKeySetsPath(), config.DefaultKeySetsTemplate()); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func writeIfMissing(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func newKeySetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keysets",
		Short: "List configured key sets",
		Args:  cobra.NoArgs,
		RunE:  runKeySetsCmd,
	}
}

func runKeySetsCmd(cmd *cobra.Command, _ []string) error {
	path := config.DefaultKeySetsPath()
	sets, err := config.LoadKeySets(path)
	if err != nil {
		return keySetsLoadError(path, err)
	}
	for i, set := range sets {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "[%d] %s (%d keys)\n", i, set.Name, set.Keys.Len()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "List words typeable with a key set",
		Args:  cobra.NoArgs,
		RunE:  runWordsCmd,
	}
	cmd.Flags().StringVar(&wordsKeySet, "keyset", "", "key set name (default: prompt)")
	cmd.Flags().StringVar(&wordsWordList, "wordlist", "", "word list path (default: built-in list)")
	cmd.Flags().StringVar(&wordsOut, "out", "", "write to this file instead of stdout")
	return cmd
}

func runWordsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "keyset", &wordsKeySet, fileCfg.Practice.KeySet)
	applyStringConfig(cmd, "wordlist", &wordsWordList, fileCfg.Practice.WordList)

	set, err := selectKeySet(wordsKeySet, cmd.InOrStdin(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	words, err := loadWords(wordsWordList)
	if err != nil {
		return err
	}
	words = wordlist.Filter(words, wordlist.FilterForKeyMap(set.Keys))
	if len(words) == 0 {
		return fmt.Errorf("no words can be typed with %q", set.Name)
	}
	if wordsOut == "" {
		w := bufio.NewWriter(cmd.OutOrStdout())
		for _, word := range words {
			if _, err := fmt.Fprintln(w, word); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		return w.Flush()
	}
	if err := writeWordList(wordsOut, words); err != nil {
		return fmt.Errorf("failed to write %s: %w", wordsOut, err)
	}
	logErrf("Wrote %d words to %s\n", len(words), wordsOut)
	return nil
}

func writeWordList(path string, words []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create word list dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "wordlist-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp word list: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, word := range words {
		if _, err := fmt.Fprintln(writer, word); err != nil {
			return fmt.Errorf("failed to write word list: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush word list: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close word list: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write word list: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# keydrill configuration
# Uncomment a value to enable it. CLI flags override config values.
# Key sets live next to this file in keysets.toml.

[practice]
# keyset = "Home row"       # Key set name; skips the selection prompt
# mode = %q               # word, char or drill
# width = %d                # Characters of upcoming text shown
# wordlist = ""             # Word list path (default: built-in list)
# duration = "1m"           # Session time budget (default: unlimited)
# tick = %q               # Countdown refresh interval
# trail = %d                # Typed characters kept left of the pipe
# frontend = %q            # tui or plain
# seed = 0                  # Random seed (0 = clock)
# nats-url = "nats://127.0.0.1:4222"  # Relay key presses (plain frontend)
# nats-subject = %q
`,
		defaultMode,
		defaultWidth,
		defaultTick,
		defaultWidth,
		defaultFrontend,
		defaultSubject,
	)
}

func keySetsLoadError(path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load key sets: %v", err),
		fmt.Sprintf("expected key sets at: %s", path),
	}
	if errors.Is(err, os.ErrNotExist) {
		lines = append(lines, "Run: keydrill config")
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func wordListLoadError(path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("expected word list at: %s", path),
		"Omit --wordlist to use the built-in list",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func emptyPoolError(set keymap.KeySet, mode practice.Mode, path string) error {
	source := "the built-in list"
	if path != "" {
		source = path
	}
	lines := []string{
		fmt.Sprintf("%v", practice.ErrEmptyPool),
		fmt.Sprintf("key set %q has no %s material in %s", set.Name, mode, source),
		"Try: keydrill --mode char",
		"List sets: keydrill keysets",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
