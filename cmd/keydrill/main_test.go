package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/keydrill/internal/config"
	"github.com/verte-zerg/keydrill/internal/keymap"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/practice"
)

func validConfig() model.Config {
	return model.Config{
		Mode:     "word",
		Width:    20,
		Tick:     20 * time.Millisecond,
		Trail:    20,
		Frontend: model.FrontendTUI,
	}
}

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(validConfig()); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	cases := []struct {
		name   string
		mutate func(*model.Config)
		want   string
	}{
		{"width", func(c *model.Config) { c.Width = 0 }, "--width"},
		{"duration", func(c *model.Config) { c.Duration = -time.Second }, "--duration"},
		{"tick", func(c *model.Config) { c.Tick = 0 }, "--tick"},
		{"trail", func(c *model.Config) { c.Trail = -2 }, "--trail"},
		{"frontend", func(c *model.Config) { c.Frontend = "gui" }, "--frontend"},
		{"nats pair", func(c *model.Config) {
			c.Frontend = model.FrontendPlain
			c.NatsURL = "nats://localhost:4222"
		}, "set together"},
		{"nats frontend", func(c *model.Config) {
			c.NatsURL = "nats://localhost:4222"
			c.NatsSubject = "keys"
		}, "--frontend plain"},
	}
	for _, c := range cases {
		cfg := validConfig()
		c.mutate(&cfg)
		err := validateConfig(cfg)
		if err == nil || !strings.Contains(err.Error(), c.want) {
			t.Fatalf("%s: expected error containing %q, got %v", c.name, c.want, err)
		}
	}
}

func TestParseDuration(t *testing.T) {
	for _, v := range []string{"", "0", " "} {
		d, err := parseDuration(v)
		if err != nil || d != 0 {
			t.Fatalf("%q: expected zero, got %v %v", v, d, err)
		}
	}
	d, err := parseDuration("1m30s")
	if err != nil || d != 90*time.Second {
		t.Fatalf("expected 90s, got %v %v", d, err)
	}
	if _, err := parseDuration("soon"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestResolveConfigDefaults(t *testing.T) {
	root := newRootCmd()
	if err := root.ParseFlags(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := resolveConfig()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Width != defaultWidth || cfg.Trail != defaultWidth {
		t.Fatalf("expected trail to follow width, got %+v", cfg)
	}
	if cfg.Tick != 20*time.Millisecond || cfg.Duration != 0 {
		t.Fatalf("unexpected timing %+v", cfg)
	}
	if cfg.Frontend != model.FrontendTUI || cfg.Mode != defaultMode {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if err := validateConfig(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestApplyConfigFlagWins(t *testing.T) {
	root := newRootCmd()
	if err := root.ParseFlags([]string{"--mode", "char"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	fileMode := "drill"
	fileWidth := 12
	var fileSeed int64 = 9
	applyPracticeConfig(root, config.PracticeConfig{Mode: &fileMode, Width: &fileWidth, Seed: &fileSeed})
	if practiceMode != "char" {
		t.Fatalf("flag should win, got %q", practiceMode)
	}
	if practiceWidth != 12 || practiceSeed != 9 {
		t.Fatalf("file values should apply, got width=%d seed=%d", practiceWidth, practiceSeed)
	}
}

func TestKeySetsLoadErrorHint(t *testing.T) {
	_, err := config.LoadKeySets(filepath.Join(t.TempDir(), "missing.toml"))
	msg := keySetsLoadError("/x/keysets.toml", err).Error()
	if !strings.Contains(msg, "Run: keydrill config") || !strings.Contains(msg, "/x/keysets.toml") {
		t.Fatalf("unexpected hint %q", msg)
	}
	msg = keySetsLoadError("/x/keysets.toml", config.ErrNoKeySets).Error()
	if strings.Contains(msg, "Run: keydrill config") {
		t.Fatalf("decode errors should not suggest creating the file: %q", msg)
	}
}

func TestEmptyPoolError(t *testing.T) {
	msg := emptyPoolError(keymap.KeySet{Name: "Digits"}, practice.WordChunk, "").Error()
	for _, want := range []string{practice.ErrEmptyPool.Error(), `"Digits"`, "built-in list", "--mode char"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}

func setupConfigHome(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if err := writeIfMissing(config.DefaultKeySetsPath(), config.DefaultKeySetsTemplate()); err != nil {
		t.Fatalf("write key sets: %v", err)
	}
}

func TestWriteIfMissingKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := writeIfMissing(path, "first"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := writeIfMissing(path, "second"); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "first" {
		t.Fatalf("expected original content, got %q %v", data, err)
	}
}

func TestDefaultConfigTemplateLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Practice.Mode != nil || cfg.Practice.Width != nil {
		t.Fatalf("template values should all be commented out")
	}
}

func TestKeySetsCmd(t *testing.T) {
	setupConfigHome(t)
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"keysets"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 || lines[0] != "[0] Home row (8 keys)" {
		t.Fatalf("unexpected listing:\n%s", out.String())
	}
}

func TestKeySetsCmdMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"keysets"})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "Run: keydrill config") {
		t.Fatalf("expected hint, got %v", err)
	}
}

func TestSelectKeySetByNameAndPrompt(t *testing.T) {
	setupConfigHome(t)
	set, err := selectKeySet("all letters", strings.NewReader(""), &bytes.Buffer{})
	if err != nil || set.Name != "All letters" {
		t.Fatalf("expected All letters, got %q %v", set.Name, err)
	}
	if _, err := selectKeySet("dvorak", strings.NewReader(""), &bytes.Buffer{}); err == nil {
		t.Fatalf("expected unknown key set error")
	}
	var out bytes.Buffer
	set, err = selectKeySet("", strings.NewReader("0\n"), &out)
	if err != nil || set.Name != "Home row" {
		t.Fatalf("expected Home row, got %q %v", set.Name, err)
	}
	if !strings.Contains(out.String(), "Select a practice set") {
		t.Fatalf("expected prompt, got %q", out.String())
	}
}

func TestWordsCmdWritesFile(t *testing.T) {
	setupConfigHome(t)
	out := filepath.Join(t.TempDir(), "lists", "home.txt")
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"words", "--keyset", "Home row", "--out", out})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	words := strings.Fields(string(data))
	if len(words) == 0 {
		t.Fatalf("expected words")
	}
	for _, w := range words {
		if strings.Trim(w, "asdfjkl;") != "" {
			t.Fatalf("word %q is not typeable on the home row", w)
		}
	}
}

func TestWordsCmdCustomList(t *testing.T) {
	setupConfigHome(t)
	list := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(list, []byte("dad\nquiz\nfall\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"words", "--keyset", "Home row", "--wordlist", list, "--out", ""})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.String() != "dad\nfall\n" {
		t.Fatalf("unexpected words %q", out.String())
	}
}

func TestLoadWordsHint(t *testing.T) {
	_, err := loadWords(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil || !strings.Contains(err.Error(), "built-in list") {
		t.Fatalf("expected hint, got %v", err)
	}
	words, err := loadWords("")
	if err != nil || len(words) == 0 {
		t.Fatalf("expected default words, got %d %v", len(words), err)
	}
}

func TestWriteWordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := writeWordList(path, []string{"ask", "lad"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "ask\nlad\n" {
		t.Fatalf("unexpected content %q %v", data, err)
	}
	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "wordlist-*.txt"))
	if len(matches) != 0 {
		t.Fatalf("temp files left behind: %v", matches)
	}
}

func TestPracticeRejectsBadMode(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--mode", "sprint"})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "--mode") {
		t.Fatalf("expected mode error, got %v", err)
	}
	if errors.Is(err, practice.ErrEmptyPool) {
		t.Fatalf("unexpected pool error")
	}
}
