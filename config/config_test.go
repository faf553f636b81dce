package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
prompt: "lox> "
trace: debug
isolate_statements: true
max_call_depth: 200
`))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Prompt != "lox> " {
		t.Errorf("prompt = %q", cfg.Prompt)
	}

	if cfg.Trace != "debug" {
		t.Errorf("trace = %q", cfg.Trace)
	}

	if !cfg.IsolateStatements {
		t.Error("isolate_statements not set")
	}

	if cfg.MaxCallDepth != 200 {
		t.Errorf("max_call_depth = %d", cfg.MaxCallDepth)
	}

	if cfg.History != DefaultHistory {
		t.Errorf("history = %q, want default", cfg.History)
	}
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}

	if *cfg != *Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":  "colour: red\n",
		"bad trace":    "trace: loud\n",
		"bad depth":    "max_call_depth: 0\n",
		"invalid yaml": "prompt: [\n",
		"wrong type":   "isolate_statements: maybe\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(doc)); err == nil {
				t.Errorf("expected an error for %q", doc)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.yml")
	cfg, err := Load(missing)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Path != missing || cfg.Prompt != DefaultPrompt {
		t.Errorf("got %+v, want defaults", cfg)
	}

	path := filepath.Join(dir, "loxwalk.yml")
	if err := os.WriteFile(path, []byte("history: /tmp/h\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.HistoryPath() != "/tmp/h" {
		t.Errorf("history = %q", cfg.HistoryPath())
	}
}

func TestHistoryPathExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	cfg := Default()
	if got, want := cfg.HistoryPath(), filepath.Join(home, ".loxwalk_history"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
