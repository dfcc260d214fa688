package headless

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(`
steps:
  - ticks: 3
    keys: [right]
  - keys: [Right, JUMP]
  - ticks: 2
`))
	if err != nil {
		t.Fatalf("ParseScript() failed: %v", err)
	}
	if s.Len() != 6 {
		t.Fatalf("Len() = %d, expected 6", s.Len())
	}

	tests := []struct {
		tick  uint64
		right bool
		jump  bool
	}{
		{0, true, false},
		{2, true, false},
		{3, true, true},
		{4, false, false},
		{5, false, false},
		{6, false, false}, // Past the end
		{100, false, false},
	}

	for _, tc := range tests {
		f := s.Frame(tc.tick)
		if f.Has(core.ActionRight) != tc.right || f.Has(core.ActionJump) != tc.jump {
			t.Errorf("Frame(%d) = %v, expected right=%v jump=%v", tc.tick, f.Actions, tc.right, tc.jump)
		}
	}
}

func TestScriptLoop(t *testing.T) {
	s, err := ParseScript([]byte(`
loop: true
steps:
  - ticks: 2
    keys: [left]
  - ticks: 1
    keys: [jump]
`))
	if err != nil {
		t.Fatalf("ParseScript() failed: %v", err)
	}

	for tick := uint64(0); tick < 12; tick++ {
		f := s.Frame(tick)
		wantJump := tick%3 == 2
		if f.Has(core.ActionJump) != wantJump || f.Has(core.ActionLeft) == wantJump {
			t.Errorf("Frame(%d) = %v", tick, f.Actions)
		}
	}
}

func TestScriptFrameIsCopy(t *testing.T) {
	s, err := ParseScript([]byte("steps: [{ticks: 2, keys: [right]}]"))
	if err != nil {
		t.Fatalf("ParseScript() failed: %v", err)
	}

	f := s.Frame(0)
	f.Set(core.ActionQuit)
	if s.Frame(1).Has(core.ActionQuit) {
		t.Error("modifying a returned frame changed the script")
	}
}

func TestEmptyScriptIsIdle(t *testing.T) {
	s, err := ParseScript([]byte("loop: true\n"))
	if err != nil {
		t.Fatalf("ParseScript() failed: %v", err)
	}
	if s.Len() != 0 || len(s.Frame(0).Actions) != 0 {
		t.Error("empty script should be idle")
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "steps: [{keys: [fly]}]"},
		{"negative ticks", "steps: [{ticks: -1}]"},
		{"unknown field", "steps: [{tick: 3}]"},
		{"not yaml", "steps: [unclosed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tc.data))
			if !errors.Is(err, ErrScript) {
				t.Errorf("ParseScript() error = %v, expected ErrScript", err)
			}
		})
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.yaml")
	if err := os.WriteFile(path, []byte("steps: [{ticks: 5, keys: [right, sprint]}]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript() failed: %v", err)
	}
	if s.Len() != 5 || !s.Frame(4).Has(core.ActionSprint) {
		t.Errorf("unexpected script: len %d", s.Len())
	}

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadScript(missing) error = %v, expected os.ErrNotExist", err)
	}
}
