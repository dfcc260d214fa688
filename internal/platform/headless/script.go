package headless

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// ErrScript is wrapped by every input script parse error.
var ErrScript = errors.New("headless: invalid input script")

// YAMLScript is the file format of an input script.
//
//	loop: false
//	steps:
//	  - ticks: 40
//	    keys: [right]
//	  - keys: [right, jump]
//	  - ticks: 20
type YAMLScript struct {
	Loop  bool       `yaml:"loop"`
	Steps []YAMLStep `yaml:"steps"`
}

// YAMLStep holds a set of keys for a number of ticks.
// Ticks defaults to 1 and an empty key list means idle.
type YAMLStep struct {
	Ticks int      `yaml:"ticks"`
	Keys  []string `yaml:"keys"`
}

type scriptStep struct {
	until uint64 // First tick after this step
	frame core.InputFrame
}

// ScriptedInput replays a fixed sequence of input frames.
// Past the end it is idle, or starts over when looping.
type ScriptedInput struct {
	steps []scriptStep
	total uint64
	loop  bool
}

// LoadScript reads an input script from a YAML file.
func LoadScript(path string) (*ScriptedInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script %s: %w", path, err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("parsing script %s: %w", path, err)
	}
	return s, nil
}

// ParseScript parses an input script.
func ParseScript(data []byte) (*ScriptedInput, error) {
	var ys YAMLScript
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ys); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrScript, err)
	}

	s := &ScriptedInput{loop: ys.Loop}
	for i, step := range ys.Steps {
		ticks := step.Ticks
		if ticks < 0 {
			return nil, fmt.Errorf("%w: step %d: negative ticks %d", ErrScript, i, ticks)
		}
		if ticks == 0 {
			ticks = 1
		}

		frame := core.NewInputFrame()
		for _, name := range step.Keys {
			a, err := core.ParseAction(name)
			if err != nil {
				return nil, fmt.Errorf("%w: step %d: %w", ErrScript, i, err)
			}
			frame.Set(a)
		}

		s.total += uint64(ticks) //#nosec G115 -- ticks is positive
		s.steps = append(s.steps, scriptStep{until: s.total, frame: frame})
	}
	return s, nil
}

// Frame returns the scripted input for a tick.
func (s *ScriptedInput) Frame(tick uint64) core.InputFrame {
	if s.total == 0 {
		return core.NewInputFrame()
	}
	if tick >= s.total {
		if !s.loop {
			return core.NewInputFrame()
		}
		tick %= s.total
	}

	i := sort.Search(len(s.steps), func(i int) bool {
		return s.steps[i].until > tick
	})
	return s.steps[i].frame.Clone()
}

// Len returns the number of ticks one pass of the script covers.
func (s *ScriptedInput) Len() uint64 {
	return s.total
}
