package panorama

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	Key     string  `json:"key,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Width   int     `json:"width,omitempty"`
	Height  int     `json:"height,omitempty"`
	Heading float64 `json:"heading,omitempty"`
	Seconds float32 `json:"seconds,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// ScriptTarget is a host a TestRunner can drive.
type ScriptTarget interface {
	Inject() *InjectedInput
	Screenshot(label string)
	Resize(width, height int)
	Panorama() *Panorama
}

// TestRunner sequences injected input, resizes and screenshots across
// frames for automated visual testing. Attach it to a Viewer or Headless
// host, or call Step once per frame before input is polled.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

var validActions = map[string]bool{
	"press": true, "move": true, "release": true, "drag": true, "key": true,
	"wait": true, "resize": true, "glide": true, "screenshot": true,
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !validActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "key" {
			if _, err := parseKey(st.Key); err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame.
func (r *TestRunner) Step(t ScriptTarget) {
	if r.done {
		return
	}
	in := t.Inject()
	// Wait for pending injections to drain before advancing.
	if in.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		t.Screenshot(st.Label)
	case "press":
		in.InjectPress(st.X)
	case "move":
		in.InjectMove(st.X)
	case "release":
		in.InjectRelease()
	case "drag":
		in.InjectDrag(st.FromX, st.ToX, st.Frames)
	case "key":
		k, _ := parseKey(st.Key)
		in.InjectKey(k)
	case "resize":
		t.Resize(st.Width, st.Height)
	case "glide":
		t.Panorama().GlideTo(st.Heading, st.Seconds, nil)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Pending() == 0 {
		r.done = true
	}
}

func parseKey(s string) (Key, error) {
	switch s {
	case "left":
		return KeyLeft, nil
	case "right":
		return KeyRight, nil
	default:
		return 0, fmt.Errorf("unknown key %q", s)
	}
}
