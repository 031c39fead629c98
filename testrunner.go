package tidewalk

import (
	"encoding/json"
	"fmt"
)

// scriptStep is one entry of a JSON test script as written on disk.
type scriptStep struct {
	Action string `json:"action"`
	Key    string `json:"key,omitempty"`
	Label  string `json:"label,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// stepKind is the resolved action of a script step.
type stepKind uint8

const (
	stepPress stepKind = iota
	stepRelease
	stepTap
	stepWait
	stepScreenshot
)

var stepKinds = map[string]stepKind{
	"press":      stepPress,
	"release":    stepRelease,
	"tap":        stepTap,
	"wait":       stepWait,
	"screenshot": stepScreenshot,
}

// action is a script step with its key resolved.
type action struct {
	kind   stepKind
	key    Key
	label  string
	frames int
}

// TestRunner replays a key script against a Scene, one action per frame,
// and queues screenshots along the way. Attach it with SetTestRunner.
type TestRunner struct {
	actions []action
	next    int
	idle    int // frames still to sit out for a wait
	done    bool
}

// LoadTestScript parses a JSON test script of the form
//
//	{"steps":[{"action":"press","key":"right"},{"action":"wait","frames":30},
//	          {"action":"screenshot","label":"walked"}]}
//
// Actions are press, release, tap, wait and screenshot. Unknown actions and
// key names are rejected here rather than during playback.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	actions := make([]action, len(f.Steps))
	for i, st := range f.Steps {
		kind, ok := stepKinds[st.Action]
		if !ok {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		a := action{kind: kind, label: st.Label, frames: st.Frames}
		switch kind {
		case stepPress, stepRelease, stepTap:
			if a.key, ok = ParseKey(st.Key); !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown key %q", i, st.Key)
			}
		}
		actions[i] = a
	}
	return &TestRunner{actions: actions}, nil
}

// SetTestRunner attaches runner to the scene. Update steps it before
// consuming injected input.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether every action has run and its input was consumed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step runs at most one action per frame. Nothing advances while injected
// keys are still queued.
func (r *TestRunner) step(s *Scene) {
	if r.done || len(s.injectQueue) > 0 {
		return
	}
	if r.idle > 0 {
		r.idle--
		return
	}
	if r.next == len(r.actions) {
		r.done = true
		return
	}

	a := r.actions[r.next]
	r.next++
	switch a.kind {
	case stepPress:
		s.InjectPress(a.key)
	case stepRelease:
		s.InjectRelease(a.key)
	case stepTap:
		s.InjectTap(a.key)
	case stepScreenshot:
		s.Screenshot(a.label)
	case stepWait:
		// The current frame is the first one waited.
		r.idle = max(a.frames-1, 0)
	}

	r.done = r.next == len(r.actions) && r.idle == 0 && len(s.injectQueue) == 0
}
