package domain

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// StepKind names the visual property a step animates.
type StepKind string

const (
	// StepReveal grows a visual from hidden to fully drawn.
	StepReveal StepKind = "reveal"
	// StepStroke changes the stroke color.
	StepStroke StepKind = "stroke"
	// StepLineWidth changes the stroke width.
	StepLineWidth StepKind = "line_width"
	// StepScale changes the uniform scale.
	StepScale StepKind = "scale"
)

// Step is a single animation of one property of one visual.
type Step struct {
	Kind     StepKind      `json:"kind"`
	Target   Handle        `json:"target"`
	Duration time.Duration `json:"duration"`
	Color    string        `json:"color,omitempty"`
	Value    float64       `json:"value,omitempty"`
}

func (s Step) String() string {
	switch s.Kind {
	case StepStroke:
		return fmt.Sprintf("%s %s -> %s over %s", s.Kind, s.Target, s.Color, s.Duration)
	case StepReveal:
		return fmt.Sprintf("%s %s over %s", s.Kind, s.Target, s.Duration)
	}
	return fmt.Sprintf("%s %s -> %g over %s", s.Kind, s.Target, s.Value, s.Duration)
}

// Reveal draws target from hidden to visible over d.
func Reveal(target Handle, d time.Duration) Step {
	return Step{Kind: StepReveal, Target: target, Duration: d, Value: 1}
}

// Stroke transitions the stroke color of target over d.
func Stroke(target Handle, color string, d time.Duration) Step {
	return Step{Kind: StepStroke, Target: target, Duration: d, Color: color}
}

// LineWidth transitions the stroke width of target over d.
func LineWidth(target Handle, width float64, d time.Duration) Step {
	return Step{Kind: StepLineWidth, Target: target, Duration: d, Value: width}
}

// Scale transitions the scale of target over d.
func Scale(target Handle, scale float64, d time.Duration) Step {
	return Step{Kind: StepScale, Target: target, Duration: d, Value: scale}
}

// Timing describes how the children of a group are started.
type Timing string

const (
	// TimingSequence starts each child when the previous one ends.
	TimingSequence Timing = "sequence"
	// TimingParallel starts every child at once.
	TimingParallel Timing = "parallel"
	// TimingStagger starts child i at i*Delay, letting them overlap.
	TimingStagger Timing = "stagger"
)

// Plan is either a single step (Step != nil) or a group of child plans.
// The zero Plan is an empty sequence.
type Plan struct {
	Step     *Step         `json:"step,omitempty"`
	Timing   Timing        `json:"timing,omitempty"`
	Delay    time.Duration `json:"delay,omitempty"`
	Children []Plan        `json:"children,omitempty"`
}

// Cue is a step scheduled at an absolute offset from the start of a plan.
type Cue struct {
	Start time.Duration `json:"start"`
	Step  Step          `json:"step"`
}

// Leaf wraps a step into a plan.
func Leaf(s Step) Plan {
	return Plan{Step: &s}
}

// Sequence runs children one after another.
func Sequence(children ...Plan) Plan {
	return Plan{Timing: TimingSequence, Children: children}
}

// Parallel runs children at the same time.
func Parallel(children ...Plan) Plan {
	return Plan{Timing: TimingParallel, Children: children}
}

// Stagger starts children delay apart without waiting for them to finish.
func Stagger(delay time.Duration, children ...Plan) Plan {
	return Plan{Timing: TimingStagger, Delay: delay, Children: children}
}

// Steps returns the plan's steps in declaration order.
func (p Plan) Steps() []Step {
	var out []Step
	p.each(func(s Step) {
		out = append(out, s)
	})
	return out
}

// Len returns the number of steps in the plan.
func (p Plan) Len() int {
	n := 0
	p.each(func(Step) { n++ })
	return n
}

// IsEmpty reports whether the plan contains no steps.
func (p Plan) IsEmpty() bool {
	return p.Len() == 0
}

func (p Plan) each(fn func(Step)) {
	if p.Step != nil {
		fn(*p.Step)
		return
	}
	for _, c := range p.Children {
		c.each(fn)
	}
}

// Duration returns the time from the start of the plan to the end of its last step.
func (p Plan) Duration() time.Duration {
	if p.Step != nil {
		return p.Step.Duration
	}
	var total time.Duration
	for i, c := range p.Children {
		d := c.Duration()
		switch p.Timing {
		case TimingParallel:
			total = max(total, d)
		case TimingStagger:
			total = max(total, time.Duration(i)*p.Delay+d)
		default:
			total += d
		}
	}
	return total
}

// Timeline flattens the plan into cues ordered by start time.
// Cues starting together keep their declaration order.
func (p Plan) Timeline() []Cue {
	var cues []Cue
	p.schedule(0, &cues)
	slices.SortStableFunc(cues, func(a, b Cue) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return cues
}

func (p Plan) schedule(at time.Duration, cues *[]Cue) {
	if p.Step != nil {
		*cues = append(*cues, Cue{Start: at, Step: *p.Step})
		return
	}
	offset := at
	for i, c := range p.Children {
		switch p.Timing {
		case TimingParallel:
			c.schedule(at, cues)
		case TimingStagger:
			c.schedule(at+time.Duration(i)*p.Delay, cues)
		default:
			c.schedule(offset, cues)
			offset += c.Duration()
		}
	}
}

// Validate checks that every step targets a bound handle.
func (p Plan) Validate() error {
	var err error
	p.each(func(s Step) {
		if err == nil && !s.Target.Bound {
			err = fmt.Errorf("%s step: %w", s.Kind, ErrHandleUnbound)
		}
	})
	return err
}
