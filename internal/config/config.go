package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Scene is the declarative description of an animation run.
//
//	name: bst
//	origin: {x: 0, y: -400}
//	horizontal_unit: 300
//	vertical_unit: 200
//	values: [8, 3, 10, 1, 6, 4, 7, 14, 13, 20]
//	order: pre
//	stagger: 100ms
//	animate: [0, 2]
type Scene struct {
	Name        string `mapstructure:"name"`
	tree.Config `mapstructure:",squash"`

	// Values are inserted silently, then revealed in Order.
	Values  []float64     `mapstructure:"values"`
	Order   domain.Order  `mapstructure:"order"`
	Stagger time.Duration `mapstructure:"stagger"`

	// Animate lists values inserted one at a time with descent cues.
	Animate []float64 `mapstructure:"animate"`

	// Highlight narrates a pre-order highlight walk at the end of the scene.
	Highlight bool `mapstructure:"highlight"`

	Theme domain.Theme `mapstructure:"theme"`
}

// Default returns the reference scene.
func Default() Scene {
	return Scene{
		Name:    "bst",
		Config:  tree.DefaultConfig(),
		Values:  []float64{8, 3, 10, 1, 6, 4, 7, 14, 13, 20},
		Order:   domain.PreOrder,
		Stagger: 100 * time.Millisecond,
		Animate: []float64{0, 2},
		Theme:   domain.DefaultTheme(),
	}
}

// Load reads a YAML scene file. Keys absent from the file keep their Default values.
func Load(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("read scene: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML scene document.
func Parse(data []byte) (Scene, error) {
	raw := make(map[string]any)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Scene{}, fmt.Errorf("parse scene yaml: %w", err)
	}
	return Decode(raw)
}

// Decode overlays raw onto the default scene and validates the result.
// Durations are written as Go duration strings ("250ms") and orders as "pre", "in" or "post".
func Decode(raw map[string]any) (Scene, error) {
	s := Default()
	// Lists from the document replace the defaults instead of overlaying them element-wise.
	if _, ok := raw["values"]; ok {
		s.Values = nil
	}
	if _, ok := raw["animate"]; ok {
		s.Animate = nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return Scene{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Scene{}, fmt.Errorf("decode scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// Validate reports every invalid field at once.
func (s Scene) Validate() error {
	var errs FieldErrors
	check := func(ok bool, field, reason string, value any) {
		if !ok {
			errs = append(errs, &FieldError{Field: field, Reason: reason, Value: value})
		}
	}

	check(finite(s.Origin.X) && finite(s.Origin.Y), "origin", "must be finite", s.Origin)
	check(finite(s.HorizontalUnit) && s.HorizontalUnit > 0, "horizontal_unit", "must be a positive number", s.HorizontalUnit)
	check(finite(s.VerticalUnit) && s.VerticalUnit > 0, "vertical_unit", "must be a positive number", s.VerticalUnit)
	check(s.Stagger >= 0, "stagger", "must not be negative", s.Stagger)
	check(s.Theme.NodeRadius > 0, "theme.node_radius", "must be positive", s.Theme.NodeRadius)
	for i, v := range s.Values {
		check(finite(v), fmt.Sprintf("values[%d]", i), "must be a finite number", v)
	}
	for i, v := range s.Animate {
		check(finite(v), fmt.Sprintf("animate[%d]", i), "must be a finite number", v)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
