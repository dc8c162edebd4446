package domain

import "time"

// Theme holds the colors, sizes and timings used to build visuals and plans.
type Theme struct {
	Background string `json:"background" yaml:"background" mapstructure:"background"`
	Stroke     string `json:"stroke" yaml:"stroke" mapstructure:"stroke"`
	CueLess    string `json:"cue_less" yaml:"cue_less" mapstructure:"cue_less"`
	CueNotLess string `json:"cue_not_less" yaml:"cue_not_less" mapstructure:"cue_not_less"`
	Highlight  string `json:"highlight" yaml:"highlight" mapstructure:"highlight"`

	NodeRadius         float64 `json:"node_radius" yaml:"node_radius" mapstructure:"node_radius"`
	LineWidth          float64 `json:"line_width" yaml:"line_width" mapstructure:"line_width"`
	HighlightLineWidth float64 `json:"highlight_line_width" yaml:"highlight_line_width" mapstructure:"highlight_line_width"`
	HighlightScale     float64 `json:"highlight_scale" yaml:"highlight_scale" mapstructure:"highlight_scale"`

	CueDuration       time.Duration `json:"cue_duration" yaml:"cue_duration" mapstructure:"cue_duration"`
	RevealDuration    time.Duration `json:"reveal_duration" yaml:"reveal_duration" mapstructure:"reveal_duration"`
	RevealStagger     time.Duration `json:"reveal_stagger" yaml:"reveal_stagger" mapstructure:"reveal_stagger"`
	TraversalStagger  time.Duration `json:"traversal_stagger" yaml:"traversal_stagger" mapstructure:"traversal_stagger"`
	HighlightDuration time.Duration `json:"highlight_duration" yaml:"highlight_duration" mapstructure:"highlight_duration"`
}

// DefaultTheme returns the dark palette and timings of the reference scene.
func DefaultTheme() Theme {
	return Theme{
		Background: "#11111b",
		Stroke:     "#cdd6f4",
		CueLess:    "#a6e3a1",
		CueNotLess: "#fab387",
		Highlight:  "#f9e2af",

		NodeRadius:         50,
		LineWidth:          5,
		HighlightLineWidth: 8,
		HighlightScale:     1.2,

		CueDuration:       time.Second,
		RevealDuration:    time.Second,
		RevealStagger:     200 * time.Millisecond,
		TraversalStagger:  100 * time.Millisecond,
		HighlightDuration: 800 * time.Millisecond,
	}
}

// NodeShape describes a node visual. Renderers create it hidden.
type NodeShape struct {
	Position  Point   `json:"position"`
	Radius    float64 `json:"radius"`
	Label     string  `json:"label"`
	Stroke    string  `json:"stroke"`
	LineWidth float64 `json:"line_width"`
}

// EdgeShape describes a parent-to-child connector. Renderers create it with zero length.
type EdgeShape struct {
	From      Point   `json:"from"`
	To        Point   `json:"to"`
	Stroke    string  `json:"stroke"`
	LineWidth float64 `json:"line_width"`
}

// Anchors returns the left, right and top attachment points of a node drawn at pos.
func (t Theme) Anchors(pos Point) (left, right, top Point) {
	r := t.NodeRadius
	return pos.Sub(Pt(r, 0)), pos.Add(Pt(r, 0)), pos.Sub(Pt(0, r))
}
