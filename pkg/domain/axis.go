package domain

import "strings"

// Axis represents one swept hyperparameter: a name and its ordered candidate
// values. Values are kept as strings because they are only ever forwarded to
// the trainer's command line verbatim.
type Axis struct {
	Name   string   `json:"name" yaml:"name" mapstructure:"name"`
	Values []string `json:"values" yaml:"values" mapstructure:"values"`

	// Flag optionally overrides the generated flag for this axis.
	// When empty, the sweep's flag prefix + axis name is used
	// (e.g. "--pipeline.model.sigma").
	Flag string `json:"flag,omitempty" yaml:"flag,omitempty" mapstructure:"flag"`
}

// AxisValue is one (axis, value) pair of a grid point.
type AxisValue struct {
	Axis  string `json:"axis"`
	Value string `json:"value"`
}

// GridPoint is one tuple of the Cartesian product, in axis declaration order.
type GridPoint []AxisValue

// flagName resolves the command-line flag for this axis.
// Explicit overrides and names already carrying a "--" prefix win.
func (a Axis) flagName(prefix string) string {
	if a.Flag != "" {
		return a.Flag
	}
	if strings.HasPrefix(a.Name, "--") {
		return a.Name
	}
	return prefix + a.Name
}
