package domain

import (
	"fmt"
	"strings"
)

// FailurePolicy decides what happens to the sweep when a single run exits
// non-zero. The original shell loops ignored exit codes entirely, so
// PolicyContinue is the default; the policy is explicit configuration rather
// than an accident of the loop body.
type FailurePolicy string

const (
	// PolicyContinue logs the failure and moves on to the next combination.
	PolicyContinue FailurePolicy = "continue"

	// PolicyAbort stops the sweep at the first failed run.
	PolicyAbort FailurePolicy = "abort"

	// PolicyRetry re-launches a failed run up to MaxRetries extra attempts,
	// then continues with the next combination.
	PolicyRetry FailurePolicy = "retry"
)

// Flag is one fixed baseline key/value pair applied to every run.
// Order is preserved as declared, hence a slice instead of a map.
type Flag struct {
	Name  string `json:"name" yaml:"name" mapstructure:"name"`
	Value string `json:"value" yaml:"value" mapstructure:"value"`
}

// Default wiring for the external trainer. The trainer itself is a black box;
// only its CLI shape is known here.
const (
	DefaultTrainer    = "ns-train"
	DefaultPreset     = "gaussian-NeRF-bounded"
	DefaultFlagPrefix = "--pipeline.model."
	DefaultDeviceVar  = "CUDA_VISIBLE_DEVICES"
	DefaultDelimiter  = "_"
)

// Sweep is the full configuration for one hyperparameter sweep: the fixed
// baseline applied to every run plus one or more axes whose values are
// substituted per combination.
type Sweep struct {
	// Name is the experiment-name prefix. Axis values are appended to it,
	// separated by Delimiter, to form the per-run experiment name.
	Name string

	Trainer    string
	Preset     string
	Data       string
	Vis        string
	Dataparser string

	Delimiter  string
	FlagPrefix string

	// DeviceVar is the environment variable used to pin the GPU
	// (CUDA_VISIBLE_DEVICES by default).
	DeviceVar string

	// Devices lists the GPU indices available to the sweep. A single entry
	// reproduces the strictly serial behavior of one script pinned to one
	// card; multiple entries run one worker per device.
	Devices []int

	Baseline []Flag
	Axes     []Axis

	Policy     FailurePolicy
	MaxRetries int
}

// NewSweep returns a Sweep with the standard trainer wiring filled in.
func NewSweep(name string) *Sweep {
	return &Sweep{
		Name:       name,
		Trainer:    DefaultTrainer,
		Preset:     DefaultPreset,
		Delimiter:  DefaultDelimiter,
		FlagPrefix: DefaultFlagPrefix,
		DeviceVar:  DefaultDeviceVar,
		Devices:    []int{0},
		Policy:     PolicyContinue,
	}
}

// Validate checks the sweep for configuration mistakes that would otherwise
// surface as confusing trainer errors mid-sweep.
func (s *Sweep) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("sweep name is required")
	}
	if s.Trainer == "" {
		return fmt.Errorf("trainer command is required")
	}
	if len(s.Axes) == 0 {
		return fmt.Errorf("at least one axis is required")
	}
	seen := make(map[string]bool, len(s.Axes))
	for _, ax := range s.Axes {
		if ax.Name == "" {
			return fmt.Errorf("axis with empty name")
		}
		if seen[ax.Name] {
			return fmt.Errorf("duplicate axis %q", ax.Name)
		}
		seen[ax.Name] = true
		if len(ax.Values) == 0 {
			return fmt.Errorf("axis %q has no values", ax.Name)
		}
	}
	if len(s.Devices) == 0 {
		return fmt.Errorf("at least one device index is required")
	}
	for _, d := range s.Devices {
		if d < 0 {
			return fmt.Errorf("invalid device index %d", d)
		}
	}
	switch s.Policy {
	case PolicyContinue, PolicyAbort, PolicyRetry:
	default:
		return fmt.Errorf("unknown failure policy %q", s.Policy)
	}
	if s.Policy == PolicyRetry && s.MaxRetries < 1 {
		return fmt.Errorf("retry policy requires max_retries >= 1")
	}
	return nil
}

// ExperimentName builds the unique per-run name: prefix, then each axis value
// in axis order, joined by the delimiter. Given distinct value strings per
// axis, distinct tuples never collide.
func (s *Sweep) ExperimentName(point GridPoint) string {
	parts := make([]string, 0, len(point)+1)
	parts = append(parts, s.Name)
	for _, av := range point {
		parts = append(parts, av.Value)
	}
	return strings.Join(parts, s.Delimiter)
}

func (s *Sweep) baselineFlag(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}
	return s.FlagPrefix + name
}
