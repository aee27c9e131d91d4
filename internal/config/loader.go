// Package config loads sweep definitions from YAML files.
//
// The file is first parsed into loose maps with yaml.v3, then decoded into
// the typed model with mapstructure so scalar axis values (ints, floats,
// bools) coerce to the canonical strings the trainer CLI expects.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/voxfield/nsweep/pkg/domain"
)

// fileModel mirrors the YAML surface of a sweep file.
type fileModel struct {
	Name       string `mapstructure:"name"`
	Trainer    string `mapstructure:"trainer"`
	Preset     string `mapstructure:"preset"`
	Data       string `mapstructure:"data"`
	Vis        string `mapstructure:"vis"`
	Dataparser string `mapstructure:"dataparser"`

	Delimiter  string `mapstructure:"delimiter"`
	FlagPrefix string `mapstructure:"flag_prefix"`

	DeviceVar string `mapstructure:"device_var"`
	Device    *int   `mapstructure:"device"`
	Devices   []int  `mapstructure:"devices"`

	Baseline []domain.Flag `mapstructure:"baseline"`
	Axes     []domain.Axis `mapstructure:"axes"`

	OnFailure  string `mapstructure:"on_failure"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// Load reads a sweep file and returns the validated domain model.
func Load(path string) (*domain.Sweep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sweep file: %w", err)
	}
	return Parse(data)
}

// Parse decodes sweep YAML and returns the validated domain model.
func Parse(data []byte) (*domain.Sweep, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse sweep yaml: %w", err)
	}

	var model fileModel
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &model,
		DecodeHook:       scalarToStringHook(),
		WeaklyTypedInput: false,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid sweep file: %w", err)
	}

	sweep := model.toDomain()
	if err := sweep.Validate(); err != nil {
		return nil, err
	}
	return sweep, nil
}

// toDomain applies defaults on top of the declared fields.
func (m fileModel) toDomain() *domain.Sweep {
	s := domain.NewSweep(m.Name)
	if m.Trainer != "" {
		s.Trainer = m.Trainer
	}
	if m.Preset != "" {
		s.Preset = m.Preset
	}
	s.Data = m.Data
	s.Vis = m.Vis
	s.Dataparser = m.Dataparser
	if m.Delimiter != "" {
		s.Delimiter = m.Delimiter
	}
	if m.FlagPrefix != "" {
		s.FlagPrefix = m.FlagPrefix
	}
	if m.DeviceVar != "" {
		s.DeviceVar = m.DeviceVar
	}
	switch {
	case len(m.Devices) > 0:
		s.Devices = m.Devices
	case m.Device != nil:
		s.Devices = []int{*m.Device}
	}
	s.Baseline = m.Baseline
	s.Axes = m.Axes
	if m.OnFailure != "" {
		s.Policy = domain.FailurePolicy(m.OnFailure)
	}
	s.MaxRetries = m.MaxRetries
	return s
}

// scalarToStringHook renders YAML scalars destined for string fields
// (axis values, baseline values) in their canonical CLI form, so
// `values: [64, 128]` and `values: ["64", "128"]` mean the same sweep.
func scalarToStringHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to.Kind() != reflect.String {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return v, nil
		case bool:
			return strconv.FormatBool(v), nil
		case int:
			return strconv.Itoa(v), nil
		case int64:
			return strconv.FormatInt(v, 10), nil
		case uint64:
			return strconv.FormatUint(v, 10), nil
		case float64:
			return strconv.FormatFloat(v, 'g', -1, 64), nil
		default:
			return data, nil
		}
	}
}
