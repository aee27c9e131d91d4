package domain

import "strconv"

// Invocation is one fully-specified trainer command line for a single point
// of the grid. It is created, executed and discarded; the only retained
// result is the RunRecord written by the engine.
type Invocation struct {
	// Index is the position of this invocation in the deterministic
	// enumeration order of the grid (0-based).
	Index int `json:"index"`

	// Name is the generated experiment name identifying the axis values
	// that produced this run.
	Name string `json:"name"`

	// Values maps axis name to the value selected for this point.
	Values map[string]string `json:"values"`

	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// Invocation materializes the command for one grid point:
// baseline flags unconditionally included, then one flag per axis set to the
// value of this tuple, with the vis backend and dataparser trailing — the
// exact shape of the original launch scripts:
//
//	ns-train <preset> --experiment-name <name> --data <path> \
//	  --pipeline.model.<param> <value> ... --vis <backend> <dataparser>
func (s *Sweep) Invocation(point GridPoint, index int) Invocation {
	name := s.ExperimentName(point)

	args := []string{s.Preset, "--experiment-name", name}
	if s.Data != "" {
		args = append(args, "--data", s.Data)
	}
	for _, f := range s.Baseline {
		args = append(args, s.baselineFlag(f.Name), f.Value)
	}

	values := make(map[string]string, len(point))
	for i, av := range point {
		values[av.Axis] = av.Value
		args = append(args, s.Axes[i].flagName(s.FlagPrefix), av.Value)
	}

	if s.Vis != "" {
		args = append(args, "--vis", s.Vis)
	}
	if s.Dataparser != "" {
		args = append(args, s.Dataparser)
	}

	inv := Invocation{
		Index:   index,
		Name:    name,
		Values:  values,
		Command: s.Trainer,
		Args:    args,
		Env:     map[string]string{},
	}
	return inv.Pin(s.DeviceVar, s.Devices[0])
}

// Pin returns a copy of the invocation with the device-selection variable set.
// The engine re-pins invocations when dispatching to per-device workers.
func (inv Invocation) Pin(deviceVar string, device int) Invocation {
	env := make(map[string]string, len(inv.Env))
	for k, v := range inv.Env {
		env[k] = v
	}
	env[deviceVar] = strconv.Itoa(device)
	inv.Env = env
	return inv
}
