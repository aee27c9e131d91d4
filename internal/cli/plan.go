package cli

import (
	"github.com/voxfield/nsweep"
	"github.com/voxfield/nsweep/internal/presentation/tui"
)

// PlanOptions contains the configuration for the Plan command.
type PlanOptions struct {
	File    string
	Devices []int
	Plain   bool
}

// ExecutePlan prints the ordered invocation list without launching anything.
func ExecutePlan(opts PlanOptions) error {
	sweep, err := loadSweep(opts.File, opts.Devices)
	if err != nil {
		return err
	}

	eng, err := nsweep.New(sweep)
	if err != nil {
		return err
	}

	printMarkdown(tui.PlanMarkdown(sweep, eng.Plan()), opts.Plain)
	return nil
}
