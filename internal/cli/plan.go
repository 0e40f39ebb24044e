package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"clocktree-go/errcode"
	"clocktree-go/freq"
	"clocktree-go/rcc"
	"clocktree-go/x/mathx"
)

// PlanOptions holds flags for the plan command.
type PlanOptions struct {
	WritesOnly bool
	Stall      []string
}

// PlanResult is the JSON payload of plan.
type PlanResult struct {
	Name       string       `json:"name"`
	SysClk     string       `json:"sysclk"`
	HCLK       string       `json:"hclk"`
	PCLK1      string       `json:"pclk1"`
	PCLK2      string       `json:"pclk2"`
	Latency    uint32       `json:"latency"`
	Steps      []string     `json:"steps"`
	Accesses   []AccessJSON `json:"accesses"`
	Violations []string     `json:"violations,omitempty"`
	Error      *Violation   `json:"error,omitempty"`
}

// AccessJSON is one register field access.
type AccessJSON struct {
	Op    string `json:"op"`
	Field string `json:"field"`
	Value uint32 `json:"value"`
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlanOptions{}

	cmd := &cobra.Command{
		Use:   "plan <clock.yaml>",
		Short: "Show the register sequence that activates a clock tree",
		Long: `Build the clock tree and activate it against a simulated RCC starting
from the reset state. Prints the resolved frequencies followed by every
register field read and write in order.

--stall freezes a status flag (PLLRDY, HSERDY, SWS, ...) to show how
activation fails when hardware does not respond.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.WritesOnly, "writes", "w", false, "show register writes only")
	cmd.Flags().StringSliceVar(&opts.Stall, "stall", nil, "status flag to freeze (repeatable)")

	return cmd
}

func runPlan(rootOpts *RootOptions, opts *PlanOptions, file string, cmd *cobra.Command) error {
	f := newFormatter(rootOpts, cmd)
	log := newLogger(rootOpts, f.ErrWriter)

	cfg, plan, err := loadPlan(f, log, file)
	if err != nil {
		return err
	}

	sim := rcc.NewSim()
	for _, flag := range opts.Stall {
		log.Debug("stalling status flag", "flag", flag)
		sim.Stall(flag)
	}
	res := PlanResult{
		Name:    cfg.Name,
		SysClk:  plan.SysClk().String(),
		HCLK:    plan.HCLK().String(),
		PCLK1:   plan.PCLK1().String(),
		PCLK2:   plan.PCLK2().String(),
		Latency: plan.Latency(),
	}
	plan.Trace = func(step string) {
		log.Debug("activation step", "step", step)
		res.Steps = append(res.Steps, step)
	}
	actErr := plan.Activate(sim.Fields())

	accesses := sim.Log
	if opts.WritesOnly {
		accesses = sim.Writes()
	}
	for _, a := range accesses {
		res.Accesses = append(res.Accesses, AccessJSON{Op: a.Op.String(), Field: a.Field, Value: a.Value})
	}
	res.Violations = sim.Violations
	if actErr != nil {
		vs := violations(actErr)
		res.Error = &vs[0]
		log.Warn("activation failed", "error", actErr)
	}

	if f.JSON() {
		if actErr != nil {
			_ = f.Error(string(errcode.Of(actErr)), actErr.Error(), res)
		} else if err := f.Success(res); err != nil {
			return err
		}
	} else {
		printPlan(f, res, [4]freq.Hz{plan.SysClk(), plan.HCLK(), plan.PCLK1(), plan.PCLK2()})
	}

	if actErr != nil {
		return WrapExitError(ExitFailure, "activation failed", actErr)
	}
	return nil
}

func printPlan(f *OutputFormatter, res PlanResult, hz [4]freq.Hz) {
	w := f.Writer
	fmt.Fprintf(w, "%s\n", res.Name)
	for i, name := range []string{"SYSCLK", "HCLK", "PCLK1", "PCLK2"} {
		fmt.Fprintf(w, "  %-7s %s (%s)\n", name, hz[i], khz(hz[i]))
	}
	fmt.Fprintf(w, "  LATENCY %d\n", res.Latency)
	fmt.Fprintln(w)
	for i, a := range res.Accesses {
		fmt.Fprintf(w, "%4d %-5s %s=%d\n", i+1, a.Op, a.Field, a.Value)
	}
	for _, v := range res.Violations {
		fmt.Fprintf(w, "! %s\n", v)
	}
	if res.Error != nil {
		fmt.Fprintf(w, "Error [%s]: %s\n", res.Error.Code, res.Error.Message)
	}
}

// khz renders f rounded to kHz, marked "~" when rounding lost precision.
func khz(f freq.Hz) string {
	hz, exact := f.Integer()
	if !exact {
		hz = f.Ceil()
	}
	s := strconv.FormatUint(mathx.RoundDiv(hz, 1000), 10) + " kHz"
	if !exact || hz%1000 != 0 {
		s = "~" + s
	}
	return s
}
