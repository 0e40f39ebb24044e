package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ValidationResult is the JSON payload of a successful validate.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Name    string `json:"name"`
	SysClk  string `json:"sysclk"`
	Latency uint32 `json:"latency"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <clock.yaml>",
		Short: "Check a clock description without generating code",
		Long: `Load a board clock description and build its clock tree.

Every violation is reported: illegal PLL factors, prescalers outside the
hardware tables, oscillators out of range and a SYSCLK above 32 MHz.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, file string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)
	log := newLogger(opts, f.ErrWriter)

	cfg, plan, err := loadPlan(f, log, file)
	if err != nil {
		return err
	}
	if f.JSON() {
		return f.Success(ValidationResult{
			Valid:   true,
			Name:    cfg.Name,
			SysClk:  plan.SysClk().String(),
			Latency: plan.Latency(),
		})
	}
	fmt.Fprintf(f.Writer, "✓ %s: SYSCLK %s, %d wait state(s)\n", cfg.Name, plan.SysClk(), plan.Latency())
	return nil
}
