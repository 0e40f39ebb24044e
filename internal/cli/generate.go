package cli

import (
	"os"

	"github.com/spf13/cobra"

	"clocktree-go/clockgen"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	Output string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <clock.yaml>",
		Short: "Emit the Go source for a clock description",
		Long: `Validate a clock description and write the Go file declaring its clock
tree, resolved frequencies and Init function. Nothing is written for an
illegal tree. Intended for go:generate:

	//go:generate go run clocktree-go/cmd/clockgen generate clock.yaml -o clock_gen.go`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func runGenerate(rootOpts *RootOptions, opts *GenerateOptions, file string, cmd *cobra.Command) error {
	f := newFormatter(rootOpts, cmd)
	log := newLogger(rootOpts, f.ErrWriter)

	cfg, _, err := loadPlan(f, log, file)
	if err != nil {
		return err
	}
	src, err := clockgen.Generate(cfg, file)
	if err != nil {
		return reportViolations(f, file, err)
	}

	if opts.Output == "" {
		_, err = cmd.OutOrStdout().Write(src)
		return err
	}
	if err := os.WriteFile(opts.Output, src, 0o644); err != nil {
		_ = f.Error("io", err.Error(), nil)
		return WrapExitError(ExitCommandError, "cannot write output", err)
	}
	log.Info("generated", "file", opts.Output, "package", cfg.Package, "bytes", len(src))
	return f.Success(struct {
		Output  string `json:"output"`
		Package string `json:"package"`
	}{opts.Output, cfg.Package})
}
