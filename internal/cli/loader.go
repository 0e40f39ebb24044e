package cli

import (
	"errors"
	"io/fs"
	"log/slog"

	"clocktree-go/clock"
	"clocktree-go/clockcfg"
)

// loadPlan reads file and builds its tree. Unreadable files are command
// errors; anything wrong with the description itself is reported as
// violations.
func loadPlan(f *OutputFormatter, log *slog.Logger, file string) (*clockcfg.Config, *clock.Plan, error) {
	cfg, err := clockcfg.LoadFile(file)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			_ = f.Error("io", err.Error(), nil)
			return nil, nil, WrapExitError(ExitCommandError, "cannot read clock description", err)
		}
		return nil, nil, reportViolations(f, file, err)
	}
	log.Debug("loaded clock description", "file", file, "name", cfg.Name, "sysclk", cfg.SysClk.Source)

	tree, err := cfg.Tree()
	if err != nil {
		return nil, nil, reportViolations(f, file, err)
	}
	plan, err := clock.Build(tree)
	if err != nil {
		return nil, nil, reportViolations(f, file, err)
	}
	log.Debug("clock tree built", "sysclk", plan.SysClk().String(), "latency", plan.Latency())
	return cfg, plan, nil
}
