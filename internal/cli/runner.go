package cli

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"github.com/typeforge/derive/internal/derive"
	"github.com/typeforge/derive/internal/model"
	"github.com/typeforge/derive/internal/registry"
	"github.com/typeforge/derive/internal/source"
	"github.com/typeforge/derive/internal/utils"
)

// Runner drives one CLI invocation: scan packages, derive the built-in
// describe schema against every requested interface, report diagnostics.
type Runner struct {
	cfg      Config
	diag     *utils.DiagnosticSystem
	reporter *DiagnosticReporter
}

// NewRunner creates a runner for the given configuration.
func NewRunner(cfg Config, diag *utils.DiagnosticSystem) *Runner {
	return &Runner{
		cfg:      cfg,
		diag:     diag,
		reporter: NewDiagnosticReporter(cfg.Verbose),
	}
}

// Run executes the scan-and-derive pipeline. It returns an error when any
// interface failed to derive; every diagnostic has been printed by then.
func (r *Runner) Run() error {
	r.diag.Header("deriving interface metadata")

	module := r.cfg.ModuleName
	if module == "" {
		if resolved, err := utils.ResolveModulePath(r.cfg.Dir); err == nil {
			module = resolved
		}
	}
	if module != "" {
		r.diag.Verbose("module: %s", module)
	}

	scanner := source.NewScanner(r.cfg.Dir)
	ifaces, err := scanner.Load(r.cfg.Patterns...)
	if err != nil {
		return err
	}
	ifaces = r.filter(ifaces)
	if len(ifaces) == 0 {
		return fmt.Errorf("no interfaces found in %v", r.cfg.Patterns)
	}
	r.diag.Info("found %d interface(s)", len(ifaces))
	if r.cfg.Verbose {
		r.diag.Section("Interfaces")
		for _, iface := range ifaces {
			r.diag.List("%s (%d methods)", iface.Name, len(iface.Methods))
		}
	}

	reg := registry.NewContextual()
	desc := DescribeSchema()

	failures := 0
	r.diag.PhaseHeader("Deriving")
	r.diag.Indent()
	for _, iface := range ifaces {
		res, err := derive.Derive(desc, iface, reg)
		if err == nil {
			err = res.Finalize()
		}
		if err != nil {
			failures++
			r.reporter.Report(iface.Name, err)
			continue
		}
		r.diag.PhaseItem(fmt.Sprintf("%s (%d methods)", iface.Name, len(iface.Methods)))
		if r.cfg.Verbose {
			r.diag.Verbose("derived tree for %s:\n%s", iface.Name, spew.Sdump(res.Root))
		}
	}
	r.diag.Unindent()

	if failures > 0 {
		return fmt.Errorf("%d of %d interface(s) failed to derive", failures, len(ifaces))
	}
	r.diag.Success("derived %d interface(s)", len(ifaces))
	return nil
}

func (r *Runner) filter(ifaces []*model.Interface) []*model.Interface {
	if len(r.cfg.Interfaces) == 0 {
		return ifaces
	}
	wanted := make(map[string]bool, len(r.cfg.Interfaces))
	for _, n := range r.cfg.Interfaces {
		wanted[n] = true
	}
	var out []*model.Interface
	for _, iface := range ifaces {
		if wanted[iface.Name] {
			out = append(out, iface)
		}
	}
	return out
}
