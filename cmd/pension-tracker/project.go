package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rpgo/pension-tracker/internal/calculation"
	"github.com/rpgo/pension-tracker/internal/config"
	"github.com/rpgo/pension-tracker/internal/domain"
	"github.com/rpgo/pension-tracker/internal/output"
	"github.com/rpgo/pension-tracker/internal/planner"
	pdec "github.com/rpgo/pension-tracker/pkg/decimal"
)

// planOptions are the form overrides shared by project and report
type planOptions struct {
	fields         map[string]*string
	pots           []string
	rate           string
	lifeExpectancy int
	debug          bool
}

func (po *planOptions) register(cmd *cobra.Command) {
	po.fields = make(map[string]*string, len(planner.Fields))
	for _, f := range planner.Fields {
		flag := strings.ReplaceAll(f.Name, "_", "-")
		po.fields[f.Name] = cmd.Flags().String(flag, "", f.Label)
	}
	cmd.Flags().StringArrayVar(&po.pots, "pot", nil, "add an existing pot as name=amount (repeatable)")
	cmd.Flags().StringVar(&po.rate, "rate", "", "annual interest rate as a fraction, e.g. 0.049")
	cmd.Flags().IntVar(&po.lifeExpectancy, "life-expectancy", 0, "assumed life expectancy in years")
	cmd.Flags().BoolVar(&po.debug, "debug", false, "log the running pot for every age")
}

// buildReport loads the plan, applies the flag overrides the way the form does and projects it.
func (po *planOptions) buildReport(cmd *cobra.Command, opts *globalOptions, args []string) (*domain.ProjectionReport, error) {
	parser := config.NewInputParser()
	var cfg *domain.Configuration
	if path := opts.planFile(args); path != "" {
		loaded, err := parser.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = parser.CreateExampleConfiguration()
	}

	if cmd.Flags().Changed("rate") {
		rate, err := decimal.NewFromString(strings.TrimSpace(po.rate))
		if err != nil {
			return nil, fmt.Errorf("invalid --rate %q: %w", po.rate, err)
		}
		cfg.Assumptions.AnnualInterestRate = rate
	}
	if cmd.Flags().Changed("life-expectancy") {
		cfg.Assumptions.LifeExpectancy = po.lifeExpectancy
	}
	if err := parser.ValidateConfiguration(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	p := planner.New(cfg, nil)
	for _, f := range planner.Fields {
		if cmd.Flags().Changed(strings.ReplaceAll(f.Name, "_", "-")) {
			if _, err := p.SetField(f.Name, *po.fields[f.Name]); err != nil {
				return nil, err
			}
		}
	}
	for _, spec := range po.pots {
		name, amount, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --pot %q: want name=amount", spec)
		}
		if _, _, err := p.AddPot(strings.TrimSpace(name), pdec.ParseMoneyOrZero(amount).Decimal); err != nil {
			return nil, fmt.Errorf("invalid --pot %q: %w", spec, err)
		}
	}

	engine := calculation.NewProjectionEngine()
	engine.Debug = po.debug
	engine.SetLogger(opts.logger)

	plan := p.Configuration()
	in, res, err := engine.ProjectConfiguration(plan)
	if err != nil {
		opts.logger.Warnf("projection rejected: %v", err)
	}
	return calculation.BuildReport(plan.Name, in, plan.ExistingPots, plan.Assumptions, res, err), nil
}

func newProjectCommand(opts *globalOptions) *cobra.Command {
	po := &planOptions{}
	var format string
	cmd := &cobra.Command{
		Use:   "project [plan.yaml]",
		Short: "Project a plan and print the result",
		Long: `Project a plan and print the result.

The plan is read from the given file, then PENSION_CONFIG, and otherwise the built-in
example plan is used. Form flags such as --retirement-age override the plan; values that
do not parse are treated as 0, like the input form.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := output.LookupFormatter(format)
			if err != nil {
				return err
			}
			report, err := po.buildReport(cmd, opts, args)
			if err != nil {
				return err
			}
			data, err := f.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	po.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "console-lite", "output format (see 'formats')")
	return cmd
}
