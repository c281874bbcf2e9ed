package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpgo/pension-tracker/internal/calculation"
	"github.com/rpgo/pension-tracker/internal/config"
	"github.com/rpgo/pension-tracker/internal/domain"
	"github.com/rpgo/pension-tracker/internal/output"
	"github.com/rpgo/pension-tracker/internal/planner"
	pdec "github.com/rpgo/pension-tracker/pkg/decimal"
)

var errNoPlanFile = errors.New("no plan file given and PENSION_CONFIG is not set")

func newValidateCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plan.yaml]",
		Short: "Check that a plan file can be projected",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.planFile(args)
			if path == "" {
				return errNoPlanFile
			}
			cfg, err := config.NewInputParser().LoadFromFile(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, issue := range planner.CheckForm(cfg.Contributions) {
				fmt.Fprintf(out, "warning: %s: %s\n", issue.Field, issue.Message)
			}
			if err := calculation.Validate(cfg.ProjectionInput()); err != nil {
				return fmt.Errorf("projection input rejected (%s): %w", calculation.ErrorCode(err), err)
			}
			fmt.Fprintf(out, "Configuration is valid: %s\n", path)
			return nil
		},
	}
}

func newExampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "example [output.yaml]",
		Short: "Write the example plan as YAML, to stdout when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			cfg := parser.CreateExampleConfiguration()
			if len(args) == 1 {
				if err := parser.SaveConfiguration(cfg, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Example plan written to %s\n", args[0])
				return nil
			}
			data, err := parser.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newPotsCommand(opts *globalOptions) *cobra.Command {
	var (
		add    []string
		remove []int
		rename []string
		save   bool
	)
	cmd := &cobra.Command{
		Use:   "pots [plan.yaml]",
		Short: "List, add, rename or remove the existing pension pots of a plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			path := opts.planFile(args)
			cfg := parser.CreateExampleConfiguration()
			if path != "" {
				loaded, err := parser.LoadFromFile(path)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			pots := domain.NewPotList(cfg.ExistingPots...)
			for _, spec := range add {
				name, amount, ok := strings.Cut(spec, "=")
				if !ok {
					return fmt.Errorf("invalid --add %q: want name=amount", spec)
				}
				if _, err := pots.Add(strings.TrimSpace(name), pdec.ParseMoneyOrZero(amount).Decimal); err != nil {
					return fmt.Errorf("invalid --add %q: %w", spec, err)
				}
			}
			for _, spec := range rename {
				idText, name, ok := strings.Cut(spec, "=")
				id, err := strconv.Atoi(strings.TrimSpace(idText))
				if !ok || err != nil {
					return fmt.Errorf("invalid --rename %q: want id=name", spec)
				}
				if err := pots.Update(id, domain.PotFieldName, name); err != nil {
					return err
				}
			}
			for _, id := range remove {
				if err := pots.Remove(id); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, p := range pots.Pots() {
				fmt.Fprintf(out, "%4d  %-30s %12s\n", p.ID, p.Name, output.FormatCurrency(p.Amount))
			}
			fmt.Fprintf(out, "Starting pot value: %s\n", output.FormatCurrency(pots.Total()))

			if save {
				if path == "" {
					return errNoPlanFile
				}
				cfg.ExistingPots = pots.Pots()
				if err := parser.SaveConfiguration(cfg, path); err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved %d pots to %s\n", pots.Len(), path)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&add, "add", nil, "add a pot as name=amount (repeatable)")
	cmd.Flags().StringArrayVar(&rename, "rename", nil, "rename a pot as id=name (repeatable)")
	cmd.Flags().IntSliceVar(&remove, "remove", nil, "remove pots by id")
	cmd.Flags().BoolVar(&save, "save", false, "write the changed pots back to the plan file")
	return cmd
}
