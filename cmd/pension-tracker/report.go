package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/pension-tracker/internal/output"
)

func newReportCommand(opts *globalOptions) *cobra.Command {
	po := &planOptions{}
	var (
		format string
		dir    string
	)
	cmd := &cobra.Command{
		Use:   "report [plan.yaml]",
		Short: "Write timestamped report files for a plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := po.buildReport(cmd, opts, args)
			if err != nil {
				return err
			}
			paths, err := output.GenerateReport(dir, report, format)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", p)
			}
			return nil
		},
	}
	po.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "all", "report format, or 'all' for console, detailed-csv and html")
	cmd.Flags().StringVarP(&dir, "output-dir", "o", ".", "directory to write reports into")
	return cmd
}
