// Command pension-tracker projects the growth and drawdown of a pension pot.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rpgo/pension-tracker/internal/calculation"
	"github.com/rpgo/pension-tracker/internal/config"
	"github.com/rpgo/pension-tracker/internal/output"
)

type globalOptions struct {
	envFile  string
	logLevel string
	locale   string

	app    config.AppConfig
	logger calculation.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "pension-tracker",
		Short:         "Project how a pension pot grows until retirement and is drawn down after it",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	root.PersistentFlags().StringVar(&opts.locale, "locale", "", "locale used for digit grouping (overrides REPORT_LOCALE)")

	root.AddCommand(
		newProjectCommand(opts),
		newReportCommand(opts),
		newValidateCommand(opts),
		newExampleCommand(),
		newPotsCommand(opts),
		newServeCommand(opts),
		newFormatsCommand(),
	)
	return root
}

func (o *globalOptions) init(cmd *cobra.Command) error {
	app, err := config.LoadAppConfig(o.envFile)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		app.LogLevel = o.logLevel
	}
	if o.locale != "" {
		app.ReportLocale = o.locale
	}
	level, err := calculation.ParseLevel(app.LogLevel)
	if err != nil {
		return err
	}
	if err := output.SetLocale(app.ReportLocale); err != nil {
		return err
	}
	o.app = app
	o.logger = calculation.NewStdLogger(cmd.ErrOrStderr(), level)
	return nil
}

// planFile picks the positional argument, then PENSION_CONFIG; "" means the example plan.
func (o *globalOptions) planFile(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return o.app.PlanFile
}

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the available report formats and their aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Formats:")
			for _, name := range output.AvailableFormatterNames() {
				fmt.Fprintf(out, "  %s\n", name)
			}
			fmt.Fprintln(out, "Aliases:")
			for _, alias := range output.AvailableFormatAliases() {
				fmt.Fprintf(out, "  %-16s -> %s\n", alias, output.NormalizeFormatName(alias))
			}
			return nil
		},
	}
}
