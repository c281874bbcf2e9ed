package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rpgo/pension-tracker/internal/calculation"
	"github.com/rpgo/pension-tracker/internal/config"
	"github.com/rpgo/pension-tracker/internal/planner"
	"github.com/rpgo/pension-tracker/internal/server"
)

func newServeCommand(opts *globalOptions) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve [plan.yaml]",
		Short: "Serve the projection API and a local planner seeded from a plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := opts.app
			if port != "" {
				app.Port = port
			}

			parser := config.NewInputParser()
			cfg := parser.CreateExampleConfiguration()
			if path := opts.planFile(args); path != "" {
				loaded, err := parser.LoadFromFile(path)
				if err != nil {
					return err
				}
				cfg = loaded
				opts.logger.Infof("planner seeded from %s", path)
			}

			engine := calculation.NewProjectionEngine()
			engine.SetLogger(opts.logger)
			srv := server.New(app, engine, planner.New(cfg, engine), opts.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}
