package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/melkuo/bylaw-visualizer/internal/server"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// selectionFlags are shared by every command that evaluates a bylaw selection.
type selectionFlags struct {
	project string
	enable  []string
	all     bool
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.project, "project", "P", "", "project directory containing bylaws.yaml or bylaws.toml")
	cmd.Flags().StringSliceVarP(&f.enable, "enable", "e", nil, "bylaws to switch on (front, rear, side, height, coverage, depth)")
	cmd.Flags().BoolVar(&f.all, "all", false, "switch on every bylaw")
	cmd.MarkFlagsMutuallyExclusive("enable", "all")
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "bylawviz",
		Short:        "Zoning bylaw envelope calculator and visualizer",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(computeCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(sceneCmd())
	root.AddCommand(planCmd())
	root.AddCommand(impactCmd())
	root.AddCommand(bylawsCmd())
	root.AddCommand(serveCmd())

	return root
}

func computeCmd() *cobra.Command {
	var f selectionFlags
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the building envelope for a bylaw selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompute(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}
	f.register(cmd)
	return cmd
}

func validateCmd() *cobra.Command {
	var f selectionFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate bylaw parameters and the resulting envelope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}
	f.register(cmd)
	return cmd
}

func sceneCmd() *cobra.Command {
	var f selectionFlags
	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Emit the scene graph for a bylaw selection as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScene(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}
	f.register(cmd)
	return cmd
}

func planCmd() *cobra.Command {
	var f selectionFlags
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Emit the top-down site plan for a bylaw selection as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}
	f.register(cmd)
	return cmd
}

func impactCmd() *cobra.Command {
	var f selectionFlags
	cmd := &cobra.Command{
		Use:   "impact",
		Short: "Show how each bylaw changes the envelope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImpact(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}
	f.register(cmd)
	return cmd
}

func bylawsCmd() *cobra.Command {
	var f selectionFlags
	cmd := &cobra.Command{
		Use:   "bylaws",
		Short: "List the available bylaws and which are switched on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBylaws(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}
	f.register(cmd)
	return cmd
}

func serveCmd() *cobra.Command {
	var (
		f    selectionFlags
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local server with the interactive bylaw API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := loggerFromContext(cmd.Context())
			p, active, err := loadSelection(cmd.Context(), f)
			if err != nil {
				return err
			}
			p.Active = active

			srv, err := server.New(p, port, logger)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Start(ctx)
		},
	}

	f.register(cmd)
	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
