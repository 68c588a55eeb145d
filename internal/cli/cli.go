package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vk/pbxproj/internal/app"
	"github.com/vk/pbxproj/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// exactPath accepts exactly one path argument.
func exactPath(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return usageError(fmt.Errorf("%s requires exactly one path argument, got %d", cmd.Name(), len(args)))
	}
	return nil
}

// command carries state shared by the subcommands of one invocation.
type command struct {
	outW, errW io.Writer
	loader     *config.Loader
	opts       app.Options
	app        *app.App
}

// NewRootCommand builds the command tree. Results are written to outW, logs
// and diagnostics to errW.
func NewRootCommand(outW, errW io.Writer, loader *config.Loader) *cobra.Command {
	c := &command{outW: outW, errW: errW, loader: loader}

	root := &cobra.Command{
		Use:           "pbxproj",
		Short:         "Inspect and rewrite project files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.Context())
		},
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError(err) })

	flags := root.PersistentFlags()
	flags.StringVar(&c.opts.ConfigPath, "config", "", "Path to the configuration file (default ./"+config.FileName+").")
	flags.StringVar(&c.opts.LogLevel, "log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringVar(&c.opts.LogFormat, "log-format", "", "Log output format. Options: 'text' or 'json'.")

	root.AddCommand(c.fmtCommand(), c.idsCommand(), c.lsCommand(), c.addTargetCommand())
	return root
}

func (c *command) setup(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := app.LoadConfig(ctx, c.loader, c.opts)
	if err != nil {
		return usageError(err)
	}
	c.app = app.NewApp(c.outW, c.errW, cfg)
	return nil
}

func (c *command) fmtCommand() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "fmt PATH",
		Short: "Rewrite project files in canonical form, assigning permanent identifiers",
		Long: "PATH is a project file, a project bundle or a directory searched for bundles.\n" +
			"With --check nothing is written and the exit code is 1 when a file would change.",
		Args: exactPath,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := c.app.Format(cmd.Context(), args[0], check)
			if err != nil {
				return err
			}
			var pending int
			for _, r := range results {
				status := "unchanged"
				switch {
				case r.Changed && check:
					status = "needs formatting"
					pending++
				case r.Changed:
					status = "formatted"
				}
				fmt.Fprintf(c.outW, "%s: %s", r.Path, status)
				if r.Assigned > 0 {
					fmt.Fprintf(c.outW, " (%d identifiers assigned)", r.Assigned)
				}
				if r.Pruned > 0 {
					fmt.Fprintf(c.outW, " (%d unreachable objects pruned)", r.Pruned)
				}
				fmt.Fprintln(c.outW)
			}
			if pending > 0 {
				return &ExitError{Code: 1, Message: fmt.Sprintf("%d project file(s) need formatting", pending)}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Report files that would change without writing them.")
	return cmd
}

func (c *command) idsCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "ids PATH",
		Short: "Report temporary, unreachable and dangling identifiers",
		Args:  exactPath,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(format); err != nil {
				return err
			}
			reports, err := c.app.Identifiers(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if format == "yaml" {
				if err := writeYAML(c.outW, reports); err != nil {
					return err
				}
			} else {
				writeReports(c.outW, reports)
			}
			for _, r := range reports {
				if !r.Clean() {
					return &ExitError{Code: 1, Message: "identifier problems found"}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format. Options: 'text' or 'yaml'.")
	return cmd
}

func (c *command) lsCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "ls PATH",
		Short: "List targets and files of projects",
		Long:  "PATH is a project file, a project bundle, a directory searched for bundles or a workspace.",
		Args:  exactPath,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(format); err != nil {
				return err
			}
			listing, err := c.app.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if format == "yaml" {
				return listing.WriteYAML(c.outW)
			}
			return listing.WriteText(c.outW)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format. Options: 'text' or 'yaml'.")
	return cmd
}

func (c *command) addTargetCommand() *cobra.Command {
	var req app.AddTargetRequest
	cmd := &cobra.Command{
		Use:   "add-target PATH",
		Short: "Add a native target and save the project",
		Args:  exactPath,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(req.Name) == "" {
				return usageError(errors.New("--name must not be empty"))
			}
			res, err := c.app.AddTarget(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.outW, "%s: added target %s (%s)\n", res.Path, req.Name, res.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Target name.")
	cmd.Flags().StringVar(&req.ProductType, "product-type", "com.apple.product-type.application", "Product type identifier.")
	cmd.Flags().StringSliceVar(&req.DependsOn, "depends-on", nil, "Existing targets the new target depends on.")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func validFormat(format string) error {
	if format != "text" && format != "yaml" {
		return usageError(fmt.Errorf("invalid format %q: must be 'text' or 'yaml'", format))
	}
	return nil
}

// Execute runs the command line args against a fresh command tree.
func Execute(ctx context.Context, args []string, outW, errW io.Writer, loader *config.Loader) error {
	root := NewRootCommand(outW, errW, loader)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil && isCobraUsageError(err) {
		return usageError(err)
	}
	return err
}

// isCobraUsageError matches the errors cobra reports for unknown commands
// and missing required flags, which carry no type of their own.
func isCobraUsageError(err error) bool {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return false
	}
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, `required flag(s)`)
}
