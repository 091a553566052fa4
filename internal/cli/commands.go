package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kanzure/modelo"
	"github.com/kanzure/modelo/internal/presentation/doc"
	"github.com/kanzure/modelo/internal/presentation/graph"
	"github.com/kanzure/modelo/internal/presentation/tui"
	"github.com/kanzure/modelo/pkg/loader"
	"github.com/kanzure/modelo/pkg/model"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Execute runs the command line with os.Args.
func Execute() {
	if err := NewRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand builds the command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:          "modelo",
		Short:        "modelo validates records against typed schemas",
		Long:         `Declare record types in YAML or JSON, then validate, build and update data against them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	// Persistent flags (available to all commands)
	flags := root.PersistentFlags()
	flags.StringVarP(&a.opts.schema, "schema", "s", "", "Schema file declaring the types")
	flags.StringVarP(&a.opts.typeName, "type", "t", "", "Type to use (default: last declared)")
	flags.StringVar(&a.opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.BoolVar(&a.opts.metrics, "metrics", false, "Print attribute counters to stderr on exit")

	root.AddCommand(
		validateCommand(a),
		createCommand(a),
		updateCommand(a),
		describeCommand(a),
		graphCommand(a),
		openapiCommand(a),
		versionCommand(),
	)
	return root
}

func validateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <data>",
		Short: "Check a record against a type",
		Long:  `Validates every key of the record and reports all failures at once.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := a.loadType()
			if err != nil {
				return err
			}
			data, err := loader.ReadData(args[0])
			if err != nil {
				return err
			}
			profile := termenv.NewOutput(a.out).Profile
			if err := typ.Validate(data); err != nil {
				errs := model.ValidationErrors(err)
				for _, e := range errs {
					fmt.Fprintf(a.out, "  - %v\n", e)
				}
				fmt.Fprintln(a.out, tui.Status(profile, false, fmt.Sprintf("%s: %d errors", args[0], len(errs))))
				return fmt.Errorf("%s is not a valid %s", args[0], typ.Name())
			}
			fmt.Fprintln(a.out, tui.Status(profile, true, fmt.Sprintf("%s is a valid %s", args[0], typ.Name())))
			return nil
		},
	}
}

func createCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <data>",
		Short: "Build an instance from a record and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := a.loadType()
			if err != nil {
				return err
			}
			data, err := loader.ReadData(args[0])
			if err != nil {
				return err
			}
			inst, err := typ.Create(data)
			if err != nil {
				return err
			}
			return a.printInstance(inst)
		},
	}
	cmd.Flags().StringVarP(&a.opts.output, "output", "o", "json", "Output format (json, yaml)")
	return cmd
}

func updateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <base> <patch>",
		Short: "Build an instance from base, apply patch and print it",
		Long:  `Nested instances are updated in place, dicts are merged and lists are replaced.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := a.loadType()
			if err != nil {
				return err
			}
			base, err := loader.ReadData(args[0])
			if err != nil {
				return err
			}
			patch, err := loader.ReadData(args[1])
			if err != nil {
				return err
			}
			inst, err := typ.Create(base)
			if err != nil {
				return err
			}
			if err := inst.Update(patch); err != nil {
				return err
			}
			return a.printInstance(inst)
		},
	}
	cmd.Flags().StringVarP(&a.opts.output, "output", "o", "json", "Output format (json, yaml)")
	return cmd
}

func (a *app) printInstance(inst *model.Instance) error {
	d, err := inst.ToDict()
	if err != nil {
		return err
	}
	return a.print(d)
}

func describeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [type]",
		Short: "Print the attribute table of the schema's types",
		Long:  `Prints markdown, rendered for the terminal when stdout is a TTY.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSchema()
			if err != nil {
				return err
			}
			types := s.Types()
			if len(args) > 0 {
				typ, err := s.Lookup(args[0])
				if err != nil {
					return err
				}
				types = []*model.Type{typ}
			}
			md := doc.GenerateMarkdown(types)

			f, ok := a.out.(*os.File)
			if !ok || !term.IsTerminal(int(f.Fd())) {
				_, err := io.WriteString(a.out, md)
				return err
			}
			width, _, err := term.GetSize(int(f.Fd()))
			if err != nil {
				width = 0
			}
			render, err := tui.NewRenderer(width)
			if err != nil {
				return err
			}
			out, err := render(md)
			if err != nil {
				return err
			}
			_, err = io.WriteString(a.out, out)
			return err
		},
	}
}

func graphCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Export the schema as a Mermaid class diagram",
		Long:  `Outputs inheritance and instance references of every type. --type highlights one type.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSchema()
			if err != nil {
				return err
			}
			var overlay *graph.GraphOverlay
			if a.opts.typeName != "" {
				overlay = &graph.GraphOverlay{Focus: a.opts.typeName}
			}
			_, err = io.WriteString(a.out, graph.GenerateMermaid(s.Types(), overlay))
			return err
		},
	}
}

func openapiCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print OpenAPI component schemas for the schema's types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSchema()
			if err != nil {
				return err
			}
			return a.print(map[string]any{
				"components": map[string]any{
					"schemas": model.Components(s.Types()...),
				},
			})
		},
	}
	cmd.Flags().StringVarP(&a.opts.output, "output", "o", "json", "Output format (json, yaml)")
	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of modelo",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "modelo version %s\n", strings.TrimSpace(modelo.Version))
		},
	}
}
