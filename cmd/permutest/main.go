package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	toolerrors "github.com/permutest/permutest/pkgs/errors"
	"github.com/permutest/permutest/pkgs/generator"
	"github.com/permutest/permutest/pkgs/parser"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(toolerrors.ExitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "permutest",
		Short: "Generate Cartesian-product test cases from declarative specifications",
		Long: `permutest expands declarative test specifications into Go test source.

A specification names a title, one or more variables with their value sets,
a 'when' block running the code under test, and a 'then' block checking its
result. One test function is generated per combination of variable values.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newCheckCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	var (
		output  string
		pkgName string
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "generate <spec-file>",
		Short: "Expand a specification file into a Go test source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if watch {
				if input == "-" || output == "" {
					return toolerrors.New(toolerrors.ErrUsage,
						"--watch requires a file argument and --output")
				}
				return watchAndGenerate(cmd, input, output, pkgName)
			}
			return generateOnce(cmd, input, output, pkgName)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&pkgName, "package", generator.DefaultPackage, "Package name of the generated file")
	cmd.Flags().BoolVar(&watch, "watch", false, "Regenerate whenever the specification file changes")
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <spec-file>...",
		Short: "Parse and validate specification files without generating",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, input := range args {
				content, err := readInput(input)
				if err != nil {
					return toolerrors.NewInputError(displayName(input), err)
				}

				file, err := parser.Parse(content)
				if err != nil {
					return toolerrors.NewParseError(displayName(input), err)
				}

				// Name collision checks run at generation time; a
				// check run must surface them too
				if _, err := generator.Preprocess(file, generator.Options{}); err != nil {
					return toolerrors.NewGenerationError(displayName(input), err)
				}

				for i := range file.Specs {
					spec := &file.Specs[i]
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s expands to %d test cases\n",
						displayName(input), spec.Title, spec.UnitCount())
				}
			}
			return nil
		},
	}
}

// generateOnce runs the full pipeline for one input: read, parse, generate,
// write
func generateOnce(cmd *cobra.Command, input, output, pkgName string) error {
	content, err := readInput(input)
	if err != nil {
		return toolerrors.NewInputError(displayName(input), err)
	}

	file, err := parser.Parse(content)
	if err != nil {
		return toolerrors.NewParseError(displayName(input), err)
	}

	source, err := generator.Generate(file, generator.Options{Package: pkgName})
	if err != nil {
		return toolerrors.NewGenerationError(displayName(input), err)
	}

	if output == "" {
		fmt.Fprint(cmd.OutOrStdout(), source)
		return nil
	}
	if err := os.WriteFile(output, []byte(source), 0o644); err != nil {
		return toolerrors.NewWriteError(output, err)
	}
	return nil
}

// readInput reads a specification file, or stdin when the argument is '-'
func readInput(input string) (string, error) {
	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func displayName(input string) string {
	if input == "-" {
		return "stdin"
	}
	return input
}
