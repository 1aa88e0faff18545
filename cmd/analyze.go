package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	m "schemalens.dev/pkg/schemalens/internal/model"
)

// absentBinding is the identity spelling that binds an explicit "no value".
const absentBinding = "none"

var bindFlags []string

// analyzeCmd represents the analyze command.
var analyzeCmd = newAnalyzeCmd()

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze SIGNATURE",
		Short: "Analyze one operator signature",
		Long: `Analyze a single operator signature, optionally refining it with
concrete argument bindings. Bindings with equal identities refer to the
same storage; the identity "none" binds an explicit absent value:

  schemalens analyze 'add_(Tensor(a!) self, Tensor(a) other) -> Tensor(a!)' \
      --bind self=t1 --bind other=t1`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			bindings, err := parseBindings(bindFlags)
			if err != nil {
				return err
			}

			return workflow.Analyze(context.Background(), args[0], bindings)
		},
	}

	cmd.Flags().StringArrayVarP(&bindFlags, "bind", "b", nil, "bind an argument value as name=identity (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func parseBindings(flags []string) (map[string]m.Value, error) {
	bindings := make(map[string]m.Value, len(flags))

	for _, flag := range flags {
		name, identity, ok := strings.Cut(flag, "=")
		if !ok || name == "" || identity == "" {
			return nil, fmt.Errorf("invalid binding %q, want name=identity", flag)
		}

		if identity == absentBinding {
			bindings[name] = m.None()
			continue
		}

		bindings[name] = m.NewValue(identity)
	}

	return bindings, nil
}
