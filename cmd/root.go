// Package cmd provides the root command and CLI setup for schemalens.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"schemalens.dev/pkg/schemalens/internal/adapter"
	"schemalens.dev/pkg/schemalens/internal/controller"
	"schemalens.dev/pkg/schemalens/internal/domain"
	m "schemalens.dev/pkg/schemalens/internal/model"
)

var registryFSAdapter adapter.RegistryFSAdapter
var reportStore adapter.ReportStore
var scanner domain.Scanner
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters registry files.
var excludePatterns []string

// verboseFlag switches the log file to debug level.
var verboseFlag bool

// logFileFlag overrides the log file location.
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	registryFSAdapter = adapter.NewLocalRegistryFSAdapter()
	reportStore = adapter.NewReportStore()
	scanner = domain.NewScanner(registryFSAdapter)
	workflow = domain.NewWorkflow(scanner, reportStore, ui)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...            recursively scan current directory for registries
  - ./schemas/...    recursively scan the schemas directory
  - ./a.yaml ./b     scan specific files and directories`

const rootLongDescription = `Schemalens analyzes operator schemas for mutation and aliasing behavior.
Given a typed signature such as

    add_(Tensor(a!) self, Tensor other, *, Scalar alpha=1) -> Tensor(a!)

it reports which argument and return positions may be written and which
may share storage, refining the schema's static alias annotations with
the identities of concretely bound argument values.

` + pathPatternsHelp

const auditLongDescription = `Audit every operator signature in the given registry files (default:
YAML registries under the current directory).

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schemalens",
		Short: "Operator schema mutability and aliasing analyzer",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for audit reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude registry files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", viper.GetBool(logVerboseKey), "log at debug level")
	cmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "log file location (default "+defaultLogFilename+")")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
