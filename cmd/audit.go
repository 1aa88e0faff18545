package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schemalens.dev/pkg/schemalens/internal/domain"
	m "schemalens.dev/pkg/schemalens/internal/model"
)

var auditParallelFlag int
var auditSaveFlag bool

// auditCmd represents the audit command.
var auditCmd = newAuditCmd()

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [paths...]",
		Short: "Audit operator registries",
		Long:  auditLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Audit(context.Background(), domain.AuditArgs{
				Paths:   parsePaths(args),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Threads: viper.GetInt(auditParallelConfigKey),
				Output:  m.Path(viper.GetString(outputFlagName)),
				Save:    viper.GetBool(auditSaveConfigKey),
			})
		},
	}

	configureAuditFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func configureAuditFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&auditParallelFlag, auditParallelFlagName, "p", viper.GetInt(auditParallelConfigKey), "number of registry files analyzed in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(auditParallelFlagName), auditParallelConfigKey)

	cmd.Flags().BoolVarP(&auditSaveFlag, saveFlagName, "s", viper.GetBool(auditSaveConfigKey), "save the audit report to the output directory")
	bindFlagToConfig(cmd.Flags().Lookup(saveFlagName), auditSaveConfigKey)
}
